// Package route names the pages of the application. Controllers navigate
// with these identifiers; the router mounts its handlers on them.
package route

const (
	Login   = "/"
	Logout  = "/logout"
	Bills   = "/employee/bills"
	NewBill = "/employee/bill/new"

	Attachment = Bills + "/attachment"
	BillFile   = NewBill + "/file"
)
