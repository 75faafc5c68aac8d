// Package controller holds the page controllers of the employee space. A
// controller reacts to page events (load, click, file change, submit), talks
// to the bills API through a Store and drives the browser through a Page.
package controller

import (
	"context"

	"github.com/a-h/templ"

	"billed/internal/model"
)

// Store is the bills API as seen by the controllers.
type Store interface {
	List(ctx context.Context) ([]model.Bill, error)
	UploadFile(ctx context.Context, up model.FileUpload) (model.UploadResult, error)
	// CreateBill is the single entrypoint used to persist a new bill.
	CreateBill(ctx context.Context, bill model.Bill) (model.Bill, error)
}

// Page is what a controller can do to the page the user is looking at.
type Page interface {
	Render(ctx context.Context, c templ.Component) error
	ShowModal(ctx context.Context, c templ.Component) error
	Alert(msg string)
	ClearFileInput()
	Navigate(path string)
}
