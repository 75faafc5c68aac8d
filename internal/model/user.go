package model

const (
	UserTypeEmployee = "Employee"
	UserTypeAdmin    = "Admin"
)

type User struct {
	Type  string `json:"type"`
	Email string `json:"email"`
	Token string `json:"jwt,omitempty"`
}
