package model

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRefused  Status = "refused"
)

const DefaultPct = 20

type Bill struct {
	ID           string  `json:"id,omitempty"`
	Email        string  `json:"email"`
	Type         string  `json:"type"`
	Name         string  `json:"name"`
	Date         string  `json:"date"` // YYYY-MM-DD
	Amount       float64 `json:"amount"`
	VAT          string  `json:"vat"`
	Pct          int     `json:"pct"`
	Status       Status  `json:"status"`
	FileURL      string  `json:"fileUrl"`
	FileName     string  `json:"fileName"`
	Commentary   string  `json:"commentary,omitempty"`
	CommentAdmin string  `json:"commentAdmin,omitempty"`
}
