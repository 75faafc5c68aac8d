package controller

import (
	"context"
	"errors"
	"log/slog"

	"billed/internal/format"
	"billed/internal/model"
	"billed/internal/route"
	"billed/internal/view"
)

var ErrNoAttachment = errors.New("bill has no attachment")

type Bills struct {
	store Store
	log   *slog.Logger
}

func NewBills(store Store, logger *slog.Logger) *Bills {
	return &Bills{store: store, log: logger}
}

// Load fetches the bills once and renders them. A failed fetch renders its
// message in place of the list.
func (b *Bills) Load(ctx context.Context, p Page) error {
	bills, err := b.store.List(ctx)
	if err != nil {
		b.log.Error("failed to list bills", "error", err)
		return p.Render(ctx, view.BillsError(err.Error()))
	}

	rows := make([]view.BillRow, 0, len(bills))
	for _, bill := range bills {
		rows = append(rows, b.row(bill))
	}
	return p.Render(ctx, view.Bills(rows))
}

func (b *Bills) row(bill model.Bill) view.BillRow {
	date, err := format.Date(bill.Date)
	if err != nil {
		b.log.Warn("unformattable bill date", "bill", bill.ID, "date", bill.Date, "error", err)
		date = bill.Date
	}
	return view.BillRow{
		ID:       bill.ID,
		Type:     bill.Type,
		Name:     bill.Name,
		Date:     date,
		RawDate:  bill.Date,
		Amount:   bill.Amount,
		Status:   format.Status(bill.Status),
		FileURL:  bill.FileURL,
	}
}

func (b *Bills) HandleClickIconEye(ctx context.Context, p Page, fileURL string) error {
	if fileURL == "" {
		return ErrNoAttachment
	}
	return p.ShowModal(ctx, view.Attachment(fileURL))
}

func (b *Bills) HandleClickNewBill(p Page) {
	p.Navigate(route.NewBill)
}
