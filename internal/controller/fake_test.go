package controller

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/a-h/templ"

	"billed/internal/model"
)

type fakePage struct {
	html      bytes.Buffer
	modal     bytes.Buffer
	renders   int
	modals    int
	alerts    []string
	cleared   int
	navigated []string
}

func (p *fakePage) Render(ctx context.Context, c templ.Component) error {
	p.renders++
	return c.Render(ctx, &p.html)
}

func (p *fakePage) ShowModal(ctx context.Context, c templ.Component) error {
	p.modals++
	return c.Render(ctx, &p.modal)
}

func (p *fakePage) Alert(msg string)     { p.alerts = append(p.alerts, msg) }
func (p *fakePage) ClearFileInput()      { p.cleared++ }
func (p *fakePage) Navigate(path string) { p.navigated = append(p.navigated, path) }

type uploadReply struct {
	res model.UploadResult
	err error
}

// fakeStore answers uploads from replies in order, then from upload and
// uploadErr.
type fakeStore struct {
	mu sync.Mutex

	bills     []model.Bill
	listErr   error
	upload    model.UploadResult
	uploadErr error
	replies   []uploadReply
	createErr error

	uploads []model.FileUpload
	created []model.Bill
}

func (s *fakeStore) List(context.Context) ([]model.Bill, error) {
	return s.bills, s.listErr
}

func (s *fakeStore) UploadFile(_ context.Context, up model.FileUpload) (model.UploadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, up)
	if len(s.replies) > 0 {
		r := s.replies[0]
		s.replies = s.replies[1:]
		return r.res, r.err
	}
	return s.upload, s.uploadErr
}

func (s *fakeStore) CreateBill(_ context.Context, b model.Bill) (model.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, b)
	return b, s.createErr
}

func testLogger(t *testing.T) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}
