package controller

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"billed/internal/model"
)

var ErrPageNotFound = errors.New("new bill page not found")

type openPage struct {
	page    *NewBill
	touched time.Time
}

// Registry holds the NewBill controllers of the forms currently open, keyed
// by the page id rendered into each form.
type Registry struct {
	mu    sync.Mutex
	pages map[string]*openPage
	now   func() time.Time
	gauge prometheus.Gauge
}

func NewRegistry(gauge prometheus.Gauge) *Registry {
	return &Registry{
		pages: make(map[string]*openPage),
		now:   time.Now,
		gauge: gauge,
	}
}

func (r *Registry) Open(page *NewBill) string {
	id := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages[id] = &openPage{page: page, touched: r.now()}
	r.updateGauge()
	return id
}

// Get returns the page only to the user who opened it.
func (r *Registry) Get(id string, user model.User) (*NewBill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	op, ok := r.pages[id]
	if !ok || op.page.Owner() != user.Email {
		return nil, ErrPageNotFound
	}
	op.touched = r.now()
	return op.page, nil
}

func (r *Registry) Close(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pages, id)
	r.updateGauge()
}

// Sweep drops the pages untouched for longer than ttl and returns how many
// were dropped.
func (r *Registry) Sweep(ttl time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	deadline := r.now().Add(-ttl)
	n := 0
	for id, op := range r.pages {
		if op.touched.Before(deadline) {
			delete(r.pages, id)
			n++
		}
	}
	r.updateGauge()
	return n
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pages)
}

func (r *Registry) updateGauge() {
	if r.gauge != nil {
		r.gauge.Set(float64(len(r.pages)))
	}
}
