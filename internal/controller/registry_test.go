package controller

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billed/internal/model"
)

func TestRegistry(t *testing.T) {
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{Name: "open_pages"})
	r := NewRegistry(gauge)
	page := NewNewBill(NewBillConfig{User: employee})

	id := r.Open(page)
	require.NotEmpty(t, id)
	assert.Equal(t, 1.0, testutil.ToFloat64(gauge))

	got, err := r.Get(id, employee)
	require.NoError(t, err)
	assert.Same(t, page, got)

	_, err = r.Get(id, model.User{Type: model.UserTypeEmployee, Email: "other@a"})
	assert.ErrorIs(t, err, ErrPageNotFound)

	_, err = r.Get("unknown", employee)
	assert.ErrorIs(t, err, ErrPageNotFound)

	r.Close(id)
	_, err = r.Get(id, employee)
	assert.ErrorIs(t, err, ErrPageNotFound)
	assert.Zero(t, testutil.ToFloat64(gauge))
}

func TestRegistryOpenGivesFreshIDs(t *testing.T) {
	r := NewRegistry(nil)
	a := r.Open(NewNewBill(NewBillConfig{User: employee}))
	b := r.Open(NewNewBill(NewBillConfig{User: employee}))
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, r.Len())
}

func TestRegistrySweep(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(nil)
	r.now = func() time.Time { return now }

	stale := r.Open(NewNewBill(NewBillConfig{User: employee}))
	now = now.Add(20 * time.Minute)
	fresh := r.Open(NewNewBill(NewBillConfig{User: employee}))
	now = now.Add(15 * time.Minute)

	assert.Equal(t, 1, r.Sweep(30*time.Minute))

	_, err := r.Get(stale, employee)
	assert.ErrorIs(t, err, ErrPageNotFound)
	_, err = r.Get(fresh, employee)
	assert.NoError(t, err)
}
