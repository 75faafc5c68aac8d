package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billed/internal/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*APIClient, *Metrics) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	m := NewMetrics(prometheus.NewRegistry())
	return NewAPIClient(srv.URL+"/", m), m
}

func TestListBills(t *testing.T) {
	c, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/bills", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":"b1","date":"2004-04-04","amount":400,"status":"pending","fileUrl":"https://x/a.jpg"}]`)
	})

	bills, err := c.Bills("tok").List(context.Background())
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, "b1", bills[0].ID)
	assert.Equal(t, model.StatusPending, bills[0].Status)
	assert.InDelta(t, 400, bills[0].Amount, 0.001)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("list", "ok")))
}

func TestListBillsAPIError(t *testing.T) {
	for _, code := range []int{http.StatusNotFound, http.StatusInternalServerError} {
		c, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", code)
		})

		_, err := c.Bills("tok").List(context.Background())
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, code, apiErr.StatusCode)
		assert.Equal(t, map[int]string{404: "Erreur 404", 500: "Erreur 500"}[code], err.Error())
		assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("list", "error")))
	}
}

func TestUploadFile(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bills", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "a@a", r.FormValue("email"))

		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, png, data)
		assert.Equal(t, "ticket.png", hdr.Filename)
		assert.Equal(t, "image/png", hdr.Header.Get("Content-Type"))

		_ = json.NewEncoder(w).Encode(model.UploadResult{FileURL: "https://files/ticket.png", Key: "k1"})
	})

	res, err := c.Bills("tok").UploadFile(context.Background(), model.FileUpload{
		File:  model.File{Name: "ticket.png", Data: png},
		Email: "a@a",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://files/ticket.png", res.FileURL)
	assert.Equal(t, "k1", res.Key)
}

func TestCreateBillRoutesOnID(t *testing.T) {
	var method, path string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		var b model.Bill
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&b))
		_ = json.NewEncoder(w).Encode(b)
	})
	g := c.Bills("tok")

	saved, err := g.CreateBill(context.Background(), model.Bill{ID: "k1", Name: "Hôtel", Status: model.StatusPending})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, method)
	assert.Equal(t, "/bills/k1", path)
	assert.Equal(t, "Hôtel", saved.Name)

	_, err = g.CreateBill(context.Background(), model.Bill{Name: "Train"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/bills", path)
}

func TestUpdateRequiresID(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	_, err := c.Bills("tok").Update(context.Background(), "", model.Bill{})
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		var req loginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "secret" {
			http.Error(w, "nope", http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(loginResponse{JWT: "jwt-" + req.Email})
	})

	tok, err := c.Login(context.Background(), "a@a", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-a@a", tok)

	_, err = c.Login(context.Background(), "a@a", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
