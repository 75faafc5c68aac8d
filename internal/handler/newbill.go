package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"billed/internal/controller"
	"billed/internal/model"
	"billed/internal/mw"
	"billed/internal/route"
	"billed/internal/view"
)

const maxUploadSize = 10 << 20

func NewBillPageHandler(storeFor StoreFor, pages *controller.Registry, rejections prometheus.Counter, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.User(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		nb := controller.NewNewBill(controller.NewBillConfig{
			Store:      storeFor(user),
			User:       user,
			Logger:     logger.With("email", user.Email),
			Rejections: rejections,
		})
		id := pages.Open(nb)

		render(w, r, http.StatusOK, view.NewBill(id))
	}
}

func ChangeFileHandler(pages *controller.Registry, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.User(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1<<20)
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}

		p := newPage(w, r)
		nb, err := pages.Get(r.FormValue("page"), user)
		if err != nil {
			// The form outlived its controller: rebuild the page.
			p.Navigate(route.NewBill)
			p.finish(nil, logger)
			return
		}

		files, err := readFiles(r.MultipartForm.File["file"])
		if err != nil {
			http.Error(w, "invalid file", http.StatusBadRequest)
			return
		}

		err = nb.HandleChangeFile(r.Context(), p, controller.ChangeFileEvent{Files: files})
		p.finish(err, logger)
	}
}

func SubmitBillHandler(pages *controller.Registry, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.User(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1<<20)
		if err := r.ParseMultipartForm(maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		p := newPage(w, r)
		id := r.FormValue("page")
		nb, err := pages.Get(id, user)
		if err != nil {
			p.Navigate(route.NewBill)
			p.finish(nil, logger)
			return
		}

		err = nb.HandleSubmit(r.Context(), p, controller.SubmitEvent{Values: r.Form})
		if p.navigated() {
			pages.Close(id)
		}
		p.finish(err, logger)
	}
}

func readFiles(headers []*multipart.FileHeader) ([]model.File, error) {
	files := make([]model.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
		}
		files = append(files, model.File{Name: fh.Filename, Data: data})
	}
	return files, nil
}
