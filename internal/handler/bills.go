package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"billed/internal/controller"
	"billed/internal/model"
	"billed/internal/mw"
)

// StoreFor gives the bills API acting on behalf of a session user.
type StoreFor func(user model.User) controller.Store

func BillsHandler(storeFor StoreFor, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.User(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p := newPage(w, r)
		err := controller.NewBills(storeFor(user), logger).Load(r.Context(), p)
		p.finish(err, logger)
	}
}

func AttachmentHandler(storeFor StoreFor, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.User(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p := newPage(w, r)
		err := controller.NewBills(storeFor(user), logger).HandleClickIconEye(r.Context(), p, r.URL.Query().Get("url"))
		if errors.Is(err, controller.ErrNoAttachment) {
			http.Error(w, "missing attachment url", http.StatusBadRequest)
			return
		}
		p.finish(err, logger)
	}
}
