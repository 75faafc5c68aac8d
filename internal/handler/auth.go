package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"billed/internal/model"
	"billed/internal/route"
	"billed/internal/service"
	"billed/internal/session"
	"billed/internal/view"
)

type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

func LoginPageHandler(sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if user, err := sessions.Get(r); err == nil && user.Type == model.UserTypeEmployee {
			http.Redirect(w, r, route.Bills, http.StatusSeeOther)
			return
		}
		render(w, r, http.StatusOK, view.Login("", ""))
	}
}

func LoginHandler(auth Authenticator, sessions *session.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		email := strings.TrimSpace(r.PostFormValue("email"))
		password := r.PostFormValue("password")
		if email == "" || password == "" {
			render(w, r, http.StatusBadRequest, view.Login(email, "email and password required"))
			return
		}

		token, err := auth.Login(r.Context(), email, password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUnauthorized):
				render(w, r, http.StatusUnauthorized, view.Login(email, err.Error()))
			default:
				logger.Error("login failed", "email", email, "error", err)
				render(w, r, http.StatusBadGateway, view.Login(email, err.Error()))
			}
			return
		}

		user := model.User{Type: model.UserTypeEmployee, Email: email, Token: token}
		if err := sessions.Set(w, user); err != nil {
			logger.Error("session store failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		logger.Info("employee logged in", "email", email)
		http.Redirect(w, r, route.Bills, http.StatusSeeOther)
	}
}

func LogoutHandler(sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions.Clear(w)
		http.Redirect(w, r, route.Login, http.StatusSeeOther)
	}
}
