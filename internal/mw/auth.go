package mw

import (
	"context"
	"log/slog"
	"net/http"

	"billed/internal/model"
	"billed/internal/route"
	"billed/internal/session"
)

type contextKey string

const UserCtxKey contextKey = "user"

// RequireEmployee lets a request through only when its session belongs to an
// employee. Browsers without one are sent back to the login page.
func RequireEmployee(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := store.Get(r)
			if err != nil {
				slog.Debug("no session", "path", r.URL.Path, "error", err)
				toLogin(w, r)
				return
			}

			if user.Type != model.UserTypeEmployee {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), UserCtxKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// User returns the session user stored by RequireEmployee.
func User(ctx context.Context) (model.User, bool) {
	u, ok := ctx.Value(UserCtxKey).(model.User)
	return u, ok
}

func toLogin(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", route.Login)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, route.Login, http.StatusSeeOther)
}
