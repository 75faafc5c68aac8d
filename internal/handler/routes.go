package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"

	"billed/internal/controller"
	"billed/internal/mw"
	"billed/internal/route"
	"billed/internal/session"
)

type Deps struct {
	Auth       Authenticator
	StoreFor   StoreFor
	Sessions   *session.Store
	Pages      *controller.Registry
	Rejections prometheus.Counter
	Metrics    http.Handler
	Logger     *slog.Logger
}

func Router(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "HX-Request", "HX-Target", "HX-Trigger", "HX-Current-URL"},
		ExposedHeaders:   []string{"HX-Trigger", "HX-Redirect"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public routes
	r.Get(route.Login, LoginPageHandler(d.Sessions))
	r.Post("/login", LoginHandler(d.Auth, d.Sessions, d.Logger))
	r.Get(route.Logout, LogoutHandler(d.Sessions))
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics)
	}

	// Employee routes
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireEmployee(d.Sessions))

		r.Get(route.Bills, BillsHandler(d.StoreFor, d.Logger))
		r.Get(route.Attachment, AttachmentHandler(d.StoreFor, d.Logger))

		r.Get(route.NewBill, NewBillPageHandler(d.StoreFor, d.Pages, d.Rejections, d.Logger))
		r.Post(route.NewBill, SubmitBillHandler(d.Pages, d.Logger))
		r.Post(route.BillFile, ChangeFileHandler(d.Pages, d.Logger))
	})

	return r
}
