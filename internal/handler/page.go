package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// page drives the browser for the duration of one request. In-page effects
// (alert, input reset, modal) travel as htmx HX-Trigger events; navigation is
// an HX-Redirect for htmx requests and a 303 otherwise.
type page struct {
	w        http.ResponseWriter
	r        *http.Request
	triggers map[string]any
	alerts   []string
	redirect string
	wrote    bool
}

func newPage(w http.ResponseWriter, r *http.Request) *page {
	return &page{w: w, r: r, triggers: make(map[string]any)}
}

func (p *page) htmx() bool {
	return p.r.Header.Get("HX-Request") == "true"
}

func (p *page) Render(ctx context.Context, c templ.Component) error {
	p.writeHeader(http.StatusOK)
	return c.Render(ctx, p.w)
}

func (p *page) ShowModal(ctx context.Context, c templ.Component) error {
	p.triggers["showModal"] = true
	return p.Render(ctx, c)
}

func (p *page) Alert(msg string) {
	p.alerts = append(p.alerts, msg)
	p.triggers["showAlert"] = msg
}

func (p *page) ClearFileInput() {
	p.triggers["clearFileInput"] = true
}

func (p *page) Navigate(path string) {
	p.redirect = path
}

func (p *page) navigated() bool {
	return p.redirect != ""
}

func (p *page) writeHeader(status int) {
	if p.wrote {
		return
	}
	p.wrote = true
	if len(p.triggers) > 0 {
		if b, err := json.Marshal(p.triggers); err == nil {
			p.w.Header().Set("HX-Trigger", string(b))
		}
	}
	p.w.Header().Set("Content-Type", "text/html; charset=utf-8")
	p.w.WriteHeader(status)
}

// finish answers whatever the controller left unanswered. err is the error
// returned by the controller, if any.
func (p *page) finish(err error, logger *slog.Logger) {
	if err != nil {
		logger.Error("page event failed", "path", p.r.URL.Path, "error", err)
		if !p.wrote {
			http.Error(p.w, "internal error", http.StatusInternalServerError)
		}
		return
	}
	if p.wrote {
		return
	}

	switch {
	case p.redirect != "" && p.htmx():
		p.w.Header().Set("HX-Redirect", p.redirect)
		p.writeHeader(http.StatusOK)
	case p.redirect != "":
		p.wrote = true
		http.Redirect(p.w, p.r, p.redirect, http.StatusSeeOther)
	case len(p.alerts) > 0 && !p.htmx():
		p.wrote = true
		http.Error(p.w, strings.Join(p.alerts, "\n"), http.StatusUnprocessableEntity)
	default:
		p.writeHeader(http.StatusOK)
	}
}

// render writes a templ component to the response.
func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		slog.Error("render failed", "path", r.URL.Path, "error", err)
	}
}
