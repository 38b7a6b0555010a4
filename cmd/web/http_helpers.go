package main

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/nadav5199/persofy/internal/config"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Http struct {
	log       *slog.Logger
	cfg       *config.Config
	templates map[string]*template.Template
}

func (h *Http) setupLogPerReq(r *http.Request) *slog.Logger {
	return h.log.With(
		"request_id",
		middleware.GetReqID(r.Context()),
		"method",
		r.Method,
		"path",
		r.URL.Path,
	)
}

// Render writes a full page: base layout plus the named page template.
// The page is rendered to a buffer first so a template error still yields
// a clean 500 instead of a half-written body.
func (h *Http) Render(w http.ResponseWriter, r *http.Request, status int, page string, data *templateData) {
	tmpl, ok := h.templates[page]
	if !ok {
		h.ServerError(w, r, fmt.Errorf("template %q does not exist", page))
		return
	}
	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		h.ServerError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (h *Http) JSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	render.Status(r, status)
	render.JSON(w, r, data)
}

func (h *Http) NotFound(w http.ResponseWriter, r *http.Request, msg string) {
	http.Error(w, msg, http.StatusNotFound)
}

func (h *Http) Forbidden(w http.ResponseWriter, r *http.Request, msg string) {
	http.Error(w, msg, http.StatusForbidden)
}

func (h *Http) BadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	http.Error(w, msg, http.StatusBadRequest)
}

func (h *Http) ServerError(w http.ResponseWriter, r *http.Request, err error) {
	log := h.setupLogPerReq(r)
	if err != nil {
		log.Error(err.Error())
	}
	if h.cfg.Debug {
		http.Error(w, err.Error()+"\n"+string(debug.Stack()), http.StatusInternalServerError)
		return
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
