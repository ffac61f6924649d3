package web

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jaminalder/time-travel-tic-tac-toe/internal/app"
)

type handlers struct {
	svc *app.Service
	tpl *templates
	log *slog.Logger
}

func (h *handlers) write(w http.ResponseWriter, r *http.Request, t *template.Template, sess app.Session) {
	body, err := renderTemplate(t, newGameView(sess.ID, sess.Game))
	if err != nil {
		h.log.Error("render failed", "error", err, "session", sess.ID, "path", r.URL.Path)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, app.ErrNotFound):
		http.NotFound(w, r)
	case errors.Is(err, app.ErrInvalidCell), errors.Is(err, app.ErrInvalidStep), errors.Is(err, strconv.ErrSyntax), errors.Is(err, strconv.ErrRange):
		h.log.Debug("bad request", "error", err, "path", r.URL.Path)
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.log.Error("request failed", "error", err, "path", r.URL.Path)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// index starts a fresh game on every load.
func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, h.tpl.page, h.svc.Create())
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.write(w, r, h.tpl.game, sess)
}

func (h *handlers) place(w http.ResponseWriter, r *http.Request) {
	cell, err := strconv.Atoi(chi.URLParam(r, "cell"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sess, err := h.svc.PlaceMark(chi.URLParam(r, "id"), cell)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.write(w, r, h.tpl.game, sess)
}

func (h *handlers) jump(w http.ResponseWriter, r *http.Request) {
	step, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sess, err := h.svc.JumpTo(chi.URLParam(r, "id"), step)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.write(w, r, h.tpl.game, sess)
}

func (h *handlers) sort(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.ToggleSortOrder(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.write(w, r, h.tpl.game, sess)
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
