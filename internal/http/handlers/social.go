package handlers

import (
	"net/http"
	"strconv"

	apierrors "github.com/pribylovaa/x-assistant/internal/errors"
	"github.com/pribylovaa/x-assistant/internal/service"
	"github.com/pribylovaa/x-assistant/internal/validate"
)

// GetUser — GET /twitter/user?username=.
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Profile(r.Context(), r.URL.Query().Get("username"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// GetTweets — GET /twitter/tweets?username=&count=&cursor=[&pages=].
// pages > 1 проходит по курсорам на стороне шлюза.
func (h *Handlers) GetTweets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := service.TimelineQuery{
		Handle: q.Get("username"),
		Count:  validate.ParseCount(q.Get("count")),
		Cursor: q.Get("cursor"),
	}

	pages := 1
	if v := q.Get("pages"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			apierrors.WriteError(w, r, apierrors.Validation("Invalid pages parameter"))
			return
		}
		pages = n
	}

	t, err := h.svc.Walk(r.Context(), query, pages)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, t)
}

// TestSocial — GET /twitter/test.
func (h *Handlers) TestSocial(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.CheckSocial(r.Context()); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "connected"})
}
