package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	apierrors "github.com/pribylovaa/x-assistant/internal/errors"
	"github.com/pribylovaa/x-assistant/internal/models"
	logctx "github.com/pribylovaa/x-assistant/internal/pkg/log"
	"github.com/pribylovaa/x-assistant/internal/pkg/redact"
	"github.com/pribylovaa/x-assistant/internal/service"
)

// assistRequest — тело POST /gemini.
type assistRequest struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
	APIKey string          `json:"apiKey"`
}

var (
	analyzeFields = map[string]string{
		"tweets":          "Tweets array is required",
		"text":            "Tweets array is required",
		"user":            "User object is required",
		"username":        "Valid username is required",
		"followers_count": "Invalid followers count",
	}
	chatFields = map[string]string{
		"message": "Message is required",
		"context": "Context must be a string",
	}
)

// ModelStatus — GET /gemini.
func (h *Handlers) ModelStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ModelStatus())
}

// Assist — POST /gemini {action, data, apiKey}.
// Порядок: action -> ключ -> валидация data -> вызов модели.
func (h *Handlers) Assist(w http.ResponseWriter, r *http.Request) {
	var req assistRequest
	if err := decodeLoose(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	action, err := service.ParseAction(req.Action)
	if err != nil {
		logctx.From(r.Context()).Warn("assist_invalid_action", slog.String("action", redact.Snippet(req.Action, 32)))
		apierrors.WriteError(w, r, err)
		return
	}

	key, err := h.svc.ResolveKey(req.APIKey)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	ctx := logctx.With(r.Context(), slog.String("action", string(action)))
	ctx = logctx.WithKey(ctx, "key", key)
	logctx.From(ctx).Info("assist_request")

	switch action {
	case service.ActionTest:
		res, err := h.svc.TestModel(ctx, key)
		if err != nil {
			apierrors.WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, res)

	case service.ActionAnalyze:
		var data models.AnalyzeRequest
		if err := decodeData(req.Data, &data, "Invalid analysis data", analyzeFields); err != nil {
			apierrors.WriteError(w, r, err)
			return
		}
		in, err := service.PrepareAnalysis(data)
		if err != nil {
			apierrors.WriteError(w, r, err)
			return
		}
		analysis, err := h.svc.Analyze(ctx, key, in)
		if err != nil {
			apierrors.WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"analysis": analysis})

	case service.ActionChat:
		var data models.ChatRequest
		if err := decodeData(req.Data, &data, "Invalid chat data", chatFields); err != nil {
			apierrors.WriteError(w, r, err)
			return
		}
		in, err := service.PrepareChat(data)
		if err != nil {
			apierrors.WriteError(w, r, err)
			return
		}
		reply, err := h.svc.Chat(ctx, key, in)
		if err != nil {
			apierrors.WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, reply)
	}
}
