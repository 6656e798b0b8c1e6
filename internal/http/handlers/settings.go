package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/x-assistant/internal/errors"
	"github.com/pribylovaa/x-assistant/internal/models"
)

// GetConfig — GET /config: статус конфигурации без секретов.
func (h *Handlers) GetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Status(r.Context()))
}

// SaveConfig — POST /config.
func (h *Handlers) SaveConfig(w http.ResponseWriter, r *http.Request) {
	var req models.SettingsSave
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, settingsBodyError(err))
		return
	}

	ack, err := h.svc.SaveSettings(r.Context(), req)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ack)
}

// PatchConfig — PUT /config {field, value}.
func (h *Handlers) PatchConfig(w http.ResponseWriter, r *http.Request) {
	var req models.SettingsPatch
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	ack, err := h.svc.PatchSetting(r.Context(), req)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ack)
}

// ClearConfig — DELETE /config {confirm}.
func (h *Handlers) ClearConfig(w http.ResponseWriter, r *http.Request) {
	var req models.SettingsDelete
	if err := decodeLoose(r, &req); err != nil {
		apierrors.WriteError(w, r, deleteBodyError(err))
		return
	}

	ack, err := h.svc.ClearSettings(r.Context(), req)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ack)
}

// settingsBodyError: нарушение типов полей настроек — это
// "Invalid configuration data", а не битое тело.
func settingsBodyError(err error) error {
	e, ok := apierrors.As(err)
	if !ok || e.Status != http.StatusBadRequest || e.Err == nil {
		return err
	}

	return apierrors.Validation("Invalid configuration data", "Invalid field type or unknown field")
}

// deleteBodyError: нечитаемое тело DELETE — это отсутствие подтверждения.
// Прочие ошибки чтения (например, 413) отдаются как есть.
func deleteBodyError(err error) error {
	if e, ok := apierrors.As(err); ok && e.Status != http.StatusBadRequest {
		return err
	}

	return apierrors.Validation("Delete confirmation required")
}
