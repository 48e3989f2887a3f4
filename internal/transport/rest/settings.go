package rest

import (
	"context"
	"log/slog"
	"net/http"
)

type settingsService interface {
	WarningExpiryMinutes(ctx context.Context) (int, error)
	SetWarningExpiryMinutes(ctx context.Context, minutes int) error
}

// SettingsHandler serves the runtime configuration endpoints.
type SettingsHandler struct {
	log *slog.Logger
	svc settingsService
}

func NewSettingsHandler(log *slog.Logger, svc settingsService) *SettingsHandler {
	return &SettingsHandler{log: log, svc: svc}
}

type settingsPayload struct {
	WarningExpiryMinutes int `json:"warning_expiry_minutes"`
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	minutes, err := h.svc.WarningExpiryMinutes(r.Context())
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, settingsPayload{WarningExpiryMinutes: minutes})
}

func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	var payload settingsPayload
	if err := decodeJSON(r, &payload); err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	if err := h.svc.SetWarningExpiryMinutes(r.Context(), payload.WarningExpiryMinutes); err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, settingsPayload{WarningExpiryMinutes: payload.WarningExpiryMinutes})
}
