package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/pitlane/racecontrol/internal/domain"
)

type penaltyService interface {
	Pending(ctx context.Context) ([]domain.Infringement, error)
	ApplyIndividual(ctx context.Context, id int64, performedBy string) (*domain.Infringement, error)
	ApplyAllForKart(ctx context.Context, kart int, performedBy string) ([]domain.Infringement, error)
}

// PenaltyHandler serves the pending-penalty list and the apply endpoints.
type PenaltyHandler struct {
	log *slog.Logger
	svc penaltyService
}

func NewPenaltyHandler(log *slog.Logger, svc penaltyService) *PenaltyHandler {
	return &PenaltyHandler{log: log, svc: svc}
}

type applyPayload struct {
	PerformedBy string `json:"performed_by"`
}

// Pending lists infringements with a due, unapplied penalty, oldest first.
func (h *PenaltyHandler) Pending(w http.ResponseWriter, r *http.Request) {
	infs, err := h.svc.Pending(r.Context())
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	out := make([]infringementResponse, 0, len(infs))
	for i := range infs {
		out = append(out, toInfringementResponse(&infs[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// ApplyIndividual marks a single penalty as taken. A second apply on the same
// record is a conflict.
func (h *PenaltyHandler) ApplyIndividual(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	payload, err := decodeApplyPayload(r)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	inf, err := h.svc.ApplyIndividual(r.Context(), id, payload.PerformedBy)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toInfringementResponse(inf))
}

// ApplyAllForKart marks every pending penalty of one kart as taken.
func (h *PenaltyHandler) ApplyAllForKart(w http.ResponseWriter, r *http.Request) {
	kart, err := pathInt(r, "kart_number")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	payload, err := decodeApplyPayload(r)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	infs, err := h.svc.ApplyAllForKart(r.Context(), kart, payload.PerformedBy)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	out := make([]infringementResponse, 0, len(infs))
	for i := range infs {
		out = append(out, toInfringementResponse(&infs[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"applied":       len(out),
		"infringements": out,
	})
}

// decodeApplyPayload tolerates an empty body; performed_by defaults at the
// service layer.
func decodeApplyPayload(r *http.Request) (applyPayload, error) {
	var payload applyPayload
	if r.Body == nil || r.ContentLength == 0 {
		return payload, nil
	}
	if err := decodeJSON(r, &payload); err != nil {
		return payload, err
	}
	return payload, nil
}
