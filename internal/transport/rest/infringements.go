package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/pitlane/racecontrol/internal/domain"
	"github.com/pitlane/racecontrol/internal/service/infringement"
)

// infringementService is the surface of the infringement service consumed by
// the HTTP layer.
type infringementService interface {
	Create(ctx context.Context, input infringement.CreateInput) (*domain.Infringement, error)
	Update(ctx context.Context, input infringement.UpdateInput) (*domain.Infringement, error)
	Delete(ctx context.Context, id int64, performedBy string) error
	List(ctx context.Context) ([]infringement.View, error)
	Log(ctx context.Context) ([]domain.Infringement, error)
	KartHistory(ctx context.Context, kart int) ([]domain.HistoryEntry, error)
}

// InfringementHandler serves the infringement CRUD, log and kart history
// endpoints.
type InfringementHandler struct {
	log *slog.Logger
	svc infringementService
}

func NewInfringementHandler(log *slog.Logger, svc infringementService) *InfringementHandler {
	return &InfringementHandler{log: log, svc: svc}
}

type infringementPayload struct {
	KartNumber         int     `json:"kart_number"`
	TurnNumber         *string `json:"turn_number"`
	Description        string  `json:"description"`
	Observer           *string `json:"observer"`
	PerformedBy        string  `json:"performed_by"`
	PenaltyDescription *string `json:"penalty_description"`
}

func (p infringementPayload) toInput() infringement.CreateInput {
	return infringement.CreateInput{
		KartNumber:         p.KartNumber,
		TurnNumber:         p.TurnNumber,
		Description:        p.Description,
		Observer:           p.Observer,
		PerformedBy:        p.PerformedBy,
		PenaltyDescription: p.PenaltyDescription,
	}
}

type infringementResponse struct {
	ID                 int64      `json:"id"`
	SessionName        string     `json:"session_name"`
	KartNumber         int        `json:"kart_number"`
	TurnNumber         *string    `json:"turn_number"`
	Description        string     `json:"description"`
	Observer           *string    `json:"observer"`
	WarningCount       int        `json:"warning_count"`
	PenaltyDue         string     `json:"penalty_due"`
	PenaltyDescription *string    `json:"penalty_description"`
	PenaltyTaken       *time.Time `json:"penalty_taken"`
	Timestamp          time.Time  `json:"timestamp"`
}

// infringementView adds the per-row display fields computed for the live
// dashboard list.
type infringementView struct {
	infringementResponse
	EscalationFlag bool   `json:"escalation_flag"`
	Status         string `json:"status"`
}

func toInfringementResponse(inf *domain.Infringement) infringementResponse {
	return infringementResponse{
		ID:                 inf.ID,
		SessionName:        inf.SessionName,
		KartNumber:         inf.KartNumber,
		TurnNumber:         inf.TurnNumber,
		Description:        inf.Description,
		Observer:           inf.Observer,
		WarningCount:       inf.WarningCount,
		PenaltyDue:         inf.PenaltyDue,
		PenaltyDescription: inf.PenaltyDescription,
		PenaltyTaken:       inf.PenaltyTaken,
		Timestamp:          inf.Timestamp,
	}
}

type historyEntryResponse struct {
	ID             int64     `json:"id"`
	InfringementID int64     `json:"infringement_id"`
	Action         string    `json:"action"`
	PerformedBy    string    `json:"performed_by"`
	Observer       *string   `json:"observer"`
	Details        *string   `json:"details"`
	Timestamp      time.Time `json:"timestamp"`
}

func (h *InfringementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload infringementPayload
	if err := decodeJSON(r, &payload); err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	inf, err := h.svc.Create(r.Context(), payload.toInput())
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toInfringementResponse(inf))
}

func (h *InfringementHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	var payload infringementPayload
	if err := decodeJSON(r, &payload); err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	inf, err := h.svc.Update(r.Context(), infringement.UpdateInput{
		ID:          id,
		CreateInput: payload.toInput(),
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toInfringementResponse(inf))
}

func (h *InfringementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	performedBy := r.URL.Query().Get("performed_by")
	if err := h.svc.Delete(r.Context(), id, performedBy); err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": id})
}

// List returns the active session's infringements, newest first, with the
// escalation flag and derived status for each row.
func (h *InfringementHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.List(r.Context())
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	out := make([]infringementView, 0, len(views))
	for _, v := range views {
		out = append(out, infringementView{
			infringementResponse: toInfringementResponse(&v.Infringement),
			EscalationFlag:       v.EscalationFlag,
			Status:               string(v.Status),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// Log returns the raw infringement log without display fields.
func (h *InfringementHandler) Log(w http.ResponseWriter, r *http.Request) {
	infs, err := h.svc.Log(r.Context())
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

// KartHistory returns the audit trail for every infringement of one kart.
func (h *InfringementHandler) KartHistory(w http.ResponseWriter, r *http.Request) {
	kart, err := pathInt(r, "kart_number")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	entries, err := h.svc.KartHistory(r.Context(), kart)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	out := make([]historyEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyEntryResponse{
			ID:             e.ID,
			InfringementID: e.InfringementID,
			Action:         e.Action,
			PerformedBy:    e.PerformedBy,
			Observer:       e.Observer,
			Details:        e.Details,
			Timestamp:      e.Timestamp,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func pathInt64(r *http.Request, name string) (int64, error) {
	v, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || v <= 0 {
		return 0, domain.NewValidationError(name, "must be a positive integer")
	}
	return v, nil
}

func pathInt(r *http.Request, name string) (int, error) {
	v, err := pathInt64(r, name)
	return int(v), err
}
