package rest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/pitlane/racecontrol/internal/domain"
	"github.com/pitlane/racecontrol/internal/service/impex"
)

type sessionService interface {
	Start(ctx context.Context, name string) (*domain.Session, error)
	Load(ctx context.Context, name string) (*domain.Session, error)
	Close(ctx context.Context, name string) error
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]domain.Session, error)
}

type impexService interface {
	Export(ctx context.Context, name, format string) (*impex.ExportResult, error)
	Import(ctx context.Context, filename string, r io.Reader) (*impex.ImportResult, error)
}

// SessionHandler serves session lifecycle plus export and import.
type SessionHandler struct {
	log    *slog.Logger
	svc    sessionService
	impex  impexService
	maxImp int64
}

func NewSessionHandler(log *slog.Logger, svc sessionService, impex impexService) *SessionHandler {
	return &SessionHandler{log: log, svc: svc, impex: impex, maxImp: 32 << 20}
}

type sessionResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Status    string     `json:"status"`
	StartedAt *time.Time `json:"started_at"`
}

func toSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{ID: s.ID, Name: s.Name, Status: s.Status, StartedAt: s.StartedAt}
}

// List returns all sessions, active first.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.svc.List(r.Context())
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	out := make([]sessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, toSessionResponse(&sessions[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Start(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionResponse(s))
}

func (h *SessionHandler) Load(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Load(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(s))
}

func (h *SessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if err := h.svc.Close(r.Context(), name); err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"closed": name})
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if err := h.svc.Delete(r.Context(), name); err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": name})
}

// Export writes the session to disk in the requested format and streams the
// file back as an attachment.
func (h *SessionHandler) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.impex.Export(r.Context(), q.Get("name"), q.Get("format"))
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	w.Header().Set("Content-Type", result.MediaType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	http.ServeFile(w, r, result.Path)
}

// Import accepts a multipart upload under the "file" field and restores the
// session it contains as the new active session.
func (h *SessionHandler) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxImp); err != nil {
		handleError(r.Context(), h.log, w, domain.NewValidationError("file", "invalid multipart upload"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handleError(r.Context(), h.log, w, domain.NewValidationError("file", "file field is required"))
		return
	}
	defer file.Close()

	result, err := h.impex.Import(r.Context(), header.Filename, file)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}
