// Package impex implements session export and import: whole-session
// snapshots written to JSON, CSV or Excel files and restored from them into
// a fresh session.
package impex

import (
	"context"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pitlane/racecontrol/internal/domain"
)

// Supported export formats.
const (
	FormatJSON  = "json"
	FormatCSV   = "csv"
	FormatExcel = "excel"
)

type sessionRepo interface {
	Create(ctx context.Context, s domain.Session) (*domain.Session, error)
	GetByName(ctx context.Context, name string) (*domain.Session, error)
	CloseAll(ctx context.Context) error
}

type infringementRepo interface {
	Create(ctx context.Context, inf domain.Infringement) (*domain.Infringement, error)
	List(ctx context.Context, sessionName string) ([]domain.Infringement, error)
}

type historyRepo interface {
	Append(ctx context.Context, e domain.HistoryEntry) error
	ListBySession(ctx context.Context, sessionName string) ([]domain.HistoryEntry, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type notifier interface {
	Broadcast(eventType string)
}

// Service provides session export/import operations.
type Service struct {
	sessions      sessionRepo
	infringements infringementRepo
	history       historyRepo
	tx            txManager
	notify        notifier
	log           *slog.Logger

	dir string
	now func() time.Time
}

// NewService creates a new export/import service. dir is the directory
// export files are written to; it is created on first export.
func NewService(
	log *slog.Logger,
	sessions sessionRepo,
	infringements infringementRepo,
	history historyRepo,
	tx txManager,
	notify notifier,
	dir string,
) *Service {
	return &Service{
		sessions:      sessions,
		infringements: infringements,
		history:       history,
		tx:            tx,
		notify:        notify,
		log:           log.With("service", "impex"),
		dir:           dir,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// safeFilename replaces every character outside [A-Za-z0-9_-] with an
// underscore so session names can be used in file names verbatim.
func safeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

var exportSuffix = regexp.MustCompile(`^(.+)_\d{8}_\d{6}$`)

// sessionNameFromFilename derives a session name from an uploaded file name
// by stripping the extension and the _YYYYMMDD_HHMMSS suffix export adds.
func sessionNameFromFilename(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if m := exportSuffix.FindStringSubmatch(base); m != nil {
		return m[1]
	}
	return base
}

// parseTime accepts the timestamp shapes that occur in export files. The
// Excel format keeps only the time of day, which cannot be restored to a
// full timestamp and therefore returns nil.
func parseTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptrOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
