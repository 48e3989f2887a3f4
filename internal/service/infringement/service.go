// Package infringement implements logging, editing and listing of rule
// violations, including the warning accrual snapshot computed when a record
// is written. All operations target the active session.
package infringement

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pitlane/racecontrol/internal/domain"
)

type infringementRepo interface {
	Create(ctx context.Context, inf domain.Infringement) (*domain.Infringement, error)
	Update(ctx context.Context, inf domain.Infringement) (*domain.Infringement, error)
	Delete(ctx context.Context, sessionName string, id int64) error
	GetByID(ctx context.Context, sessionName string, id int64) (*domain.Infringement, error)
	List(ctx context.Context, sessionName string) ([]domain.Infringement, error)
	ListByKart(ctx context.Context, sessionName string, kart int) ([]domain.Infringement, error)
}

type historyRepo interface {
	Append(ctx context.Context, e domain.HistoryEntry) error
	ListByInfringementIDs(ctx context.Context, sessionName string, ids []int64) ([]domain.HistoryEntry, error)
}

type sessionResolver interface {
	Active(ctx context.Context) (*domain.Session, error)
}

type expirySource interface {
	WarningExpiry(ctx context.Context) (time.Duration, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type notifier interface {
	Broadcast(eventType string)
}

// Service provides infringement operations.
type Service struct {
	repo     infringementRepo
	history  historyRepo
	sessions sessionResolver
	expiry   expirySource
	tx       txManager
	notify   notifier
	log      *slog.Logger

	now func() time.Time
}

// NewService creates a new infringement service.
func NewService(
	log *slog.Logger,
	repo infringementRepo,
	history historyRepo,
	sessions sessionResolver,
	expiry expirySource,
	tx txManager,
	notify notifier,
) *Service {
	return &Service{
		repo:     repo,
		history:  history,
		sessions: sessions,
		expiry:   expiry,
		tx:       tx,
		notify:   notify,
		log:      log.With("service", "infringement"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// snapshot is the accrual outcome stored on a record at write time.
type snapshot struct {
	warningCount       int
	penaltyDue         string
	penaltyDescription *string
}

// classify computes the stored snapshot for an occurrence being created or
// edited. An operator-supplied penalty always wins; the warning accrual path
// runs only for tracked types when the occurrence is (or defaults to) a
// warning. excludeID removes the record itself from the prior set on edit.
func (s *Service) classify(ctx context.Context, sessionName string, kart int, description string, operatorPenalty *string, excludeID int64, now time.Time) (snapshot, error) {
	penalty := ""
	if operatorPenalty != nil {
		penalty = strings.TrimSpace(*operatorPenalty)
	}

	accrualType := domain.AccrualType(description)
	isWarningPath := accrualType != "" &&
		(penalty == "" || strings.EqualFold(penalty, domain.PenaltyWarning))

	if !isWarningPath {
		if penalty == "" {
			return snapshot{warningCount: 1, penaltyDue: domain.PenaltyDueNo}, nil
		}
		due := domain.PenaltyDueYes
		if strings.EqualFold(penalty, domain.PenaltyNoFurtherAction) {
			due = domain.PenaltyDueNo
		}
		return snapshot{warningCount: 1, penaltyDue: due, penaltyDescription: &penalty}, nil
	}

	expiry, err := s.expiry.WarningExpiry(ctx)
	if err != nil {
		return snapshot{}, err
	}

	prior, err := s.repo.ListByKart(ctx, sessionName, kart)
	if err != nil {
		return snapshot{}, err
	}
	if excludeID != 0 {
		kept := prior[:0]
		for _, p := range prior {
			if p.ID != excludeID {
				kept = append(kept, p)
			}
		}
		prior = kept
	}

	// Position 3 and beyond is recorded as another warning: escalation to a
	// real penalty is the operator's call, surfaced through the display flag.
	position := domain.OccurrencePosition(prior, kart, accrualType, now, expiry)
	warning := domain.PenaltyWarning
	return snapshot{
		warningCount:       position,
		penaltyDue:         domain.PenaltyDueNo,
		penaltyDescription: &warning,
	}, nil
}

func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
