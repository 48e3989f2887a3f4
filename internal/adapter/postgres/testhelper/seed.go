package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pitlane/racecontrol/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedSession creates an active session with a unique generated name.
// Returns a filled domain.Session.
func SeedSession(t *testing.T, pool *pgxpool.Pool) domain.Session {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	session := domain.Session{
		Name:      "Test Session " + uniqueSuffix(),
		Status:    domain.SessionActive,
		StartedAt: &now,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO sessions (name, status, started_at) VALUES ($1, $2, $3) RETURNING id`,
		session.Name, session.Status, session.StartedAt,
	).Scan(&session.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedSession insert: %v", err)
	}

	return session
}

// SeedClosedSession creates a closed session with a unique generated name.
func SeedClosedSession(t *testing.T, pool *pgxpool.Pool) domain.Session {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	session := domain.Session{
		Name:      "Closed Session " + uniqueSuffix(),
		Status:    domain.SessionClosed,
		StartedAt: &now,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO sessions (name, status, started_at) VALUES ($1, $2, $3) RETURNING id`,
		session.Name, session.Status, session.StartedAt,
	).Scan(&session.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedClosedSession insert: %v", err)
	}

	return session
}

// SeedWarning creates a live white line warning for the given kart, stamped at ts.
// Returns a filled domain.Infringement.
func SeedWarning(t *testing.T, pool *pgxpool.Pool, sessionName string, kart int, ts time.Time) domain.Infringement {
	t.Helper()

	desc := domain.PenaltyWarning
	return insertInfringement(t, pool, domain.Infringement{
		SessionName:        sessionName,
		KartNumber:         kart,
		Description:        domain.AccrualWhiteLine,
		WarningCount:       1,
		PenaltyDue:         domain.PenaltyDueNo,
		PenaltyDescription: &desc,
		Timestamp:          ts.UTC().Truncate(time.Microsecond),
	})
}

// SeedPendingPenalty creates an infringement with an unserved penalty for the
// given kart, stamped at ts.
func SeedPendingPenalty(t *testing.T, pool *pgxpool.Pool, sessionName string, kart int, penalty string, ts time.Time) domain.Infringement {
	t.Helper()

	return insertInfringement(t, pool, domain.Infringement{
		SessionName:        sessionName,
		KartNumber:         kart,
		Description:        "Contact",
		PenaltyDue:         domain.PenaltyDueYes,
		PenaltyDescription: &penalty,
		Timestamp:          ts.UTC().Truncate(time.Microsecond),
	})
}

func insertInfringement(t *testing.T, pool *pgxpool.Pool, inf domain.Infringement) domain.Infringement {
	t.Helper()
	ctx := context.Background()

	err := pool.QueryRow(ctx,
		`INSERT INTO infringements
		 (session_name, kart_number, turn_number, description, observer,
		  warning_count, penalty_due, penalty_description, penalty_taken, timestamp)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		inf.SessionName, inf.KartNumber, inf.TurnNumber, inf.Description, inf.Observer,
		inf.WarningCount, inf.PenaltyDue, inf.PenaltyDescription, inf.PenaltyTaken, inf.Timestamp,
	).Scan(&inf.ID)
	if err != nil {
		t.Fatalf("testhelper: insert infringement: %v", err)
	}

	return inf
}
