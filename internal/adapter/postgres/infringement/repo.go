// Package infringement implements the Infringement repository using
// PostgreSQL. All operations are scoped by session name; callers resolve the
// active session before touching this package.
package infringement

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pitlane/racecontrol/internal/adapter/postgres"
	"github.com/pitlane/racecontrol/internal/domain"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const table = "infringements"

var columns = []string{
	"id", "session_name", "kart_number", "turn_number", "description",
	"observer", "warning_count", "penalty_due", "penalty_description",
	"penalty_taken", "timestamp",
}

// Repo provides infringement persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new infringement repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new infringement and returns the persisted record with its
// assigned ID.
func (r *Repo) Create(ctx context.Context, inf domain.Infringement) (*domain.Infringement, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.Insert(table).
		Columns("session_name", "kart_number", "turn_number", "description",
			"observer", "warning_count", "penalty_due", "penalty_description",
			"penalty_taken", "timestamp").
		Values(inf.SessionName, inf.KartNumber, inf.TurnNumber, inf.Description,
			inf.Observer, inf.WarningCount, inf.PenaltyDue, inf.PenaltyDescription,
			inf.PenaltyTaken, inf.Timestamp).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	created, err := scanOne(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "infringement", inf.KartNumber)
	}
	return created, nil
}

// Update rewrites the mutable fields of an infringement. The stored snapshot
// fields (warning_count, penalty_due, penalty_description) are set to the
// values recomputed by the caller for this record only.
func (r *Repo) Update(ctx context.Context, inf domain.Infringement) (*domain.Infringement, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.Update(table).
		Set("kart_number", inf.KartNumber).
		Set("turn_number", inf.TurnNumber).
		Set("description", inf.Description).
		Set("observer", inf.Observer).
		Set("warning_count", inf.WarningCount).
		Set("penalty_due", inf.PenaltyDue).
		Set("penalty_description", inf.PenaltyDescription).
		Set("timestamp", inf.Timestamp).
		Where(sq.Eq{"id": inf.ID, "session_name": inf.SessionName}).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	updated, err := scanOne(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "infringement", inf.ID)
	}
	return updated, nil
}

// MarkPenaltyTaken flips penalty_due to No and stamps penalty_taken, but only
// if a penalty is still pending. Returns domain.ErrConflict when the
// infringement exists with nothing pending, domain.ErrNotFound when it does
// not exist.
func (r *Repo) MarkPenaltyTaken(ctx context.Context, sessionName string, id int64, at time.Time) (*domain.Infringement, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.Update(table).
		Set("penalty_due", domain.PenaltyDueNo).
		Set("penalty_taken", at).
		Where(sq.Eq{"id": id, "session_name": sessionName, "penalty_due": domain.PenaltyDueYes}).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build mark penalty taken: %w", err)
	}

	taken, err := scanOne(q.QueryRow(ctx, query, args...))
	if err == nil {
		return taken, nil
	}

	// Distinguish "already applied / nothing pending" from "missing".
	if _, getErr := r.GetByID(ctx, sessionName, id); getErr == nil {
		return nil, fmt.Errorf("infringement %d: no pending penalty: %w", id, domain.ErrConflict)
	}
	return nil, postgres.MapError(err, "infringement", id)
}

// Delete removes an infringement. History rows are intentionally left behind.
func (r *Repo) Delete(ctx context.Context, sessionName string, id int64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.Delete(table).
		Where(sq.Eq{"id": id, "session_name": sessionName}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "infringement", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("infringement %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteBySession removes every infringement of a session. Used when a
// session is destroyed.
func (r *Repo) DeleteBySession(ctx context.Context, sessionName string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.Delete(table).
		Where(sq.Eq{"session_name": sessionName}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete by session: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "infringements", sessionName)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a single infringement within a session.
func (r *Repo) GetByID(ctx context.Context, sessionName string, id int64) (*domain.Infringement, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.Select(columns...).From(table).
		Where(sq.Eq{"id": id, "session_name": sessionName}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	inf, err := scanOne(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "infringement", id)
	}
	return inf, nil
}

// List returns all infringements of a session, newest first.
func (r *Repo) List(ctx context.Context, sessionName string) ([]domain.Infringement, error) {
	return r.list(ctx, sq.Eq{"session_name": sessionName}, "timestamp DESC")
}

// ListByKart returns all infringements of one kart in a session, oldest
// first. The accrual computation needs ascending order.
func (r *Repo) ListByKart(ctx context.Context, sessionName string, kart int) ([]domain.Infringement, error) {
	return r.list(ctx, sq.Eq{"session_name": sessionName, "kart_number": kart}, "timestamp ASC")
}

// ListPending returns infringements with an unresolved penalty, oldest first
// so the queue reads in the order consequences became due.
func (r *Repo) ListPending(ctx context.Context, sessionName string) ([]domain.Infringement, error) {
	return r.list(ctx,
		sq.Eq{"session_name": sessionName, "penalty_due": domain.PenaltyDueYes},
		"timestamp ASC")
}

func (r *Repo) list(ctx context.Context, where sq.Eq, orderBy string) ([]domain.Infringement, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.Select(columns...).From(table).
		Where(where).
		OrderBy(orderBy).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list infringements: %w", err)
	}
	defer rows.Close()

	infs := []domain.Infringement{}
	for rows.Next() {
		inf, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan infringement: %w", err)
		}
		infs = append(infs, *inf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate infringements: %w", err)
	}
	return infs, nil
}

// ---------------------------------------------------------------------------
// Scanning helpers
// ---------------------------------------------------------------------------

func columnList() string {
	s := columns[0]
	for _, c := range columns[1:] {
		s += ", " + c
	}
	return s
}

type scannable interface {
	Scan(dest ...any) error
}

func scanOne(row pgx.Row) (*domain.Infringement, error) {
	return scanRow(row)
}

func scanRow(s scannable) (*domain.Infringement, error) {
	var inf domain.Infringement
	err := s.Scan(
		&inf.ID,
		&inf.SessionName,
		&inf.KartNumber,
		&inf.TurnNumber,
		&inf.Description,
		&inf.Observer,
		&inf.WarningCount,
		&inf.PenaltyDue,
		&inf.PenaltyDescription,
		&inf.PenaltyTaken,
		&inf.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	return &inf, nil
}
