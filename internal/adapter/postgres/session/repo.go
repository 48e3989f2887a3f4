// Package session implements the Session repository using PostgreSQL.
// Sessions live in a single control table; at most one row is active.
package session

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pitlane/racecontrol/internal/adapter/postgres"
	"github.com/pitlane/racecontrol/internal/domain"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const table = "sessions"

var columns = []string{"id", "name", "status", "started_at"}

// Repo provides session persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new session repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new session row. Returns domain.ErrAlreadyExists when the
// name is taken.
func (r *Repo) Create(ctx context.Context, s domain.Session) (*domain.Session, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.Insert(table).
		Columns("name", "status", "started_at").
		Values(s.Name, s.Status, s.StartedAt).
		Suffix("RETURNING id, name, status, started_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	created, err := scanRow(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "session", s.Name)
	}
	return created, nil
}

// GetByName returns a session by its unique name.
func (r *Repo) GetByName(ctx context.Context, name string) (*domain.Session, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.Select(columns...).From(table).
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	s, err := scanRow(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "session", name)
	}
	return s, nil
}

// GetActive returns the currently active session, or domain.ErrNoActiveSession.
func (r *Repo) GetActive(ctx context.Context) (*domain.Session, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.Select(columns...).From(table).
		Where(sq.Eq{"status": domain.SessionActive}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select active: %w", err)
	}

	s, err := scanRow(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoActiveSession
		}
		return nil, postgres.MapError(err, "session", "active")
	}
	return s, nil
}

// List returns all sessions, most recently started first.
func (r *Repo) List(ctx context.Context) ([]domain.Session, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.Select(columns...).From(table).
		OrderBy("started_at DESC NULLS LAST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []domain.Session{}
	for rows.Next() {
		s, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

// CloseAll marks every session closed. Called before activating another one
// so the one-active-session invariant holds.
func (r *Repo) CloseAll(ctx context.Context) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.Update(table).
		Set("status", domain.SessionClosed).
		Where(sq.Eq{"status": domain.SessionActive}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build close all: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "sessions", "close all")
	}
	return nil
}

// SetStatus updates one session's status.
func (r *Repo) SetStatus(ctx context.Context, name, status string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.Update(table).
		Set("status", status).
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set status: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "session", name)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("session %q: %w", name, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a session row.
func (r *Repo) Delete(ctx context.Context, name string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.Delete(table).
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "session", name)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("session %q: %w", name, domain.ErrNotFound)
	}
	return nil
}

func scanRow(row pgx.Row) (*domain.Session, error) {
	var s domain.Session
	if err := row.Scan(&s.ID, &s.Name, &s.Status, &s.StartedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
