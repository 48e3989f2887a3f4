// Package history implements the append-only infringement audit trail using
// PostgreSQL. Rows are only ever inserted or bulk-removed with their session.
package history

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pitlane/racecontrol/internal/adapter/postgres"
	"github.com/pitlane/racecontrol/internal/domain"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const table = "infringement_history"

var columns = []string{
	"id", "session_name", "infringement_id", "action", "performed_by",
	"observer", "details", "timestamp",
}

// Repo provides history persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new history repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Append inserts an audit record. Satisfies the historyWriter interface of
// the services.
func (r *Repo) Append(ctx context.Context, e domain.HistoryEntry) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.Insert(table).
		Columns("session_name", "infringement_id", "action", "performed_by",
			"observer", "details", "timestamp").
		Values(e.SessionName, e.InfringementID, e.Action, e.PerformedBy,
			e.Observer, e.Details, e.Timestamp).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "history", e.InfringementID)
	}
	return nil
}

// ListByInfringementIDs returns audit records for a set of infringements,
// newest first.
func (r *Repo) ListByInfringementIDs(ctx context.Context, sessionName string, ids []int64) ([]domain.HistoryEntry, error) {
	if len(ids) == 0 {
		return []domain.HistoryEntry{}, nil
	}
	return r.list(ctx, sq.Eq{"session_name": sessionName, "infringement_id": ids})
}

// ListBySession returns the full audit trail of a session, newest first.
func (r *Repo) ListBySession(ctx context.Context, sessionName string) ([]domain.HistoryEntry, error) {
	return r.list(ctx, sq.Eq{"session_name": sessionName})
}

// DeleteBySession removes the audit trail of a session. Only used when the
// session itself is destroyed.
func (r *Repo) DeleteBySession(ctx context.Context, sessionName string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.Delete(table).
		Where(sq.Eq{"session_name": sessionName}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete by session: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "history", sessionName)
	}
	return nil
}

func (r *Repo) list(ctx context.Context, where sq.Eq) ([]domain.HistoryEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.Select(columns...).From(table).
		Where(where).
		OrderBy("timestamp DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	entries := []domain.HistoryEntry{}
	for rows.Next() {
		var e domain.HistoryEntry
		if err := rows.Scan(&e.ID, &e.SessionName, &e.InfringementID, &e.Action,
			&e.PerformedBy, &e.Observer, &e.Details, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}
