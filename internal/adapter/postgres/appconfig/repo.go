// Package appconfig persists runtime-adjustable settings as key/value pairs.
package appconfig

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pitlane/racecontrol/internal/adapter/postgres"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const table = "app_config"

// Repo provides settings persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new settings repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Get returns the value stored under key, or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, key string) (string, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.Select("value").From(table).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build select: %w", err)
	}

	var value string
	if err := q.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		return "", postgres.MapError(err, "config", key)
	}
	return value, nil
}

// Set writes a value, overwriting any existing one.
func (r *Repo) Set(ctx context.Context, key, value string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.Insert(table).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "config", key)
	}
	return nil
}

// SetDefault writes a value only if the key is not present yet. Used at
// startup to seed defaults without clobbering operator overrides.
func (r *Repo) SetDefault(ctx context.Context, key, value string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.Insert(table).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "config", key)
	}
	return nil
}
