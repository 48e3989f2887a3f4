// Package settings manages runtime-adjustable configuration, currently the
// warning expiry window. Values live in the app_config table so they survive
// restarts and apply to every connected operator at once.
package settings

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/pitlane/racecontrol/internal/domain"
)

// KeyWarningExpiryMinutes is the app_config key for the warning expiry window.
const KeyWarningExpiryMinutes = "warning_expiry_minutes"

type configRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	SetDefault(ctx context.Context, key, value string) error
}

// Service provides settings operations.
type Service struct {
	repo          configRepo
	defaultExpiry int
	log           *slog.Logger
}

// NewService creates a new settings service. defaultExpiryMinutes is used to
// seed the stored value and as a fallback when the row is missing.
func NewService(log *slog.Logger, repo configRepo, defaultExpiryMinutes int) *Service {
	return &Service{
		repo:          repo,
		defaultExpiry: defaultExpiryMinutes,
		log:           log.With("service", "settings"),
	}
}

// Seed writes the default expiry into app_config unless an operator has
// already set one. Called once at startup.
func (s *Service) Seed(ctx context.Context) error {
	err := s.repo.SetDefault(ctx, KeyWarningExpiryMinutes, strconv.Itoa(s.defaultExpiry))
	if err != nil {
		return fmt.Errorf("seed %s: %w", KeyWarningExpiryMinutes, err)
	}
	return nil
}

// WarningExpiryMinutes returns the configured expiry window in minutes.
// Falls back to the config default when the stored value is missing or
// unparseable.
func (s *Service) WarningExpiryMinutes(ctx context.Context) (int, error) {
	raw, err := s.repo.Get(ctx, KeyWarningExpiryMinutes)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return s.defaultExpiry, nil
	}

	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		s.log.WarnContext(ctx, "stored expiry is not a positive integer, using default",
			slog.String("value", raw),
			slog.Int("default", s.defaultExpiry),
		)
		return s.defaultExpiry, nil
	}
	return minutes, nil
}

// WarningExpiry returns the expiry window as a duration.
func (s *Service) WarningExpiry(ctx context.Context) (time.Duration, error) {
	minutes, err := s.WarningExpiryMinutes(ctx)
	if err != nil {
		return 0, err
	}
	return time.Duration(minutes) * time.Minute, nil
}

// SetWarningExpiryMinutes stores a new expiry window. Takes effect on the
// next accrual computation; stored warning snapshots are never rewritten.
func (s *Service) SetWarningExpiryMinutes(ctx context.Context, minutes int) error {
	if minutes <= 0 {
		return domain.NewValidationError("warning_expiry_minutes", "must be a positive integer")
	}
	if minutes > 24*60 {
		return domain.NewValidationError("warning_expiry_minutes", "max 1440 minutes")
	}

	if err := s.repo.Set(ctx, KeyWarningExpiryMinutes, strconv.Itoa(minutes)); err != nil {
		return fmt.Errorf("set %s: %w", KeyWarningExpiryMinutes, err)
	}

	s.log.InfoContext(ctx, "warning expiry updated", slog.Int("minutes", minutes))
	return nil
}
