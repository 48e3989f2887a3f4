package infringement

import (
	"strings"

	"github.com/pitlane/racecontrol/internal/domain"
)

// CreateInput holds the parameters for logging an infringement.
type CreateInput struct {
	KartNumber         int
	TurnNumber         *string
	Description        string
	Observer           *string
	PerformedBy        string
	PenaltyDescription *string
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.KartNumber <= 0 {
		errs = append(errs, domain.FieldError{Field: "kart_number", Message: "must be a positive integer"})
	}

	desc := strings.TrimSpace(i.Description)
	if desc == "" {
		errs = append(errs, domain.FieldError{Field: "description", Message: "required"})
	}
	if len(desc) > 500 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 500 characters"})
	}

	if strings.TrimSpace(i.PerformedBy) == "" {
		errs = append(errs, domain.FieldError{Field: "performed_by", Message: "required"})
	}

	if i.Observer != nil && len(strings.TrimSpace(*i.Observer)) > 100 {
		errs = append(errs, domain.FieldError{Field: "observer", Message: "max 100 characters"})
	}
	if i.TurnNumber != nil && len(strings.TrimSpace(*i.TurnNumber)) > 50 {
		errs = append(errs, domain.FieldError{Field: "turn_number", Message: "max 50 characters"})
	}
	if i.PenaltyDescription != nil && len(strings.TrimSpace(*i.PenaltyDescription)) > 200 {
		errs = append(errs, domain.FieldError{Field: "penalty_description", Message: "max 200 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds the parameters for editing an infringement. The full
// field set is resubmitted; the accrual snapshot is recomputed for this
// record only.
type UpdateInput struct {
	ID int64
	CreateInput
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	if i.ID <= 0 {
		return domain.NewValidationError("id", "required")
	}
	return i.CreateInput.Validate()
}
