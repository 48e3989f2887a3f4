package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// Session status values. Exactly one session may be active at a time.
const (
	SessionActive = "active"
	SessionClosed = "closed"
)

// Session is a named, time-bounded container isolating one event's
// infringements from another's.
type Session struct {
	ID        int64
	Name      string
	Status    string
	StartedAt *time.Time
}

// IsActive reports whether the session is the current data scope.
func (s *Session) IsActive() bool { return s.Status == SessionActive }

var sessionNameChars = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)

// ValidateSessionName enforces the session naming conventions:
// 1-59 characters, letters/digits/space/underscore/hyphen, starting with a
// letter, no leading, trailing, or consecutive spaces.
func ValidateSessionName(name string) error {
	if name == "" {
		return NewValidationError("name", "required")
	}
	if len(name) > 59 {
		return NewValidationError("name", "max 59 characters")
	}
	if !sessionNameChars.MatchString(name) {
		return NewValidationError("name", "only letters, digits, spaces, underscores, and hyphens allowed")
	}
	if !unicode.IsLetter(rune(name[0])) {
		return NewValidationError("name", "must start with a letter")
	}
	if strings.HasPrefix(name, " ") || strings.HasSuffix(name, " ") {
		return NewValidationError("name", "cannot start or end with a space")
	}
	if strings.Contains(name, "  ") {
		return NewValidationError("name", "cannot contain consecutive spaces")
	}
	return nil
}
