package domain

import (
	"strings"
	"testing"
)

func TestValidateSessionName(t *testing.T) {
	t.Parallel()

	valid := []string{
		"Race Day 1",
		"heat_2",
		"Final-B",
		"a",
		"Club Night " + strings.Repeat("x", 40),
	}
	for _, name := range valid {
		if err := ValidateSessionName(name); err != nil {
			t.Errorf("ValidateSessionName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []struct {
		name   string
		reason string
	}{
		{"", "empty"},
		{strings.Repeat("x", 60), "too long"},
		{"2024 Finals", "starts with digit"},
		{" race", "leading space"},
		{"race ", "trailing space"},
		{"race  day", "consecutive spaces"},
		{"race/day", "illegal character"},
		{"race.day", "illegal character"},
	}
	for _, tt := range invalid {
		if err := ValidateSessionName(tt.name); err == nil {
			t.Errorf("ValidateSessionName(%q) = nil, want error (%s)", tt.name, tt.reason)
		}
	}
}
