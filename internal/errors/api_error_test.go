package errors_test

import (
	"fmt"
	"testing"

	apperrors "mindcare/internal/errors"
)

func TestClassification(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		unauthorized bool
		validation   bool
		transient    bool
	}{
		{"unauthorized", apperrors.Unauthorized(""), true, false, false},
		{"wrapped unauthorized", fmt.Errorf("profile: %w", apperrors.Unauthorized("expired")), true, false, false},
		{"validation", apperrors.Validation("missing_date", "pick a date"), false, true, false},
		{"network", fmt.Errorf("get counsellors: %w", apperrors.ErrNetwork), false, false, true},
		{"server", apperrors.Internal(""), false, false, true},
		{"rate limited", apperrors.TooManyRequests(""), false, false, true},
		{"not found", apperrors.NotFound("missing", "gone"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apperrors.IsUnauthorized(tt.err); got != tt.unauthorized {
				t.Errorf("IsUnauthorized = %v, want %v", got, tt.unauthorized)
			}
			if got := apperrors.IsValidation(tt.err); got != tt.validation {
				t.Errorf("IsValidation = %v, want %v", got, tt.validation)
			}
			if got := apperrors.IsTransient(tt.err); got != tt.transient {
				t.Errorf("IsTransient = %v, want %v", got, tt.transient)
			}
		})
	}
}
