package apperror

import (
	"errors"
	"fmt"
	"testing"
)

// TABLE-DRIVEN TESTS:
// Each case checks that errors.Is() sees the right sentinel through the
// error chain, which is what the HTTP boundary relies on.
func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("restaurant", "abc123"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("id", "Invalid Restaurant ID!"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Unauthorized wraps ErrUnauthorized",
			err:       Unauthorized("Invalid Email or Password"),
			target:    ErrUnauthorized,
			wantMatch: true,
		},
		{
			name:      "ValidationErrors list wraps ErrValidation",
			err:       ValidationErrors{{Field: "page", Reason: "must be an integer"}},
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "wrapped ValidationErrors still match",
			err:       fmt.Errorf("finding restaurants: %w", ValidationErrors{{Field: "perPage", Reason: "must be at least 1"}}),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("restaurant", "abc123"),
			target:    ErrValidation,
			wantMatch: false,
		},
		{
			name:      "Unauthorized does NOT match ErrNotFound",
			err:       Unauthorized("nope"),
			target:    ErrNotFound,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{
			name:        "NotFound message includes resource and id",
			err:         NotFound("restaurant", "abc123"),
			wantMessage: "restaurant not found with id abc123",
		},
		{
			name:        "ValidationFailed uses custom message",
			err:         ValidationFailed("email", "User Already Exists"),
			wantMessage: "User Already Exists",
		},
		{
			name:        "Conflict message includes resource and id",
			err:         Conflict("user", "a@b.com"),
			wantMessage: "user conflict with id a@b.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	err := NotFound("restaurant", "abc123")
	if unwrapped := err.Unwrap(); unwrapped != ErrNotFound {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, ErrNotFound)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	err := ValidationErrors{
		{Field: "page", Reason: "must be an integer"},
		{Field: "perPage", Reason: "must be at least 1"},
	}
	want := "page: must be an integer; perPage: must be at least 1"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestMessages(t *testing.T) {
	t.Run("list keeps every reason in order", func(t *testing.T) {
		err := fmt.Errorf("register: %w", ValidationErrors{
			{Field: "form", Reason: "Empty Fields"},
			{Field: "email", Reason: "User Already Exists"},
		})
		got := Messages(err)
		if len(got) != 2 || got[0] != "Empty Fields" || got[1] != "User Already Exists" {
			t.Errorf("Messages() = %v", got)
		}
	})

	t.Run("single AppError", func(t *testing.T) {
		got := Messages(Unauthorized("Invalid Email or Password"))
		if len(got) != 1 || got[0] != "Invalid Email or Password" {
			t.Errorf("Messages() = %v", got)
		}
	})

	t.Run("plain error has no messages", func(t *testing.T) {
		if got := Messages(errors.New("disk on fire")); got != nil {
			t.Errorf("Messages() = %v, want nil", got)
		}
	})
}
