package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/restaurant-directory/internal/apperror"
)

func TestObjectID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"valid hex", "507f1f77bcf86cd799439011", true},
		{"empty", "", false},
		{"too short", "507f1f77", false},
		{"not hex", "zzzzzzzzzzzzzzzzzzzzzzzz", false},
		{"xid shape", "cv37rs3pp9olc6atsptg", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ObjectID(tt.id))
		})
	}
}

type sample struct {
	ID   string `validate:"objectid"`
	Name string `validate:"required"`
	Page int    `validate:"min=1,max=100"`
}

func TestStruct(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		err := Struct(sample{ID: "507f1f77bcf86cd799439011", Name: "x", Page: 1}, nil)
		assert.NoError(t, err)
	})

	t.Run("every failure is reported", func(t *testing.T) {
		err := Struct(sample{ID: "bad", Page: 0}, map[string]string{"required": "Empty Fields"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperror.ErrValidation))

		var list apperror.ValidationErrors
		require.True(t, errors.As(err, &list))
		assert.Equal(t, apperror.ValidationErrors{
			{Field: "ID", Reason: "must be a valid identifier"},
			{Field: "Name", Reason: "Empty Fields"},
			{Field: "Page", Reason: "must be at least 1"},
		}, list)
	})

	t.Run("upper bound", func(t *testing.T) {
		err := Struct(sample{ID: "507f1f77bcf86cd799439011", Name: "x", Page: 101}, nil)
		assert.Equal(t, apperror.ValidationErrors{
			{Field: "Page", Reason: "must be at most 100"},
		}, err)
	})
}
