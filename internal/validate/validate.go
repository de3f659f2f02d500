// Package validate holds the single go-playground validator instance shared
// by every input schema in the application.
//
// validator.New() builds a cache of struct metadata on first use, so one
// package-level instance is reused rather than creating one per request.
// The instance is safe for concurrent use.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sakif/restaurant-directory/internal/apperror"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator with the application's custom tags
// registered:
//
//	objectid: the string is a 24-hex-char MongoDB ObjectID
//
// Field names in errors come from the `form` struct tag when present, so a
// rejected Query.PerPage is reported as "perPage", the name the client sent.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		// RegisterValidation only fails for an empty tag or a nil func.
		_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
			return ObjectID(fl.Field().String())
		})
		instance = v
	})
	return instance
}

// ObjectID reports whether id is a well-formed store identifier.
func ObjectID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}

// Struct validates s and converts any failures into apperror.ValidationErrors.
// reasons maps a validator tag ("required", "min", ...) to the message shown
// to the user; tags without an entry fall back to a generic description.
// Returns nil when s is valid.
func Struct(s any, reasons map[string]string) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// InvalidValidationError: programmer error (nil or non-struct input)
		return fmt.Errorf("validate: %w", err)
	}

	out := make(apperror.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, apperror.FieldError{
			Field:  fe.Field(),
			Reason: reason(fe, reasons),
		})
	}
	return out
}

func reason(fe validator.FieldError, reasons map[string]string) string {
	if msg, ok := reasons[fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "objectid":
		return "must be a valid identifier"
	default:
		return "failed " + fe.Tag() + " check"
	}
}
