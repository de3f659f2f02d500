package handler

// RESPONSE HELPERS:
// Most routes answer with a rendered page or a redirect. The paginated
// query endpoint is the exception: its failures are JSON, so a script
// calling it can read the problems without scraping HTML.
//
// JSON ERROR FORMAT:
//   400 → {"errors": [{"field": "page", "reason": "must be an integer"}, ...]}
//   500 → {"message": "Internal Server Error"}
//
// Every rejected field is listed, not just the first.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/restaurant-directory/internal/apperror"
)

// ValidationResponse is the 400 body of the query endpoint.
type ValidationResponse struct {
	Errors []apperror.FieldError `json:"errors"`
}

// MessageResponse is the generic error body. It never carries internal
// details; the real error goes to the log.
type MessageResponse struct {
	Message string `json:"message"`
}

const internalErrorMessage = "Internal Server Error"

// writeJSON sends a JSON response with the given status code.
//
// HEADER ORDER MATTERS:
// Headers and status must be set BEFORE the body is written. Once Encode
// calls w.Write, later header changes are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeJSONError maps a domain error to a JSON response.
//
// errors.As/errors.Is walk the whole wrap chain, so a ValidationErrors
// wrapped by the service with fmt.Errorf("...: %w") is still found here.
func writeJSONError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var list apperror.ValidationErrors
	if errors.As(err, &list) {
		writeJSON(w, http.StatusBadRequest, ValidationResponse{Errors: list})
		return
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) && errors.Is(err, apperror.ErrValidation) {
		writeJSON(w, http.StatusBadRequest, ValidationResponse{Errors: []apperror.FieldError{
			{Field: appErr.Field, Reason: appErr.Message},
		}})
		return
	}

	// Unknown error. NEVER expose internal error details to the client:
	// the raw message might contain queries, file paths, or hostnames.
	logger.Error("request failed", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, MessageResponse{Message: internalErrorMessage})
}

// serverError logs err and answers with a plain 500.
func serverError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	logger.Error("request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	http.Error(w, internalErrorMessage, http.StatusInternalServerError)
}
