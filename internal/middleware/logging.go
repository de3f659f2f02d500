// Package middleware holds the HTTP middleware shared by every route.
//
// A middleware has the shape func(http.Handler) http.Handler: it gets the
// next handler in the chain and returns one that runs code around it.
// chi's router.Use stacks them in the order they are registered.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Logger returns a middleware that writes one slog line per request.
//
// chi's RequestID middleware must run first. Its id is logged and echoed in
// the X-Request-Id header so a user's report can be matched to the line.
//
// LEVELS:
//
//	5xx        → Error  (storage or template failures)
//	4xx        → Warn   (bad find queries, unknown routes)
//	all others → Info
//
// A redirect also logs its Location. That shows where a gate sent an
// anonymous visitor (/login) and where a form went after success.
func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqID := chimiddleware.GetReqID(r.Context())
			if reqID != "" {
				w.Header().Set(chimiddleware.RequestIDHeader, reqID)
			}

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			// A handler that only calls Write never sets the status.
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			attrs := []slog.Attr{
				slog.String("requestID", reqID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Duration("duration", time.Since(start)),
				slog.Int("bytes", ww.BytesWritten()),
			}
			if r.URL.RawQuery != "" {
				attrs = append(attrs, slog.String("query", r.URL.RawQuery))
			}
			if loc := ww.Header().Get("Location"); loc != "" && status >= 300 && status < 400 {
				attrs = append(attrs, slog.String("location", loc))
			}

			logger.LogAttrs(r.Context(), levelFor(status), "request completed", attrs...)
		})
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
