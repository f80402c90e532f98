package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"shop-catalog/internal/middleware"
	"shop-catalog/internal/model"

	"github.com/rs/zerolog"
)

var readMethods = []string{http.MethodGet, http.MethodHead}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code.
func writeError(w http.ResponseWriter, r *http.Request, status int, resp model.ErrorResponse, logger zerolog.Logger) {
	resp.CorrelationID = middleware.RequestIDFromContext(r.Context())

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("error", resp.Error).
		Int("status", status).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("request_id", resp.CorrelationID).
		Msg("handler error")

	writeJSON(w, status, resp)
}

// writeDomainError maps err onto an HTTP status and error body. Errors that
// are not domain errors are reported as 500 without detail.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		writeError(w, r, http.StatusBadRequest, model.ErrorResponse{
			Error:   model.ErrCodeValidation,
			Message: "Invalid input",
			Fields:  verr.Fields,
		}, logger)
		return
	}

	var derr *model.DomainError
	if errors.As(err, &derr) {
		status := statusForCode(derr.Code)
		if status == http.StatusUnauthorized {
			w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
		}
		writeError(w, r, status, model.ErrorResponse{Error: derr.Code, Message: derr.Message}, logger)
		return
	}

	logger.Error().Err(err).
		Str("path", r.URL.Path).
		Str("request_id", middleware.RequestIDFromContext(r.Context())).
		Msg("unhandled error")
	writeError(w, r, http.StatusInternalServerError, model.ErrorResponse{
		Error:   model.ErrCodeInternalError,
		Message: "Internal server error",
	}, logger)
}

func statusForCode(code string) int {
	switch code {
	case model.ErrCodeCategoryNotFound, model.ErrCodeProductNotFound, model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodeInvalidJSON, model.ErrCodeValidation:
		return http.StatusBadRequest
	case model.ErrCodeUnauthenticated:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// allowMethod reports whether r uses one of allowed, writing a 405 with an
// Allow header otherwise.
func allowMethod(w http.ResponseWriter, r *http.Request, logger zerolog.Logger, allowed ...string) bool {
	for _, m := range allowed {
		if r.Method == m {
			return true
		}
	}

	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeDomainError(w, r, model.ErrMethodNotAllowed, logger)
	return false
}

// pathID parses the {id} path segment. Non-numeric ids match nothing.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// requestURL reconstructs the absolute URL the client used.
func requestURL(r *http.Request) *url.URL {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}

	return &url.URL{
		Scheme:   scheme,
		Host:     r.Host,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
	}
}

// NotFound answers requests that match no route.
func NotFound(logger zerolog.Logger) http.HandlerFunc {
	logger = logger.With().Str("handler", "not_found").Logger()
	return func(w http.ResponseWriter, r *http.Request) {
		writeDomainError(w, r, model.ErrNotFound, logger)
	}
}

// Health reports process liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
