package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"aigateway/internal/apierr"
	"aigateway/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

const genericDetail = "An unexpected error occurred. Please try again later."

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, title, detail, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{
		Error:     title,
		Detail:    detail,
		ErrorCode: code,
		Timestamp: time.Now().UTC(),
	})
}

// writeError maps err onto the error envelope and returns the status written.
// Unclassified errors are reported generically.
func writeError(w http.ResponseWriter, err error) int {
	if e, ok := apierr.As(err); ok {
		status := e.StatusCode()
		if e.Kind == apierr.KindRateLimit {
			IncrementBackpressure("generation_queue")
		}
		writeJSONError(w, status, errorTitle(e.Kind), e.Detail(), e.Code())
		return status
	}
	var he HTTPError
	if errors.As(err, &he) {
		writeJSONError(w, he.StatusCode(), http.StatusText(he.StatusCode()), he.Error(), "")
		return he.StatusCode()
	}
	writeJSONError(w, http.StatusInternalServerError, "Internal server error", genericDetail, "internal_error")
	return http.StatusInternalServerError
}

func errorTitle(k apierr.Kind) string {
	switch k {
	case apierr.KindValidation:
		return "Validation error"
	case apierr.KindTimeout:
		return "Request timeout"
	case apierr.KindProvider:
		return "Provider error"
	case apierr.KindRateLimit:
		return "Too many requests"
	case apierr.KindUnavailable:
		return "Service unavailable"
	default:
		return "Internal server error"
	}
}
