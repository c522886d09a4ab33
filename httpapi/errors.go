package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"classicmatch"
)

// statusFor maps the engine error taxonomy to HTTP statuses. Storage
// failures collapse to a generic 500; the detail only reaches the log.
func statusFor(err error) int {
	switch {
	case errors.Is(err, classicmatch.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, classicmatch.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, classicmatch.ErrAccountNotFound),
		errors.Is(err, classicmatch.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, classicmatch.ErrEmailTaken),
		errors.Is(err, classicmatch.ErrCallSignTaken),
		errors.Is(err, classicmatch.ErrCodeConsumed):
		return http.StatusConflict
	case errors.Is(err, classicmatch.ErrCodeExpired):
		return http.StatusGone
	case errors.Is(err, classicmatch.ErrCodeInvalid):
		return http.StatusBadRequest
	case errors.Is(err, classicmatch.ErrLoginRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage is what the JSON body says. Internal failures never leak
// their detail to the client.
func clientMessage(err error, status int) string {
	if status == http.StatusInternalServerError {
		return "internal error"
	}
	return err.Error()
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	logEvent := s.logger.Warn()
	if status >= 500 {
		logEvent = s.logger.Error()
	}
	logEvent.Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Msg("request failed")

	s.metrics.errorsByStatus.WithLabelValues(http.StatusText(status)).Inc()

	writeJSON(w, status, errorResponse{Error: clientMessage(err, status)})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeJSON rejects bodies that do not parse or carry unknown fields.
func decodeJSON(r *http.Request, into any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(into); err != nil {
		return classicmatch.ErrInvalidInput
	}
	return nil
}
