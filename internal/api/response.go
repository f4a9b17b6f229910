package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	kanerr "github.com/amterp/boardkit/internal/errors"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Warn().Err(err).Msg("failed to encode response")
		}
	}
}

// Error writes an error response, mapping domain errors to HTTP status codes.
func Error(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	resp := ErrorResponse{Error: err.Error()}

	var notFound *kanerr.NotFoundError
	var validation *kanerr.ValidationError
	var corrupt *kanerr.CorruptDataError
	var storeErr *kanerr.StoreError

	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
		resp.Code = "not_found"
	case errors.As(err, &validation):
		status = http.StatusBadRequest
		resp.Code = "invalid_input"
	case errors.As(err, &corrupt):
		status = http.StatusInternalServerError
		resp.Code = "corrupt_data"
	case errors.As(err, &storeErr):
		status = http.StatusServiceUnavailable
		resp.Code = "store_unavailable"
	}

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("request failed")
	}
	JSON(w, status, resp)
}

// BadRequest writes a 400 error with the given message.
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, ErrorResponse{Error: message, Code: "bad_request"})
}
