package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go-medical-scheduling/internal/usecase"
	"go-medical-scheduling/pkg/response"
)

// writeError maps a usecase error kind onto its HTTP status
func writeError(w http.ResponseWriter, err error, fallback string) {
	var ve *usecase.ValidationError
	switch {
	case errors.As(err, &ve):
		field := ve.Field
		if field == "" {
			field = "request"
		}
		response.ValidationError(w, map[string]string{field: ve.Message})
	case errors.Is(err, usecase.ErrValidation):
		response.BadRequest(w, err.Error())
	case errors.Is(err, usecase.ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, usecase.ErrSlotUnavailable):
		response.Conflict(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}

func decodeBody(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// parseTimeQuery reads an RFC3339 timestamp from the query string
func parseTimeQuery(r *http.Request, key string) (time.Time, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
