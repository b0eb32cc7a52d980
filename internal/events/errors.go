package events

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound    = errors.New("event not found")
	ErrDuplicate   = errors.New("event already exists")
	ErrInvalidBody = errors.New("invalid request body")
)

// MapHTTPStatus translates domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidBody):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
