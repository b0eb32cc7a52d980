package documents

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrDuplicate    = errors.New("document already exists")
	ErrInvalidBody  = errors.New("invalid request body")
	ErrContentEmpty = errors.New("document content cannot be empty")
)

// MapHTTPStatus translates domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidBody), errors.Is(err, ErrContentEmpty):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
