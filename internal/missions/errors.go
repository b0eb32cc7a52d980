package missions

import (
	"errors"
	"net/http"
)

// Domain errors for mission operations.
var (
	ErrNotFound    = errors.New("mission not found")
	ErrDuplicate   = errors.New("mission already exists")
	ErrInvalidBody = errors.New("invalid request body")
	ErrNameEmpty   = errors.New("mission name must be non-empty")
)

// Policy errors raised by pivot and INT admission checks. Each carries
// the specific rejection reason; the caller never receives a silent
// correction.
var (
	ErrUnknownAuthority      = errors.New("unrecognized authority lane")
	ErrNoPivotRule           = errors.New("no pivot rule defined for this authority transition")
	ErrPivotBlocked          = errors.New("authority pivot is blocked by policy")
	ErrJustificationTooShort = errors.New("pivot justification must be at least 10 characters")
	ErrPivotNoOp             = errors.New("mission already operates under the target authority")
	ErrIntNotAllowed         = errors.New("intelligence-type selection exceeds authority lane")
)

// MapHTTPStatus maps mission domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidBody), errors.Is(err, ErrNameEmpty):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnknownAuthority),
		errors.Is(err, ErrNoPivotRule),
		errors.Is(err, ErrPivotBlocked),
		errors.Is(err, ErrJustificationTooShort),
		errors.Is(err, ErrPivotNoOp),
		errors.Is(err, ErrIntNotAllowed):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
