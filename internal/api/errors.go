package api

import "errors"

var (
	ErrInvalidBody      = errors.New("invalid request body")
	ErrUnknownReference = errors.New("unknown reference entry")
	ErrUnknownModel     = errors.New("model not in configured catalog")
)
