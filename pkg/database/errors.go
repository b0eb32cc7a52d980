package database

import "errors"

// ErrNotReady is returned when a connection is requested before the
// database has been opened.
var ErrNotReady = errors.New("database not ready")
