package service

import "errors"

// Sentinel kinds for service errors.
var (
	// ErrNotFound is wrapped as "event with ID <id> not found".
	ErrNotFound = errors.New("not found")
)
