package repository

import "errors"

// Sentinel kinds for board errors.
var (
	ErrNotFound     = errors.New("event not on the board")
	ErrInvalidLimit = errors.New("invalid board limit")
)
