package config

import "errors"

var (
	// ErrInvalidConfig marks a value that fails validation, including a
	// catalog entry that cannot be converted into an event.
	ErrInvalidConfig = errors.New("invalid advisor config")

	// ErrLoadConfig marks a file or environment source that could not be read.
	ErrLoadConfig = errors.New("load advisor config")
)
