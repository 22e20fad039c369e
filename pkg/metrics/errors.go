package metrics

import "errors"

// ErrWriteFailed is returned when the textfile dump cannot be written.
var ErrWriteFailed = errors.New("write metrics textfile")
