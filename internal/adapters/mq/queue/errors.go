package queue

import "errors"

// Enqueue failures. ErrQueueFull is transient; callers may retry.
var (
	ErrQueueClosed = errors.New("score queue closed")
	ErrQueueFull   = errors.New("score queue full")
)
