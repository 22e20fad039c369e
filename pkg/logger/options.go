package logger

import "io"

// Option configures Init.
type Option func(*options)

type options struct {
	writer io.Writer
	json   bool
	source bool
}

// WithWriter sends log output to w instead of stdout. The interactive
// advisor uses stderr so that stdout carries only the dialogue.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.writer = w
		}
	}
}

// WithJSON switches the handler to JSON lines.
func WithJSON(enabled bool) Option {
	return func(o *options) {
		o.json = enabled
	}
}

// WithSource toggles the source=file:line attribute. It is on by default.
func WithSource(enabled bool) Option {
	return func(o *options) {
		o.source = enabled
	}
}
