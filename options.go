package serialqueue

import "log/slog"

// Option is a functional option for configuring a queue
type Option func(*options)

type options struct {
	name   string
	logger *slog.Logger
}

// WithName sets the queue's diagnostic label, used in panic messages and log
// records. Defaults to a generated name with a random suffix.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger sets the logger for the queue
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
