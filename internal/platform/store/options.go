package store

import "chatstats/internal/platform/logger"

// Option adjusts a Store before its backends open
type Option func(*Store) error

// WithLogger hands log to the backends; the sql tracer derives from it
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}
