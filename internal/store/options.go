package store

import "time"

type options struct {
	now func() time.Time
}

type Option func(*options)

// WithClock replaces time.Now for the client-side timestamps a store writes.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
