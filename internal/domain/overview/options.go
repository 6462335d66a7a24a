package overview

import "time"

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithClock replaces the wall clock used for personal best freshness.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}
