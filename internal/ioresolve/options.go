package ioresolve

import (
	"time"

	"github.com/gnames/gnlineage/pkg/canonical"
)

// Option configures resolvers.
type Option func(*options)

type options struct {
	delay        time.Duration
	saveInterval int
	batchSize    int
	retryErrors  bool
	withProgress bool
	sleeper      func(time.Duration)
	canonizer    canonical.Canonizer
}

func newOptions(opts []Option) options {
	res := options{saveInterval: 1, batchSize: 100}
	for _, opt := range opts {
		opt(&res)
	}
	return res
}

// WithDelay sets a pause between consecutive service requests.
func WithDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.delay = d
		}
	}
}

// WithSaveInterval sets how many resolutions (species) or batches
// (lineages) happen between cache checkpoints.
func WithSaveInterval(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.saveInterval = n
		}
	}
}

// WithBatchSize sets the maximum number of taxon IDs in one lineage
// request.
func WithBatchSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.batchSize = n
		}
	}
}

// WithRetryErrors makes resolvers query again keys that failed with
// transient errors in earlier runs.
func WithRetryErrors(b bool) Option {
	return func(o *options) {
		o.retryErrors = b
	}
}

// WithProgress shows a progress bar while resolving.
func WithProgress(b bool) Option {
	return func(o *options) {
		o.withProgress = b
	}
}

// WithSleeper overrides how delays are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(o *options) {
		o.sleeper = sleeper
	}
}

// WithCanonizer makes the species resolver send canonical forms of names
// to the name service. Cache keys stay unchanged.
func WithCanonizer(c canonical.Canonizer) Option {
	return func(o *options) {
		o.canonizer = c
	}
}
