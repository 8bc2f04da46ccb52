// Package ioresolve fills resolution caches from external taxonomic
// services. Resolvers are single-threaded: requests are sent one at a
// time with a fixed pause between them, and caches are saved at regular
// checkpoints so an interrupted run loses at most one request's worth of
// results.
package ioresolve

import (
	"context"
	"log/slog"

	"github.com/gnames/gnlineage/pkg/cache"
)

// pacer inserts the configured delay between consecutive requests.
type pacer struct {
	opts  options
	calls int
}

// wait is called before every request. The first request goes out
// without a pause.
func (p *pacer) wait(ctx context.Context) error {
	if p.calls > 0 {
		if err := p.opts.sleep(ctx, p.opts.delay); err != nil {
			return err
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}
	p.calls++
	return nil
}

// interrupt saves the cache after cancellation and reports how far the
// resolution got.
func interrupt[K comparable, V any](
	ctx context.Context,
	store cache.Store[K, V],
	tbl *cache.Table[K, V],
	kind string,
	done, total int,
	cause error,
) error {
	slog.Warn("resolution interrupted, saving cache",
		"kind", kind, "done", done, "total", total)
	if err := store.Save(context.WithoutCancel(ctx), tbl); err != nil {
		return err
	}
	return CancelledError(kind, done, total, cause)
}

// Batches splits items into consecutive chunks of at most size items.
// The number of chunks is ceil(len(items)/size), every item appears in
// exactly one chunk, and the order of items is kept.
func Batches[T any](items []T, size int) [][]T {
	size = max(size, 1)
	res := make([][]T, 0, (len(items)+size-1)/size)
	for i := 0; i < len(items); i += size {
		res = append(res, items[i:min(i+size, len(items))])
	}
	return res
}
