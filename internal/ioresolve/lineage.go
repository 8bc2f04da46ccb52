package ioresolve

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/gnames/gnlineage/pkg/cache"
	"github.com/gnames/gnlineage/pkg/taxonomy"
)

// LineageResolver maps taxon IDs to lineages using batch requests with a
// per-ID fallback.
type LineageResolver struct {
	store cache.Store[int, string]
	svc   taxonomy.LineageService
	opts  options
}

// NewLineage creates a lineage resolver.
func NewLineage(
	store cache.Store[int, string],
	svc taxonomy.LineageService,
	opts ...Option,
) *LineageResolver {
	return &LineageResolver{
		store: store,
		svc:   svc,
		opts:  newOptions(opts),
	}
}

// Resolve returns cached lineages for all ids. Missing ids are requested
// in batches. A batch that fails, or whose records do not match the
// requested ids, is requested again one id at a time.
func (r *LineageResolver) Resolve(
	ctx context.Context,
	ids []int,
) (*cache.Table[int, string], error) {
	tbl, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	missing := tbl.Missing(ids, r.opts.retryErrors)
	batches := Batches(missing, r.opts.batchSize)
	slog.Info("Resolving lineages",
		"ids", len(ids), "cached", tbl.Len(), "missing", len(missing),
		"batches", len(batches))
	if len(missing) == 0 {
		return tbl.Restrict(ids), nil
	}

	p := &pacer{opts: r.opts}
	cp := cache.NewCheckpoint(r.opts.saveInterval)
	bar := newProgress(len(missing), "Fetching lineages: ", r.opts.withProgress)
	var done int
	var dirty bool
	for _, batch := range batches {
		entries, err := r.resolveBatch(ctx, p, batch)
		for i, e := range entries {
			tbl.Set(batch[i], e)
			dirty = true
		}
		done += len(entries)
		bar.add(len(entries))
		if err != nil {
			bar.finish()
			return nil, interrupt(ctx, r.store, tbl, "lineages", done, len(missing), err)
		}

		if cp.Tick() {
			if err = r.store.Save(ctx, tbl); err != nil {
				bar.finish()
				return nil, err
			}
			dirty = false
		}
	}
	bar.finish()

	if dirty {
		if err = r.store.Save(ctx, tbl); err != nil {
			return nil, err
		}
	}

	counts := tbl.Counts()
	slog.Info("Lineages resolved",
		"resolved", counts[cache.StatusResolved],
		"not_found", counts[cache.StatusNotFound],
		"errors", counts[cache.StatusError],
	)
	return tbl.Restrict(ids), nil
}

// resolveBatch returns entries in the order of the batch. On
// cancellation it returns entries resolved so far with the error.
func (r *LineageResolver) resolveBatch(
	ctx context.Context,
	p *pacer,
	batch []int,
) ([]cache.Entry[string], error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	recs, err := r.svc.Lineages(ctx, batch)
	if err == nil {
		if res, ok := matchRecords(batch, recs); ok {
			return res, nil
		}
		slog.Warn("Batch response does not match request, fetching one by one",
			"ids", len(batch), "records", len(recs))
	} else {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		slog.Warn("Batch request failed, fetching one by one",
			"ids", len(batch), "error", err)
	}

	res := make([]cache.Entry[string], 0, len(batch))
	for _, id := range batch {
		if err = p.wait(ctx); err != nil {
			return res, err
		}
		var e cache.Entry[string]
		if e, err = r.lookup(ctx, id); err != nil {
			return res, err
		}
		res = append(res, e)
	}
	return res, nil
}

// lookup fetches the lineage of one id. The returned error is not nil
// only when the context is done.
func (r *LineageResolver) lookup(
	ctx context.Context,
	id int,
) (cache.Entry[string], error) {
	lin, err := r.svc.Lineage(ctx, id)
	switch {
	case err == nil:
		return cache.Resolved(lin), nil
	case errors.Is(err, taxonomy.ErrNotFound):
		slog.Debug("Taxon ID not found", "taxon_id", id)
		return cache.NotFound[string](), nil
	case ctx.Err() != nil:
		return cache.Entry[string]{}, ctx.Err()
	default:
		slog.Warn("Cannot fetch lineage", "taxon_id", id, "error", err)
		return cache.Failed[string](), nil
	}
}

// matchRecords pairs records with requested ids by key. Records are
// accepted only when there is one record per id and every id is
// answered, either by its own record or by a record that lists it as a
// merged alias.
func matchRecords(
	batch []int,
	recs []taxonomy.Record,
) ([]cache.Entry[string], bool) {
	if len(recs) != len(batch) {
		return nil, false
	}

	res := make([]cache.Entry[string], len(batch))
	for i, id := range batch {
		idx := slices.IndexFunc(recs, func(rec taxonomy.Record) bool {
			return rec.TaxonID == id
		})
		if idx < 0 {
			idx = slices.IndexFunc(recs, func(rec taxonomy.Record) bool {
				return rec.Matches(id)
			})
		}
		if idx < 0 {
			return nil, false
		}
		res[i] = cache.Resolved(recs[idx].Lineage)
	}
	return res, true
}
