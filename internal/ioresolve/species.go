package ioresolve

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gnames/gnlineage/pkg/cache"
	"github.com/gnames/gnlineage/pkg/taxonomy"
)

// SpeciesResolver maps species names to taxon IDs.
type SpeciesResolver struct {
	store cache.Store[string, int]
	svc   taxonomy.NameService
	opts  options
}

// NewSpecies creates a species resolver that keeps results in the store
// and asks the service about names it has not seen.
func NewSpecies(
	store cache.Store[string, int],
	svc taxonomy.NameService,
	opts ...Option,
) *SpeciesResolver {
	return &SpeciesResolver{
		store: store,
		svc:   svc,
		opts:  newOptions(opts),
	}
}

// Resolve returns cached entries for all names, querying the service
// once for each name missing from the cache. Lookup failures are cached
// as entries. Only cache store failures and cancellation are returned
// as errors.
func (r *SpeciesResolver) Resolve(
	ctx context.Context,
	names []string,
) (*cache.Table[string, int], error) {
	tbl, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	missing := tbl.Missing(names, r.opts.retryErrors)
	slog.Info("Resolving species names",
		"names", len(names), "cached", tbl.Len(), "missing", len(missing))
	if len(missing) == 0 {
		return tbl.Restrict(names), nil
	}

	p := &pacer{opts: r.opts}
	cp := cache.NewCheckpoint(r.opts.saveInterval)
	bar := newProgress(len(missing), "Resolving species: ", r.opts.withProgress)
	var dirty bool
	for i, name := range missing {
		if err = p.wait(ctx); err != nil {
			bar.finish()
			return nil, interrupt(ctx, r.store, tbl, "species", i, len(missing), err)
		}

		var e cache.Entry[int]
		e, err = r.lookup(ctx, name)
		if err != nil {
			bar.finish()
			return nil, interrupt(ctx, r.store, tbl, "species", i, len(missing), err)
		}
		tbl.Set(name, e)
		dirty = true
		bar.add(1)

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
	slog.Info("Species names resolved",
		"resolved", counts[cache.StatusResolved],
		"not_found", counts[cache.StatusNotFound],
		"errors", counts[cache.StatusError],
	)
	return tbl.Restrict(names), nil
}

// lookup asks the service about one name. The returned error is not nil
// only when the context is done.
func (r *SpeciesResolver) lookup(
	ctx context.Context,
	name string,
) (cache.Entry[int], error) {
	query := name
	if r.opts.canonizer != nil {
		if can, ok := r.opts.canonizer.Canonical(name); ok {
			query = can
		}
	}

	id, err := r.svc.TaxonID(ctx, query)
	switch {
	case err == nil && id > 0:
		return cache.Resolved(id), nil
	case err == nil, errors.Is(err, taxonomy.ErrNotFound):
		slog.Debug("Species name not found", "name", name, "query", query)
		return cache.NotFound[int](), nil
	case ctx.Err() != nil:
		return cache.Entry[int]{}, ctx.Err()
	default:
		slog.Warn("Cannot resolve species name",
			"name", name, "query", query, "error", err)
		return cache.Failed[int](), nil
	}
}
