// Package ioannotate implements gnlineage.Pipeline. It wires cache
// stores, taxonomic services and resolvers according to configuration.
// This is an impure I/O package.
package ioannotate

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/internal/iocache"
	"github.com/gnames/gnlineage/internal/ioentrez"
	"github.com/gnames/gnlineage/internal/ioresolve"
	"github.com/gnames/gnlineage/internal/iouniprot"
	gnlineage "github.com/gnames/gnlineage/pkg"
	"github.com/gnames/gnlineage/pkg/cache"
	"github.com/gnames/gnlineage/pkg/canonical"
	"github.com/gnames/gnlineage/pkg/config"
	"github.com/gnames/gnlineage/pkg/taxonomy"
)

type pipeline struct {
	cfg          *config.Config
	names        taxonomy.NameService
	lineages     taxonomy.LineageService
	speciesStore cache.Store[string, int]
	lineageStore cache.Store[int, string]
	sleeper      func(time.Duration)
}

// Option replaces default collaborators of the pipeline.
type Option func(*pipeline)

// OptNameService sets the service that finds taxon IDs of names.
func OptNameService(s taxonomy.NameService) Option {
	return func(p *pipeline) {
		p.names = s
	}
}

// OptLineageService sets the service that finds lineages.
func OptLineageService(s taxonomy.LineageService) Option {
	return func(p *pipeline) {
		p.lineages = s
	}
}

// OptSpeciesStore sets the species cache store.
func OptSpeciesStore(s cache.Store[string, int]) Option {
	return func(p *pipeline) {
		p.speciesStore = s
	}
}

// OptLineageStore sets the lineage cache store.
func OptLineageStore(s cache.Store[int, string]) Option {
	return func(p *pipeline) {
		p.lineageStore = s
	}
}

// OptSleeper overrides how delays between requests are performed.
func OptSleeper(f func(time.Duration)) Option {
	return func(p *pipeline) {
		p.sleeper = f
	}
}

// New creates a Pipeline. Services default to UniProt and NCBI
// E-utilities clients, stores are opened on first use from the cache
// backend in config.
func New(cfg *config.Config, opts ...Option) gnlineage.Pipeline {
	res := &pipeline{cfg: cfg}
	for _, opt := range opts {
		opt(res)
	}

	timeout := time.Duration(cfg.Services.TimeoutSec) * time.Second
	if res.names == nil {
		res.names = iouniprot.New(iouniprot.Config{
			BaseURL: cfg.Services.UniProtURL,
			Timeout: timeout,
		})
	}
	if res.lineages == nil {
		res.lineages = ioentrez.New(ioentrez.Config{
			BaseURL: cfg.Services.EntrezURL,
			Email:   cfg.Services.Email,
			Tool:    cfg.Services.Tool,
			APIKey:  cfg.Services.APIKey,
			Timeout: timeout,
		})
	}
	return res
}

// ResolveSpecies maps species names to taxon IDs using the species
// cache.
func (p *pipeline) ResolveSpecies(
	ctx context.Context,
	names []string,
) (*cache.Table[string, int], error) {
	store, err := p.species(ctx)
	if err != nil {
		return nil, err
	}

	opts := []ioresolve.Option{
		ioresolve.WithDelay(ms(p.cfg.Species.DelayMs)),
		ioresolve.WithSaveInterval(p.cfg.Species.SaveInterval),
		ioresolve.WithRetryErrors(p.cfg.Cache.RetryErrors),
		ioresolve.WithProgress(p.cfg.WithProgress),
		ioresolve.WithSleeper(p.sleeper),
	}
	if p.cfg.Species.Canonical {
		opts = append(opts, ioresolve.WithCanonizer(canonical.New()))
	}

	r := ioresolve.NewSpecies(store, p.names, opts...)
	return r.Resolve(ctx, names)
}

// ResolveLineages maps taxon IDs to lineages using the lineage cache.
func (p *pipeline) ResolveLineages(
	ctx context.Context,
	ids []int,
) (*cache.Table[int, string], error) {
	store, err := p.lineage(ctx)
	if err != nil {
		return nil, err
	}

	if p.cfg.Services.Email == "" {
		gn.Warn("NCBI asks for a contact email, set <em>services.email</em> " +
			"in config.yaml or GNLINEAGE_SERVICES_EMAIL")
	}

	r := ioresolve.NewLineage(store, p.lineages,
		ioresolve.WithBatchSize(p.cfg.Lineage.BatchSize),
		ioresolve.WithDelay(ms(p.cfg.Lineage.DelayMs)),
		ioresolve.WithSaveInterval(p.cfg.Lineage.SaveInterval),
		ioresolve.WithRetryErrors(p.cfg.Cache.RetryErrors),
		ioresolve.WithProgress(p.cfg.WithProgress),
		ioresolve.WithSleeper(p.sleeper),
	)
	return r.Resolve(ctx, ids)
}

// Close closes stores that were opened.
func (p *pipeline) Close() error {
	var errs []error
	if p.speciesStore != nil {
		errs = append(errs, p.speciesStore.Close())
	}
	if p.lineageStore != nil {
		errs = append(errs, p.lineageStore.Close())
	}
	return errors.Join(errs...)
}

func (p *pipeline) species(ctx context.Context) (cache.Store[string, int], error) {
	if p.speciesStore != nil {
		return p.speciesStore, nil
	}
	s, err := iocache.NewSpeciesStore(ctx, p.cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("Species cache opened",
		"backend", p.cfg.Cache.Backend, "path", p.cfg.SpeciesCachePath())
	p.speciesStore = s
	return s, nil
}

func (p *pipeline) lineage(ctx context.Context) (cache.Store[int, string], error) {
	if p.lineageStore != nil {
		return p.lineageStore, nil
	}
	s, err := iocache.NewLineageStore(ctx, p.cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("Lineage cache opened",
		"backend", p.cfg.Cache.Backend, "path", p.cfg.LineageCachePath())
	p.lineageStore = s
	return s, nil
}

func ms(i int) time.Duration {
	return time.Duration(i) * time.Millisecond
}
