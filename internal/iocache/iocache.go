// Package iocache implements cache.Store for CSV files, SQLite databases
// and PostgreSQL. This is an impure I/O package.
package iocache

import (
	"context"
	"fmt"

	"github.com/gnames/gnlineage/pkg/cache"
	"github.com/gnames/gnlineage/pkg/config"
)

// NewSpeciesStore opens the species name to taxon ID cache selected by
// configuration.
func NewSpeciesStore(
	ctx context.Context,
	cfg *config.Config,
) (cache.Store[string, int], error) {
	return newStore(ctx, cfg, cfg.SpeciesCachePath(), cache.SpeciesCodec)
}

// NewLineageStore opens the taxon ID to lineage cache selected by
// configuration.
func NewLineageStore(
	ctx context.Context,
	cfg *config.Config,
) (cache.Store[int, string], error) {
	return newStore(ctx, cfg, cfg.LineageCachePath(), cache.LineageCodec)
}

func newStore[K comparable, V any](
	ctx context.Context,
	cfg *config.Config,
	path string,
	codec cache.Codec[K, V],
) (cache.Store[K, V], error) {
	switch cfg.Cache.Backend {
	case "csv", "":
		return NewCSV(path, codec), nil
	case "sqlite":
		return NewSQLite(path, codec)
	case "postgres":
		return NewPostgres(ctx, &cfg.Database, codec)
	default:
		err := fmt.Errorf("unknown backend '%s'", cfg.Cache.Backend)
		return nil, BackendError(cfg.Cache.Backend, path, err)
	}
}
