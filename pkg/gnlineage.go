// Package gnlineage annotates sequence similarity hits with taxon IDs,
// lineages and known organism flags.
package gnlineage

import (
	"context"
	"time"

	"github.com/gnames/gnlineage/pkg/annotate"
	"github.com/gnames/gnlineage/pkg/cache"
)

// Pipeline resolves names and taxon IDs through persistent caches and
// annotates hit tables. Config is provided during construction.
type Pipeline interface {
	// Annotate reads the input hit table, resolves its species, and
	// writes the annotated table. Running it twice with complete caches
	// gives the same output.
	Annotate(ctx context.Context) (*Report, error)

	// ResolveSpecies maps species names to taxon IDs.
	ResolveSpecies(
		ctx context.Context,
		names []string,
	) (*cache.Table[string, int], error)

	// ResolveLineages maps taxon IDs to lineages.
	ResolveLineages(
		ctx context.Context,
		ids []int,
	) (*cache.Table[int, string], error)

	// Close releases cache stores.
	Close() error
}

// Report describes an annotation run.
type Report struct {
	// RunID identifies the run in logs.
	RunID string

	// Species are numbers of distinct species names per status.
	Species map[cache.Status]int

	// Lineages are numbers of distinct taxon IDs per status.
	Lineages map[cache.Status]int

	Summary annotate.Summary

	Duration time.Duration
}
