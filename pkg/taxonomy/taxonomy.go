// Package taxonomy defines contracts of external taxonomic services used
// by resolvers. Implementations live in internal/iouniprot and
// internal/ioentrez.
package taxonomy

import (
	"context"
	"errors"
	"slices"
)

// ErrNotFound is returned by services when they have no record for a
// name or a taxon ID. Any other error is treated as a transient failure.
var ErrNotFound = errors.New("not found")

// NameService finds taxon IDs for scientific names.
type NameService interface {
	// TaxonID returns the taxon ID for a species name.
	TaxonID(ctx context.Context, name string) (int, error)
}

// LineageService finds lineages for taxon IDs.
type LineageService interface {
	// Lineages returns lineages for a batch of taxon IDs. The order of
	// records is not guaranteed to follow the request.
	Lineages(ctx context.Context, ids []int) ([]Record, error)

	// Lineage returns the lineage of one taxon ID.
	Lineage(ctx context.Context, id int) (string, error)
}

// Record is one lineage returned by a LineageService.
type Record struct {
	// TaxonID is the current ID of the taxon.
	TaxonID int
	// Aliases are IDs merged into TaxonID, a request for an alias is
	// answered with the current ID.
	Aliases []int
	// Lineage is a semicolon-delimited lineage.
	Lineage string
}

// Matches reports whether the record answers a request for the id.
func (r Record) Matches(id int) bool {
	return r.TaxonID == id || slices.Contains(r.Aliases, id)
}
