// Package annotate joins resolved taxon IDs, lineages and known organism
// flags onto hit tables.
//
// This is a pure package: it works on in-memory tables, reading and
// writing them is done in internal/iohits.
package annotate

import (
	"slices"
	"strconv"

	"github.com/gnames/gnlineage/pkg/cache"
	"github.com/gnames/gnlineage/pkg/lineage"
)

const (
	// TaxonIDColumn keeps the resolved taxon ID of a hit.
	TaxonIDColumn = "Taxon ID"
	// LineageColumn keeps the lineage string of a hit.
	LineageColumn = "Lineage"

	DefaultSpeciesColumn = "taxname/species"
	DefaultFlagColumn    = "KnownOrganism"
)

// Table is a hit table: a header and rows of string fields.
type Table struct {
	Header []string
	Rows   [][]string
}

// Column returns the index of a column or -1.
func (t *Table) Column(name string) int {
	return slices.Index(t.Header, name)
}

// Annotator adds taxonomic columns to hit tables.
type Annotator struct {
	species       *cache.Table[string, int]
	lineages      *cache.Table[int, string]
	known         map[int]struct{}
	speciesColumn string
	flagColumn    string
}

// Option configures Annotator.
type Option func(*Annotator)

// OptSpeciesColumn sets the column with species names.
func OptSpeciesColumn(s string) Option {
	return func(a *Annotator) {
		if s != "" {
			a.speciesColumn = s
		}
	}
}

// OptFlagColumn sets the column for known organism flags.
func OptFlagColumn(s string) Option {
	return func(a *Annotator) {
		if s != "" {
			a.flagColumn = s
		}
	}
}

// New creates an Annotator. Known is the set of taxon IDs of known
// organisms, it is not modified.
func New(
	species *cache.Table[string, int],
	lineages *cache.Table[int, string],
	known map[int]struct{},
	opts ...Option,
) *Annotator {
	res := &Annotator{
		species:       species,
		lineages:      lineages,
		known:         known,
		speciesColumn: DefaultSpeciesColumn,
		flagColumn:    DefaultFlagColumn,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Columns returns names of columns added by Annotate in their order.
func (a *Annotator) Columns() []string {
	res := []string{TaxonIDColumn, LineageColumn}
	res = append(res, lineage.RankNames()...)
	return append(res, a.flagColumn)
}

// Annotate returns a new table with taxonomic columns. Every input row is
// kept in its order. Short rows are padded, rows wider than the header
// are an error. Columns that already exist are overwritten in place,
// so annotating an annotated table gives the same table.
func (a *Annotator) Annotate(tbl *Table) (*Table, error) {
	spIdx := tbl.Column(a.speciesColumn)
	if spIdx < 0 {
		return nil, MissingColumnError(a.speciesColumn)
	}

	header := slices.Clone(tbl.Header)
	cols := a.Columns()
	idxs := make([]int, len(cols))
	for i, name := range cols {
		idx := slices.Index(header, name)
		if idx < 0 {
			idx = len(header)
			header = append(header, name)
		}
		idxs[i] = idx
	}

	res := &Table{Header: header, Rows: make([][]string, len(tbl.Rows))}
	for i, row := range tbl.Rows {
		if len(row) > len(tbl.Header) {
			return nil, WideRowError(i+1, len(row), len(tbl.Header))
		}
		out := make([]string, len(header))
		copy(out, row)
		var name string
		if spIdx < len(row) {
			name = row[spIdx]
		}
		for j, v := range a.fields(name) {
			out[idxs[j]] = v
		}
		res.Rows[i] = out
	}
	return res, nil
}

// fields returns values of the added columns for a species name.
func (a *Annotator) fields(name string) []string {
	res := make([]string, lineage.RanksNum+3)
	res[len(res)-1] = "false"

	id, ok := a.species.Get(name)
	if !ok {
		return res
	}
	res[0] = strconv.Itoa(id)
	if _, isKnown := a.known[id]; isKnown {
		res[len(res)-1] = "true"
	}

	lin, ok := a.lineages.Get(id)
	if !ok {
		return res
	}
	res[1] = lin
	rs := lineage.Parse(lin)
	copy(res[2:], rs[:])
	return res
}
