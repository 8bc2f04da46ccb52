package cmd

import (
	"testing"

	gnlineage "github.com/gnames/gnlineage/pkg"
	"github.com/gnames/gnlineage/pkg/annotate"
	"github.com/gnames/gnlineage/pkg/cache"
	"github.com/gnames/gnlineage/pkg/lineage"
	"github.com/stretchr/testify/assert"
)

func TestRenderTable(t *testing.T) {
	assert.Empty(t, renderTable(nil, nil, nil))

	res := renderTable(
		[]string{"Species", "Taxon ID"},
		[][]string{{"Homo sapiens", "9606"}, {"Bogus"}},
		[]columnAlignment{alignLeft, alignRight},
	)
	assert.Contains(t, res, "Species")
	assert.Contains(t, res, "Homo sapiens")
	assert.Contains(t, res, "9606")
	assert.Contains(t, res, "Bogus")
	assert.Contains(t, res, "╭")
}

func TestStatusCell(t *testing.T) {
	assert.Equal(t, "9606", statusCell(cache.Resolved(9606)))
	assert.Equal(t, "not_found", statusCell(cache.NotFound[int]()))
	assert.Equal(t, "error", statusCell(cache.Failed[string]()))
}

func TestReportTables(t *testing.T) {
	r := &gnlineage.Report{
		Species: map[cache.Status]int{
			cache.StatusResolved: 3, cache.StatusNotFound: 1,
		},
		Lineages: map[cache.Status]int{cache.StatusResolved: 2},
		Summary: annotate.Summary{
			Rows:        5,
			WithTaxonID: 4,
			WithLineage: 4,
			Known:       2,
			Rank:        lineage.Superkingdom,
			RankCounts: []annotate.Count{
				{Label: "Bacteria", Rows: 3},
				{Label: "", Rows: 1},
			},
		},
	}
	res := reportTables(r)
	assert.Contains(t, res, "not_found")
	assert.Contains(t, res, "known organisms")
	assert.Contains(t, res, "superkingdom")
	assert.Contains(t, res, "Bacteria")
	assert.Contains(t, res, "(none)")
}
