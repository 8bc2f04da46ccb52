package annotate

import (
	"cmp"
	"slices"

	"github.com/gnames/gnlineage/pkg/lineage"
)

// Count is the number of rows with a label.
type Count struct {
	Label string
	Rows  int
}

// Summary describes an annotated table.
type Summary struct {
	Rows        int
	WithTaxonID int
	WithLineage int
	Known       int
	// Rank is the rank used for RankCounts.
	Rank lineage.Rank
	// RankCounts are numbers of rows per label of Rank, most common
	// first. Rows without the rank have an empty label.
	RankCounts []Count
}

// Summarize counts annotated rows per label of a rank.
func (a *Annotator) Summarize(tbl *Table, r lineage.Rank) Summary {
	res := Summary{Rows: len(tbl.Rows), Rank: r}
	idIdx := tbl.Column(TaxonIDColumn)
	linIdx := tbl.Column(LineageColumn)
	flagIdx := tbl.Column(a.flagColumn)
	rankIdx := tbl.Column(r.String())

	get := func(row []string, idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	counts := make(map[string]int)
	for _, row := range tbl.Rows {
		if get(row, idIdx) != "" {
			res.WithTaxonID++
		}
		if get(row, linIdx) != "" {
			res.WithLineage++
		}
		if get(row, flagIdx) == "true" {
			res.Known++
		}
		counts[get(row, rankIdx)]++
	}

	for k, v := range counts {
		res.RankCounts = append(res.RankCounts, Count{Label: k, Rows: v})
	}
	slices.SortFunc(res.RankCounts, func(a, b Count) int {
		if c := cmp.Compare(b.Rows, a.Rows); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return res
}
