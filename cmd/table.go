/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"strconv"

	gnlineage "github.com/gnames/gnlineage/pkg"
	"github.com/gnames/gnlineage/pkg/cache"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// statusCell shows the value of resolved entries and the status of
// others.
func statusCell[V any](e cache.Entry[V]) string {
	if v, ok := e.Get(); ok {
		return fmt.Sprint(v)
	}
	return e.Status.String()
}

// reportTables renders resolution counts and the rank summary of an
// annotation run.
func reportTables(r *gnlineage.Report) string {
	statuses := []cache.Status{
		cache.StatusResolved, cache.StatusNotFound, cache.StatusError,
	}
	var rows [][]string
	for _, s := range statuses {
		rows = append(rows, []string{
			s.String(),
			strconv.Itoa(r.Species[s]),
			strconv.Itoa(r.Lineages[s]),
		})
	}
	res := renderTable(
		[]string{"Status", "Species", "Taxon IDs"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight},
	)

	sum := r.Summary
	rows = [][]string{
		{"rows", strconv.Itoa(sum.Rows)},
		{"with taxon ID", strconv.Itoa(sum.WithTaxonID)},
		{"with lineage", strconv.Itoa(sum.WithLineage)},
		{"known organisms", strconv.Itoa(sum.Known)},
	}
	res += "\n" + renderTable(
		[]string{"Hits", "Count"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	)

	rows = rows[:0]
	for _, c := range sum.RankCounts {
		label := c.Label
		if label == "" {
			label = "(none)"
		}
		rows = append(rows, []string{label, strconv.Itoa(c.Rows)})
	}
	if len(rows) > 0 {
		res += "\n" + renderTable(
			[]string{sum.Rank.String(), "Hits"},
			rows,
			[]columnAlignment{alignLeft, alignRight},
		)
	}
	return res
}
