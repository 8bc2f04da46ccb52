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
	"log/slog"
	"strconv"

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/internal/ioannotate"
	"github.com/spf13/cobra"
)

func getLineageCmd() *cobra.Command {
	lineageCmd := &cobra.Command{
		Use:   "lineage [taxon IDs...]",
		Short: "Resolves NCBI taxon IDs to lineages",
		Long: `Finds lineages of NCBI taxon IDs with E-utilities efetch. IDs are
sent in batches, results are saved to the lineage cache, and cached IDs
are not queried again.

Examples:
  gnlineage lineage 9606 562
  gnlineage lineage -F taxids.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runLineage(cmd, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	lineageCmd.Flags().StringP("file", "F", "",
		"file with taxon IDs, one per line")
	resolveFlags(lineageCmd)
	return lineageCmd
}

func runLineage(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	ss, err := readArgs(args, file)
	if err != nil {
		return err
	}
	ids, err := parseIDs(ss)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return NoInputError()
	}

	cfg.Update(resolveOpts(cmd))

	lock, err := lockCaches(homeDir)
	if err != nil {
		return err
	}
	defer lock.Unlock()

	ctx, stop := signalContext()
	defer stop()

	pl := ioannotate.New(cfg)
	defer func() {
		if err := pl.Close(); err != nil {
			slog.Error("Cannot close caches", "error", err)
		}
	}()

	tbl, err := pl.ResolveLineages(ctx, ids)
	if err != nil {
		return err
	}

	var rows [][]string
	for id, e := range tbl.All() {
		rows = append(rows, []string{strconv.Itoa(id), statusCell(e)})
	}
	fmt.Println(renderTable(
		[]string{"Taxon ID", "Lineage"},
		rows,
		[]columnAlignment{alignRight, alignLeft},
	))
	return nil
}
