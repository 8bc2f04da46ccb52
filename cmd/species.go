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

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/internal/ioannotate"
	"github.com/gnames/gnlineage/pkg/config"
	"github.com/spf13/cobra"
)

func getSpeciesCmd() *cobra.Command {
	speciesCmd := &cobra.Command{
		Use:   "species [names...]",
		Short: "Resolves species names to NCBI taxon IDs",
		Long: `Finds NCBI taxon IDs of species names with UniProt taxonomy search.
Results are saved to the species cache, cached names are not queried
again.

Examples:
  gnlineage species "Homo sapiens" "Escherichia coli"
  gnlineage species -F names.txt -b sqlite`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runSpecies(cmd, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	speciesCmd.Flags().StringP("file", "F", "",
		"file with species names, one per line")
	speciesCmd.Flags().BoolP("canonical", "n", false,
		"send canonical forms of names to UniProt")
	resolveFlags(speciesCmd)
	return speciesCmd
}

func runSpecies(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	names, err := readArgs(args, file)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return NoInputError()
	}

	cfg.Update(resolveOpts(cmd))
	if cmd.Flags().Changed("canonical") {
		b, _ := cmd.Flags().GetBool("canonical")
		cfg.Update([]config.Option{config.OptSpeciesCanonical(b)})
	}

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

	tbl, err := pl.ResolveSpecies(ctx, names)
	if err != nil {
		return err
	}

	var rows [][]string
	for name, e := range tbl.All() {
		rows = append(rows, []string{name, statusCell(e)})
	}
	fmt.Println(renderTable(
		[]string{"Species", "Taxon ID"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	))
	return nil
}
