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

func getAnnotateCmd() *cobra.Command {
	annotateCmd := &cobra.Command{
		Use:   "annotate",
		Short: "Adds taxonomic columns to a table of search hits",
		Long: `Reads a CSV table of search hits, resolves species names of hits to
NCBI taxon IDs and lineages, and writes the table with added columns:

  Taxon ID, Lineage, superkingdom ... species, and a known organism flag.

Resolved names and taxon IDs are cached, so only new ones are sent to
UniProt and NCBI. If the run is interrupted with Ctrl-C, results received
so far are saved and the next run continues from there.

Examples:
  gnlineage annotate -i hits.csv -o hits_annotated.csv
  gnlineage annotate -i hits.csv -o out.csv -k gut_microbes.txt \
    -f KnownGutMicrobe
  gnlineage annotate -i hits.csv -o out.csv -b sqlite -t taxids.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runAnnotate(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	annotateCmd.Flags().StringP("input", "i", "", "CSV file with search hits")
	annotateCmd.Flags().StringP("output", "o", "", "CSV file for annotated hits")
	annotateCmd.Flags().StringP("known-taxa", "k", "",
		"file with taxon IDs of known organisms, one per line")
	annotateCmd.Flags().StringP("species-column", "c", "",
		"column with species names (default \"taxname/species\")")
	annotateCmd.Flags().StringP("flag-column", "f", "",
		"column for known organism flag (default \"KnownOrganism\")")
	annotateCmd.Flags().StringP("taxon-ids", "t", "",
		"file to save distinct resolved taxon IDs")
	annotateCmd.Flags().BoolP("canonical", "n", false,
		"send canonical forms of names to UniProt")
	annotateCmd.Flags().StringP("email", "e", "",
		"contact email sent to NCBI")
	annotateCmd.Flags().Bool("summary", true, "print summary tables")
	resolveFlags(annotateCmd)
	_ = annotateCmd.MarkFlagRequired("input")
	_ = annotateCmd.MarkFlagRequired("output")

	return annotateCmd
}

func runAnnotate(cmd *cobra.Command) error {
	cfg.Update(annotateOpts(cmd))
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

	report, err := pl.Annotate(ctx)
	if err != nil {
		slog.Error("Annotation failed", "error", err)
		return err
	}

	if ok, _ := cmd.Flags().GetBool("summary"); ok {
		fmt.Println(reportTables(report))
	}
	return nil
}

func annotateOpts(cmd *cobra.Command) []config.Option {
	var res []config.Option
	flags := []struct {
		name string
		opt  func(string) config.Option
	}{
		{"input", config.OptAnnotateInput},
		{"output", config.OptAnnotateOutput},
		{"known-taxa", config.OptAnnotateKnownTaxa},
		{"species-column", config.OptAnnotateSpeciesColumn},
		{"flag-column", config.OptAnnotateFlagColumn},
		{"taxon-ids", config.OptAnnotateTaxonIDs},
		{"email", config.OptServicesEmail},
	}
	for _, f := range flags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		s, _ := cmd.Flags().GetString(f.name)
		res = append(res, f.opt(s))
	}
	if cmd.Flags().Changed("canonical") {
		b, _ := cmd.Flags().GetBool("canonical")
		res = append(res, config.OptSpeciesCanonical(b))
	}
	return res
}
