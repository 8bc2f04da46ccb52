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

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/pkg/lineage"
	"github.com/spf13/cobra"
)

func getRanksCmd() *cobra.Command {
	ranksCmd := &cobra.Command{
		Use:   "ranks <lineage>",
		Short: "Splits a lineage string into ranks",
		Long: `Splits a semicolon-delimited lineage into superkingdom, kingdom,
phylum, class, order, family, genus and species. No services are
queried.

Examples:
  gnlineage ranks "Eukaryota; Metazoa; Chordata; Mammalia; Primates; Hominidae; Homo; Homo sapiens"
  gnlineage ranks -R phylum "Bacteria; Pseudomonadota; Gammaproteobacteria"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runRanks(cmd, args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	ranksCmd.Flags().StringP("rank", "R", "",
		"print only the label of this rank")
	ranksCmd.Flags().BoolP("positional", "P", false,
		"assign segments strictly by position")
	return ranksCmd
}

func runRanks(cmd *cobra.Command, s string) error {
	positional, _ := cmd.Flags().GetBool("positional")
	parse := lineage.Parse
	if positional {
		parse = lineage.ParsePositional
	}

	if rank, _ := cmd.Flags().GetString("rank"); rank != "" {
		r, err := lineage.NewRank(rank)
		if err != nil {
			return err
		}
		label, _ := parse(s).Get(r)
		fmt.Println(label)
		return nil
	}

	rs := parse(s)
	var rows [][]string
	for _, r := range lineage.Ranks() {
		label, _ := rs.Get(r)
		rows = append(rows, []string{r.String(), label})
	}
	fmt.Println(renderTable(
		[]string{"Rank", "Label"},
		rows,
		[]columnAlignment{alignLeft, alignLeft},
	))
	return nil
}
