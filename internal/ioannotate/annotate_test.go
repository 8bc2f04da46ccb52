package ioannotate_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gnlineage/internal/ioannotate"
	"github.com/gnames/gnlineage/internal/iotesting"
	"github.com/gnames/gnlineage/pkg/cache"
	"github.com/gnames/gnlineage/pkg/config"
	"github.com/gnames/gnlineage/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hitsCSV = `Query,Target,taxname/species
GLP1,AF-1,Escherichia coli
GLP1,AF-2,Homo sapiens
PYY,AF-3,Bogus bogus
PYY,AF-4,Escherichia coli
`

type names struct{ calls int }

func (n *names) TaxonID(_ context.Context, name string) (int, error) {
	n.calls++
	switch name {
	case "Escherichia coli":
		return 562, nil
	case "Homo sapiens":
		return 9606, nil
	}
	return 0, taxonomy.ErrNotFound
}

type lineages struct{ calls int }

func (l *lineages) Lineages(_ context.Context, ids []int) ([]taxonomy.Record, error) {
	l.calls++
	var res []taxonomy.Record
	for _, id := range ids {
		lin, _ := l.Lineage(context.Background(), id)
		res = append(res, taxonomy.Record{TaxonID: id, Lineage: lin})
	}
	return res, nil
}

func (l *lineages) Lineage(_ context.Context, id int) (string, error) {
	switch id {
	case 562:
		return "cellular organisms; Bacteria; Pseudomonadota; " +
			"Gammaproteobacteria; Enterobacterales; Enterobacteriaceae; " +
			"Escherichia; Escherichia coli", nil
	case 9606:
		return "cellular organisms; Eukaryota; Metazoa; Chordata; Mammalia; " +
			"Primates; Hominidae; Homo", nil
	}
	return "", taxonomy.ErrNotFound
}

func setup(t *testing.T, backend string) (*config.Config, string) {
	dir := iotesting.TempHome(t)
	in := filepath.Join(dir, "hits.csv")
	require.NoError(t, os.WriteFile(in, []byte(hitsCSV), 0644))
	known := filepath.Join(dir, "known.txt")
	require.NoError(t, os.WriteFile(known, []byte("562\n"), 0644))

	out := filepath.Join(dir, "annotated.csv")
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(dir),
		config.OptCacheBackend(backend),
		config.OptSpeciesDelayMs(0),
		config.OptLineageDelayMs(0),
		config.OptWithProgress(false),
		config.OptServicesEmail("me@example.org"),
		config.OptAnnotateInput(in),
		config.OptAnnotateOutput(out),
		config.OptAnnotateKnownTaxa(known),
		config.OptAnnotateTaxonIDs(filepath.Join(dir, "taxids.txt")),
	})
	return cfg, out
}

func TestAnnotateIdempotent(t *testing.T) {
	for _, backend := range []string{"csv", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			cfg, out := setup(t, backend)
			ns, ls := &names{}, &lineages{}

			p := ioannotate.New(cfg,
				ioannotate.OptNameService(ns), ioannotate.OptLineageService(ls))
			rep, err := p.Annotate(ctx)
			require.NoError(t, err)
			require.NoError(t, p.Close())

			assert.NotEmpty(t, rep.RunID)
			assert.Equal(t, 3, ns.calls)
			assert.Equal(t, 1, ls.calls)
			assert.Equal(t, 2, rep.Species[cache.StatusResolved])
			assert.Equal(t, 1, rep.Species[cache.StatusNotFound])
			assert.Equal(t, 4, rep.Summary.Rows)
			assert.Equal(t, 2, rep.Summary.Known)

			first, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.Contains(t, string(first),
				"GLP1,AF-1,Escherichia coli,562,")
			assert.Contains(t, string(first),
				",Bacteria,,Pseudomonadota,Gammaproteobacteria,Enterobacterales,"+
					"Enterobacteriaceae,Escherichia,Escherichia coli,true\n")
			assert.Contains(t, string(first),
				"PYY,AF-3,Bogus bogus,,,,,,,,,,,false\n")

			ids, err := os.ReadFile(filepath.Join(cfg.HomeDir, "taxids.txt"))
			require.NoError(t, err)
			assert.Equal(t, "562\n9606\n", string(ids))

			ns2, ls2 := &names{}, &lineages{}
			p = ioannotate.New(cfg,
				ioannotate.OptNameService(ns2), ioannotate.OptLineageService(ls2))
			_, err = p.Annotate(ctx)
			require.NoError(t, err)
			require.NoError(t, p.Close())
			assert.Zero(t, ns2.calls, "species come from cache")
			assert.Zero(t, ls2.calls, "lineages come from cache")

			second, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestAnnotateMissingInput(t *testing.T) {
	cfg, _ := setup(t, "csv")
	cfg.Update([]config.Option{
		config.OptAnnotateInput(filepath.Join(cfg.HomeDir, "none.csv")),
	})
	p := ioannotate.New(cfg,
		ioannotate.OptNameService(&names{}),
		ioannotate.OptLineageService(&lineages{}))
	defer p.Close()
	_, err := p.Annotate(context.Background())
	assert.Error(t, err)
}
