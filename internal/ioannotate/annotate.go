package ioannotate

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnlineage/internal/iohits"
	gnlineage "github.com/gnames/gnlineage/pkg"
	"github.com/gnames/gnlineage/pkg/annotate"
	"github.com/gnames/gnlineage/pkg/cache"
	"github.com/gnames/gnlineage/pkg/lineage"
	"github.com/google/uuid"
)

const steps = 5

// Annotate runs all phases: reading hits, resolving species, resolving
// lineages, merging annotations, and writing the result.
func (p *pipeline) Annotate(ctx context.Context) (*gnlineage.Report, error) {
	startTime := time.Now()
	res := &gnlineage.Report{RunID: uuid.NewString()}
	log := slog.With("run_id", res.RunID)
	acfg := p.cfg.Annotate

	log.Info("Starting annotation", "input", acfg.Input, "output", acfg.Output)

	gn.Info("(1/%d) Reading hits from <em>%s</em>", steps, acfg.Input)
	hits, err := iohits.Read(acfg.Input)
	if err != nil {
		return nil, err
	}
	names, err := iohits.SpeciesNames(hits, acfg.SpeciesColumn)
	if err != nil {
		return nil, err
	}
	known, err := iohits.LoadKnownTaxa(acfg.KnownTaxa)
	if err != nil {
		return nil, err
	}
	log.Info("Hits loaded",
		"rows", len(hits.Rows), "species", len(names), "known_taxa", len(known))
	gn.Info("Rows: %s, distinct species: %s",
		humanize.Comma(int64(len(hits.Rows))), humanize.Comma(int64(len(names))))

	gn.Info("(2/%d) Resolving species names with UniProt", steps)
	species, err := p.ResolveSpecies(ctx, names)
	if err != nil {
		return nil, err
	}
	res.Species = species.Counts()
	ids := taxonIDs(species)
	p.reportCounts("Species names", res.Species)

	if acfg.TaxonIDs != "" {
		if err = iohits.WriteTaxonIDs(acfg.TaxonIDs, ids); err != nil {
			return nil, err
		}
		log.Info("Taxon IDs saved", "path", acfg.TaxonIDs, "count", len(ids))
	}

	gn.Info("(3/%d) Resolving lineages of %s taxa with NCBI Taxonomy",
		steps, humanize.Comma(int64(len(ids))))
	lineages, err := p.ResolveLineages(ctx, ids)
	if err != nil {
		return nil, err
	}
	res.Lineages = lineages.Counts()
	p.reportCounts("Taxon IDs", res.Lineages)

	gn.Info("(4/%d) Adding taxonomic columns", steps)
	a := annotate.New(species, lineages, known,
		annotate.OptSpeciesColumn(acfg.SpeciesColumn),
		annotate.OptFlagColumn(acfg.FlagColumn),
	)
	out, err := a.Annotate(hits)
	if err != nil {
		return nil, err
	}
	res.Summary = a.Summarize(out, lineage.Superkingdom)

	gn.Info("(5/%d) Writing annotated hits to <em>%s</em>", steps, acfg.Output)
	if err = iohits.Write(acfg.Output, out); err != nil {
		return nil, err
	}

	res.Duration = time.Since(startTime)
	log.Info("Annotation complete",
		"rows", res.Summary.Rows,
		"with_taxon_id", res.Summary.WithTaxonID,
		"with_lineage", res.Summary.WithLineage,
		"known", res.Summary.Known,
		"duration", gnfmt.TimeString(res.Duration.Seconds()),
	)
	gn.Info("Annotation complete. Elapsed time: <em>%s</em>",
		gnfmt.TimeString(res.Duration.Seconds()))
	return res, nil
}

func (p *pipeline) reportCounts(what string, counts map[cache.Status]int) {
	gn.Info("%s: resolved %s, not found %s, errors %s",
		what,
		humanize.Comma(int64(counts[cache.StatusResolved])),
		humanize.Comma(int64(counts[cache.StatusNotFound])),
		humanize.Comma(int64(counts[cache.StatusError])),
	)
	if counts[cache.StatusError] > 0 && !p.cfg.Cache.RetryErrors {
		gn.Warn("Failed lookups are cached, set <em>cache.retry_errors</em> " +
			"to query them again")
	}
}

// taxonIDs returns distinct resolved taxon IDs in table order.
func taxonIDs(tbl *cache.Table[string, int]) []int {
	seen := make(map[int]struct{})
	var res []int
	for _, e := range tbl.All() {
		id, ok := e.Get()
		if !ok {
			continue
		}
		if _, ok = seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, id)
	}
	return res
}
