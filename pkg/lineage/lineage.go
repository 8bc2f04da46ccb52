// Package lineage parses semicolon-delimited lineage strings into the
// fixed set of eight taxonomic ranks.
//
// This is a pure package: no I/O, no state.
//
// Ranks are assigned by position, starting at superkingdom. Segments are
// not matched by their meaning, but the layout of positions depends on the
// superkingdom: NCBI lineages of Bacteria and Archaea have no kingdom, so
// for them the second segment goes to phylum. A lineage
// "Bacteria; Proteobacteria; Gammaproteobacteria" gives
// superkingdom=Bacteria, phylum=Proteobacteria, class=Gammaproteobacteria
// and leaves kingdom absent.
package lineage

import (
	"strings"
)

// Delimiter separates ranks in a lineage string.
const Delimiter = ";"

// Rank is one of the eight ranks of the lineage schema.
type Rank int

const (
	Superkingdom Rank = iota
	Kingdom
	Phylum
	Class
	Order
	Family
	Genus
	Species
)

// RanksNum is the number of ranks in the schema.
const RanksNum = int(Species) + 1

var rankNames = [RanksNum]string{
	"superkingdom",
	"kingdom",
	"phylum",
	"class",
	"order",
	"family",
	"genus",
	"species",
}

var rankMap = func() map[string]Rank {
	res := make(map[string]Rank, RanksNum)
	for i, v := range rankNames {
		res[v] = Rank(i)
	}
	return res
}()

// String returns the lowercase name of the rank.
func (r Rank) String() string {
	if r < 0 || int(r) >= RanksNum {
		return "unknown"
	}
	return rankNames[r]
}

// Ranks returns all ranks from the top of the hierarchy down.
func Ranks() []Rank {
	res := make([]Rank, RanksNum)
	for i := range res {
		res[i] = Rank(i)
	}
	return res
}

// RankNames returns names of all ranks in schema order.
func RankNames() []string {
	res := make([]string, RanksNum)
	copy(res, rankNames[:])
	return res
}

// NewRank converts a rank name to Rank. The name must be one of the
// eight schema names exactly.
func NewRank(name string) (Rank, error) {
	if r, ok := rankMap[name]; ok {
		return r, nil
	}
	return 0, InvalidRankError(name)
}

// RankSet keeps labels of all ranks. Empty string means the rank is absent.
type RankSet [RanksNum]string

// Get returns the label of a rank and true, or "" and false if the rank
// is absent.
func (rs RankSet) Get(r Rank) (string, bool) {
	if r < 0 || int(r) >= RanksNum {
		return "", false
	}
	res := rs[r]
	return res, res != ""
}

// Map returns populated ranks keyed by rank name.
func (rs RankSet) Map() map[string]string {
	res := make(map[string]string)
	for i, v := range rs {
		if v != "" {
			res[rankNames[i]] = v
		}
	}
	return res
}

// RootLabel is the NCBI pseudo-rank that precedes superkingdom in
// lineages of cellular organisms. Parse drops it.
const RootLabel = "cellular organisms"

// kingdomless superkingdoms do not have a kingdom rank in their lineages.
var kingdomless = map[string]struct{}{
	"Bacteria": {},
	"Archaea":  {},
}

var (
	fullLayout        = Ranks()
	prokaryoticLayout = append([]Rank{Superkingdom}, fullLayout[2:]...)
)

// Parse splits a lineage string into ranks by position.
// Missing trailing ranks stay absent, extra segments are discarded.
// An empty segment is an absent rank that still takes its position.
// Lineages of Bacteria and Archaea skip the kingdom position.
func Parse(s string) RankSet {
	parts := split(s)
	if len(parts) > 0 && parts[0] == RootLabel {
		parts = parts[1:]
	}

	layout := fullLayout
	if len(parts) > 0 {
		if _, ok := kingdomless[parts[0]]; ok {
			layout = prokaryoticLayout
		}
	}
	return assign(parts, layout)
}

// ParsePositional assigns segments strictly by position to all eight
// ranks, without any adjustments for the root label or missing kingdoms.
func ParsePositional(s string) RankSet {
	return assign(split(s), fullLayout)
}

func split(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	res := strings.Split(s, Delimiter)
	for i := range res {
		res[i] = strings.TrimSpace(res[i])
	}
	return res
}

func assign(parts []string, layout []Rank) RankSet {
	var res RankSet
	for i := range min(len(parts), len(layout)) {
		res[layout[i]] = parts[i]
	}
	return res
}

// Extract returns the label of one rank from a lineage string.
// The rank name is validated first, so an invalid name fails even for an
// absent lineage. An absent (empty) lineage gives an empty label.
func Extract(s, rankName string) (string, error) {
	r, err := NewRank(rankName)
	if err != nil {
		return "", err
	}
	res, _ := Parse(s).Get(r)
	return res, nil
}
