package cache

import (
	"fmt"
	"strconv"
	"strings"
)

// Codec converts keys and values of a cache to text and names them.
// Backends use codecs to store any table in text columns.
type Codec[K comparable, V any] struct {
	// Kind names the cache, backends use it for table names.
	Kind string
	// KeyName is the column header for keys.
	KeyName string
	// ValueName is the column header for values.
	ValueName string

	FormatKey   func(K) string
	ParseKey    func(string) (K, error)
	FormatValue func(V) string
	ParseValue  func(string) (V, error)
}

// SpeciesCodec describes the species name to taxon ID cache.
// Column names follow the original CSV caches.
var SpeciesCodec = Codec[string, int]{
	Kind:        "species",
	KeyName:     "Species",
	ValueName:   "Taxon ID",
	FormatKey:   func(s string) string { return s },
	ParseKey:    func(s string) (string, error) { return s, nil },
	FormatValue: strconv.Itoa,
	ParseValue:  parseTaxonID,
}

// LineageCodec describes the taxon ID to lineage cache.
var LineageCodec = Codec[int, string]{
	Kind:        "lineage",
	KeyName:     "Taxon ID",
	ValueName:   "Lineage",
	FormatKey:   strconv.Itoa,
	ParseKey:    parseTaxonID,
	FormatValue: func(s string) string { return s },
	ParseValue:  func(s string) (string, error) { return s, nil },
}

// parseTaxonID accepts integers and integral floats such as "9606.0",
// which appear in caches written by float-typed data frames.
func parseTaxonID(s string) (int, error) {
	s = strings.TrimSpace(s)
	if res, err := strconv.Atoi(s); err == nil {
		if res <= 0 {
			return 0, fmt.Errorf("taxon ID must be positive: %d", res)
		}
		return res, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) || f <= 0 {
		return 0, fmt.Errorf("cannot parse taxon ID '%s'", s)
	}
	return int(f), nil
}
