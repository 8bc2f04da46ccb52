// Package canonical normalizes scientific names with gnparser.
// This is a pure package - parsing is computation, not I/O.
package canonical

import (
	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
)

// Canonizer returns canonical forms of scientific names.
type Canonizer interface {
	// Canonical returns the simple canonical form of a name and true,
	// or the name itself and false if gnparser cannot parse it.
	Canonical(name string) (string, bool)
}

type canonizer struct {
	gnp gnparser.GNparser
}

// New creates a Canonizer. Botanical code is used to avoid treating
// infrageneric epithets in parentheses as subgenera, and to keep
// infraspecific ranks in canonical forms.
// Resolvers are single-threaded, so one parser instance is enough.
func New() Canonizer {
	cfg := gnparser.NewConfig(
		gnparser.OptCode(nomcode.Botanical),
	)
	return &canonizer{gnp: gnparser.New(cfg)}
}

// Canonical strips authorships, years, strain annotations, and other
// non-canonical parts from a name.
func (c *canonizer) Canonical(name string) (string, bool) {
	p := c.gnp.ParseName(name)
	if !p.Parsed || p.Canonical == nil || p.Canonical.Simple == "" {
		return name, false
	}
	return p.Canonical.Simple, true
}
