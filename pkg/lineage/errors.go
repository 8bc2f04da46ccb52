package lineage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/pkg/errcode"
)

// ErrInvalidRank is wrapped by errors about unknown rank names.
var ErrInvalidRank = errors.New("invalid rank")

// InvalidRankError is returned when a rank name is not a part of the
// lineage schema.
func InvalidRankError(name string) error {
	msg := `Rank <em>%s</em> is not supported
Valid ranks: %s`
	vars := []any{name, strings.Join(rankNames[:], ", ")}

	return &gn.Error{
		Code: errcode.InvalidRankError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%w: '%s'", ErrInvalidRank, name),
	}
}
