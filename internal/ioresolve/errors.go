package ioresolve

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/pkg/errcode"
)

// CancelledError is returned when resolution is interrupted. Everything
// resolved before the interruption is saved.
func CancelledError(kind string, done, total int, err error) error {
	msg := `Resolution of %s was interrupted after %d of %d lookups,
progress is saved to the cache`
	vars := []any{kind, done, total}
	return &gn.Error{
		Code: errcode.ResolveCancelledError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("%s resolution cancelled at %d/%d: %w",
			kind, done, total, err),
	}
}
