package iohits

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/pkg/errcode"
)

// ReadError is returned when a hit table cannot be read.
func ReadError(path string, err error) error {
	msg := `Cannot read hit table <em>%s</em>`
	vars := []any{path}
	return &gn.Error{
		Code: errcode.HitTableReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read hit table %s: %w", path, err),
	}
}

// WriteError is returned when an annotated table cannot be written.
func WriteError(path string, err error) error {
	msg := `Cannot write <em>%s</em>`
	vars := []any{path}
	return &gn.Error{
		Code: errcode.HitTableWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write %s: %w", path, err),
	}
}

// KnownTaxaError is returned when the list of known taxon IDs is broken.
func KnownTaxaError(path string, err error) error {
	msg := `Cannot read known taxa from <em>%s</em>`
	vars := []any{path}
	return &gn.Error{
		Code: errcode.KnownTaxaReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read known taxa %s: %w", path, err),
	}
}
