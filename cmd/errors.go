package cmd

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/pkg/errcode"
)

// LockError is returned when the lock file cannot be used.
func LockError(path string, err error) error {
	msg := `Cannot use lock file <em>%s</em>`
	vars := []any{path}
	return &gn.Error{
		Code: errcode.LockAcquireError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot acquire lock %s: %w", path, err),
	}
}

// LockBusyError is returned when another gnlineage process works with
// the caches.
func LockBusyError(path string) error {
	msg := `<err>Another gnlineage process is updating caches.</err>
   Wait until it finishes, or remove <em>%s</em> if no such process exists.`
	vars := []any{path}
	return &gn.Error{
		Code: errcode.LockBusyError,
		Msg:  msg,
		Vars: vars,
		Err:  errors.New("cache lock is held by another process"),
	}
}

// InvalidTaxonIDError is returned when an argument is not a positive
// integer.
func InvalidTaxonIDError(s string) error {
	msg := `<err>Taxon ID must be a positive integer, got</err> '%s'`
	vars := []any{s}
	return &gn.Error{
		Code: errcode.InvalidInputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid taxon ID '%s'", s),
	}
}

// NoInputError is returned when a command has nothing to resolve.
func NoInputError() error {
	msg := `<err>Nothing to resolve.</err>
   Give values as arguments or use <em>--file</em>.`
	return &gn.Error{
		Code: errcode.InvalidInputError,
		Msg:  msg,
		Err:  errors.New("no input values"),
	}
}
