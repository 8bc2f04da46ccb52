package ioentrez

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/pkg/errcode"
)

// RequestError is returned when E-utilities cannot be reached.
func RequestError(ids string, err error) error {
	msg := `Cannot reach NCBI E-utilities for taxon IDs <em>%s</em>`
	vars := []any{ids}
	return &gn.Error{
		Code: errcode.ServiceRequestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("entrez: efetch %s failed: %w", ids, err),
	}
}

// StatusError is returned when E-utilities answers with a non-200 status.
func StatusError(ids string, status int, body string) error {
	msg := `NCBI E-utilities returned status <em>%d</em> for taxon IDs <em>%s</em>`
	vars := []any{status, ids}
	return &gn.Error{
		Code: errcode.ServiceStatusError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("entrez: status %d for %s: %s", status, ids, body),
	}
}

// DecodeError is returned when efetch XML cannot be parsed, or when it
// reports an error instead of records.
func DecodeError(ids string, err error) error {
	msg := `Cannot decode NCBI taxonomy records for taxon IDs <em>%s</em>`
	vars := []any{ids}
	return &gn.Error{
		Code: errcode.ServiceDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("entrez: decode records for %s: %w", ids, err),
	}
}
