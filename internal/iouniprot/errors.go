package iouniprot

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/pkg/errcode"
)

// RequestError is returned when UniProt cannot be reached.
func RequestError(name string, err error) error {
	msg := `Cannot reach UniProt for <em>%s</em>`
	vars := []any{name}
	return &gn.Error{
		Code: errcode.ServiceRequestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("uniprot: request for %q failed: %w", name, err),
	}
}

// StatusError is returned when UniProt answers with a non-200 status.
func StatusError(name string, status int, body string) error {
	msg := `UniProt returned status <em>%d</em> for <em>%s</em>`
	vars := []any{status, name}
	return &gn.Error{
		Code: errcode.ServiceStatusError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("uniprot: status %d for %q: %s",
			status, name, body),
	}
}

// DecodeError is returned when UniProt response is not a valid JSON.
func DecodeError(name string, err error) error {
	msg := `Cannot decode UniProt response for <em>%s</em>`
	vars := []any{name}
	return &gn.Error{
		Code: errcode.ServiceDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("uniprot: decode response for %q: %w", name, err),
	}
}
