package annotate

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/pkg/errcode"
)

// MissingColumnError is returned when the hit table has no species
// column.
func MissingColumnError(column string) error {
	msg := `Hit table has no column <em>%s</em>`
	vars := []any{column}
	return &gn.Error{
		Code: errcode.HitTableColumnError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("column %q is missing", column),
	}
}

// WideRowError is returned when a hit table row has more fields than
// the header, so added columns would overwrite its extra fields.
func WideRowError(row, fields, columns int) error {
	msg := `Row <em>%d</em> of the hit table has %d fields, header has %d`
	vars := []any{row, fields, columns}
	return &gn.Error{
		Code: errcode.HitTableRowError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("row %d has %d fields, header has %d",
			row, fields, columns),
	}
}
