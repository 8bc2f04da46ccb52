package iologger

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/pkg/errcode"
)

// CreateLogFileError is returned when gnlineage.log cannot be opened
// for writing.
func CreateLogFileError(path string, err error) error {
	msg := `Cannot open log file <em>%s</em>
   Set <em>log.destination</em> to stderr to log without a file.`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot open log %s: %w",
			fn.Name(), path, err),
	}
}
