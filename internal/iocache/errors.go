package iocache

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/pkg/errcode"
)

// LoadError is returned when a persisted cache cannot be read.
func LoadError(location string, err error) error {
	msg := `Cannot read cache <em>%s</em>

<em>Possible causes:</em>
  - File is corrupted or was edited by hand
  - Permission denied
  - Database is not reachable`
	vars := []any{location}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CacheLoadError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot load cache %s: %w",
			fn.Name(), location, err),
	}
}

// SaveError is returned when a cache checkpoint cannot be written.
// Resolution cannot continue without reliable checkpoints.
func SaveError(location string, err error) error {
	msg := `Cannot save cache <em>%s</em>, aborting`
	vars := []any{location}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CacheSaveError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot save cache %s: %w",
			fn.Name(), location, err),
	}
}

// CloseError is returned when a cache backend fails to release resources.
func CloseError(location string, err error) error {
	msg := `Cannot close cache <em>%s</em>`
	vars := []any{location}
	return &gn.Error{
		Code: errcode.CacheCloseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot close cache %s: %w", location, err),
	}
}

// BackendError is returned when a cache backend cannot be opened.
func BackendError(backend, location string, err error) error {
	msg := `Cannot open <em>%s</em> cache at <em>%s</em>`
	vars := []any{backend, location}
	return &gn.Error{
		Code: errcode.CacheBackendError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("cannot open %s cache %s: %w",
			backend, location, err),
	}
}

// ConnectionError is returned when PostgreSQL is not reachable.
func ConnectionError(host string, port int, database, user string, err error) error {
	msg := `Cannot connect to PostgreSQL database

<em>Host:</em> %s
<em>Port:</em> %d
<em>Database:</em> %s
<em>User:</em> %s

<em>How to fix:</em>
  1. Check that PostgreSQL is running
  2. Verify database settings in config.yaml or GNLINEAGE_DATABASE_* variables
  3. Create the database if it does not exist`
	vars := []any{host, port, database, user}
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot connect to database: %w", err),
	}
}

// SchemaError is returned when a cache table cannot be created.
func SchemaError(table string, err error) error {
	msg := `Cannot create cache table <em>%s</em>`
	vars := []any{table}
	return &gn.Error{
		Code: errcode.DBSchemaError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot migrate table %s: %w", table, err),
	}
}
