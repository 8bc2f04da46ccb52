package iocache

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gnames/gnlineage/pkg/cache"
)

const statusColumn = "Status"

// csvStore keeps a cache in a CSV file with a header
// "<key>,<value>,Status". Files without the status column, written by
// older tools, are accepted on load.
type csvStore[K comparable, V any] struct {
	path  string
	codec cache.Codec[K, V]
}

// NewCSV creates a CSV-backed cache store. The file does not have to
// exist.
func NewCSV[K comparable, V any](
	path string,
	codec cache.Codec[K, V],
) cache.Store[K, V] {
	return &csvStore[K, V]{path: path, codec: codec}
}

// Load reads the CSV file. A missing or empty file gives an empty table.
func (s *csvStore[K, V]) Load(_ context.Context) (*cache.Table[K, V], error) {
	res := cache.NewTable[K, V]()

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return res, nil
	}
	if err != nil {
		return nil, LoadError(s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return res, nil
	}
	if err != nil {
		return nil, LoadError(s.path, err)
	}
	if len(header) < 2 {
		err = fmt.Errorf("header needs at least 2 columns, got %d", len(header))
		return nil, LoadError(s.path, err)
	}
	hasStatus := len(header) > 2 && header[2] == statusColumn

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, LoadError(s.path, err)
		}
		if len(rec) < 2 {
			line, _ := r.FieldPos(0)
			err = fmt.Errorf("line %d has %d fields", line, len(rec))
			return nil, LoadError(s.path, err)
		}

		rw := row{key: rec[0], value: rec[1]}
		if hasStatus && len(rec) > 2 {
			rw.status = rec[2]
		}
		k, e, err := decodeRow(s.codec, rw)
		if err != nil {
			line, _ := r.FieldPos(0)
			return nil, LoadError(s.path, fmt.Errorf("line %d: %w", line, err))
		}
		res.Set(k, e)
	}

	return res, nil
}

// Save writes the table to a temporary file next to the cache and
// renames it, so an interrupted save leaves the previous checkpoint intact.
func (s *csvStore[K, V]) Save(_ context.Context, tbl *cache.Table[K, V]) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return SaveError(s.path, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return SaveError(s.path, err)
	}
	defer os.Remove(tmp.Name())

	if err = s.write(tmp, tbl); err != nil {
		tmp.Close()
		return SaveError(s.path, err)
	}
	if err = tmp.Close(); err != nil {
		return SaveError(s.path, err)
	}
	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return SaveError(s.path, err)
	}
	return nil
}

func (s *csvStore[K, V]) write(f *os.File, tbl *cache.Table[K, V]) error {
	w := csv.NewWriter(f)
	err := w.Write([]string{s.codec.KeyName, s.codec.ValueName, statusColumn})
	if err != nil {
		return err
	}

	for k, e := range tbl.All() {
		rw := encodeRow(s.codec, k, e)
		if err = w.Write([]string{rw.key, rw.value, rw.status}); err != nil {
			return err
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return err
	}
	return f.Sync()
}

// Close is a no-op, files are closed after every operation.
func (s *csvStore[K, V]) Close() error {
	return nil
}
