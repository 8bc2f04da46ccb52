// Package iohits reads hit tables and known organism lists, and writes
// annotated tables.
package iohits

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gnames/gnlineage/pkg/annotate"
)

// Read loads a CSV hit table. The first row is the header. Rows may have
// a different number of fields than the header.
func Read(path string) (*annotate.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	defer f.Close()

	res, err := decode(f)
	if err != nil {
		return nil, ReadError(path, err)
	}
	return res, nil
}

func decode(r io.Reader) (*annotate.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("file is empty")
	}
	if err != nil {
		return nil, err
	}

	res := &annotate.Table{Header: header}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}

// Write saves a table as CSV. The output directory is created if needed.
func Write(path string, tbl *annotate.Table) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return WriteError(path, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return WriteError(path, err)
	}

	if err = encode(f, tbl); err != nil {
		f.Close()
		return WriteError(path, err)
	}
	if err = f.Close(); err != nil {
		return WriteError(path, err)
	}
	return nil
}

func encode(w io.Writer, tbl *annotate.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tbl.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(tbl.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// SpeciesNames returns distinct non-empty values of a column in the
// order of their first appearance.
func SpeciesNames(tbl *annotate.Table, column string) ([]string, error) {
	idx := tbl.Column(column)
	if idx < 0 {
		return nil, annotate.MissingColumnError(column)
	}

	seen := make(map[string]struct{})
	var res []string
	for _, row := range tbl.Rows {
		if idx >= len(row) || row[idx] == "" {
			continue
		}
		if _, ok := seen[row[idx]]; ok {
			continue
		}
		seen[row[idx]] = struct{}{}
		res = append(res, row[idx])
	}
	return res, nil
}

// LoadKnownTaxa reads taxon IDs, one per line. Blank lines and lines
// starting with '#' are skipped. An empty path gives an empty set.
func LoadKnownTaxa(path string) (map[int]struct{}, error) {
	res := make(map[int]struct{})
	if path == "" {
		return res, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, KnownTaxaError(path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	var line int
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		id, err := strconv.Atoi(s)
		if err != nil || id <= 0 {
			err = fmt.Errorf("line %d: '%s' is not a taxon ID", line, s)
			return nil, KnownTaxaError(path, err)
		}
		res[id] = struct{}{}
	}
	if err = sc.Err(); err != nil {
		return nil, KnownTaxaError(path, err)
	}
	return res, nil
}

// WriteTaxonIDs saves taxon IDs one per line.
func WriteTaxonIDs(path string, ids []int) error {
	var sb strings.Builder
	for _, id := range ids {
		sb.WriteString(strconv.Itoa(id))
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return WriteError(path, err)
	}
	return nil
}
