package iocache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gnames/gnlineage/pkg/cache"
	_ "modernc.org/sqlite"
)

// sqliteStore keeps a cache in a table of a SQLite database. Species and
// lineage caches may share one database file.
type sqliteStore[K comparable, V any] struct {
	path  string
	table string
	db    *sql.DB
	codec cache.Codec[K, V]
}

// NewSQLite opens (or creates) a SQLite database and prepares the
// cache table.
func NewSQLite[K comparable, V any](
	path string,
	codec cache.Codec[K, V],
) (cache.Store[K, V], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, BackendError("sqlite", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, BackendError("sqlite", path, err)
	}
	// single writer
	db.SetMaxOpenConns(1)

	res := &sqliteStore[K, V]{
		path:  path,
		table: tableName(codec),
		db:    db,
		codec: codec,
	}
	if err = res.migrate(); err != nil {
		db.Close()
		return nil, BackendError("sqlite", path, err)
	}
	return res, nil
}

func (s *sqliteStore[K, V]) migrate() error {
	q := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
  id TEXT PRIMARY KEY,
  key TEXT NOT NULL,
  value TEXT,
  status TEXT NOT NULL,
  pos INTEGER NOT NULL
)`, s.table)
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return err
	}
	_, err := s.db.Exec(q)
	return err
}

// Load reads all rows in the order they were first saved.
func (s *sqliteStore[K, V]) Load(ctx context.Context) (*cache.Table[K, V], error) {
	q := fmt.Sprintf("SELECT key, value, status FROM %s ORDER BY pos", s.table)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, LoadError(s.location(), err)
	}
	defer rows.Close()

	res := cache.NewTable[K, V]()
	for rows.Next() {
		var rw row
		var value sql.NullString
		if err = rows.Scan(&rw.key, &value, &rw.status); err != nil {
			return nil, LoadError(s.location(), err)
		}
		rw.value = value.String
		k, e, err := decodeRow(s.codec, rw)
		if err != nil {
			return nil, LoadError(s.location(), err)
		}
		res.Set(k, e)
	}
	if err = rows.Err(); err != nil {
		return nil, LoadError(s.location(), err)
	}
	return res, nil
}

// Save upserts all entries of the table in one transaction.
func (s *sqliteStore[K, V]) Save(ctx context.Context, tbl *cache.Table[K, V]) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SaveError(s.location(), err)
	}
	defer tx.Rollback()

	q := fmt.Sprintf(`INSERT INTO %s (id, key, value, status, pos)
  VALUES (?, ?, ?, ?, ?)
  ON CONFLICT(id) DO UPDATE SET
    value = excluded.value, status = excluded.status, pos = excluded.pos`,
		s.table)
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return SaveError(s.location(), err)
	}
	defer stmt.Close()

	var pos int
	for k, e := range tbl.All() {
		rw := encodeRow(s.codec, k, e)
		value := sql.NullString{String: rw.value, Valid: e.Status == cache.StatusResolved}
		_, err = stmt.ExecContext(ctx, rowID(rw.key), rw.key, value, rw.status, pos)
		if err != nil {
			return SaveError(s.location(), err)
		}
		pos++
	}

	if err = tx.Commit(); err != nil {
		return SaveError(s.location(), err)
	}
	return nil
}

// Close closes the database.
func (s *sqliteStore[K, V]) Close() error {
	if err := s.db.Close(); err != nil {
		return CloseError(s.location(), err)
	}
	return nil
}

func (s *sqliteStore[K, V]) location() string {
	return s.path + "#" + s.table
}

func tableName[K comparable, V any](codec cache.Codec[K, V]) string {
	return codec.Kind + "_cache"
}
