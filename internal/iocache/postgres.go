package iocache

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gnames/gnlineage/pkg/cache"
	"github.com/gnames/gnlineage/pkg/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CacheRow is the schema of cache tables in PostgreSQL.
type CacheRow struct {
	// ID is UUID v5 generated from the key.
	ID string `gorm:"type:uuid;primaryKey"`
	// Key is the text form of a cache key.
	Key string `gorm:"type:text;not null"`
	// Value is the text form of a resolved value, NULL otherwise.
	Value sql.NullString `gorm:"type:text"`
	// Status is one of "resolved", "not_found", "error".
	Status string `gorm:"type:varchar(16);not null"`
	// Pos keeps the insertion order of the cache.
	Pos int `gorm:"not null;index"`
}

// pgStore keeps a cache in a PostgreSQL table.
type pgStore[K comparable, V any] struct {
	dbName string
	table  string
	pool   *pgxpool.Pool
	codec  cache.Codec[K, V]
}

// NewPostgres connects to PostgreSQL, creates the cache table if it does
// not exist, and returns a store.
func NewPostgres[K comparable, V any](
	ctx context.Context,
	cfg *config.DatabaseConfig,
	codec cache.Codec[K, V],
) (cache.Store[K, V], error) {
	table := tableName(codec)
	dsn := dsn(cfg)

	if err := migratePostgres(dsn, table); err != nil {
		return nil, err
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, ConnectionError(cfg.Host, cfg.Port, cfg.Database, cfg.User, err)
	}
	// resolvers are single-threaded
	poolConfig.MaxConns = 2
	poolConfig.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, ConnectionError(cfg.Host, cfg.Port, cfg.Database, cfg.User, err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, ConnectionError(cfg.Host, cfg.Port, cfg.Database, cfg.User, err)
	}

	res := &pgStore[K, V]{
		dbName: cfg.Database,
		table:  table,
		pool:   pool,
		codec:  codec,
	}
	return res, nil
}

func dsn(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)
}

// migratePostgres creates or updates the cache table with GORM AutoMigrate.
func migratePostgres(dsn, table string) error {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return SchemaError(table, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return SchemaError(table, err)
	}
	defer sqlDB.Close()

	if err = db.Table(table).AutoMigrate(&CacheRow{}); err != nil {
		return SchemaError(table, err)
	}
	return nil
}

// Load reads all rows ordered by their position.
func (s *pgStore[K, V]) Load(ctx context.Context) (*cache.Table[K, V], error) {
	q := fmt.Sprintf("SELECT key, value, status FROM %s ORDER BY pos", s.table)
	rows, err := s.pool.Query(ctx, q)
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

// Save upserts all entries in one transaction using a pgx batch.
func (s *pgStore[K, V]) Save(ctx context.Context, tbl *cache.Table[K, V]) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return SaveError(s.location(), err)
	}
	defer tx.Rollback(ctx)

	q := fmt.Sprintf(`INSERT INTO %s (id, key, value, status, pos)
  VALUES ($1, $2, $3, $4, $5)
  ON CONFLICT (id) DO UPDATE SET
    value = EXCLUDED.value, status = EXCLUDED.status, pos = EXCLUDED.pos`,
		s.table)

	batch := &pgx.Batch{}
	var pos int
	for k, e := range tbl.All() {
		rw := encodeRow(s.codec, k, e)
		var value *string
		if e.Status == cache.StatusResolved {
			value = &rw.value
		}
		batch.Queue(q, rowID(rw.key), rw.key, value, rw.status, pos)
		pos++
	}

	if batch.Len() > 0 {
		if err = tx.SendBatch(ctx, batch).Close(); err != nil {
			return SaveError(s.location(), err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return SaveError(s.location(), err)
	}
	return nil
}

// Close releases database connections.
func (s *pgStore[K, V]) Close() error {
	s.pool.Close()
	return nil
}

func (s *pgStore[K, V]) location() string {
	return s.dbName + "." + s.table
}
