// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"errors"
	"os"
	"strconv"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/internal/iofs"
	"github.com/gnames/gnlineage/pkg/config"
	"github.com/gnames/gnlineage/pkg/errcode"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "gnlineage_test"
)

// TempHome creates a temporary home directory with gnlineage config,
// cache and log directories, and the default config file.
func TempHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	if err := iofs.EnsureDirs(home); err != nil {
		t.Fatalf("Failed to create gnlineage dirs: %v", err)
	}
	if err := iofs.EnsureConfigFile(home); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}
	return home
}

// PostgresConfig returns a configuration for integration tests of the
// postgres cache backend. Connection settings come from GNLINEAGE_DATABASE_*
// environment variables or defaults, the database is always
// TestDatabaseName. The test is skipped in short mode.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    cfg := iotesting.PostgresConfig(t)
//	    store, err := iocache.NewLineageStore(ctx, cfg)
//	    iotesting.SkipUnavailable(t, err)
//	    ...
//	}
func PostgresConfig(t *testing.T) *config.Config {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping PostgreSQL integration test in short mode")
	}

	opts := []config.Option{
		config.OptHomeDir(TempHome(t)),
		config.OptCacheBackend("postgres"),
		config.OptWithProgress(false),
	}
	if s := os.Getenv("GNLINEAGE_DATABASE_HOST"); s != "" {
		opts = append(opts, config.OptDatabaseHost(s))
	}
	if s := os.Getenv("GNLINEAGE_DATABASE_PORT"); s != "" {
		if port, err := strconv.Atoi(s); err == nil {
			opts = append(opts, config.OptDatabasePort(port))
		}
	}
	if s := os.Getenv("GNLINEAGE_DATABASE_USER"); s != "" {
		opts = append(opts, config.OptDatabaseUser(s))
	}
	if s := os.Getenv("GNLINEAGE_DATABASE_PASSWORD"); s != "" {
		opts = append(opts, config.OptDatabasePassword(s))
	}

	// Always use test database for safety
	opts = append(opts, config.OptDatabaseDatabase(TestDatabaseName))

	cfg := config.New()
	cfg.Update(opts)
	return cfg
}

// SkipUnavailable skips the test if err says PostgreSQL cannot be reached.
func SkipUnavailable(t *testing.T, err error) {
	t.Helper()
	var gnErr *gn.Error
	if errors.As(err, &gnErr) &&
		(gnErr.Code == errcode.DBConnectionError ||
			gnErr.Code == errcode.DBSchemaError) {
		t.Skipf("PostgreSQL is not available: %v", err)
	}
}
