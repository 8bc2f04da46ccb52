// Package config provides configuration management for gnlineage.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Species: cache_file, delay_ms, save_interval, canonical
//   - Lineage: cache_file, batch_size, delay_ms, save_interval
//   - Services: uniprot_url, entrez_url, email, tool, api_key, timeout_sec
//   - Cache: backend, retry_errors
//   - Database: host, port, user, password, database, ssl_mode
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - Annotate.Input, Output, KnownTaxa, TaxonIDs, SpeciesColumn, FlagColumn
//   - WithProgress
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNLINEAGE_ prefix with underscores for nesting:
//
//	GNLINEAGE_SERVICES_EMAIL=me@example.org
//	GNLINEAGE_LINEAGE_BATCH_SIZE=100
//	GNLINEAGE_CACHE_BACKEND=sqlite
//	GNLINEAGE_LOG_LEVEL=info
package config

import (
	"path/filepath"
	"strings"
)

// Config represents the complete gnlineage configuration.
type Config struct {
	// Species contains settings of the species name to taxon ID resolver.
	Species SpeciesConfig `mapstructure:"species" yaml:"species"`

	// Lineage contains settings of the taxon ID to lineage resolver.
	Lineage LineageConfig `mapstructure:"lineage" yaml:"lineage"`

	// Services contains settings of external taxonomic services.
	Services ServicesConfig `mapstructure:"services" yaml:"services"`

	// Cache selects where resolution caches are persisted.
	Cache CacheConfig `mapstructure:"cache" yaml:"cache"`

	// Database contains PostgreSQL connection settings, used only by
	// the postgres cache backend.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Annotate contains settings specific to the annotate command.
	Annotate AnnotateConfig `mapstructure:"annotate" yaml:"annotate"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// WithProgress shows progress bars during resolution.
	WithProgress bool

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// SpeciesConfig contains settings of the species resolver.
type SpeciesConfig struct {
	// CacheFile is the location of the species to taxon ID cache.
	// Relative paths are resolved against the cache directory. With the
	// sqlite backend a ".csv" extension is replaced by ".db".
	CacheFile string `mapstructure:"cache_file" yaml:"cache_file"`

	// DelayMs is a pause in milliseconds between consecutive requests
	// to the name service. It is a rate limit, not a retry backoff.
	DelayMs int `mapstructure:"delay_ms" yaml:"delay_ms"`

	// SaveInterval is the number of resolved names between checkpoints.
	SaveInterval int `mapstructure:"save_interval" yaml:"save_interval"`

	// Canonical is true if names are sent to the service in their
	// canonical form (without authors, strains etc.). Cache keys always
	// keep the original name.
	Canonical bool `mapstructure:"canonical" yaml:"canonical"`
}

// LineageConfig contains settings of the lineage resolver.
type LineageConfig struct {
	// CacheFile is the location of the taxon ID to lineage cache.
	// Relative paths are resolved against the cache directory.
	CacheFile string `mapstructure:"cache_file" yaml:"cache_file"`

	// BatchSize is the maximum number of taxon IDs per batch request.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// DelayMs is a pause in milliseconds after each batch request and
	// each single fallback request.
	DelayMs int `mapstructure:"delay_ms" yaml:"delay_ms"`

	// SaveInterval is the number of batches between checkpoints.
	SaveInterval int `mapstructure:"save_interval" yaml:"save_interval"`
}

// ServicesConfig describes external lookup services.
type ServicesConfig struct {
	// UniProtURL is the base URL of UniProt REST API.
	UniProtURL string `mapstructure:"uniprot_url" yaml:"uniprot_url"`

	// EntrezURL is the base URL of NCBI E-utilities.
	EntrezURL string `mapstructure:"entrez_url" yaml:"entrez_url"`

	// Email is the operator contact required by NCBI usage policy.
	Email string `mapstructure:"email" yaml:"email"`

	// Tool is the name of the application reported to NCBI.
	Tool string `mapstructure:"tool" yaml:"tool"`

	// APIKey is an optional NCBI API key, it raises the rate limit.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`

	// TimeoutSec limits the duration of one HTTP request.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	// Backend is one of "csv", "sqlite", "postgres".
	Backend string `mapstructure:"backend" yaml:"backend"`

	// RetryErrors is true if entries that failed with transient errors
	// are queried again. Entries not found by a service are never
	// queried again.
	RetryErrors bool `mapstructure:"retry_errors" yaml:"retry_errors"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// AnnotateConfig contains settings specific to the annotate command.
type AnnotateConfig struct {
	// Input is a CSV file with search hits.
	Input string `mapstructure:"input" yaml:"input"`

	// Output is a CSV file for annotated hits.
	Output string `mapstructure:"output" yaml:"output"`

	// KnownTaxa is a file with taxon IDs of known organisms, one per line.
	// Empty value means no known organisms.
	KnownTaxa string `mapstructure:"known_taxa" yaml:"known_taxa"`

	// TaxonIDs is an optional file for distinct resolved taxon IDs of the
	// hit table, one per line.
	TaxonIDs string `mapstructure:"taxon_ids" yaml:"taxon_ids"`

	// SpeciesColumn is the name of the input column with species names.
	SpeciesColumn string `mapstructure:"species_column" yaml:"species_column"`

	// FlagColumn is the name of the output column with known organism flag.
	FlagColumn string `mapstructure:"flag_column" yaml:"flag_column"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Species: SpeciesConfig{
			CacheFile:    "species_to_taxon.csv",
			DelayMs:      2000,
			SaveInterval: 50,
		},
		Lineage: LineageConfig{
			CacheFile:    "taxon_to_lineage.csv",
			BatchSize:    100,
			DelayMs:      1000,
			SaveInterval: 5,
		},
		Services: ServicesConfig{
			UniProtURL: "https://rest.uniprot.org",
			EntrezURL:  "https://eutils.ncbi.nlm.nih.gov/entrez/eutils",
			Tool:       AppName,
			TimeoutSec: 60,
		},
		Cache: CacheConfig{
			Backend: "csv",
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "gnlineage",
			SSLMode:  "disable",
		},
		Annotate: AnnotateConfig{
			SpeciesColumn: "taxname/species",
			FlagColumn:    "KnownOrganism",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		WithProgress: true,
	}

	return res
}

// SpeciesCachePath returns the location of the species cache.
func (c *Config) SpeciesCachePath() string {
	return c.cachePath(c.Species.CacheFile)
}

// LineageCachePath returns the location of the lineage cache.
func (c *Config) LineageCachePath() string {
	return c.cachePath(c.Lineage.CacheFile)
}

// cachePath resolves relative files against the cache directory. The
// sqlite backend never opens CSV caches: a ".csv" file name gets ".db"
// extension instead.
func (c *Config) cachePath(file string) string {
	if c.Cache.Backend == "sqlite" && strings.EqualFold(filepath.Ext(file), ".csv") {
		file = strings.TrimSuffix(file, filepath.Ext(file)) + ".db"
	}
	if filepath.IsAbs(file) || c.HomeDir == "" {
		return file
	}
	return filepath.Join(CacheDir(c.HomeDir), file)
}
