package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptSpeciesCacheFile sets the location of the species cache.
func OptSpeciesCacheFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Species Cache File", s) {
			c.Species.CacheFile = s
		}
	}
}

// OptSpeciesDelayMs sets the pause between name service requests.
// Zero disables the pause.
func OptSpeciesDelayMs(i int) Option {
	return func(c *Config) {
		if isValidNonNegative("Species Delay", i) {
			c.Species.DelayMs = i
		}
	}
}

// OptSpeciesSaveInterval sets the number of names between checkpoints.
func OptSpeciesSaveInterval(i int) Option {
	return func(c *Config) {
		if isValidInt("Species Save Interval", i) {
			c.Species.SaveInterval = i
		}
	}
}

// OptSpeciesCanonical sets whether names are sent to the name service
// in canonical form.
func OptSpeciesCanonical(b bool) Option {
	return func(c *Config) {
		c.Species.Canonical = b
	}
}

// OptLineageCacheFile sets the location of the lineage cache.
func OptLineageCacheFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Lineage Cache File", s) {
			c.Lineage.CacheFile = s
		}
	}
}

// OptLineageBatchSize sets the maximum number of taxon IDs per request.
func OptLineageBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Lineage Batch Size", i) {
			c.Lineage.BatchSize = i
		}
	}
}

// OptLineageDelayMs sets the pause after each lineage request.
// Zero disables the pause.
func OptLineageDelayMs(i int) Option {
	return func(c *Config) {
		if isValidNonNegative("Lineage Delay", i) {
			c.Lineage.DelayMs = i
		}
	}
}

// OptLineageSaveInterval sets the number of batches between checkpoints.
func OptLineageSaveInterval(i int) Option {
	return func(c *Config) {
		if isValidInt("Lineage Save Interval", i) {
			c.Lineage.SaveInterval = i
		}
	}
}

// OptServicesUniProtURL sets the base URL of UniProt REST API.
func OptServicesUniProtURL(s string) Option {
	s = strings.TrimRight(strings.TrimSpace(s), "/")
	return func(c *Config) {
		if isValidURL("UniProt URL", s) {
			c.Services.UniProtURL = s
		}
	}
}

// OptServicesEntrezURL sets the base URL of NCBI E-utilities.
func OptServicesEntrezURL(s string) Option {
	s = strings.TrimRight(strings.TrimSpace(s), "/")
	return func(c *Config) {
		if isValidURL("Entrez URL", s) {
			c.Services.EntrezURL = s
		}
	}
}

// OptServicesEmail sets the operator contact sent to NCBI.
func OptServicesEmail(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidEmail("Email", s) {
			c.Services.Email = s
		}
	}
}

// OptServicesTool sets the application name sent to NCBI.
func OptServicesTool(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Tool", s) {
			c.Services.Tool = s
		}
	}
}

// OptServicesAPIKey sets NCBI API key.
func OptServicesAPIKey(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("API Key", s) {
			c.Services.APIKey = s
		}
	}
}

// OptServicesTimeoutSec sets the HTTP request timeout in seconds.
func OptServicesTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("Services Timeout", i) {
			c.Services.TimeoutSec = i
		}
	}
}

// OptCacheBackend sets the cache backend.
// Valid values: "csv", "sqlite", "postgres".
func OptCacheBackend(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Cache.Backend", s) {
			c.Cache.Backend = s
		}
	}
}

// OptCacheRetryErrors sets whether entries with transient errors are
// queried again.
func OptCacheRetryErrors(b bool) Option {
	return func(c *Config) {
		c.Cache.RetryErrors = b
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptAnnotateInput sets the CSV file with search hits.
// Runtime-only field - not in ToOptions().
func OptAnnotateInput(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Input File", s) {
			c.Annotate.Input = s
		}
	}
}

// OptAnnotateOutput sets the CSV file for annotated hits.
// Runtime-only field - not in ToOptions().
func OptAnnotateOutput(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output File", s) {
			c.Annotate.Output = s
		}
	}
}

// OptAnnotateKnownTaxa sets the file with taxon IDs of known organisms.
// Runtime-only field - not in ToOptions().
func OptAnnotateKnownTaxa(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Known Taxa File", s) {
			c.Annotate.KnownTaxa = s
		}
	}
}

// OptAnnotateTaxonIDs sets the file for distinct resolved taxon IDs.
// Runtime-only field - not in ToOptions().
func OptAnnotateTaxonIDs(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Taxon IDs File", s) {
			c.Annotate.TaxonIDs = s
		}
	}
}

// OptAnnotateSpeciesColumn sets the name of the column with species names.
// Column names are not trimmed, they have to match the header exactly.
// Runtime-only field - not in ToOptions().
func OptAnnotateSpeciesColumn(s string) Option {
	return func(c *Config) {
		if isValidString("Species Column", s) {
			c.Annotate.SpeciesColumn = s
		}
	}
}

// OptAnnotateFlagColumn sets the name of the known organism flag column.
// Runtime-only field - not in ToOptions().
func OptAnnotateFlagColumn(s string) Option {
	return func(c *Config) {
		if isValidString("Flag Column", s) {
			c.Annotate.FlagColumn = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptWithProgress sets whether progress bars are shown.
// Runtime-only field - not in ToOptions().
func OptWithProgress(b bool) Option {
	return func(c *Config) {
		c.WithProgress = b
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
