/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/internal/iofs"
	"github.com/gnames/gnlineage/internal/iologger"
	app "github.com/gnames/gnlineage/pkg"
	"github.com/gnames/gnlineage/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd creates the root command with all subcommands.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "gnlineage",
		Short:   "GNlineage annotates search hits with taxonomic lineages",
		Long: `GNlineage adds taxonomic information to tables of sequence or
structure similarity hits (for example Foldseek results).

Species names of hits are resolved to NCBI taxon IDs with UniProt,
taxon IDs are resolved to lineages with NCBI Taxonomy, and lineages are
split into ranks from superkingdom to species. Hits of organisms from a
list of known taxa are flagged.

All lookups are cached (CSV files, SQLite or PostgreSQL), interrupted
runs continue where they stopped, and cached names are never sent to
the services again.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GNLINEAGE_*)
  3. Config file (~/.config/gnlineage/config.yaml)
  4. Built-in defaults

Environment variables use underscores for nesting, for example
  GNLINEAGE_SERVICES_EMAIL    contact email for NCBI
  GNLINEAGE_CACHE_BACKEND     csv, sqlite or postgres
  GNLINEAGE_LOG_LEVEL         debug, info, warn, error`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "gnlineage version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gnlineage")

	rootCmd.AddCommand(
		getAnnotateCmd(),
		getSpeciesCmd(),
		getLineageCmd(),
		getRanksCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings, keeping bootstrap records
	if err = iologger.Init(config.LogDir(homeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"cache_backend", cfg.Cache.Backend,
	)
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	versionFlag(cmd)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("GNLINEAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Species resolver
	v.BindEnv("species.cache_file", "GNLINEAGE_SPECIES_CACHE_FILE")
	v.BindEnv("species.delay_ms", "GNLINEAGE_SPECIES_DELAY_MS")
	v.BindEnv("species.save_interval", "GNLINEAGE_SPECIES_SAVE_INTERVAL")
	v.BindEnv("species.canonical", "GNLINEAGE_SPECIES_CANONICAL")

	// Lineage resolver
	v.BindEnv("lineage.cache_file", "GNLINEAGE_LINEAGE_CACHE_FILE")
	v.BindEnv("lineage.batch_size", "GNLINEAGE_LINEAGE_BATCH_SIZE")
	v.BindEnv("lineage.delay_ms", "GNLINEAGE_LINEAGE_DELAY_MS")
	v.BindEnv("lineage.save_interval", "GNLINEAGE_LINEAGE_SAVE_INTERVAL")

	// External services
	v.BindEnv("services.uniprot_url", "GNLINEAGE_SERVICES_UNIPROT_URL")
	v.BindEnv("services.entrez_url", "GNLINEAGE_SERVICES_ENTREZ_URL")
	v.BindEnv("services.email", "GNLINEAGE_SERVICES_EMAIL")
	v.BindEnv("services.tool", "GNLINEAGE_SERVICES_TOOL")
	v.BindEnv("services.api_key", "GNLINEAGE_SERVICES_API_KEY")
	v.BindEnv("services.timeout_sec", "GNLINEAGE_SERVICES_TIMEOUT_SEC")

	// Cache
	v.BindEnv("cache.backend", "GNLINEAGE_CACHE_BACKEND")
	v.BindEnv("cache.retry_errors", "GNLINEAGE_CACHE_RETRY_ERRORS")

	// Database configuration (postgres backend)
	v.BindEnv("database.host", "GNLINEAGE_DATABASE_HOST")
	v.BindEnv("database.port", "GNLINEAGE_DATABASE_PORT")
	v.BindEnv("database.user", "GNLINEAGE_DATABASE_USER")
	v.BindEnv("database.password", "GNLINEAGE_DATABASE_PASSWORD")
	v.BindEnv("database.database", "GNLINEAGE_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "GNLINEAGE_DATABASE_SSL_MODE")

	// Log configuration
	v.BindEnv("log.level", "GNLINEAGE_LOG_LEVEL")
	v.BindEnv("log.format", "GNLINEAGE_LOG_FORMAT")
	v.BindEnv("log.destination", "GNLINEAGE_LOG_DESTINATION")

	v.AutomaticEnv()
}
