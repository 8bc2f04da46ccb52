package config

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, Annotate, WithProgress).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int

	s = c.Species.CacheFile
	if s != "" {
		res = append(res, OptSpeciesCacheFile(s))
	}
	i = c.Species.DelayMs
	if i >= 0 {
		res = append(res, OptSpeciesDelayMs(i))
	}
	i = c.Species.SaveInterval
	if i > 0 {
		res = append(res, OptSpeciesSaveInterval(i))
	}
	res = append(res, OptSpeciesCanonical(c.Species.Canonical))

	s = c.Lineage.CacheFile
	if s != "" {
		res = append(res, OptLineageCacheFile(s))
	}
	i = c.Lineage.BatchSize
	if i > 0 {
		res = append(res, OptLineageBatchSize(i))
	}
	i = c.Lineage.DelayMs
	if i >= 0 {
		res = append(res, OptLineageDelayMs(i))
	}
	i = c.Lineage.SaveInterval
	if i > 0 {
		res = append(res, OptLineageSaveInterval(i))
	}

	s = c.Services.UniProtURL
	if s != "" {
		res = append(res, OptServicesUniProtURL(s))
	}
	s = c.Services.EntrezURL
	if s != "" {
		res = append(res, OptServicesEntrezURL(s))
	}
	s = c.Services.Email
	if s != "" {
		res = append(res, OptServicesEmail(s))
	}
	s = c.Services.Tool
	if s != "" {
		res = append(res, OptServicesTool(s))
	}
	s = c.Services.APIKey
	if s != "" {
		res = append(res, OptServicesAPIKey(s))
	}
	i = c.Services.TimeoutSec
	if i > 0 {
		res = append(res, OptServicesTimeoutSec(i))
	}

	s = c.Cache.Backend
	if s != "" {
		res = append(res, OptCacheBackend(s))
	}
	res = append(res, OptCacheRetryErrors(c.Cache.RetryErrors))

	s = c.Database.Host
	if s != "" {
		res = append(res, OptDatabaseHost(s))
	}
	i = c.Database.Port
	if i > 0 {
		res = append(res, OptDatabasePort(i))
	}
	s = c.Database.User
	if s != "" {
		res = append(res, OptDatabaseUser(s))
	}
	s = c.Database.Password
	if s != "" {
		res = append(res, OptDatabasePassword(s))
	}
	s = c.Database.Database
	if s != "" {
		res = append(res, OptDatabaseDatabase(s))
	}
	s = c.Database.SSLMode
	if s != "" {
		res = append(res, OptDatabaseSSLMode(s))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidNonNegative(name string, i int) bool {
	res := i >= 0
	if !res {
		gn.Warn("<em>%s</em> cannot be negative, ignoring %d", name, i)
	}
	return res
}

func isValidURL(name, s string) bool {
	u, err := url.Parse(s)
	res := err == nil && (u.Scheme == "http" || u.Scheme == "https") &&
		u.Host != ""
	if !res {
		gn.Warn("<em>%s</em> is not a valid http(s) URL, ignoring '%s'", name, s)
	}
	return res
}

func isValidEmail(name, s string) bool {
	at := strings.Index(s, "@")
	res := at > 0 && at < len(s)-1 && !strings.ContainsAny(s, " \t")
	if !res {
		gn.Warn("<em>%s</em> is not a valid email, ignoring '%s'", name, s)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Cache.Backend": {"csv": s, "sqlite": s, "postgres": s},
		"Database.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
