package iologger_test

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/internal/iologger"
	"github.com/gnames/gnlineage/pkg/config"
	"github.com/gnames/gnlineage/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFile(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	dir := t.TempDir()
	cfg := config.LogConfig{Format: "json", Level: "warn", Destination: "file"}

	require.NoError(t, iologger.Init(dir, cfg, false))
	slog.Info("hidden")
	slog.Warn("first run")

	require.NoError(t, iologger.Init(dir, cfg, true))
	slog.Warn("second run")

	data, err := os.ReadFile(filepath.Join(dir, iologger.LogFile))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), `"msg":"first run"`)
	assert.Contains(t, string(data), `"msg":"second run"`)

	require.NoError(t, iologger.Init(dir, cfg, false))
	data, err = os.ReadFile(filepath.Join(dir, iologger.LogFile))
	require.NoError(t, err)
	assert.Empty(t, data, "log is truncated without append")
}

func TestInitError(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	cfg := config.LogConfig{Destination: "file"}
	err := iologger.Init(filepath.Join(t.TempDir(), "none"), cfg, false)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.CreateLogFileError, gnErr.Code)
}
