package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/xraph/vesselx/manifest"
)

const testManifest = `
services:
  - key: cache
    provider: memory-cache
    as: [kv]
  - key: db
    provider: postgres
    lifetime: scoped
  - key: db
    provider: sqlite
entrypoints:
  - key: ticker
    provider: ticker
`

func writeManifest(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testManifest), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, Version)
}

func TestValidate(t *testing.T) {
	path := writeManifest(t)

	out, err := run(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "4 bindings ok")
}

func TestValidate_FromEnv(t *testing.T) {
	t.Setenv(manifestEnv, writeManifest(t))

	out, err := run(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "bindings ok")
}

func TestValidate_NoManifest(t *testing.T) {
	t.Setenv(manifestEnv, "")

	_, err := run(t, "validate")
	assert.Error(t, err)
}

func TestPlan_Text(t *testing.T) {
	out, err := run(t, "plan", writeManifest(t), "--existing", "kv")
	require.NoError(t, err)

	assert.Contains(t, out, "= services     cache, kv (skipped, taken by kv)")
	assert.Contains(t, out, "+ services     db (postgres, scoped)")
	assert.Contains(t, out, "= services     db (skipped, taken by db)")
	assert.Contains(t, out, "+ entrypoints  ticker (ticker, singleton)")
	assert.Contains(t, out, "2 to register, 2 skipped")
}

func TestPlan_JSON(t *testing.T) {
	out, err := run(t, "plan", writeManifest(t), "-o", "json")
	require.NoError(t, err)

	var report manifest.Report
	require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal([]byte(out), &report))
	assert.Equal(t, []string{"cache", "db", "ticker"}, report.Registered())
	assert.Equal(t, []string{"db"}, report.Skipped())
}

func TestPlan_YAML(t *testing.T) {
	out, err := run(t, "plan", writeManifest(t), "--output", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "outcome: registered")
	assert.Contains(t, out, "taken: db")
}

func TestPlan_UnknownFormat(t *testing.T) {
	_, err := run(t, "plan", writeManifest(t), "-o", "xml")
	assert.Error(t, err)
}

func TestLoggerConfig(t *testing.T) {
	prod := loggerConfig(zapcore.WarnLevel)
	assert.False(t, prod.Development)
	assert.Equal(t, "json", prod.Encoding)
	assert.Equal(t, zapcore.WarnLevel, prod.Level.Level())
	assert.Equal(t, []string{"stderr"}, prod.OutputPaths)

	dev := loggerConfig(zapcore.DebugLevel)
	assert.True(t, dev.Development)
	assert.Equal(t, "console", dev.Encoding)
	assert.Equal(t, zapcore.DebugLevel, dev.Level.Level())
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("info")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = newLogger("loud")
	assert.Error(t, err)
}
