package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
device: kitchen
capacity: 8
timeout: 20ms
log_level: debug
store:
  kind: file
  path: /tmp/kitchen.eeprom
  size: 256
bridge:
  listen: ":9100"
  advertise: true
events:
  path: events.plog
parameters:
  - {command: SPEED, kind: int, min: 0, max: 100, default: "50", persist: true}
  - {command: GAIN, kind: float, min: 0, max: 1, default: 0.25}
  - {command: NAME, kind: string, capacity: 16, default: kitchen, persist: true, address: 200}
  - {command: RESET, kind: trigger}
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "kitchen", cfg.Device)
	assert.Equal(t, 8, cfg.Capacity)
	assert.Equal(t, 20*time.Millisecond, cfg.Timeout)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, StoreConfig{Kind: StoreFile, Path: "/tmp/kitchen.eeprom", Size: 256}, cfg.Store)
	assert.Equal(t, 9100, cfg.BridgePort())
	assert.True(t, cfg.Bridge.Advertise)
	assert.Equal(t, "events.plog", cfg.Events.Path)

	require.Len(t, cfg.Parameters, 4)
	assert.Equal(t, "0.25", cfg.Parameters[1].Default, "numeric scalars decode as text")
	require.NotNil(t, cfg.Parameters[2].Address)
	assert.Equal(t, 200, *cfg.Parameters[2].Address)
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, StoreMemory, cfg.Store.Kind)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, 0, cfg.BridgePort())
}

func TestParseEmptyUsesDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero capacity", "capacity: -1"},
		{"bad timeout", "timeout: -5ms"},
		{"bad level", "log_level: loud"},
		{"unknown store", "store: {kind: flash}"},
		{"file without path", "store: {kind: file}"},
		{"zero store size", "store: {kind: memory, size: -1}"},
		{"empty command", "parameters: [{kind: int}]"},
		{"unknown kind", "parameters: [{command: X, kind: double}]"},
		{"min > max", "parameters: [{command: X, kind: int, min: 5, max: 1}]"},
		{"int overflow", "parameters: [{command: X, kind: int, min: 0, max: 40000}]"},
		{"fractional int bound", "parameters: [{command: X, kind: int, min: 0, max: 1.5}]"},
		{"default out of range", "parameters: [{command: X, kind: int, min: 0, max: 10, default: \"11\"}]"},
		{"fractional int default", "parameters: [{command: X, kind: int, min: 0, max: 10, default: \"5.7\"}]"},
		{"fractional long default", "parameters: [{command: X, kind: long, min: 0, max: 10, default: 2.5}]"},
		{"NaN default", "parameters: [{command: X, kind: float, min: 0, max: 1, default: NaN}]"},
		{"default not numeric", "parameters: [{command: X, kind: float, min: 0, max: 1, default: abc}]"},
		{"tiny string", "parameters: [{command: X, kind: string, capacity: 1}]"},
		{"long string default", "parameters: [{command: X, kind: string, capacity: 3, default: abc}]"},
		{"persisted trigger", "parameters: [{command: X, kind: trigger, persist: true}]"},
		{"address without persist", "parameters: [{command: X, kind: int, max: 1, address: 4}]"},
		{"duplicate", "parameters: [{command: X, kind: trigger}, {command: X, kind: trigger}]"},
		{"too many", "capacity: 1\nparameters: [{command: X, kind: trigger}, {command: Y, kind: trigger}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("capacity: [1, 2"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"ARDUPAR_LOG_LEVEL":     "warn",
		"ARDUPAR_STORE_KIND":    "sqlite",
		"ARDUPAR_STORE_PATH":    "/data/params.db",
		"ARDUPAR_BRIDGE_LISTEN": "127.0.0.1:9200",
		"ARDUPAR_TIMEOUT":       "75ms",
	}
	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))

	assert.Equal(t, slog.LevelWarn, cfg.Level())
	assert.Equal(t, StoreSQLite, cfg.Store.Kind)
	assert.Equal(t, "/data/params.db", cfg.Store.Path)
	assert.Equal(t, 9200, cfg.BridgePort())
	assert.Equal(t, 75*time.Millisecond, cfg.Timeout)

	bad := DefaultConfig()
	err := bad.ApplyEnv(func(k string) string {
		if k == "ARDUPAR_TIMEOUT" {
			return "soon"
		}
		return ""
	})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "kitchen", cfg.Device)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug, "INFO": slog.LevelInfo, "": slog.LevelInfo,
		"warning": slog.LevelWarn, "error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
