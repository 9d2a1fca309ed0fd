package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vgcspread.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("VGC_LOG_LEVEL", "")
	t.Setenv("VGC_LOG_FILE", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	t.Setenv("VGC_LOG_LEVEL", "")
	t.Setenv("VGC_LOG_FILE", "")
	path := writeConfig(t, `
engine:
  multi_threshold: 87.5
  parallel: false
  timeout: 5s
logging:
  level: DEBUG
database:
  dex_source: postgres
  host: db
  port: 5433
usage:
  chaos_path: data/gen9vgc2024regh-1760.json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 87.5, cfg.Engine.MultiThreshold)
	assert.Equal(t, 100.0, cfg.Engine.SingleThreshold)
	assert.False(t, cfg.Engine.Parallel)
	assert.Equal(t, 5*time.Second, cfg.Engine.Timeout)
	assert.Equal(t, 252, cfg.Engine.ThreatEVs)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, DexPostgres, cfg.Database.DexSource)
	assert.Equal(t, "postgres://vgcspread:vgcspread@db:5433/vgcspread?sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, "data/gen9vgc2024regh-1760.json", cfg.Usage.ChaosPath)
}

func TestLoad_EnvOverridesLogging(t *testing.T) {
	t.Setenv("VGC_LOG_LEVEL", "ERROR")
	t.Setenv("VGC_LOG_FILE", "")
	path := writeConfig(t, "logging:\n  level: DEBUG\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ERROR", cfg.Logging.Level)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		invalid bool
	}{
		{"bad yaml", "engine: [", false},
		{"threshold zero", "engine:\n  dual_threshold: 0\n", true},
		{"threshold above 100", "engine:\n  multi_threshold: 120\n", true},
		{"threat evs", "engine:\n  threat_evs: 300\n", true},
		{"dex source", "database:\n  dex_source: sqlite\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			if tt.invalid {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.Contains(t, err.Error(), "parsing config")
			}
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv(EnvPath, "")
	if got := Path(); got != DefaultPath {
		t.Errorf("Path() = %q, want %q", got, DefaultPath)
	}

	t.Setenv(EnvPath, "/etc/vgc.yaml")
	if got := Path(); got != "/etc/vgc.yaml" {
		t.Errorf("Path() = %q, want %q", got, "/etc/vgc.yaml")
	}
}
