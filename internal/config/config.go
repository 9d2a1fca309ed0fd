package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/vgcspread/internal/logger"
)

var ErrInvalidConfig = errors.New("invalid config")

// EnvPath names the env var holding the config file path.
const EnvPath = "VGC_CONFIG"

// DefaultPath is used when VGC_CONFIG is empty.
const DefaultPath = "config/vgcspread.yaml"

// Dex sources.
const (
	DexEmbedded = "embedded"
	DexPostgres = "postgres"
)

// Config holds all configuration for the engine and its adapters.
type Config struct {
	Engine   EngineConfig   `yaml:"engine"`
	Logging  logger.Config  `yaml:"logging"`
	Database DatabaseConfig `yaml:"database"`
	Usage    UsageConfig    `yaml:"usage"`
}

// EngineConfig tunes the spread optimizer.
type EngineConfig struct {
	// Survival thresholds in percent, per mode.
	SingleThreshold float64 `yaml:"single_threshold"`
	DualThreshold   float64 `yaml:"dual_threshold"`
	MultiThreshold  float64 `yaml:"multi_threshold"`

	// Nature candidates are evaluated on up to MaxWorkers goroutines.
	Parallel   bool `yaml:"parallel"`
	MaxWorkers int  `yaml:"max_workers"`

	ThreatEVs int           `yaml:"threat_evs"` // offensive EVs of a threat without usage data
	Timeout   time.Duration `yaml:"timeout"`    // 0 = no deadline
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	// DexSource picks where species and moves come from: embedded | postgres.
	DexSource string `yaml:"dex_source"`

	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
	MaxConns int32  `yaml:"max_conns"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// UsageConfig points at Smogon chaos usage statistics.
type UsageConfig struct {
	// ChaosPath is a chaos JSON file; empty disables usage data.
	ChaosPath string `yaml:"chaos_path"`
}

// Default returns the config used when no file exists.
func Default() Config {
	return Config{
		Engine: EngineConfig{
			SingleThreshold: 100,
			DualThreshold:   100,
			MultiThreshold:  93.75,
			Parallel:        true,
			MaxWorkers:      runtime.GOMAXPROCS(0),
			ThreatEVs:       252,
		},
		Logging: logger.Default(),
		Database: DatabaseConfig{
			DexSource: DexEmbedded,
			Host:      "127.0.0.1",
			Port:      5432,
			User:      "vgcspread",
			Password:  "vgcspread",
			DBName:    "vgcspread",
			SSLMode:   "disable",
			MaxConns:  4,
		},
	}
}

// Path returns the config file path from VGC_CONFIG or DefaultPath.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

// Load loads config from a YAML file over the defaults.
// If the file doesn't exist, returns defaults. Logging env overrides are
// applied either way.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.Logging = cfg.Logging.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	for name, v := range map[string]float64{
		"single_threshold": c.Engine.SingleThreshold,
		"dual_threshold":   c.Engine.DualThreshold,
		"multi_threshold":  c.Engine.MultiThreshold,
	} {
		if v <= 0 || v > 100 {
			return fmt.Errorf("engine.%s %g not in (0, 100]: %w", name, v, ErrInvalidConfig)
		}
	}
	if c.Engine.ThreatEVs < 0 || c.Engine.ThreatEVs > 252 {
		return fmt.Errorf("engine.threat_evs %d: %w", c.Engine.ThreatEVs, ErrInvalidConfig)
	}
	if c.Engine.Timeout < 0 {
		return fmt.Errorf("engine.timeout %s: %w", c.Engine.Timeout, ErrInvalidConfig)
	}
	switch c.Database.DexSource {
	case DexEmbedded, DexPostgres:
	default:
		return fmt.Errorf("database.dex_source %q: %w", c.Database.DexSource, ErrInvalidConfig)
	}
	return nil
}
