package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/vgcspread/internal/calc"
	"github.com/udisondev/vgcspread/internal/config"
	"github.com/udisondev/vgcspread/internal/db"
	"github.com/udisondev/vgcspread/internal/dex"
	"github.com/udisondev/vgcspread/internal/optimizer"
	"github.com/udisondev/vgcspread/internal/usage"
)

// app holds everything a command needs.
type app struct {
	cfg     config.Config
	service *calc.Service
	closers []func()
}

// newApp builds the dex source, the usage provider and the service
// described by cfg.
func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	a := &app{cfg: cfg}

	var src dex.Source
	switch cfg.Database.DexSource {
	case config.DexPostgres:
		database, err := db.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, database.Close)
		src = database.Dex()
		slog.Info("dex source", "source", "postgres", "host", cfg.Database.Host)
	default:
		d, err := dex.Embedded()
		if err != nil {
			return nil, fmt.Errorf("loading embedded dex: %w", err)
		}
		src = d
		slog.Debug("dex source", "source", "embedded", "species", len(d.SpeciesNames()))
	}

	var provider usage.Provider = usage.Nop{}
	if cfg.Usage.ChaosPath != "" {
		chaos, err := usage.LoadChaosFile(cfg.Usage.ChaosPath)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("loading usage data: %w", err)
		}
		provider = chaos
		slog.Info("usage data loaded", "path", cfg.Usage.ChaosPath, "species", chaos.Len())
	}

	a.service = calc.New(src, provider, optimizerOptions(cfg.Engine))
	return a, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// withTimeout applies the configured search deadline.
func (a *app) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.cfg.Engine.Timeout > 0 {
		return context.WithTimeout(ctx, a.cfg.Engine.Timeout)
	}
	return context.WithCancel(ctx)
}

func optimizerOptions(e config.EngineConfig) optimizer.Options {
	return optimizer.Options{
		Parallel:        e.Parallel,
		MaxWorkers:      e.MaxWorkers,
		SingleThreshold: e.SingleThreshold,
		DualThreshold:   e.DualThreshold,
		MultiThreshold:  e.MultiThreshold,
		ThreatEVs:       e.ThreatEVs,
		Logger:          slog.Default(),
	}
}

// decodeFile reads a request file. .json files are JSON, everything
// else is YAML.
func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading request %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, v)
	} else {
		err = yaml.Unmarshal(data, v)
	}
	if err != nil {
		return fmt.Errorf("parsing request %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
