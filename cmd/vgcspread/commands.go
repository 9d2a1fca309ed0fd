package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/vgcspread/internal/calc"
	"github.com/udisondev/vgcspread/internal/config"
	"github.com/udisondev/vgcspread/internal/db"
	"github.com/udisondev/vgcspread/internal/dex"
	"github.com/udisondev/vgcspread/internal/logger"
	"github.com/udisondev/vgcspread/internal/optimizer"
)

// cli carries the state shared by all subcommands.
type cli struct {
	configPath string
	cfg        config.Config
	logCloser  io.Closer
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "vgcspread",
		Short:         "Level-50 VGC damage calculator and EV spread optimizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.logCloser != nil {
				_ = c.logCloser.Close()
			}
		},
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", config.Path(), "config file (env VGC_CONFIG)")

	root.AddCommand(
		c.optimizeCmd(),
		c.batchCmd(),
		c.damageCmd(),
		c.speedCmd(),
		c.dexCmd(),
	)
	return root
}

func (c *cli) setup() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	c.cfg = cfg
	closer, err := logger.Setup(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setting up logger: %w", err)
	}
	c.logCloser = closer
	return nil
}

// withApp builds the app for one command run.
func (c *cli) withApp(ctx context.Context, fn func(*app) error) error {
	a, err := newApp(ctx, c.cfg)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(a)
}

func (c *cli) optimizeCmd() *cobra.Command {
	var file, mode string
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Find the minimal EV spread surviving the threats of a request file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req optimizer.Request
			if err := decodeFile(file, &req); err != nil {
				return err
			}
			return c.withApp(cmd.Context(), func(a *app) error {
				res, err := runOptimize(cmd.Context(), a, mode, req)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "request file (YAML or JSON)")
	cmd.Flags().StringVarP(&mode, "mode", "m", "auto", "auto | single | dual | multi")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runOptimize(ctx context.Context, a *app, mode string, req optimizer.Request) (optimizer.Result, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	switch mode {
	case "single":
		return a.service.OptimizeSingle(ctx, req)
	case "dual":
		return a.service.OptimizeDual(ctx, req)
	case "multi":
		return a.service.OptimizeMulti(ctx, req)
	case "", "auto":
		return a.service.Optimize(ctx, req)
	}
	return optimizer.Result{}, fmt.Errorf("unknown mode %q", mode)
}

// batchEntry is one request file of a batch run.
type batchEntry struct {
	File   string            `json:"file"`
	Result *optimizer.Result `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
}

func (c *cli) batchCmd() *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "batch FILE...",
		Short: "Optimize several request files concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, files []string) error {
			return c.withApp(cmd.Context(), func(a *app) error {
				entries := make([]batchEntry, len(files))
				g, gctx := errgroup.WithContext(cmd.Context())
				g.SetLimit(max(1, workers))
				for i, file := range files {
					g.Go(func() error {
						entries[i].File = file
						var req optimizer.Request
						if err := decodeFile(file, &req); err != nil {
							entries[i].Error = err.Error()
							return nil
						}
						res, err := runOptimize(gctx, a, "auto", req)
						if err != nil {
							entries[i].Error = err.Error()
							return nil
						}
						entries[i].Result = &res
						return nil
					})
				}
				if err := g.Wait(); err != nil {
					return err
				}
				slog.Info("batch finished", "files", len(files))
				return writeJSON(cmd.OutOrStdout(), entries)
			})
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 2, "request files processed at once")
	return cmd
}

func (c *cli) damageCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "damage",
		Short: "Calculate the 16 damage rolls of one attack",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req calc.DamageRequest
			if err := decodeFile(file, &req); err != nil {
				return err
			}
			return c.withApp(cmd.Context(), func(a *app) error {
				res, err := a.service.CalculateDamageRange(cmd.Context(), req)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), damageOutput{Result: res, Summary: res.String(), KOChance: res.KOChance()})
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "request file (YAML or JSON)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (c *cli) speedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "speed",
		Short: "Speed comparisons and Speed EV benchmarks",
	}

	var compareFile string
	compare := &cobra.Command{
		Use:   "compare",
		Short: "Report which Pokemon moves first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req calc.SpeedComparisonRequest
			if err := decodeFile(compareFile, &req); err != nil {
				return err
			}
			return c.withApp(cmd.Context(), func(a *app) error {
				res, err := a.service.CompareSpeed(cmd.Context(), req)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	compare.Flags().StringVarP(&compareFile, "file", "f", "", "request file (YAML or JSON)")
	_ = compare.MarkFlagRequired("file")

	var evsFile string
	evs := &cobra.Command{
		Use:   "evs",
		Short: "Find the Speed EVs hitting a benchmark",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req calc.SpeedEVsRequest
			if err := decodeFile(evsFile, &req); err != nil {
				return err
			}
			return c.withApp(cmd.Context(), func(a *app) error {
				res, err := a.service.FindSpeedEVs(cmd.Context(), req)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	evs.Flags().StringVarP(&evsFile, "file", "f", "", "request file (YAML or JSON)")
	_ = evs.MarkFlagRequired("file")

	cmd.AddCommand(compare, evs)
	return cmd
}

func (c *cli) dexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dex",
		Short: "Dex maintenance",
	}

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := db.RunMigrations(cmd.Context(), c.cfg.Database.DSN()); err != nil {
				return err
			}
			slog.Info("database migrations applied")
			return nil
		},
	}

	seed := &cobra.Command{
		Use:   "seed",
		Short: "Copy the embedded dex into PostgreSQL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := dex.EmbeddedDataset()
			if err != nil {
				return err
			}
			database, err := db.New(cmd.Context(), c.cfg.Database.DSN(), c.cfg.Database.MaxConns)
			if err != nil {
				return err
			}
			defer database.Close()
			st, err := db.SeedDex(cmd.Context(), database.Pool(), ds)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), st)
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the species of the embedded dex",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := dex.Embedded()
			if err != nil {
				return err
			}
			for _, name := range d.SpeciesNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	cmd.AddCommand(migrate, seed, list)
	return cmd
}
