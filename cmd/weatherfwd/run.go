package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Phongsakorn0/Weather-data-processor/pkg/weatherfwd"
)

func init() {
	rootCmd.AddCommand(runCmd, onceCmd, validateCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the forwarder and poll on the configured schedule",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		flow, err := weatherfwd.Conf(configPath(cmd))
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := flow.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Run a single ingest cycle and print its report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := weatherfwd.LoadConfig(configPath(cmd))
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		rt, err := weatherfwd.NewRuntime(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		rep := rt.RunOnce(ctx)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return rt.Shutdown(context.Background())
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and validate the configuration without starting",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := weatherfwd.LoadConfig(configPath(cmd))
		if err != nil {
			return err
		}
		schedule := "every " + cfg.Policy.Interval.String()
		if cfg.Policy.Cron != "" {
			schedule = "cron " + cfg.Policy.Cron
		}
		fmt.Printf("config ok: dir=%s forward=%s(%s) schedule=%s max_file=%s checkpoint=%s\n",
			cfg.Watch.Dir,
			cfg.Forward.Kind,
			cfg.Forward.URL,
			schedule,
			humanize.IBytes(uint64(cfg.Watch.MaxFileBytes)),
			cfg.Checkpoint.Backend,
		)
		return nil
	},
}
