// Copyright (c) 2026 Mealdeck Team
// Mealdeck - food delivery operations consoles
// This source code is licensed under the MIT license found in the LICENSE file.

// Package cli sets up the command-line interface for Mealdeck using the
// Cobra library. It defines the root command, subcommands (export, config,
// version) and wires the configuration into the backend and the TUI.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mealdeck/mealdeck/buildvars"
	"github.com/mealdeck/mealdeck/internal/api"
	"github.com/mealdeck/mealdeck/internal/config"
	"github.com/mealdeck/mealdeck/internal/export"
	"github.com/mealdeck/mealdeck/internal/i18n"
	"github.com/mealdeck/mealdeck/internal/logging"
	"github.com/mealdeck/mealdeck/internal/query"
	"github.com/mealdeck/mealdeck/internal/tui"
)

var cfgFile string

// Execute runs the root command. Called once from main.
func Execute() error {
	return newRootCmd().Execute()
}

// newRootCmd creates and configures a new root cobra command. Tests create
// fresh instances through this function to stay isolated.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mealdeck",
		Short: "Mealdeck is a terminal console suite for food delivery operations.",
		Long: `Mealdeck gives dispatchers and kitchen staff a set of terminal
consoles over the delivery platform API: orders, restaurants, couriers,
a kitchen ticket board and an overview dashboard. Reads go through a
local snapshot cache so the consoles stay usable when the API is down.

Running without a subcommand launches the interactive consoles.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("mealdeck needs an interactive terminal; use 'mealdeck export' for scripting")
			}
			backend, cleanup, err := buildBackend(cfg)
			if err != nil {
				return err
			}
			defer cleanup()
			return tui.Run(backend, cfg.PageSize)
		},
	}

	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	cmd.Version = buildvars.VersionOrDefault("dev")

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is the user config dir or ./mealdeck.yaml)")
	cmd.PersistentFlags().String("api.base_url", "", "base URL of the platform API")
	cmd.PersistentFlags().String("language", "", `console language ("en", "de")`)
	cmd.PersistentFlags().Int("page_size", 0, "rows per table page")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	return cmd
}

// setup loads the configuration for a command and applies the ambient
// settings (logging verbosity, language) that every command shares.
func setup(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.LoadConfig[config.Config](cmd, config.Defaults(), &cfgFile)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	logging.SetDebug(cfg.Debug)
	i18n.Init(cfg.Language)
	return cfg, nil
}

// buildBackend opens the snapshot store and wires the cache and API client
// into the Backend the consoles use. The returned cleanup closes the cache.
func buildBackend(cfg config.Config) (tui.Backend, func(), error) {
	client := api.New(cfg.API.BaseURL, cfg.API.Timeout)

	cachePath, err := config.CachePath(cfg.Cache.Path)
	if err != nil {
		return nil, nil, err
	}
	store, err := query.OpenSnapshotStore(cachePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open snapshot store: %w", err)
	}
	cache := query.NewCache(client, store, cfg.Cache.TTL)

	cleanup := func() {
		if err := cache.Close(); err != nil {
			logging.Warnf("closing cache: %v", err)
		}
	}
	return tui.NewBackend(cache, client), cleanup, nil
}

// newExportCmd builds the 'export' subcommand, which writes the order list
// as CSV without entering the TUI. A .zst output path gets compressed.
func newExportCmd() *cobra.Command {
	var (
		out    string
		search string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export orders as CSV (use a .zst suffix for compression)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			backend, cleanup, err := buildBackend(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout)
			defer cancel()
			res, err := backend.Orders(ctx, search)
			if err != nil {
				return fmt.Errorf("list orders: %w", err)
			}
			if res.Stale {
				logging.Warnf("backend unreachable, exporting cached data from %s", res.FetchedAt.Format(time.RFC3339))
			}

			t := export.Table{
				Headers: []string{"id", "restaurant", "courier", "status", "total", "placed_at"},
			}
			for _, o := range res.Rows {
				t.Rows = append(t.Rows, []string{
					o.ID, o.Restaurant, o.Courier, o.Status,
					fmt.Sprintf("%s %d.%02d", o.Currency, o.TotalCents/100, o.TotalCents%100),
					o.PlacedAt.Format(time.RFC3339),
				})
			}

			if out == "" {
				return export.Write(cmd.OutOrStdout(), t)
			}
			if err := export.WriteFile(out, t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d orders to %s\n", len(res.Rows), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (stdout if omitted)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "server-side search query")
	return cmd
}

// newConfigCmd builds the 'config' command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the Mealdeck configuration file",
	}

	var system bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current effective settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			if err := config.WriteConfigFile(&cfg, system); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "config written")
			return nil
		},
	}
	initCmd.Flags().BoolVar(&system, "system", false, "write the system-wide config instead of the user one")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "api.base_url: %s\n", cfg.API.BaseURL)
			fmt.Fprintf(cmd.OutOrStdout(), "api.timeout: %s\n", cfg.API.Timeout)
			fmt.Fprintf(cmd.OutOrStdout(), "cache.path: %s\n", cfg.Cache.Path)
			fmt.Fprintf(cmd.OutOrStdout(), "cache.ttl: %s\n", cfg.Cache.TTL)
			fmt.Fprintf(cmd.OutOrStdout(), "language: %s\n", cfg.Language)
			fmt.Fprintf(cmd.OutOrStdout(), "page_size: %d\n", cfg.PageSize)
			fmt.Fprintf(cmd.OutOrStdout(), "debug: %t\n", cfg.Debug)
			return nil
		},
	}

	cmd.AddCommand(initCmd)
	cmd.AddCommand(showCmd)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the Mealdeck version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mealdeck %s\n", buildvars.VersionOrDefault("dev"))
		},
	}
}
