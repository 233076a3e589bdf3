// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taibuivan/campus/internal/platform/config"
	"github.com/taibuivan/campus/internal/platform/migration"
)

// migrateCmd manages the client_state schema of the PostgreSQL session backend.
func migrateCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL session schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, log, err := migrationConfig(flags)
				if err != nil {
					return err
				}
				return migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revert the last migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, log, err := migrationConfig(flags)
				if err != nil {
					return err
				}
				return migration.RunDown(cfg.DatabaseURL, cfg.MigrationPath, log)
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print the applied schema version",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, log, err := migrationConfig(flags)
				if err != nil {
					return err
				}
				status, err := migration.Current(cfg.DatabaseURL, cfg.MigrationPath, log)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				switch {
				case status.Empty:
					fmt.Fprintln(out, "no migration applied")
				case status.Dirty:
					fmt.Fprintf(out, "version %d (dirty)\n", status.Version)
				default:
					fmt.Fprintf(out, "version %d\n", status.Version)
				}
				return nil
			},
		},
	)

	return cmd
}

// migrationConfig loads the configuration without opening the session backend.
func migrationConfig(flags *globalFlags) (*config.Config, *slog.Logger, error) {
	log := newLogger(flags, slog.LevelInfo)

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, nil, errors.New("DATABASE_URL is not set")
	}
	return cfg, log, nil
}
