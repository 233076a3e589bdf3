// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command campus is the terminal client and local console of the school platform.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from the environment and the optional YAML file.
//  3. Open the session backend (memory, file, Redis or PostgreSQL).
//  4. Wire the session guard, the API client and the domain services.
//  5. Run the requested command.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/campus/internal/platform/constants"
)

// Version information set at build time.
var (
	version = constants.AppVersion
	commit  = "none"
	date    = "unknown"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	debug      bool
	jsonLogs   bool
}

func main() {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   constants.AppName,
		Short: "Client for the school management platform",
		Long: `campus talks to the school platform's REST backend on behalf of a
super admin, a university admin, a teacher or a student.

Sign in once with "campus login"; the session is kept in the configured
backend and reused by every later command and by the local console
("campus serve").`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", os.Getenv("CAMPUS_CONFIG"), "Optional YAML configuration file")
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flags.jsonLogs, "json-logs", false, "Write logs as JSON")

	rootCmd.AddCommand(
		loginCmd(flags),
		registerCmd(flags),
		logoutCmd(flags),
		whoamiCmd(flags),
		requestCmd(flags, "get"),
		requestCmd(flags, "post"),
		requestCmd(flags, "put"),
		requestCmd(flags, "patch"),
		requestCmd(flags, "delete"),
		uploadCmd(flags),
		exportCmd(flags),
		serveCmd(flags),
		migrateCmd(flags),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// newLogger builds the process logger at level. Logs go to stderr so that
// stdout stays clean for JSON output.
func newLogger(flags *globalFlags, level slog.Level) *slog.Logger {
	if flags.debug {
		level = slog.LevelDebug
	}

	options := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, options)
	if flags.jsonLogs {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}

	log := slog.New(handler).With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}
