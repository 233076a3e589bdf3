// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/campus/internal/export"
	"github.com/taibuivan/campus/internal/notify"
)

func exportCmd(flags *globalFlags) *cobra.Command {
	var (
		format string
		name   string
		output string
		query  []string
	)

	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Export a backend list as CSV, JSON or PDF",
		Long: `Fetch a list from the backend and write it as a table.

Without --output the file is stored in EXPORT_DIR, or in S3_BUCKET when one
is configured, and its location is printed. With --output the table is written
to that file; "-" means stdout.`,
		Example: `  campus export /student/grades
  campus export /university-admin/students --format json -q limit=100
  campus export /teacher/classes/4/attendance -q date=2026-03-02 -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			application, err := openApp(ctx, flags, slog.LevelWarn)
			if err != nil {
				return err
			}
			defer application.Close()

			values, err := parseQuery(query)
			if err != nil {
				return err
			}
			request, err := export.ParseRequest(args[0], format, name, values)
			if err != nil {
				notify.Error(ctx, application.notifier, "Export", err)
				return err
			}

			service := export.NewService(application.client, application.exportSink())

			if output != "" {
				return writeExport(cmd, service, request, output)
			}

			result, err := service.Export(ctx, request)
			if err != nil {
				notify.Error(ctx, application.notifier, "Export", err)
				return err
			}
			application.notifier.Notify(ctx, "Export", fmt.Sprintf("%d rows written to %s", result.Rows, result.Location), notify.SeveritySuccess)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(export.FormatCSV), "csv, json or pdf")
	cmd.Flags().StringVarP(&name, "name", "n", "", "File name stem (defaults to the path)")
	cmd.Flags().StringVarP(&output, "output", "o", "", `Write to this file instead of the export store ("-" for stdout)`)
	cmd.Flags().StringArrayVarP(&query, "query", "q", nil, "Query parameter as key=value (repeatable)")

	return cmd
}

func writeExport(cmd *cobra.Command, service *export.Service, request export.Request, output string) error {
	if output == "-" {
		_, err := service.Write(cmd.Context(), request, cmd.OutOrStdout())
		return err
	}

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	if _, err := service.Write(cmd.Context(), request, file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
