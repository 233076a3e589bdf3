// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/campus/internal/apiclient"
	"github.com/taibuivan/campus/internal/notify"
)

// requestFlags are shared by the raw request commands.
type requestFlags struct {
	query  []string
	data   string
	public bool
}

// requestCmd builds one of get/post/put/patch/delete. Every call goes through
// the session guard, so a 401 ends the session exactly as in the console.
func requestCmd(flags *globalFlags, verb string) *cobra.Command {
	options := &requestFlags{}

	cmd := &cobra.Command{
		Use:   verb + " <path>",
		Short: fmt.Sprintf("Send a %s request to the backend", strings.ToUpper(verb)),
		Example: fmt.Sprintf(`  campus %s /student/courses
  campus %s /university-admin/courses -q page=2 -q limit=50
  campus %s /messages -d '{"receiverId":"12","subject":"Hi","content":"Hello"}'`, verb, verb, verb),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			application, err := openApp(ctx, flags, slog.LevelWarn)
			if err != nil {
				return err
			}
			defer application.Close()

			query, err := parseQuery(options.query)
			if err != nil {
				return err
			}
			callOptions := []apiclient.Option{apiclient.WithQuery(query)}
			if options.public {
				callOptions = append(callOptions, apiclient.WithoutAuth())
			}

			var body any
			if options.data != "" {
				if body, err = readBody(options.data, cmd.InOrStdin()); err != nil {
					return err
				}
			}

			var raw []byte
			path := args[0]
			client := application.client
			switch verb {
			case "get":
				err = client.Get(ctx, path, &raw, callOptions...)
			case "post":
				err = client.Post(ctx, path, body, &raw, callOptions...)
			case "put":
				err = client.Put(ctx, path, body, &raw, callOptions...)
			case "patch":
				err = client.Patch(ctx, path, body, &raw, callOptions...)
			case "delete":
				err = client.Delete(ctx, path, &raw, callOptions...)
			}
			if err != nil {
				notify.Error(ctx, application.notifier, strings.ToUpper(verb)+" "+path, err)
				return err
			}

			return printRaw(cmd.OutOrStdout(), raw)
		},
	}

	cmd.Flags().StringArrayVarP(&options.query, "query", "q", nil, "Query parameter as key=value (repeatable)")
	cmd.Flags().BoolVar(&options.public, "public", false, "Send without the session token")
	if verb != "get" && verb != "delete" {
		cmd.Flags().StringVarP(&options.data, "data", "d", "", "JSON body, @file to read a file, or @- for stdin")
	}

	return cmd
}

func uploadCmd(flags *globalFlags) *cobra.Command {
	var (
		files  []string
		fields []string
	)

	cmd := &cobra.Command{
		Use:   "upload <path>",
		Short: "Send a multipart/form-data request to the backend",
		Example: `  campus upload /student/assignments/7/submit -f file=essay.pdf -F comment="Final version"
  campus upload /student/ai-learning/generate -f pdf=chapter3.pdf -F count=10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			application, err := openApp(ctx, flags, slog.LevelWarn)
			if err != nil {
				return err
			}
			defer application.Close()

			form := apiclient.NewForm()
			for _, field := range fields {
				key, value, ok := strings.Cut(field, "=")
				if !ok {
					return fmt.Errorf("field %q is not key=value", field)
				}
				if err := form.Field(key, value); err != nil {
					return err
				}
			}

			for _, file := range files {
				key, path, ok := strings.Cut(file, "=")
				if !ok {
					return fmt.Errorf("file %q is not field=path", file)
				}
				if err := attachFile(form, key, path); err != nil {
					return err
				}
			}

			var raw []byte
			if err := application.client.Upload(ctx, args[0], form, &raw); err != nil {
				notify.Error(ctx, application.notifier, "Upload", err)
				return err
			}
			return printRaw(cmd.OutOrStdout(), raw)
		},
	}

	cmd.Flags().StringArrayVarP(&files, "file", "f", nil, "File part as field=path (repeatable)")
	cmd.Flags().StringArrayVarP(&fields, "field", "F", nil, "Text part as key=value (repeatable)")

	return cmd
}

// # Helpers

func parseQuery(pairs []string) (url.Values, error) {
	query := url.Values{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("query %q is not key=value", pair)
		}
		query.Add(key, value)
	}
	return query, nil
}

// readBody resolves the --data argument into a JSON body.
func readBody(data string, stdin io.Reader) (json.RawMessage, error) {
	raw := []byte(data)
	if source, ok := strings.CutPrefix(data, "@"); ok {
		var err error
		if source == "-" {
			raw, err = io.ReadAll(stdin)
		} else {
			raw, err = os.ReadFile(source)
		}
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("body is not valid JSON")
	}
	return json.RawMessage(raw), nil
}

func attachFile(form *apiclient.Form, field, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	return form.File(field, filepath.Base(path), mime.TypeByExtension(filepath.Ext(path)), file)
}

// printRaw pretty-prints JSON answers and copies anything else verbatim.
func printRaw(out io.Writer, raw []byte) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var indented bytes.Buffer
	if err := json.Indent(&indented, raw, "", "  "); err != nil {
		_, err = out.Write(raw)
		return err
	}
	indented.WriteByte('\n')
	_, err := indented.WriteTo(out)
	return err
}
