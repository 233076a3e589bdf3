// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/campus/internal/notify"
	"github.com/taibuivan/campus/internal/users/auth"
)

func loginCmd(flags *globalFlags) *cobra.Command {
	var input auth.LoginInput

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session",
		Long: `Sign in with an email and password. The token and profile are stored in
the configured session backend and reused by later commands.

Examples:
  campus login --email student@uni.edu
  echo "$PASSWORD" | campus login --email student@uni.edu`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			application, err := openApp(ctx, flags, slog.LevelWarn)
			if err != nil {
				return err
			}
			defer application.Close()

			if input.Password == "" {
				if input.Password, err = readSecret(cmd.InOrStdin(), cmd.ErrOrStderr(), "Password: "); err != nil {
					return err
				}
			}

			identity, err := auth.NewService(application.client, application.guard).Login(ctx, input)
			if err != nil {
				notify.Error(ctx, application.notifier, "Login", err)
				return err
			}

			application.notifier.Notify(ctx, "", fmt.Sprintf("Signed in as %s (%s)", displayName(identity), identity.Role), notify.SeveritySuccess)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input.Email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&input.Password, "password", "p", "", "Account password (prompted when empty)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func registerCmd(flags *globalFlags) *cobra.Command {
	var input auth.RegisterInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a student or teacher account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			application, err := openApp(ctx, flags, slog.LevelWarn)
			if err != nil {
				return err
			}
			defer application.Close()

			if input.Password == "" {
				if input.Password, err = readSecret(cmd.InOrStdin(), cmd.ErrOrStderr(), "Password: "); err != nil {
					return err
				}
			}

			result, err := auth.NewService(application.client, application.guard).Register(ctx, input)
			if err != nil {
				notify.Error(ctx, application.notifier, "Registration", err)
				return err
			}

			if result.SignedIn {
				application.notifier.Notify(ctx, "", "Account created and signed in", notify.SeveritySuccess)
				return nil
			}
			application.notifier.Notify(ctx, "", `Account created. Run "campus login" to sign in`, notify.SeveritySuccess)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input.Name, "name", "n", "", "Full name")
	cmd.Flags().StringVarP(&input.Email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&input.Password, "password", "p", "", "Account password (prompted when empty)")
	cmd.Flags().StringVarP(&input.Role, "role", "r", "student", "student or teacher")
	cmd.Flags().StringVarP(&input.UniversityID, "university", "u", "", "University ID (see \"campus get /universities/search -q q=<name>\")")

	return cmd
}

func logoutCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			application, err := openApp(ctx, flags, slog.LevelWarn)
			if err != nil {
				return err
			}
			defer application.Close()

			auth.NewService(application.client, application.guard).Logout(ctx)
			return nil
		},
	}
}

func whoamiCmd(flags *globalFlags) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Print the signed-in identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			application, err := openApp(ctx, flags, slog.LevelWarn)
			if err != nil {
				return err
			}
			defer application.Close()

			service := auth.NewService(application.client, application.guard)
			if refresh {
				if _, err := service.RefreshProfile(ctx); err != nil {
					notify.Error(ctx, application.notifier, "Profile", err)
					return err
				}
			}

			identity, err := service.Whoami(ctx)
			if err != nil {
				notify.Error(ctx, application.notifier, "Session", err)
				return err
			}
			return printJSON(cmd.OutOrStdout(), identity)
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Re-read the profile from the backend first")

	return cmd
}

// # Terminal Helpers

// readSecret reads one line from in after printing prompt to out.
func readSecret(in io.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	if file, ok := in.(*os.File); !ok || !isTerminal(file) {
		fmt.Fprintln(out)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func displayName(identity *auth.Identity) string {
	if identity.Profile != nil && identity.Profile.Name != "" {
		return identity.Profile.Name
	}
	if identity.Email != "" {
		return identity.Email
	}
	return identity.UserID
}

// printJSON writes value indented, followed by a newline.
func printJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
