package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bnema/marvel-dashboard/internal/domain"
	"github.com/spf13/cobra"
)

var errEmptyCredentials = errors.New("email and password are required")

func newLoginCmd(load appLoader) *cobra.Command {
	var username string
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with your email and password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load(cmd)
			if err != nil {
				return err
			}
			if err := guardError(app.guard.Public(commandContext(cmd)), ""); err != nil {
				return err
			}

			username, password, err := readCredentials(cmd, username, passwordStdin)
			if err != nil {
				return err
			}

			return runLogin(cmd, app, username, password)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Account email (prompted when empty)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")

	return cmd
}

func runLogin(cmd *cobra.Command, app *app, username, password string) error {
	var session domain.Session
	err := runWithSpinner(commandContext(cmd), cmd.ErrOrStderr(), "Signing in...", func(ctx context.Context) error {
		var loginErr error
		session, loginErr = app.sessions.Login(ctx, username, password)
		return loginErr
	})
	if err != nil {
		var credentialErr *domain.CredentialError
		if errors.As(err, &credentialErr) {
			return fmt.Errorf("login failed: %s", credentialErr.Message())
		}
		return fmt.Errorf("login failed: %w", err)
	}

	app.sessionState.Login(session.Roles, username)

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Logged in as %s\n", username)
	if !session.ExpiresAt.IsZero() {
		_, _ = fmt.Fprintf(out, "Session expires at %s\n", session.ExpiresAt.Local().Format(time.DateTime))
	}
	return nil
}

func readCredentials(cmd *cobra.Command, username string, passwordStdin bool) (string, string, error) {
	in := bufio.NewReader(cmd.InOrStdin())

	username = strings.TrimSpace(username)
	if username == "" {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Email: ")
		line, err := readLine(in)
		if err != nil {
			return "", "", fmt.Errorf("read email: %w", err)
		}
		username = strings.TrimSpace(line)
	}

	var password string
	var err error
	if passwordStdin {
		password, err = readLine(in)
	} else {
		password, err = promptPassword(commandContext(cmd), in, cmd.ErrOrStderr())
	}
	if err != nil {
		return "", "", fmt.Errorf("read password: %w", err)
	}

	if username == "" || password == "" {
		return "", "", errEmptyCredentials
	}
	return username, password, nil
}

func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newLogoutCmd(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and remove the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load(cmd)
			if err != nil {
				return err
			}

			if err := app.sessionState.Logout(commandContext(cmd)); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return err
		},
	}
}
