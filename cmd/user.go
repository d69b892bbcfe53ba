package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bnema/marvel-dashboard/internal/adapters/render/profile"
	"github.com/bnema/marvel-dashboard/internal/application"
	"github.com/bnema/marvel-dashboard/internal/domain"
	"github.com/spf13/cobra"
)

type userOutput struct {
	domain.UserInfo
	Roles []string `json:"roles"`
}

func newUserCmd(load appLoader) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "user",
		Short: "Show the signed-in user's profile",
		RunE: protect(load, application.RouteUser, func(cmd *cobra.Command, app *app, _ []string) error {
			var info domain.UserInfo
			fetch := func(ctx context.Context) error {
				var err error
				info, err = app.sessions.UserInfo(ctx)
				return err
			}

			var err error
			if asJSON {
				err = fetch(commandContext(cmd))
			} else {
				err = runWithSpinner(commandContext(cmd), cmd.ErrOrStderr(), "Fetching profile...", fetch)
			}
			if err != nil {
				return fmt.Errorf("load profile: %w", err)
			}

			state := app.sessionState.Snapshot()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(userOutput{UserInfo: info, Roles: state.Roles})
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), profile.Render(info, state))
			return err
		}),
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON output")

	return cmd
}

func newAdminCmd(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "admin",
		Short: "Open the admin section (requires the admin role)",
		RunE: protect(load, application.RouteAdmin, func(cmd *cobra.Command, app *app, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), profile.Admin(app.sessionState.Snapshot()))
			return err
		}),
	}
}
