package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/marvel-dashboard/internal/adapters/render/logs"
	"github.com/bnema/marvel-dashboard/internal/application"
	"github.com/spf13/cobra"
)

func newLogsCmd(load appLoader) *cobra.Command {
	var clearLogs bool
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show or clear the application log",
		RunE: protect(load, application.RouteUser, func(cmd *cobra.Command, app *app, _ []string) error {
			ctx := commandContext(cmd)

			if clearLogs {
				if err := app.logBook.Clear(ctx); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Cleared application logs")
				return err
			}

			entries, err := app.logBook.Entries(ctx)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), logs.Render(entries, logs.RenderOptions{Limit: limit}))
			return err
		}),
	}

	cmd.Flags().BoolVar(&clearLogs, "clear", false, "Remove every stored log entry")
	cmd.Flags().IntVar(&limit, "limit", 50, "Show only the newest entries (0 shows all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON output")

	return cmd
}
