package cmd

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/bnema/marvel-dashboard/internal/adapters/location"
	"github.com/bnema/marvel-dashboard/internal/adapters/render/dashboard"
	"github.com/bnema/marvel-dashboard/internal/application"
	"github.com/bnema/marvel-dashboard/internal/domain"
	"github.com/spf13/cobra"
)

func newDashboardCmd(load appLoader) *cobra.Command {
	var tab string
	var characterSearch string
	var seriesSearch string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive characters and series dashboard",
		Long:  "Open the interactive dashboard. The active tab and search terms are remembered between runs; flags override them.",
		RunE: protect(load, application.RouteHome, func(cmd *cobra.Command, app *app, _ []string) error {
			if err := app.cfg.ValidateCatalog(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			ctx := commandContext(cmd)
			address, err := location.Load(ctx, app.storage)
			if err != nil {
				return err
			}

			query := address.Query()
			if cmd.Flags().Changed("tab") {
				collection, err := domain.ParseCollection(tab)
				if err != nil {
					return err
				}
				query.Set(application.ParamTab, string(collection))
			}
			setSearchParam(cmd, query, "character-search", application.ParamCharacterSearch, characterSearch)
			setSearchParam(cmd, query, "series-search", application.ParamSeriesSearch, seriesSearch)
			if err := address.Replace(ctx, query); err != nil {
				return err
			}

			orchestrator := app.newOrchestrator(application.WithLocation(address))
			defer orchestrator.Wait()

			return dashboard.Run(ctx, orchestrator, dashboard.RunOptions{
				Input:  cmd.InOrStdin(),
				Output: cmd.OutOrStdout(),
			})
		}),
	}

	cmd.Flags().StringVar(&tab, "tab", "", "Active tab (characters|series)")
	cmd.Flags().StringVar(&characterSearch, "character-search", "", "Characters whose name starts with this")
	cmd.Flags().StringVar(&seriesSearch, "series-search", "", "Series whose title starts with this")

	return cmd
}

func setSearchParam(cmd *cobra.Command, query url.Values, flag, param, value string) {
	if !cmd.Flags().Changed(flag) {
		return
	}
	if value = strings.TrimSpace(value); value == "" {
		query.Del(param)
		return
	}
	query.Set(param, value)
}
