package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bnema/marvel-dashboard/internal/adapters/render/dashboard"
	"github.com/bnema/marvel-dashboard/internal/application"
	"github.com/bnema/marvel-dashboard/internal/domain"
	"github.com/spf13/cobra"
)

type listOutput struct {
	Collection domain.Collection `json:"collection"`
	Search     string            `json:"search,omitempty"`
	Page       int               `json:"page"`
	PageCount  int               `json:"pageCount"`
	Offset     int               `json:"offset"`
	Limit      int               `json:"limit"`
	Total      int               `json:"total"`
	Results    any               `json:"results"`
}

// newListCmd prints one page of collection without the interactive
// dashboard.
func newListCmd(load appLoader, collection domain.Collection) *cobra.Command {
	var page int
	var pageSize int
	var search string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   string(collection),
		Short: fmt.Sprintf("List one page of Marvel %s", collection),
		RunE: protect(load, application.RouteHome, func(cmd *cobra.Command, app *app, _ []string) error {
			if err := app.cfg.ValidateCatalog(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			ctx := commandContext(cmd)
			orchestrator := app.newOrchestrator()

			if cmd.Flags().Changed("page-size") {
				if err := orchestrator.SetPageSize(ctx, collection, pageSize); err != nil {
					return err
				}
			}
			if err := orchestrator.SetSearchTerm(ctx, collection, search); err != nil {
				return err
			}
			if err := orchestrator.SetPage(ctx, collection, page); err != nil {
				return err
			}
			if err := orchestrator.SetActiveTab(ctx, collection); err != nil {
				return err
			}

			updates := watchFetch(ctx, orchestrator, collection)
			var err error
			if asJSON {
				err = awaitProgress(updates)
			} else {
				err = showProgress(ctx, cmd.ErrOrStderr(), updates)
			}
			orchestrator.Wait()
			if err != nil {
				return err
			}

			snapshot := orchestrator.Snapshot()
			state := snapshot.State(collection)
			if state.Error != "" {
				return errors.New(state.Error)
			}

			if asJSON {
				return writeListJSON(cmd, snapshot, collection)
			}

			rendered, err := dashboard.Render(snapshot, dashboard.RenderOptions{Collection: collection})
			if err != nil {
				return fmt.Errorf("render %s: %w", collection, err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		}),
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number (1-based)")
	cmd.Flags().IntVar(&pageSize, "page-size", domain.DefaultPageSize, fmt.Sprintf("Results per page (1-%d)", domain.MaxPageSize))
	cmd.Flags().StringVar(&search, "search", "", "Only results whose name starts with this")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON output")

	return cmd
}

func writeListJSON(cmd *cobra.Command, snapshot application.Snapshot, collection domain.Collection) error {
	state := snapshot.State(collection)

	var results any = snapshot.Characters
	if collection == domain.CollectionSeries {
		results = snapshot.Series
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(listOutput{
		Collection: collection,
		Search:     state.SearchTerm,
		Page:       state.Cursor.Page(),
		PageCount:  state.Cursor.PageCount(),
		Offset:     state.Cursor.Offset,
		Limit:      state.Cursor.Limit,
		Total:      state.Cursor.Total,
		Results:    results,
	})
}
