package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/bnema/marvel-dashboard/internal/domain"
	"github.com/spf13/cobra"
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

// appLoader wires the application on first use so flags such as --config are
// parsed before anything is built.
type appLoader func(cmd *cobra.Command) (*app, error)

func newRootCmd() *cobra.Command {
	var opts wireOptions
	var loaded *app

	load := func(cmd *cobra.Command) (*app, error) {
		if loaded != nil {
			return loaded, nil
		}
		opts.LogOutput = cmd.ErrOrStderr()

		a, err := wireApp(commandContext(cmd), opts)
		if err != nil {
			return nil, err
		}
		loaded = a
		return a, nil
	}

	rootCmd := &cobra.Command{
		Use:           "marvel",
		Short:         "Marvel Dashboard: browse Marvel characters and series from the terminal",
		Long:          "marvel signs you in against your identity tenant and shows paginated, searchable listings of Marvel characters and series, with role-gated sections and a diagnostic log.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if loaded == nil {
				return nil
			}
			return loaded.close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "Config file (default ~/.marvel-dashboard/config.toml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(load),
		newLogoutCmd(load),
		newUserCmd(load),
		newDashboardCmd(load),
		newListCmd(load, domain.CollectionCharacters),
		newListCmd(load, domain.CollectionSeries),
		newLogsCmd(load),
		newAdminCmd(load),
	)

	return rootCmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
