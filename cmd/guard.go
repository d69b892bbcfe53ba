package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/marvel-dashboard/internal/application"
	"github.com/bnema/marvel-dashboard/internal/domain"
	"github.com/spf13/cobra"
)

var errAlreadyLoggedIn = errors.New(`already logged in: run "marvel logout" to switch accounts`)

// protect loads the app and checks the route's guard before a command runs.
func protect(load appLoader, route string, run func(cmd *cobra.Command, app *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := load(cmd)
		if err != nil {
			return err
		}

		role, _ := application.RouteRequirement(route)
		if err := guardError(app.guard.Protected(role), role); err != nil {
			return err
		}

		return run(cmd, app, args)
	}
}

func guardError(decision application.Decision, role string) error {
	if decision.Allowed {
		return nil
	}

	switch decision.RedirectTo {
	case application.RouteLogin:
		return fmt.Errorf(`%w: run "marvel login" first`, domain.ErrNotAuthenticated)
	case application.RouteUnauthorized:
		return fmt.Errorf("%w %q", domain.ErrForbidden, role)
	case application.RouteHome:
		return errAlreadyLoggedIn
	default:
		return fmt.Errorf("navigation blocked: redirected to %s", decision.RedirectTo)
	}
}
