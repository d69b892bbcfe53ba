package application

import "context"

const (
	RouteLogin        = "/login"
	RouteHome         = "/"
	RouteUser         = "/user"
	RouteAdmin        = "/admin"
	RouteUnauthorized = "/unauthorized"

	RoleAdmin = "admin"
)

type Decision struct {
	Allowed    bool
	RedirectTo string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func redirect(route string) Decision {
	return Decision{RedirectTo: route}
}

type validityChecker interface {
	IsValid(ctx context.Context) bool
}

// Guard decides whether navigation to a route may proceed. Decisions have no
// side effects.
type Guard struct {
	state    *SessionState
	validity validityChecker
}

func NewGuard(state *SessionState, session *SessionService) *Guard {
	return &Guard{state: state, validity: session}
}

// Protected sends unauthenticated sessions to the login view and sessions
// lacking requiredRole to the unauthorized view. An empty role only requires
// authentication.
func (g *Guard) Protected(requiredRole string) Decision {
	snapshot := g.state.Snapshot()
	if !snapshot.IsAuthenticated {
		return redirect(RouteLogin)
	}
	if requiredRole != "" && !snapshot.HasRole(requiredRole) {
		return redirect(RouteUnauthorized)
	}
	return allow()
}

// Public sends sessions holding a valid token back to the default view.
func (g *Guard) Public(ctx context.Context) Decision {
	if g.validity.IsValid(ctx) {
		return redirect(RouteHome)
	}
	return allow()
}

// RouteRequirement maps a protected route to the role it requires.
func RouteRequirement(route string) (string, bool) {
	switch route {
	case RouteHome, RouteUser:
		return "", true
	case RouteAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}
