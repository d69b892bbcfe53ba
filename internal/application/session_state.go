package application

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/bnema/marvel-dashboard/internal/domain"
	"go.uber.org/zap"
)

// SessionState is the process-wide {isAuthenticated, roles} projection.
// Login and Logout are its only transitions.
type SessionState struct {
	session *SessionService
	logger  *zap.Logger

	mu    sync.RWMutex
	state domain.AuthState
}

func NewSessionState(session *SessionService, logger *zap.Logger) *SessionState {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionState{
		session: session,
		logger:  logger,
		state:   domain.AuthState{Roles: []string{}},
	}
}

// Restore seeds the projection from the stored token. Roles are restored too
// so role-gated commands keep working across invocations.
func (s *SessionState) Restore(ctx context.Context) domain.AuthState {
	next := domain.AuthState{Roles: []string{}}
	if s.session.IsValid(ctx) {
		next.IsAuthenticated = true
		if current, ok, err := s.session.Current(ctx); err == nil && ok {
			next.Roles = current.Roles
		}
	}

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()

	return s.Snapshot()
}

func (s *SessionState) Login(roles []string, userID string) {
	s.mu.Lock()
	s.state = domain.AuthState{
		IsAuthenticated: true,
		Roles:           slices.Clone(roles),
		UserID:          userID,
	}
	if s.state.Roles == nil {
		s.state.Roles = []string{}
	}
	s.mu.Unlock()

	s.logger.Info("User logged in", zap.String("userId", userID))
}

// Logout clears the projection and removes the stored token. The projection
// is cleared even when the token cannot be removed.
func (s *SessionState) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.state = domain.AuthState{Roles: []string{}}
	s.mu.Unlock()

	if err := s.session.RemoveToken(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.logger.Info("User logged out")
	return nil
}

func (s *SessionState) Snapshot() domain.AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.state
	snapshot.Roles = slices.Clone(s.state.Roles)
	return snapshot
}

func (s *SessionState) HasRole(role string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.HasRole(role)
}
