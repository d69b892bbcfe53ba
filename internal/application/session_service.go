package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/marvel-dashboard/internal/domain"
	"github.com/bnema/marvel-dashboard/internal/ports"
	"go.uber.org/zap"
)

type SessionService struct {
	identity    ports.IdentityProvider
	credentials *CredentialStore
	clock       ports.Clock
	logger      *zap.Logger
	rolesClaim  string
}

type SessionOption func(*SessionService)

// WithRolesClaim overrides the claim roles are read from. Auth0 tenants
// usually publish them under a namespaced claim.
func WithRolesClaim(claim string) SessionOption {
	return func(s *SessionService) {
		if claim = strings.TrimSpace(claim); claim != "" {
			s.rolesClaim = claim
		}
	}
}

func WithSessionLogger(logger *zap.Logger) SessionOption {
	return func(s *SessionService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewSessionService(identity ports.IdentityProvider, credentials *CredentialStore, clock ports.Clock, opts ...SessionOption) *SessionService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	s := &SessionService{
		identity:    identity,
		credentials: credentials,
		clock:       clock,
		logger:      zap.NewNop(),
		rolesClaim:  DefaultRolesClaim,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// IssueToken exchanges credentials for an access token. Errors are
// *domain.CredentialError.
func (s *SessionService) IssueToken(ctx context.Context, username string, password string) (string, error) {
	token, err := s.identity.ExchangePassword(ctx, username, password)
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *SessionService) StoreToken(ctx context.Context, token string) error {
	return s.credentials.Save(ctx, token)
}

func (s *SessionService) ReadToken(ctx context.Context) (string, bool, error) {
	return s.credentials.Load(ctx)
}

func (s *SessionService) RemoveToken(ctx context.Context) error {
	return s.credentials.Remove(ctx)
}

// IsValid reports whether a stored token exists and its exp claim is strictly
// in the future. It never fails; every problem reads as "not valid".
func (s *SessionService) IsValid(ctx context.Context) bool {
	token, ok, err := s.credentials.Load(ctx)
	if err != nil {
		s.logger.Debug("stored token unreadable", zap.Error(err))
		return false
	}
	if !ok {
		return false
	}

	return s.tokenValid(token)
}

func (s *SessionService) tokenValid(token string) bool {
	claims, decodeErr := decodeClaims(token)
	if decodeErr != nil {
		s.logger.Debug("token decode failed", zap.Error(decodeErr))
		return false
	}

	expiresAt, decodeErr := expiryOf(claims)
	if decodeErr != nil {
		s.logger.Debug("token expiry unreadable", zap.Error(decodeErr))
		return false
	}

	return expiresAt.After(s.clock.Now())
}

// RolesOf returns the token's roles, or an empty set when the token or the
// claim cannot be decoded.
func (s *SessionService) RolesOf(token string) []string {
	claims, decodeErr := decodeClaims(token)
	if decodeErr != nil {
		s.logger.Debug("token decode failed", zap.Error(decodeErr))
		return []string{}
	}

	roles, decodeErr := rolesOf(claims, s.rolesClaim)
	if decodeErr != nil {
		s.logger.Debug("token roles unreadable", zap.Error(decodeErr))
		return []string{}
	}

	return roles
}

// Current describes the stored session. ok is false when no token is stored
// or its expiry cannot be read.
func (s *SessionService) Current(ctx context.Context) (domain.Session, bool, error) {
	token, ok, err := s.credentials.Load(ctx)
	if err != nil || !ok {
		return domain.Session{}, false, err
	}

	claims, decodeErr := decodeClaims(token)
	if decodeErr != nil {
		s.logger.Debug("token decode failed", zap.Error(decodeErr))
		return domain.Session{}, false, nil
	}
	expiresAt, decodeErr := expiryOf(claims)
	if decodeErr != nil {
		s.logger.Debug("token expiry unreadable", zap.Error(decodeErr))
		return domain.Session{}, false, nil
	}

	return domain.Session{Token: token, ExpiresAt: expiresAt, Roles: s.RolesOf(token)}, true, nil
}

// Login issues and stores a new token and returns the resulting session.
// Nothing is stored when the exchange fails.
func (s *SessionService) Login(ctx context.Context, username string, password string) (domain.Session, error) {
	token, err := s.IssueToken(ctx, username, password)
	if err != nil {
		return domain.Session{}, err
	}

	if err := s.StoreToken(ctx, token); err != nil {
		return domain.Session{}, fmt.Errorf("persist session: %w", err)
	}

	session := domain.Session{Token: token, Roles: s.RolesOf(token)}
	if claims, decodeErr := decodeClaims(token); decodeErr == nil {
		if expiresAt, decodeErr := expiryOf(claims); decodeErr == nil {
			session.ExpiresAt = expiresAt
		}
	}

	return session, nil
}

func (s *SessionService) UserInfo(ctx context.Context) (domain.UserInfo, error) {
	token, ok, err := s.credentials.Load(ctx)
	if err != nil {
		return domain.UserInfo{}, fmt.Errorf("load session token: %w", err)
	}
	if !ok {
		return domain.UserInfo{}, domain.ErrNotAuthenticated
	}

	info, err := s.identity.UserInfo(ctx, token)
	if err != nil {
		s.logger.Error("Failed to fetch user info", zap.Error(err))
		return domain.UserInfo{}, err
	}

	return info, nil
}
