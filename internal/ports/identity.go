package ports

import (
	"context"

	"github.com/bnema/marvel-dashboard/internal/domain"
)

type IdentityProvider interface {
	// ExchangePassword returns an access token or a *domain.CredentialError.
	ExchangePassword(ctx context.Context, username, password string) (string, error)
	UserInfo(ctx context.Context, accessToken string) (domain.UserInfo, error)
}
