package application

import (
	"errors"
	"fmt"
	"time"

	"github.com/bnema/marvel-dashboard/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

const DefaultRolesClaim = "roles"

var errClaimMissing = errors.New("claim missing")

// decodeClaims reads the token payload without verifying the signature; the
// identity provider and the APIs that accept the token do that.
func decodeClaims(token string) (jwt.MapClaims, *domain.DecodeError) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, &domain.DecodeError{Err: err}
	}
	return claims, nil
}

func expiryOf(claims jwt.MapClaims) (time.Time, *domain.DecodeError) {
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, &domain.DecodeError{Claim: "exp", Err: err}
	}
	if exp == nil {
		return time.Time{}, &domain.DecodeError{Claim: "exp", Err: errClaimMissing}
	}
	return exp.Time, nil
}

// rolesOf accepts a string array or a single string. An absent claim is an
// empty role set, not an error.
func rolesOf(claims jwt.MapClaims, rolesClaim string) ([]string, *domain.DecodeError) {
	raw, ok := claims[rolesClaim]
	if !ok || raw == nil {
		return []string{}, nil
	}

	switch value := raw.(type) {
	case string:
		return []string{value}, nil
	case []any:
		roles := make([]string, 0, len(value))
		for _, item := range value {
			role, ok := item.(string)
			if !ok {
				return nil, &domain.DecodeError{Claim: rolesClaim, Err: fmt.Errorf("unexpected role type %T", item)}
			}
			roles = append(roles, role)
		}
		return roles, nil
	default:
		return nil, &domain.DecodeError{Claim: rolesClaim, Err: fmt.Errorf("unexpected claim type %T", raw)}
	}
}
