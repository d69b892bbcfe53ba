package domain

import (
	"slices"
	"time"
)

type Session struct {
	Token     string
	ExpiresAt time.Time
	Roles     []string
}

func (s Session) ExpiredAt(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// AuthState is the process-wide projection of the active session.
type AuthState struct {
	IsAuthenticated bool
	Roles           []string
	UserID          string
}

func (s AuthState) HasRole(role string) bool {
	return slices.Contains(s.Roles, role)
}

type UserInfo struct {
	Name          string `json:"name"`
	Nickname      string `json:"nickname"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Picture       string `json:"picture"`
}
