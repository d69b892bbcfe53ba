package domain

import (
	"errors"
	"fmt"
)

const (
	CredentialErrorUnknown       = "unknown_error"
	credentialUnknownDescription = "An unknown error occurred"
)

var (
	ErrNotAuthenticated      = errors.New("not authenticated")
	ErrForbidden             = errors.New("missing required role")
	ErrStorageKeyNotFound    = errors.New("storage key not found")
	ErrUnsupportedCollection = errors.New("unsupported collection")
)

// CredentialError is returned when the identity provider rejects a credential
// exchange or the exchange cannot be completed.
type CredentialError struct {
	Code        string
	Description string
}

func NewUnknownCredentialError() *CredentialError {
	return &CredentialError{Code: CredentialErrorUnknown, Description: credentialUnknownDescription}
}

func (e *CredentialError) Error() string {
	if e.Description == "" {
		return e.Code
	}
	return e.Code + ": " + e.Description
}

// Message is the text shown to the user.
func (e *CredentialError) Message() string {
	if e.Description == "" {
		return credentialUnknownDescription
	}
	return e.Description
}

// FetchError reports a failed catalog or profile fetch.
type FetchError struct {
	Resource   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.Resource, e.StatusCode)
	}
	if e.Err == nil {
		return "fetch " + e.Resource + ": failed"
	}
	return fmt.Sprintf("fetch %s: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// DecodeError reports a malformed session token or claim.
type DecodeError struct {
	Claim string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Claim == "" {
		return fmt.Sprintf("decode token: %v", e.Err)
	}
	return fmt.Sprintf("decode token claim %q: %v", e.Claim, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
