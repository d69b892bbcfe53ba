package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/marvel-dashboard/internal/domain"
	"github.com/bnema/marvel-dashboard/internal/ports"
	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

const (
	passwordGrantType     = "password"
	maxOAuthResponseBytes = 1 << 20
	tokenPath             = "/oauth/token"
	userInfoPath          = "/userinfo"
)

var DefaultScopes = []string{"openid", "profile", "email"}

type Config struct {
	// Domain is the identity tenant host, e.g. "tenant.eu.auth0.com". A value
	// with an explicit scheme is used as-is.
	Domain       string
	ClientID     string
	ClientSecret string
	Audience     string
	Scopes       []string
}

// PasswordGrantAdapter talks to an Auth0-style tenant using the resource
// owner password grant and the OIDC userinfo endpoint.
type PasswordGrantAdapter struct {
	Config         Config
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.IdentityProvider = PasswordGrantAdapter{}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope"`
}

type oauthErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ExchangePassword returns the access token on success. Every failure is a
// *domain.CredentialError; rejections keep the provider's code and
// description, anything else becomes the generic unknown error.
func (a PasswordGrantAdapter) ExchangePassword(ctx context.Context, username string, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	endpoint, err := a.endpoint(tokenPath)
	if err != nil {
		return "", domain.NewUnknownCredentialError()
	}

	scopes := a.Config.Scopes
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}

	values := url.Values{}
	values.Set("grant_type", passwordGrantType)
	values.Set("username", username)
	values.Set("password", password)
	values.Set("client_id", a.Config.ClientID)
	values.Set("client_secret", a.Config.ClientSecret)
	if a.Config.Audience != "" {
		values.Set("audience", a.Config.Audience)
	}
	values.Set("scope", strings.Join(scopes, " "))

	requestCtx, cancel := a.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return "", domain.NewUnknownCredentialError()
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient().Do(req)
	if err != nil {
		return "", domain.NewUnknownCredentialError()
	}
	defer func() { _ = resp.Body.Close() }()

	body := io.LimitReader(resp.Body, maxOAuthResponseBytes)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var oauthErr oauthErrorResponse
		if err := json.NewDecoder(body).Decode(&oauthErr); err != nil || oauthErr.Error == "" {
			return "", domain.NewUnknownCredentialError()
		}
		return "", &domain.CredentialError{Code: oauthErr.Error, Description: oauthErr.ErrorDescription}
	}

	var token tokenResponse
	if err := json.NewDecoder(body).Decode(&token); err != nil || token.AccessToken == "" {
		return "", domain.NewUnknownCredentialError()
	}

	return token.AccessToken, nil
}

// UserInfo fetches the profile of the token's subject.
func (a PasswordGrantAdapter) UserInfo(ctx context.Context, accessToken string) (domain.UserInfo, error) {
	if accessToken == "" {
		return domain.UserInfo{}, &domain.FetchError{Resource: "user info", Err: domain.ErrNotAuthenticated}
	}

	issuer, err := a.endpoint("/")
	if err != nil {
		return domain.UserInfo{}, &domain.FetchError{Resource: "user info", Err: err}
	}
	userInfoURL, err := a.endpoint(userInfoPath)
	if err != nil {
		return domain.UserInfo{}, &domain.FetchError{Resource: "user info", Err: err}
	}

	requestCtx, cancel := a.requestContext(ctx)
	defer cancel()
	if a.HTTPClient != nil {
		requestCtx = oidc.ClientContext(requestCtx, a.HTTPClient)
	}

	providerConfig := &oidc.ProviderConfig{IssuerURL: issuer, UserInfoURL: userInfoURL}
	provider := providerConfig.NewProvider(requestCtx)

	info, err := provider.UserInfo(requestCtx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))
	if err != nil {
		return domain.UserInfo{}, &domain.FetchError{Resource: "user info", Err: err}
	}

	var profile domain.UserInfo
	if err := info.Claims(&profile); err != nil {
		return domain.UserInfo{}, &domain.FetchError{Resource: "user info", Err: fmt.Errorf("decode claims: %w", err)}
	}

	return profile, nil
}

func (a PasswordGrantAdapter) endpoint(path string) (string, error) {
	return buildAPIURL(baseURLFromDomain(a.Config.Domain), path)
}

func (a PasswordGrantAdapter) httpClient() *http.Client {
	if a.HTTPClient != nil {
		return a.HTTPClient
	}
	return http.DefaultClient
}

func (a PasswordGrantAdapter) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := a.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func baseURLFromDomain(domainName string) string {
	domainName = strings.TrimSpace(domainName)
	if domainName == "" {
		return ""
	}
	if strings.Contains(domainName, "://") {
		return domainName
	}
	return "https://" + domainName
}

func buildAPIURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		return "", errors.New("identity domain is required")
	}
	if path == "" {
		return "", errors.New("api path is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse identity domain: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("identity domain must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("identity domain host is required")
	}

	endpoint, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	return endpoint.String(), nil
}
