package catalog

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/marvel-dashboard/internal/domain"
	"github.com/bnema/marvel-dashboard/internal/ports"
)

const (
	DefaultBaseURL        = "https://gateway.marvel.com/v1/public"
	maxCatalogResponse    = 8 << 20
	defaultRequestTimeout = 15 * time.Second
)

type Config struct {
	BaseURL    string
	PublicKey  string
	PrivateKey string
}

// Client reads the public Marvel catalog. It never retries; callers decide
// what to do with a *domain.FetchError.
type Client struct {
	Config         Config
	HTTPClient     *http.Client
	Clock          ports.Clock
	RequestTimeout time.Duration
}

var _ ports.CatalogClient = (*Client)(nil)

type envelope[T any] struct {
	Code            int            `json:"code"`
	Status          string         `json:"status"`
	AttributionText string         `json:"attributionText"`
	Data            domain.Page[T] `json:"data"`
}

type errorBody struct {
	Code    any    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (c *Client) FetchCharacters(ctx context.Context, query ports.CatalogQuery) (domain.Page[domain.Character], error) {
	return fetchPage[domain.Character](ctx, c, domain.CollectionCharacters, "nameStartsWith", query)
}

func (c *Client) FetchSeries(ctx context.Context, query ports.CatalogQuery) (domain.Page[domain.Series], error) {
	return fetchPage[domain.Series](ctx, c, domain.CollectionSeries, "titleStartsWith", query)
}

func fetchPage[T any](ctx context.Context, c *Client, collection domain.Collection, startsWithParam string, query ports.CatalogQuery) (domain.Page[T], error) {
	resource := string(collection)

	endpoint, err := c.buildURL(resource, startsWithParam, query)
	if err != nil {
		return domain.Page[T]{}, &domain.FetchError{Resource: resource, Err: err}
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Page[T]{}, &domain.FetchError{Resource: resource, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return domain.Page[T]{}, &domain.FetchError{Resource: resource, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body := io.LimitReader(resp.Body, maxCatalogResponse)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return domain.Page[T]{}, &domain.FetchError{
			Resource:   resource,
			StatusCode: resp.StatusCode,
			Err:        decodeErrorBody(body),
		}
	}

	var payload envelope[T]
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return domain.Page[T]{}, &domain.FetchError{Resource: resource, Err: fmt.Errorf("decode response: %w", err)}
	}
	if payload.Data.Results == nil {
		payload.Data.Results = []T{}
	}

	return payload.Data, nil
}

func (c *Client) buildURL(resource string, startsWithParam string, query ports.CatalogQuery) (string, error) {
	baseURL := strings.TrimSpace(c.Config.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if c.Config.PublicKey == "" || c.Config.PrivateKey == "" {
		return "", errors.New("catalog api keys are required")
	}

	parsed, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/" + resource)
	if err != nil {
		return "", fmt.Errorf("parse catalog base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("catalog base url must use http or https")
	}

	ts := strconv.FormatInt(c.now().UnixMilli(), 10)

	values := url.Values{}
	values.Set("apikey", c.Config.PublicKey)
	values.Set("ts", ts)
	values.Set("hash", Signature(ts, c.Config.PrivateKey, c.Config.PublicKey))
	if query.Offset != nil {
		values.Set("offset", strconv.Itoa(*query.Offset))
	}
	if query.Limit != nil {
		values.Set("limit", strconv.Itoa(*query.Limit))
	}
	if query.StartsWith != "" {
		values.Set(startsWithParam, query.StartsWith)
	}
	parsed.RawQuery = values.Encode()

	return parsed.String(), nil
}

// Signature is the request hash the catalog API expects:
// hex(md5(ts + privateKey + publicKey)).
func Signature(ts string, privateKey string, publicKey string) string {
	sum := md5.Sum([]byte(ts + privateKey + publicKey))
	return hex.EncodeToString(sum[:])
}

func decodeErrorBody(body io.Reader) error {
	var payload errorBody
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return nil
	}
	switch {
	case payload.Message != "":
		return errors.New(payload.Message)
	case payload.Status != "":
		return errors.New(payload.Status)
	default:
		return nil
	}
}

func (c *Client) now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock.Now()
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	timeout := c.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return context.WithTimeout(ctx, timeout)
}
