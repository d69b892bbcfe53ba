package config

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

const maxPageSize = 100

// Validate checks settings every command depends on.
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Backend {
	case BackendTOML, BackendPass, BackendChain:
		if strings.TrimSpace(c.Storage.Path) == "" && c.Storage.Backend != BackendPass {
			errs = append(errs, errors.New("storage.path is required"))
		}
	case BackendRedis:
		if strings.TrimSpace(c.Storage.RedisAddr) == "" {
			errs = append(errs, errors.New("storage.redis_addr is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.backend %q is not one of toml, pass, redis, chain", c.Storage.Backend))
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Dashboard.PageSize < 1 || c.Dashboard.PageSize > maxPageSize {
		errs = append(errs, fmt.Errorf("dashboard.page_size must be between 1 and %d", maxPageSize))
	}
	if c.Crypto.Iterations == 0 || c.Crypto.Parallelism == 0 {
		errs = append(errs, errors.New("crypto.iterations and crypto.parallelism must be greater than zero"))
	}

	return errors.Join(errs...)
}

// ValidateAuth checks the settings needed to sign in and read the session.
func (c *Config) ValidateAuth() error {
	var errs []error
	if strings.TrimSpace(c.Auth.Domain) == "" {
		errs = append(errs, errors.New("auth.domain is required"))
	}
	if strings.TrimSpace(c.Auth.ClientID) == "" {
		errs = append(errs, errors.New("auth.client_id is required"))
	}
	if strings.TrimSpace(c.Auth.SecretKey) == "" {
		errs = append(errs, errors.New("auth.secret_key is required"))
	}
	return errors.Join(errs...)
}

// ValidateCatalog checks the settings needed to query the catalog.
func (c *Config) ValidateCatalog() error {
	var errs []error
	if strings.TrimSpace(c.Catalog.PublicKey) == "" {
		errs = append(errs, errors.New("catalog.public_key is required"))
	}
	if strings.TrimSpace(c.Catalog.PrivateKey) == "" {
		errs = append(errs, errors.New("catalog.private_key is required"))
	}
	return errors.Join(errs...)
}
