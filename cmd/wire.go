package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bnema/marvel-dashboard/internal/adapters/auth"
	"github.com/bnema/marvel-dashboard/internal/adapters/catalog"
	"github.com/bnema/marvel-dashboard/internal/adapters/crypto"
	chainstore "github.com/bnema/marvel-dashboard/internal/adapters/storage/chain"
	passstore "github.com/bnema/marvel-dashboard/internal/adapters/storage/pass"
	redisstore "github.com/bnema/marvel-dashboard/internal/adapters/storage/redis"
	tomlstore "github.com/bnema/marvel-dashboard/internal/adapters/storage/toml"
	"github.com/bnema/marvel-dashboard/internal/application"
	"github.com/bnema/marvel-dashboard/internal/config"
	"github.com/bnema/marvel-dashboard/internal/logging"
	"github.com/bnema/marvel-dashboard/internal/ports"
	"go.uber.org/zap"
)

type app struct {
	cfg          *config.Config
	logger       *zap.Logger
	storage      ports.Storage
	logBook      *application.LogBook
	sessions     *application.SessionService
	sessionState *application.SessionState
	guard        *application.Guard
	catalog      ports.CatalogClient
	closers      []func() error
}

type wireOptions struct {
	ConfigFile string
	LogOutput  io.Writer
}

func wireApp(ctx context.Context, opts wireOptions) (*app, error) {
	cfg, err := config.Load(config.LoadOptions{ConfigFile: opts.ConfigFile})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := errors.Join(cfg.Validate(), cfg.ValidateAuth()); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	storage, closer, err := wireStorage(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("wire storage: %w", err)
	}

	a := &app{cfg: cfg, storage: storage}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}

	clock := ports.SystemClock{}
	a.logBook = application.NewLogBook(storage, clock, cfg.Log.Capacity)

	a.logger, err = logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: opts.LogOutput,
	}, a.logBook)
	if err != nil {
		_ = a.close()
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	cipher, err := crypto.NewCipher(cfg.Auth.SecretKey, crypto.KDFConfig{
		Memory:      cfg.Crypto.Memory,
		Iterations:  cfg.Crypto.Iterations,
		Parallelism: cfg.Crypto.Parallelism,
		SaltLength:  crypto.DefaultKDFConfig().SaltLength,
	})
	if err != nil {
		_ = a.close()
		return nil, fmt.Errorf("wire token cipher: %w", err)
	}

	httpClient := &http.Client{}
	identity := auth.PasswordGrantAdapter{
		Config: auth.Config{
			Domain:       cfg.Auth.Domain,
			ClientID:     cfg.Auth.ClientID,
			ClientSecret: cfg.Auth.ClientSecret,
			Audience:     cfg.Auth.Audience,
		},
		HTTPClient:     httpClient,
		RequestTimeout: cfg.Auth.Timeout,
	}

	a.sessions = application.NewSessionService(
		identity,
		application.NewCredentialStore(storage, cipher),
		clock,
		application.WithRolesClaim(cfg.Auth.RolesClaim),
		application.WithSessionLogger(a.logger),
	)
	a.sessionState = application.NewSessionState(a.sessions, a.logger)
	a.sessionState.Restore(ctx)
	a.guard = application.NewGuard(a.sessionState, a.sessions)

	a.catalog = &catalog.Client{
		Config: catalog.Config{
			BaseURL:    cfg.Catalog.BaseURL,
			PublicKey:  cfg.Catalog.PublicKey,
			PrivateKey: cfg.Catalog.PrivateKey,
		},
		HTTPClient:     httpClient,
		Clock:          clock,
		RequestTimeout: cfg.Catalog.Timeout,
	}

	return a, nil
}

func wireStorage(ctx context.Context, settings config.StorageSettings) (ports.Storage, func() error, error) {
	switch settings.Backend {
	case config.BackendPass:
		return passstore.NewStore(settings.Prefix), nil, nil
	case config.BackendChain:
		store, err := chainstore.NewPassFirstWithTOMLFallback(settings.Prefix, settings.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	case config.BackendRedis:
		store, err := redisstore.Dial(ctx, redisstore.Options{
			Addr:     settings.RedisAddr,
			Password: settings.RedisPassword,
			DB:       settings.RedisDB,
			Prefix:   settings.Prefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		store, err := tomlstore.NewStore(settings.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	}
}

func (a *app) newOrchestrator(opts ...application.OrchestratorOption) *application.Orchestrator {
	base := []application.OrchestratorOption{
		application.WithPageSize(a.cfg.Dashboard.PageSize),
		application.WithOrchestratorLogger(a.logger),
	}
	return application.NewOrchestrator(a.catalog, append(base, opts...)...)
}

func (a *app) close() error {
	var errs []error
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	for _, closer := range a.closers {
		errs = append(errs, closer())
	}
	return errors.Join(errs...)
}
