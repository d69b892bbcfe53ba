package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	home := t.TempDir()

	cfg, err := Load(LoadOptions{HomeDir: home, EnvFiles: []string{}, LookupEnv: noEnv})
	require.NoError(t, err)

	assert.Equal(t, "roles", cfg.Auth.RolesClaim)
	assert.Equal(t, 30*time.Second, cfg.Auth.Timeout)
	assert.Equal(t, "https://gateway.marvel.com/v1/public", cfg.Catalog.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, BackendTOML, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(home, DirName, "storage.toml"), cfg.Storage.Path)
	assert.Equal(t, uint32(64*1024), cfg.Crypto.Memory)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 1000, cfg.Log.Capacity)
	assert.Equal(t, 20, cfg.Dashboard.PageSize)
	require.NoError(t, cfg.Validate())
}

func TestLoadReadsConfigFileFromHome(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, DirName), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(home, DirName, "config.toml"), []byte(`
[auth]
domain = "tenant.eu.auth0.com"
client_id = "client-123"
roles_claim = "https://marvel.example/roles"

[storage]
backend = "chain"
path = "~/data/storage.toml"

[dashboard]
page_size = 50
`), 0o600))

	cfg, err := Load(LoadOptions{HomeDir: home, EnvFiles: []string{}, LookupEnv: noEnv})
	require.NoError(t, err)

	assert.Equal(t, "tenant.eu.auth0.com", cfg.Auth.Domain)
	assert.Equal(t, "client-123", cfg.Auth.ClientID)
	assert.Equal(t, "https://marvel.example/roles", cfg.Auth.RolesClaim)
	assert.Equal(t, BackendChain, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(home, "data", "storage.toml"), cfg.Storage.Path)
	assert.Equal(t, 50, cfg.Dashboard.PageSize)
}

func TestLoadPrecedenceEnvOverDotenvOverFile(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	configFile := filepath.Join(home, "custom.toml")
	require.NoError(t, os.WriteFile(configFile, []byte(`
[catalog]
public_key = "from-file"
private_key = "from-file"
timeout = "5s"
`), 0o600))

	dotenv := filepath.Join(home, ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("VITE_MARVEL_API_PUBLIC_KEY=from-dotenv-alias\nMARVEL_CATALOG_PRIVATE_KEY=from-dotenv\nMARVEL_LOG_LEVEL=debug\n"), 0o600))

	cfg, err := Load(LoadOptions{
		HomeDir:    home,
		ConfigFile: configFile,
		EnvFiles:   []string{dotenv, filepath.Join(home, "missing.env")},
		LookupEnv: envMap(map[string]string{
			"MARVEL_LOG_LEVEL":         "error",
			"MARVEL_STORAGE_REDIS_DB":  "3",
			"MARVEL_CATALOG_TIMEOUT":   "2s",
			"VITE_AUTH0_CLIENT_SECRET": "alias-secret",
		}),
	})
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv-alias", cfg.Catalog.PublicKey)
	assert.Equal(t, "from-dotenv", cfg.Catalog.PrivateKey)
	assert.Equal(t, 2*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, 3, cfg.Storage.RedisDB)
	assert.Equal(t, "alias-secret", cfg.Auth.ClientSecret)
}

func TestLoadExplicitMissingConfigFileFails(t *testing.T) {
	t.Parallel()

	_, err := Load(LoadOptions{
		HomeDir:    t.TempDir(),
		ConfigFile: filepath.Join(t.TempDir(), "nope.toml"),
		EnvFiles:   []string{},
		LookupEnv:  noEnv,
	})
	assert.ErrorContains(t, err, "read config file")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() Config {
		return Config{
			Storage:   StorageSettings{Backend: BackendTOML, Path: "/tmp/storage.toml"},
			Crypto:    CryptoSettings{Memory: 8192, Iterations: 1, Parallelism: 1},
			Log:       LogSettings{Level: "info"},
			Dashboard: DashboardSettings{PageSize: 20},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown backend", mutate: func(c *Config) { c.Storage.Backend = "sqlite" }, wantErr: "storage.backend"},
		{name: "redis without address", mutate: func(c *Config) { c.Storage.Backend = BackendRedis }, wantErr: "storage.redis_addr"},
		{name: "pass without path", mutate: func(c *Config) { c.Storage.Backend = BackendPass; c.Storage.Path = "" }},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "chatty" }, wantErr: "log.level"},
		{name: "page size too large", mutate: func(c *Config) { c.Dashboard.PageSize = 101 }, wantErr: "dashboard.page_size"},
		{name: "zero iterations", mutate: func(c *Config) { c.Crypto.Iterations = 0 }, wantErr: "crypto.iterations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateAuthAndCatalogListEveryMissingKey(t *testing.T) {
	t.Parallel()

	cfg := Config{}

	err := cfg.ValidateAuth()
	require.Error(t, err)
	assert.ErrorContains(t, err, "auth.domain")
	assert.ErrorContains(t, err, "auth.client_id")
	assert.ErrorContains(t, err, "auth.secret_key")

	err = cfg.ValidateCatalog()
	require.Error(t, err)
	assert.ErrorContains(t, err, "catalog.public_key")
	assert.ErrorContains(t, err, "catalog.private_key")

	cfg.Catalog = CatalogSettings{PublicKey: "pub", PrivateKey: "priv"}
	assert.NoError(t, cfg.ValidateCatalog())
}
