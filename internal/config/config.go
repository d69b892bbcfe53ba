package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	envPrefix  = "MARVEL"

	DirName         = ".marvel-dashboard"
	storageFileName = "storage.toml"
)

const (
	BackendTOML  = "toml"
	BackendPass  = "pass"
	BackendRedis = "redis"
	BackendChain = "chain"
)

type Config struct {
	Auth      AuthSettings      `mapstructure:"auth"`
	Catalog   CatalogSettings   `mapstructure:"catalog"`
	Storage   StorageSettings   `mapstructure:"storage"`
	Crypto    CryptoSettings    `mapstructure:"crypto"`
	Log       LogSettings       `mapstructure:"log"`
	Dashboard DashboardSettings `mapstructure:"dashboard"`
}

type AuthSettings struct {
	Domain       string        `mapstructure:"domain"`
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	Audience     string        `mapstructure:"audience"`
	RolesClaim   string        `mapstructure:"roles_claim"`
	SecretKey    string        `mapstructure:"secret_key"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type CatalogSettings struct {
	BaseURL    string        `mapstructure:"base_url"`
	PublicKey  string        `mapstructure:"public_key"`
	PrivateKey string        `mapstructure:"private_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type StorageSettings struct {
	Backend       string `mapstructure:"backend"`
	Path          string `mapstructure:"path"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	Prefix        string `mapstructure:"prefix"`
}

// CryptoSettings tunes the Argon2id derivation of the token encryption key.
type CryptoSettings struct {
	Memory      uint32 `mapstructure:"memory"`
	Iterations  uint32 `mapstructure:"iterations"`
	Parallelism uint8  `mapstructure:"parallelism"`
}

type LogSettings struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Capacity int    `mapstructure:"capacity"`
}

type DashboardSettings struct {
	PageSize int `mapstructure:"page_size"`
}

type LoadOptions struct {
	// HomeDir overrides the user's home directory.
	HomeDir string
	// ConfigFile is read instead of <home>/.marvel-dashboard/config.toml.
	ConfigFile string
	// EnvFiles are dotenv files read in order; earlier files win. Missing
	// files are skipped. Defaults to ".env" and <home>/.marvel-dashboard/.env.
	EnvFiles []string
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// envAliases are the variable names used by the web build of the dashboard,
// accepted so an existing .env keeps working.
var envAliases = map[string]string{
	"auth.domain":         "VITE_AUTH0_DOMAIN",
	"auth.client_id":      "VITE_AUTH0_CLIENT_ID",
	"auth.client_secret":  "VITE_AUTH0_CLIENT_SECRET",
	"auth.audience":       "VITE_AUTH0_AUDIENCE",
	"auth.secret_key":     "VITE_SECRET_KEY",
	"catalog.base_url":    "VITE_MARVEL_API_BASE_URL",
	"catalog.public_key":  "VITE_MARVEL_API_PUBLIC_KEY",
	"catalog.private_key": "VITE_MARVEL_API_PRIVATE_KEY",
}

var keys = []string{
	"auth.domain",
	"auth.client_id",
	"auth.client_secret",
	"auth.audience",
	"auth.roles_claim",
	"auth.secret_key",
	"auth.timeout",
	"catalog.base_url",
	"catalog.public_key",
	"catalog.private_key",
	"catalog.timeout",
	"storage.backend",
	"storage.path",
	"storage.redis_addr",
	"storage.redis_password",
	"storage.redis_db",
	"storage.prefix",
	"crypto.memory",
	"crypto.iterations",
	"crypto.parallelism",
	"log.level",
	"log.format",
	"log.capacity",
	"dashboard.page_size",
}

func Load(opts LoadOptions) (*Config, error) {
	homeDir := opts.HomeDir
	if homeDir == "" {
		var err error
		homeDir, err = os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
	}
	lookupEnv := opts.LookupEnv
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	v := viper.New()
	v.SetConfigType(configType)
	setDefaults(v, homeDir)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(filepath.Join(homeDir, DirName))
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	envFiles := opts.EnvFiles
	if envFiles == nil {
		envFiles = []string{".env", filepath.Join(homeDir, DirName, ".env")}
	}
	dotenv, err := readEnvFiles(envFiles)
	if err != nil {
		return nil, err
	}

	for _, key := range keys {
		if value, ok := lookupKey(key, lookupEnv, dotenv); ok {
			v.Set(key, value)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Storage.Path = expandHome(cfg.Storage.Path, homeDir)

	return &cfg, nil
}

func setDefaults(v *viper.Viper, homeDir string) {
	v.SetDefault("auth.roles_claim", "roles")
	v.SetDefault("auth.timeout", "30s")

	v.SetDefault("catalog.base_url", "https://gateway.marvel.com/v1/public")
	v.SetDefault("catalog.timeout", "15s")

	v.SetDefault("storage.backend", BackendTOML)
	v.SetDefault("storage.path", filepath.Join(homeDir, DirName, storageFileName))
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("storage.redis_db", 0)
	v.SetDefault("storage.prefix", "marvel-dashboard")

	v.SetDefault("crypto.memory", 64*1024)
	v.SetDefault("crypto.iterations", 3)
	v.SetDefault("crypto.parallelism", 4)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.capacity", 1000)

	v.SetDefault("dashboard.page_size", 20)
}

// lookupKey resolves MARVEL_<KEY> then the legacy alias, first from the
// process environment and then from the dotenv files.
func lookupKey(key string, lookupEnv func(string) (string, bool), dotenv map[string]string) (string, bool) {
	names := []string{envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}
	if alias, ok := envAliases[key]; ok {
		names = append(names, alias)
	}

	for _, name := range names {
		if value, ok := lookupEnv(name); ok {
			return value, true
		}
	}
	for _, name := range names {
		if value, ok := dotenv[name]; ok {
			return value, true
		}
	}
	return "", false
}

func readEnvFiles(paths []string) (map[string]string, error) {
	merged := map[string]string{}
	for _, path := range paths {
		values, err := godotenv.Read(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read env file %s: %w", path, err)
		}
		for key, value := range values {
			if _, exists := merged[key]; !exists {
				merged[key] = value
			}
		}
	}
	return merged, nil
}

func expandHome(path string, homeDir string) string {
	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
