// Package config loads registrar settings from defaults, an optional TOML
// file and the environment, in that order of precedence (last wins).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mmynk/registrar/internal/records"
	"github.com/mmynk/registrar/internal/storage"
)

// Config aggregates every setting of the registrar binaries.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Storage  StorageConfig  `toml:"storage"`
	Auth     AuthConfig     `toml:"auth"`
	Registry RegistryConfig `toml:"registry"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig describes the HTTP server.
type ServerConfig struct {
	Addr       string `toml:"addr"`
	StaticPath string `toml:"static_path"`
}

// StorageConfig describes the local store.
type StorageConfig struct {
	// Path is the SQLite database file. ":memory:" keeps everything in RAM.
	Path string `toml:"path"`
	// Key is the storage key holding the collection.
	Key string `toml:"key"`
	// Quota is the store size limit in characters. Zero disables it.
	Quota int64 `toml:"quota"`
}

// AuthConfig describes the optional admin login.
type AuthConfig struct {
	AdminUser         string        `toml:"admin_user"`
	AdminPasswordHash string        `toml:"admin_password_hash"`
	JWTSecret         string        `toml:"jwt_secret"`
	TokenTTL          time.Duration `toml:"token_ttl"`
}

// Enabled reports whether admin login is configured.
func (c AuthConfig) Enabled() bool {
	return c.AdminPasswordHash != ""
}

// RegistryConfig describes registration behavior.
type RegistryConfig struct {
	// StrictValidation rejects blank names and malformed emails.
	StrictValidation bool `toml:"strict_validation"`
}

// LogConfig describes logging.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:       ":8080",
			StaticPath: "./static",
		},
		Storage: StorageConfig{
			Path:  "./data/registrar.db",
			Key:   records.DefaultKey,
			Quota: storage.DefaultQuota,
		},
		Auth: AuthConfig{
			AdminUser: "admin",
			TokenTTL:  24 * time.Hour,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration. path names an optional TOML file; when
// empty, REGISTRAR_CONFIG is consulted. Environment variables override the
// file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("REGISTRAR_CONFIG")
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Storage.Path == "" {
		return fmt.Errorf("storage path must not be empty")
	}
	if c.Storage.Quota < 0 {
		return fmt.Errorf("invalid storage quota: %d", c.Storage.Quota)
	}
	if c.Auth.Enabled() && c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when ADMIN_PASSWORD_HASH is set")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("invalid token TTL: %s", c.Auth.TokenTTL)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		addr, err := parseAddr(port)
		if err != nil {
			return err
		}
		cfg.Server.Addr = addr
	}
	setString(&cfg.Server.StaticPath, "STATIC_PATH")
	setString(&cfg.Storage.Path, "DB_PATH")
	setString(&cfg.Storage.Key, "STORAGE_KEY")
	setString(&cfg.Auth.AdminUser, "ADMIN_USER")
	setString(&cfg.Auth.AdminPasswordHash, "ADMIN_PASSWORD_HASH")
	setString(&cfg.Auth.JWTSecret, "JWT_SECRET")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")

	if v := os.Getenv("STORAGE_QUOTA"); v != "" {
		quota, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid STORAGE_QUOTA value: %q", v)
		}
		cfg.Storage.Quota = quota
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TOKEN_TTL value: %q", v)
		}
		cfg.Auth.TokenTTL = ttl
	}
	if v := os.Getenv("STRICT_VALIDATION"); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid STRICT_VALIDATION value: %q", v)
		}
		cfg.Registry.StrictValidation = strict
	}
	return nil
}

// parseAddr accepts "8080", ":8080" or "127.0.0.1:8080".
func parseAddr(port string) (string, error) {
	if strings.Contains(port, ":") {
		return port, nil
	}
	if _, err := strconv.Atoi(port); err != nil {
		return "", fmt.Errorf("invalid PORT value: %q", port)
	}
	return ":" + port, nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
