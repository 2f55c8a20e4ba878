// Package config loads tutor server configuration from the environment.
//
// Configuration is read with Viper from environment variables, optionally
// layered over a file named by TUTOR_CONFIG (any format Viper reads).
//
// # Environment Variables
//
//   - JWT_SECRET: Shared HMAC secret for session tokens. Required.
//   - DB_PATH: SQLite database path. Default: tutor.db
//   - PORT: HTTP listen port. Default: 8787
//   - LOG_LEVEL: debug, info, warn, error. Default: info
//   - COURSES_DIR: Directory of course definitions to sync. Optional.
//   - PASSWORD_SCHEME: sha256 or bcrypt for newly stored passwords. Default: sha256
//   - TOKEN_LIFETIME: Session token lifetime. Default: 24h
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"git.sr.ht/~jakintosh/tutor/pkg/password"
	"github.com/spf13/viper"
)

var ErrSecretMissing = errors.New("JWT_SECRET is required")

type Config struct {
	JWTSecret      string        `mapstructure:"JWT_SECRET"`
	DBPath         string        `mapstructure:"DB_PATH"`
	Port           int           `mapstructure:"PORT"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	CoursesDir     string        `mapstructure:"COURSES_DIR"`
	PasswordScheme string        `mapstructure:"PASSWORD_SCHEME"`
	TokenLifetime  time.Duration `mapstructure:"TOKEN_LIFETIME"`
}

func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("DB_PATH", "tutor.db")
	v.SetDefault("PORT", 8787)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("COURSES_DIR", "")
	v.SetDefault("PASSWORD_SCHEME", string(password.SchemeSHA256))
	v.SetDefault("TOKEN_LIFETIME", "24h")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("TUTOR_CONFIG"); err != nil {
		return nil, err
	}
	if path := v.GetString("TUTOR_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrSecretMissing
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT %d out of range", c.Port)
	}
	if c.TokenLifetime <= 0 {
		return fmt.Errorf("TOKEN_LIFETIME must be positive, got %s", c.TokenLifetime)
	}
	if _, err := password.ParseScheme(c.PasswordScheme); err != nil {
		return fmt.Errorf("PASSWORD_SCHEME: %w", err)
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Redacted returns a map suitable for logging with the secret replaced.
func (c Config) Redacted() map[string]any {
	redacted := map[string]any{
		"db_path":         c.DBPath,
		"port":            c.Port,
		"log_level":       c.LogLevel,
		"courses_dir":     c.CoursesDir,
		"password_scheme": c.PasswordScheme,
		"token_lifetime":  c.TokenLifetime.String(),
	}
	if c.JWTSecret != "" {
		redacted["jwt_secret"] = fmt.Sprintf("*** (%d bytes)", len(c.JWTSecret))
	}
	return redacted
}
