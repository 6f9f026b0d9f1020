package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Log       LogConfig       `mapstructure:"log"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Dictation DictationConfig `mapstructure:"dictation"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	CORSOrigins string `mapstructure:"cors_origins"`
}

// AllowedOrigins splits the comma separated origin list.
func (s ServerConfig) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(s.CORSOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
	LogSQL   bool   `mapstructure:"log_sql"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AuthConfig holds bearer token verification settings. An empty JWTSecret
// disables authentication.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

// Enabled reports whether requests must carry a bearer token.
func (a AuthConfig) Enabled() bool { return a.JWTSecret != "" }

// DictationConfig tunes practice sessions.
type DictationConfig struct {
	AdvanceDelay    time.Duration `mapstructure:"advance_delay"`
	SessionTTL      time.Duration `mapstructure:"session_ttl"`
	JanitorInterval time.Duration `mapstructure:"janitor_interval"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	setDefaults()

	// Enable reading from environment variables
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read configuration file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.cors_origins", "*")

	// Database defaults
	viper.SetDefault("database.driver", "")
	viper.SetDefault("database.url", "")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "keymantra")
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.log_sql", false)

	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")

	// Auth defaults
	viper.SetDefault("auth.jwt_secret", "")
	viper.SetDefault("auth.issuer", "")

	// Dictation defaults
	viper.SetDefault("dictation.advance_delay", time.Second)
	viper.SetDefault("dictation.session_ttl", 30*time.Minute)
	viper.SetDefault("dictation.janitor_interval", time.Minute)
}

// DatabaseDriver returns the database/sql driver name: "postgres" or "sqlite3".
// An explicit driver wins; otherwise it is inferred from the URL scheme.
func (c *Config) DatabaseDriver() (string, error) {
	switch strings.ToLower(strings.TrimSpace(c.Database.Driver)) {
	case "postgres", "postgresql", "pgx":
		return "postgres", nil
	case "sqlite", "sqlite3":
		return "sqlite3", nil
	case "":
	default:
		return "", fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	raw := strings.TrimSpace(c.Database.URL)
	if raw == "" {
		return "postgres", nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return "sqlite3", nil
	}
	switch u.Scheme {
	case "postgres", "postgresql":
		return "postgres", nil
	case "sqlite", "sqlite3", "file":
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("cannot infer database driver from scheme %q", u.Scheme)
	}
}

// DatabaseURL returns the DSN for the selected driver.
func (c *Config) DatabaseURL() (string, error) {
	driver, err := c.DatabaseDriver()
	if err != nil {
		return "", err
	}
	raw := strings.TrimSpace(c.Database.URL)

	if driver == "sqlite3" {
		if raw == "" {
			return "file:keymantra.db?cache=shared", nil
		}
		for _, prefix := range []string{"sqlite3://", "sqlite://"} {
			if rest, ok := strings.CutPrefix(raw, prefix); ok {
				return "file:" + rest, nil
			}
		}
		return raw, nil
	}

	if raw != "" {
		return raw, nil
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.Database.User),
		url.QueryEscape(c.Database.Password),
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	), nil
}
