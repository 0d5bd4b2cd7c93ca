// Package config loads and exposes application configuration (TOML).
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Default configuration values used when a field is missing in TOML.
const (
	DefaultConfigPath      = "config.toml"
	DefaultHTTPAddr        = ":3000"
	DefaultPGHost          = "127.0.0.1"
	DefaultPGPort          = 5432
	DefaultPGUser          = "postgres"
	DefaultPGDatabase      = "crm"
	DefaultPGSSLMode       = "disable"
	DefaultMaxBodyBytes    = 1 << 20
	DefaultPersistTimeout  = 5 * time.Second
	DefaultRelayTimeout    = 10 * time.Second
	DefaultGraphBaseURL    = "https://graph.facebook.com"
	DefaultGraphAPIVersion = "v18.0"
	DefaultSendRatePerSec  = 5
	DefaultLiveBufferSize  = 64
)

// Config is the root application configuration loaded from TOML.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Server   ServerConfig   `toml:"server"`
	Auth     AuthConfig     `toml:"auth"`
	Postgres PostgresConfig `toml:"postgres"`
	Webhook  WebhookConfig  `toml:"webhook"`
	Meta     MetaConfig     `toml:"meta"`
	Relay    RelayConfig    `toml:"relay"`
	Live     LiveConfig     `toml:"live"`
}

// LogConfig holds logging level and format (e.g. level=info, format=text).
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ServerConfig holds the HTTP server listen address.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// AuthConfig holds the HS256 secret the identity provider signs user tokens with.
// Tokens are only verified here, never issued.
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
}

// PostgresConfig holds PostgreSQL connection parameters.
// URL, when set, takes precedence over the individual fields.
type PostgresConfig struct {
	URL      string `toml:"url"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	SSLMode  string `toml:"sslmode"`
}

// WebhookConfig holds the provider webhook secrets and ingestion limits.
type WebhookConfig struct {
	VerifyToken    string   `toml:"verify_token"`
	AppSecret      string   `toml:"app_secret"`
	AllowUnsigned  bool     `toml:"allow_unsigned"`
	MaxBodyBytes   int64    `toml:"max_body_bytes"`
	PersistTimeout Duration `toml:"persist_timeout"`
}

// MetaConfig holds the business account identifiers and Graph API settings.
type MetaConfig struct {
	InstagramAccountID string  `toml:"instagram_account_id"`
	FacebookPageID     string  `toml:"facebook_page_id"`
	AccessToken        string  `toml:"access_token"`
	GraphBaseURL       string  `toml:"graph_base_url"`
	APIVersion         string  `toml:"api_version"`
	SendRatePerSecond  float64 `toml:"send_rate_per_second"`
}

// RelayConfig holds the default forwarding target. The persisted forwarding
// setting overrides Enabled and URL once it has been written.
type RelayConfig struct {
	Enabled         bool     `toml:"enabled"`
	URL             string   `toml:"url"`
	Timeout         Duration `toml:"timeout"`
	ExcludedObjects []string `toml:"excluded_objects"`
}

// LiveConfig holds websocket fan-out settings.
type LiveConfig struct {
	BufferSize     int      `toml:"buffer_size"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Duration wraps time.Duration so TOML can carry values like "5s".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText renders the duration in Go syntax.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: DefaultHTTPAddr,
		},
		Postgres: PostgresConfig{
			Host:     DefaultPGHost,
			Port:     DefaultPGPort,
			User:     DefaultPGUser,
			Database: DefaultPGDatabase,
			SSLMode:  DefaultPGSSLMode,
		},
		Webhook: WebhookConfig{
			MaxBodyBytes:   DefaultMaxBodyBytes,
			PersistTimeout: Duration{DefaultPersistTimeout},
		},
		Meta: MetaConfig{
			GraphBaseURL:      DefaultGraphBaseURL,
			APIVersion:        DefaultGraphAPIVersion,
			SendRatePerSecond: DefaultSendRatePerSec,
		},
		Relay: RelayConfig{
			Enabled:         true,
			Timeout:         Duration{DefaultRelayTimeout},
			ExcludedObjects: []string{"page"},
		},
		Live: LiveConfig{
			BufferSize: DefaultLiveBufferSize,
		},
	}
}

// Load reads and parses the TOML config file at path and applies default values for missing fields.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
