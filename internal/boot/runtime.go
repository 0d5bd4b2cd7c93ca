// Package boot applies deployment environment overrides on top of the loaded configuration.
package boot

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/risut/crm/internal/config"
)

// RuntimeConfig is the effective configuration after environment overrides.
// Environment variable names follow the ones the service has always been deployed with
// (PORT, META_APP_SECRET, VERIFY_TOKEN, ...).
type RuntimeConfig struct {
	config.Config
	ServerAddr string
}

// ProvideRuntimeConfig builds RuntimeConfig from the given config, applies env
// overrides and checks what the HTTP server needs.
func ProvideRuntimeConfig(cfg config.Config) (*RuntimeConfig, error) {
	rc, err := FromEnv(cfg, os.Getenv)
	if err != nil {
		return nil, err
	}
	if err := rc.ValidateServe(); err != nil {
		return nil, err
	}
	return rc, nil
}

// ValidateServe reports settings the HTTP server cannot run without.
// Schema migrations do not call it.
func (rc *RuntimeConfig) ValidateServe() error {
	if strings.TrimSpace(rc.Auth.JWTSecret) == "" {
		return errors.New("jwt secret is required")
	}
	return nil
}

// FromEnv applies overrides read through getenv. It exists so tests can inject an environment.
func FromEnv(cfg config.Config, getenv func(string) string) (*RuntimeConfig, error) {
	ret := &RuntimeConfig{
		Config:     cfg,
		ServerAddr: cfg.Server.Addr,
	}

	if value := strings.TrimSpace(getenv("PORT")); value != "" {
		if _, err := strconv.Atoi(value); err != nil {
			return nil, errors.New("PORT must be numeric")
		}
		ret.ServerAddr = ":" + value
	}
	if value := strings.TrimSpace(getenv("HTTP_ADDR")); value != "" {
		ret.ServerAddr = value
	}

	setString(&ret.Auth.JWTSecret, getenv("SUPABASE_JWT_SECRET"))
	setString(&ret.Postgres.URL, getenv("DATABASE_URL"))
	setString(&ret.Webhook.AppSecret, getenv("META_APP_SECRET"))
	setString(&ret.Webhook.VerifyToken, getenv("VERIFY_TOKEN"))
	setString(&ret.Meta.AccessToken, getenv("META_ACCESS_TOKEN"))
	setString(&ret.Meta.InstagramAccountID, getenv("INSTAGRAM_ACCOUNT_ID"))
	setString(&ret.Meta.FacebookPageID, getenv("FACEBOOK_PAGE_ID"))
	setString(&ret.Relay.URL, getenv("N8N_WEBHOOK_URL"))

	if value := strings.TrimSpace(getenv("WEBHOOK_ALLOW_UNSIGNED")); value != "" {
		allow, err := strconv.ParseBool(value)
		if err != nil {
			return nil, errors.New("WEBHOOK_ALLOW_UNSIGNED must be a boolean")
		}
		ret.Webhook.AllowUnsigned = allow
	}
	return ret, nil
}

func setString(dst *string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*dst = value
	}
}
