package boot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risut/crm/internal/config"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromEnvOverrides(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Auth.JWTSecret = "from-file"

	rc, err := FromEnv(cfg, envOf(map[string]string{
		"PORT":                 "4000",
		"META_APP_SECRET":      "app-secret",
		"VERIFY_TOKEN":         "verify",
		"INSTAGRAM_ACCOUNT_ID": "ig-1",
		"N8N_WEBHOOK_URL":      "https://n8n.example/webhook",
	}))
	require.NoError(t, err)
	assert.Equal(t, ":4000", rc.ServerAddr)
	assert.Equal(t, "app-secret", rc.Webhook.AppSecret)
	assert.Equal(t, "verify", rc.Webhook.VerifyToken)
	assert.Equal(t, "ig-1", rc.Meta.InstagramAccountID)
	assert.Equal(t, "https://n8n.example/webhook", rc.Relay.URL)
	assert.Equal(t, "from-file", rc.Auth.JWTSecret)
}

func TestFromEnvHTTPAddrWinsOverPort(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Auth.JWTSecret = "x"
	rc, err := FromEnv(cfg, envOf(map[string]string{"PORT": "4000", "HTTP_ADDR": "127.0.0.1:5000"}))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:5000", rc.ServerAddr)
}

func TestFromEnvDoesNotNeedJWTSecret(t *testing.T) {
	t.Parallel()

	rc, err := FromEnv(config.Default(), envOf(map[string]string{"DATABASE_URL": "postgres://crm@db/crm"}))
	require.NoError(t, err)
	assert.Equal(t, "postgres://crm@db/crm", rc.Postgres.URL)
	assert.Error(t, rc.ValidateServe())
}

func TestProvideRuntimeConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("SUPABASE_JWT_SECRET", "")

	_, err := ProvideRuntimeConfig(config.Default())
	assert.Error(t, err)

	t.Setenv("SUPABASE_JWT_SECRET", "s3cret")
	rc, err := ProvideRuntimeConfig(config.Default())
	require.NoError(t, err)
	assert.NoError(t, rc.ValidateServe())
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Auth.JWTSecret = "x"
	_, err := FromEnv(cfg, envOf(map[string]string{"PORT": "http"}))
	assert.Error(t, err)
	_, err = FromEnv(cfg, envOf(map[string]string{"WEBHOOK_ALLOW_UNSIGNED": "maybe"}))
	assert.Error(t, err)
}
