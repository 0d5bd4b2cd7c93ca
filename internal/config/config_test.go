package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != DefaultHTTPAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultHTTPAddr)
	}
	if cfg.Webhook.PersistTimeout.Duration != DefaultPersistTimeout {
		t.Errorf("PersistTimeout = %v", cfg.Webhook.PersistTimeout.Duration)
	}
	if !slices.Equal(cfg.Relay.ExcludedObjects, []string{"page"}) {
		t.Errorf("ExcludedObjects = %v", cfg.Relay.ExcludedObjects)
	}
	if cfg.Webhook.AllowUnsigned {
		t.Error("AllowUnsigned should default to false")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
addr = ":9000"

[webhook]
verify_token = "tok"
app_secret = "s3cret"
persist_timeout = "2s"

[meta]
instagram_account_id = "17841477975633269"

[relay]
enabled = false
timeout = "750ms"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	checks := []struct {
		name      string
		got, want any
	}{
		{"server.addr", cfg.Server.Addr, ":9000"},
		{"webhook.verify_token", cfg.Webhook.VerifyToken, "tok"},
		{"webhook.app_secret", cfg.Webhook.AppSecret, "s3cret"},
		{"webhook.persist_timeout", cfg.Webhook.PersistTimeout.Duration, 2 * time.Second},
		{"meta.instagram_account_id", cfg.Meta.InstagramAccountID, "17841477975633269"},
		{"meta.api_version", cfg.Meta.APIVersion, DefaultGraphAPIVersion},
		{"relay.enabled", cfg.Relay.Enabled, false},
		{"relay.timeout", cfg.Relay.Timeout.Duration, 750 * time.Millisecond},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[relay]\ntimeout = \"soon\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for bad duration")
	}
}
