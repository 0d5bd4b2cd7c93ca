// Package settings persists process-wide settings shared by every instance.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	dbpkg "github.com/risut/crm/internal/db"
	"github.com/risut/crm/internal/db/sqlc"
)

// ErrInvalidURL is returned when a forwarding URL is not an absolute http(s) URL.
var ErrInvalidURL = errors.New("forwarding url must be an absolute http or https url")

// Store is the subset of sqlc queries the settings service needs.
type Store interface {
	GetAppSetting(ctx context.Context, key string) (sqlc.AppSetting, error)
	UpsertAppSetting(ctx context.Context, arg sqlc.UpsertAppSettingParams) (sqlc.AppSetting, error)
}

type Service struct {
	queries  Store
	defaults ForwardingConfig
	logger   *slog.Logger
}

// NewService creates a settings service. defaults apply until a forwarding row is stored.
func NewService(log *slog.Logger, queries Store, defaults ForwardingConfig) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		queries:  queries,
		defaults: defaults,
		logger:   log.With(slog.String("service", "settings")),
	}
}

// GetForwarding returns the stored forwarding configuration, or the defaults.
func (s *Service) GetForwarding(ctx context.Context) (ForwardingConfig, error) {
	row, err := s.queries.GetAppSetting(ctx, ForwardingKey)
	if err != nil {
		if dbpkg.IsNoRows(err) {
			return s.defaults, nil
		}
		return ForwardingConfig{}, fmt.Errorf("get forwarding: %w", err)
	}
	var cfg ForwardingConfig
	if err := json.Unmarshal(row.Value, &cfg); err != nil {
		s.logger.Warn("stored forwarding config is invalid, using defaults", slog.Any("error", err))
		return s.defaults, nil
	}
	cfg.UpdatedAt = dbpkg.TimeFromPg(row.UpdatedAt)
	return cfg, nil
}

// SetForwarding applies req on top of the current configuration and stores it.
func (s *Service) SetForwarding(ctx context.Context, req ForwardingRequest) (ForwardingConfig, error) {
	current, err := s.GetForwarding(ctx)
	if err != nil {
		return ForwardingConfig{}, err
	}
	if req.Enabled != nil {
		current.Enabled = *req.Enabled
	}
	if req.URL != nil {
		u := strings.TrimSpace(*req.URL)
		if err := ValidateURL(u); err != nil {
			return ForwardingConfig{}, err
		}
		current.URL = u
	}
	payload, err := json.Marshal(ForwardingConfig{Enabled: current.Enabled, URL: current.URL})
	if err != nil {
		return ForwardingConfig{}, err
	}
	row, err := s.queries.UpsertAppSetting(ctx, sqlc.UpsertAppSettingParams{Key: ForwardingKey, Value: payload})
	if err != nil {
		return ForwardingConfig{}, fmt.Errorf("store forwarding: %w", err)
	}
	current.UpdatedAt = dbpkg.TimeFromPg(row.UpdatedAt)
	s.logger.Info("forwarding updated", slog.Bool("enabled", current.Enabled), slog.String("url", current.URL))
	return current, nil
}

// ValidateURL accepts "" (no target) or an absolute http(s) URL.
func ValidateURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidURL
	}
	return nil
}
