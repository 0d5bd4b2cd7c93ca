package settings

import "time"

// ForwardingKey is the app_settings key holding the forwarding configuration.
const ForwardingKey = "forwarding"

// ForwardingConfig controls relaying raw webhook deliveries to an automation endpoint.
type ForwardingConfig struct {
	Enabled   bool      `json:"enabled"`
	URL       string    `json:"url"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// ForwardingRequest is the body of a forwarding update.
type ForwardingRequest struct {
	Enabled *bool   `json:"enabled"`
	URL     *string `json:"url"`
}
