package config

import "time"

// UpstreamConfig contains configuration for the upstream products API,
// the external backend that owns authoritative product data.
type UpstreamConfig struct {
	// BaseURL is the root of the upstream API; paths under
	// /api/web/v1 are appended by the client.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8001"`

	// Timeout is the transport-level timeout for upstream calls.
	// There is no per-request deadline beyond this and no retry policy.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// Sanitize applies guardrails to upstream configuration values.
func (u *UpstreamConfig) Sanitize() {
	if u.BaseURL == "" {
		u.BaseURL = "http://localhost:8001"
	}
	if u.Timeout <= 0 {
		u.Timeout = 30 * time.Second
	}
}
