package gatherer

import (
	"log/slog"
	"time"
)

// Config configures the gatherer's browser.
type Config struct {
	// RemoteURL is the WebSocket URL of an external Chrome instance.
	// Empty = launch a local Chrome via launcher.
	RemoteURL string

	// NoStealth disables the anti-detection patches applied to each page.
	// Audited pages sometimes serve bots a stripped layout, which would
	// skew the geometry under audit, so stealth is on unless disabled.
	NoStealth bool

	// NavigateTimeout bounds navigation plus load wait. Default: 30s.
	NavigateTimeout time.Duration

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.NavigateTimeout <= 0 {
		c.NavigateTimeout = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
