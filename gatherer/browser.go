package gatherer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// browserManager owns the Chrome process (or the connection to a remote
// one) for the lifetime of the gatherer.
type browserManager struct {
	cfg Config

	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
	closed  bool
}

func newBrowserManager(cfg Config) *browserManager {
	return &browserManager{cfg: cfg}
}

// start launches Chrome (or connects to a remote instance).
func (m *browserManager) start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("gatherer: browser manager is closed")
	}
	if m.browser != nil {
		return nil
	}

	log := m.cfg.Logger

	var wsURL string
	if m.cfg.RemoteURL != "" {
		wsURL = m.cfg.RemoteURL
		log.Info("gatherer: connecting to remote browser", "url", wsURL)
	} else {
		l := launcher.New().
			Headless(true).
			Set("disable-blink-features", "AutomationControlled")
		u, err := l.Launch()
		if err != nil {
			return fmt.Errorf("gatherer: launch browser: %w", err)
		}
		wsURL = u
		m.lnch = l
		log.Info("gatherer: launched local chrome", "url", wsURL)
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		return fmt.Errorf("gatherer: connect browser: %w", err)
	}
	if err := b.IgnoreCertErrors(true); err != nil {
		log.Warn("gatherer: ignore cert errors failed", "error", err)
	}

	m.browser = b
	return nil
}

// openPage creates a fresh tab, navigates it and waits for load. The
// caller closes the page.
func (m *browserManager) openPage(ctx context.Context, pageURL string) (*rod.Page, error) {
	m.mu.Lock()
	b := m.browser
	m.mu.Unlock()
	if b == nil {
		return nil, fmt.Errorf("gatherer: browser not started")
	}

	var page *rod.Page
	var err error
	if m.cfg.NoStealth {
		page, err = b.Page(proto.TargetCreateTarget{URL: ""})
	} else {
		page, err = stealth.Page(b)
	}
	if err != nil {
		return nil, fmt.Errorf("gatherer: create tab: %w", err)
	}

	navCtx, cancel := context.WithTimeout(ctx, m.cfg.NavigateTimeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(pageURL); err != nil {
		page.Close()
		return nil, fmt.Errorf("gatherer: navigate %s: %w", pageURL, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		m.cfg.Logger.Warn("gatherer: wait load timeout", "url", pageURL, "error", err)
	}
	// Give late layout (web fonts, deferred scripts) a moment to settle.
	time.Sleep(200 * time.Millisecond)

	return page, nil
}

// close shuts down the browser and the launcher-managed process.
func (m *browserManager) close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	if m.browser != nil {
		m.browser.Close()
		m.browser = nil
	}
	if m.lnch != nil {
		m.lnch.Cleanup()
		m.lnch = nil
	}
	return nil
}
