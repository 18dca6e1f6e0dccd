// Package gatherer is the live-page host for the tap target analysis.
// It drives headless Chrome via Rod, takes a one-shot snapshot of the
// rendered tree (markup, computed styles, client rects) with an
// injected script, and runs the analysis in-process over the frozen
// snapshot.
package gatherer

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/tapscan/tapscan/taptarget"
)

//go:embed snapshot.js
var snapshotJS string

// Gatherer audits live pages. Safe for sequential reuse across pages;
// each Collect opens and closes its own tab.
type Gatherer struct {
	cfg Config
	mgr *browserManager
	log *slog.Logger
}

// New creates a Gatherer. Call Start before the first Collect.
func New(cfg Config) *Gatherer {
	cfg.defaults()
	return &Gatherer{
		cfg: cfg,
		mgr: newBrowserManager(cfg),
		log: cfg.Logger,
	}
}

// Start launches the browser (or connects to the configured remote one).
func (g *Gatherer) Start(_ context.Context) error {
	return g.mgr.start()
}

// Close shuts the browser down.
func (g *Gatherer) Close() error {
	return g.mgr.close()
}

// Snapshot navigates to pageURL and captures the rendered tree.
func (g *Gatherer) Snapshot(ctx context.Context, pageURL string) (*PageSnapshot, error) {
	page, err := g.mgr.openPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	res, err := page.Context(ctx).Eval(snapshotJS)
	if err != nil {
		return nil, fmt.Errorf("gatherer: snapshot %s: %w", pageURL, err)
	}

	snap, err := decodeSnapshot(pageURL, []byte(res.Value.Str()))
	if err != nil {
		return nil, err
	}

	g.log.Info("gatherer: snapshot taken", "url", pageURL)
	return snap, nil
}

// Collect navigates to pageURL and returns its tap targets.
func (g *Gatherer) Collect(ctx context.Context, pageURL string, opts ...taptarget.Option) ([]taptarget.TapTarget, error) {
	snap, err := g.Snapshot(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	targets := snap.Finder(opts...).CollectTapTargets()
	g.log.Info("gatherer: tap targets collected", "url", pageURL, "count", len(targets))
	return targets, nil
}
