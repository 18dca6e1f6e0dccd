package gatherer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tapscan/tapscan/report"
	"github.com/tapscan/tapscan/score"
)

// Auditor runs the full pipeline over a live page: collect tap targets,
// evaluate size and overlap, assemble a report, and optionally persist it.
type Auditor struct {
	g       *Gatherer
	builder *report.Builder
	store   *report.Store
	log     *slog.Logger
}

// AuditorOption configures an Auditor.
type AuditorOption func(*Auditor)

// WithStore makes the Auditor persist every report.
func WithStore(s *report.Store) AuditorOption {
	return func(a *Auditor) { a.store = s }
}

// WithBuilder replaces the default report builder.
func WithBuilder(b *report.Builder) AuditorOption {
	return func(a *Auditor) { a.builder = b }
}

// NewAuditor creates an Auditor over an already-configured Gatherer.
func NewAuditor(g *Gatherer, opts ...AuditorOption) *Auditor {
	a := &Auditor{
		g:       g,
		builder: report.NewBuilder(),
		log:     g.log,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Audit collects, evaluates and reports on one page.
func (a *Auditor) Audit(ctx context.Context, pageURL string) (*report.Report, error) {
	targets, err := a.g.Collect(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	findings := score.Evaluate(targets)
	r := a.builder.Build(pageURL, targets, findings)

	if a.store != nil {
		if err := a.store.Save(ctx, r); err != nil {
			return nil, fmt.Errorf("gatherer: audit %s: %w", pageURL, err)
		}
	}

	a.log.Info("gatherer: audit complete",
		"url", pageURL, "run", r.ID,
		"targets", r.TargetCount, "findings", r.FindingCount)
	return r, nil
}
