// Package report assembles audit results into a detached, serializable
// Report, renders it as JSON or Markdown, and persists run history in
// SQLite.
package report

import (
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/tapscan/tapscan/idgen"
	"github.com/tapscan/tapscan/score"
	"github.com/tapscan/tapscan/taptarget"
)

// Report is the result of one audit run over one page.
type Report struct {
	ID           string                `json:"id"`
	URL          string                `json:"url"`
	CreatedAt    int64                 `json:"created_at"` // epoch milliseconds
	TargetCount  int                   `json:"target_count"`
	FindingCount int                   `json:"finding_count"`
	Targets      []taptarget.TapTarget `json:"targets"`
	Findings     []score.Finding       `json:"findings"`
}

// Builder assembles Reports. Snippets pass through an HTML sanitizer
// before they are stored or served; the audited page is untrusted input.
type Builder struct {
	policy *bluemonday.Policy
	newID  idgen.Generator
}

// Option configures a Builder.
type Option func(*Builder)

// WithIDGenerator sets a custom ID generator for report IDs.
func WithIDGenerator(gen idgen.Generator) Option {
	return func(b *Builder) { b.newID = gen }
}

// NewBuilder creates a Builder with the default sanitizer policy and
// UUIDv7 report IDs.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		policy: snippetPolicy(),
		newID:  idgen.Prefixed("run_", idgen.Default),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Build assembles a Report from the collected targets and findings,
// sanitizing every snippet. Inputs are not mutated.
func (b *Builder) Build(url string, targets []taptarget.TapTarget, findings []score.Finding) *Report {
	cleanTargets := make([]taptarget.TapTarget, len(targets))
	for i, t := range targets {
		t.Snippet = b.policy.Sanitize(t.Snippet)
		cleanTargets[i] = t
	}
	cleanFindings := make([]score.Finding, len(findings))
	for i, f := range findings {
		f.Snippet = b.policy.Sanitize(f.Snippet)
		cleanFindings[i] = f
	}

	return &Report{
		ID:           b.newID(),
		URL:          url,
		CreatedAt:    time.Now().UnixMilli(),
		TargetCount:  len(cleanTargets),
		FindingCount: len(cleanFindings),
		Targets:      cleanTargets,
		Findings:     cleanFindings,
	}
}

// snippetPolicy keeps the markup shape of a snippet (tags, ids, classes,
// hrefs, roles) while stripping anything executable.
func snippetPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("button", "input", "textarea", "select", "option", "label")
	p.AllowAttrs("id", "class", "role", "type", "name", "value", "aria-label").Globally()
	return p
}
