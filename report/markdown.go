package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"

	"github.com/tapscan/tapscan/score"
)

// RenderMarkdown renders a Report as a human-readable Markdown document.
// Snippets are converted from HTML to Markdown; snippets that fail to
// convert fall back to a fenced code block with the raw (sanitized) HTML.
func RenderMarkdown(r *Report) (string, error) {
	if r == nil {
		return "", fmt.Errorf("report: render markdown: nil report")
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)

	var b strings.Builder
	fmt.Fprintf(&b, "# Tap target audit: %s\n\n", r.URL)
	fmt.Fprintf(&b, "- Run: `%s`\n", r.ID)
	fmt.Fprintf(&b, "- Date: %s\n", time.UnixMilli(r.CreatedAt).UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "- Tap targets: %d\n", r.TargetCount)
	fmt.Fprintf(&b, "- Findings: %d\n\n", r.FindingCount)

	if len(r.Findings) == 0 {
		b.WriteString("No findings. All tap targets are large enough and spaced apart.\n")
		return b.String(), nil
	}

	b.WriteString("## Findings\n\n")
	for i, f := range r.Findings {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, findingTitle(f))
		fmt.Fprintf(&b, "- Selector: `%s`\n", f.Selector)
		switch f.Kind {
		case score.KindTooSmall:
			fmt.Fprintf(&b, "- Size: %.0fx%.0f px (minimum %dx%d)\n",
				f.Rect.Width, f.Rect.Height, score.FingerSizePx, score.FingerSizePx)
		case score.KindOverlap:
			fmt.Fprintf(&b, "- Overlaps: `%s` (%.0f%% of the tap area)\n",
				f.OverlapSelector, f.OverlapRatio*100)
		}
		b.WriteString("\n")
		b.WriteString(snippetMarkdown(conv, f.Snippet))
		b.WriteString("\n")
	}

	return b.String(), nil
}

func findingTitle(f score.Finding) string {
	switch f.Kind {
	case score.KindTooSmall:
		return "Tap target is too small"
	case score.KindOverlap:
		return "Tap target overlaps another target"
	default:
		return string(f.Kind)
	}
}

func snippetMarkdown(conv *converter.Converter, snippet string) string {
	if strings.TrimSpace(snippet) == "" {
		return ""
	}
	md, err := conv.ConvertString(snippet)
	if err != nil || strings.TrimSpace(md) == "" {
		return "```html\n" + snippet + "\n```\n"
	}
	return strings.TrimSpace(md) + "\n"
}
