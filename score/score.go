// Package score runs the downstream accessibility checks over collected
// tap targets: each target must be comfortably tappable with a finger
// and must not sit so close to another target that a tap meant for one
// lands on the other.
package score

import "github.com/tapscan/tapscan/taptarget"

// FingerSizePx is the assumed touch contact square, edge length in
// CSS pixels.
const FingerSizePx = 48

// maxOverlapRatio is the tolerated share of the finger area that may
// land on a neighbouring target before the pair is flagged.
const maxOverlapRatio = 0.25

// Kind classifies a finding.
type Kind string

const (
	KindTooSmall Kind = "too_small"
	KindOverlap  Kind = "overlap"
)

// Finding flags one failing target. Like the targets themselves it is a
// detached value: targets are referenced by selector, not by pointer.
type Finding struct {
	Kind     Kind                 `json:"kind"`
	Selector string               `json:"selector"`
	Snippet  string               `json:"snippet"`
	Rect     taptarget.ClientRect `json:"rect"`
	// OverlapSelector names the neighbour for overlap findings.
	OverlapSelector string `json:"overlap_selector,omitempty"`
	// OverlapRatio is the finger-area share landing on the neighbour.
	OverlapRatio float64 `json:"overlap_ratio,omitempty"`
}

// Evaluate checks every target for minimum size and for tap overlap with
// the other targets. Findings come out in input order (size findings for
// a target before its overlap findings), so results are deterministic
// for a given collection.
func Evaluate(targets []taptarget.TapTarget) []Finding {
	largest := make([]taptarget.ClientRect, len(targets))
	for i, t := range targets {
		largest[i] = largestRect(t.ClientRects)
	}

	var findings []Finding
	for i, t := range targets {
		r := largest[i]
		if r.Width < FingerSizePx || r.Height < FingerSizePx {
			findings = append(findings, Finding{
				Kind:     KindTooSmall,
				Selector: t.Selector,
				Snippet:  t.Snippet,
				Rect:     r,
			})
		}

		finger := fingerRect(r)
		for j, other := range targets {
			if j == i {
				continue
			}
			ratio := overlapArea(finger, largest[j]) / (FingerSizePx * FingerSizePx)
			if ratio > maxOverlapRatio {
				findings = append(findings, Finding{
					Kind:            KindOverlap,
					Selector:        t.Selector,
					Snippet:         t.Snippet,
					Rect:            r,
					OverlapSelector: other.Selector,
					OverlapRatio:    ratio,
				})
			}
		}
	}
	return findings
}

// largestRect picks the rect with the greatest area; the zero rect for
// an empty slice.
func largestRect(rects []taptarget.ClientRect) taptarget.ClientRect {
	var best taptarget.ClientRect
	bestArea := -1.0
	for _, r := range rects {
		if a := r.Width * r.Height; a > bestArea {
			best, bestArea = r, a
		}
	}
	if bestArea < 0 {
		return taptarget.ClientRect{}
	}
	return best
}

// fingerRect centers the finger square on the rect's midpoint.
func fingerRect(r taptarget.ClientRect) taptarget.ClientRect {
	cx := r.Left + r.Width/2
	cy := r.Top + r.Height/2
	return taptarget.Rect(cx-FingerSizePx/2, cy-FingerSizePx/2, FingerSizePx, FingerSizePx)
}

func overlapArea(a, b taptarget.ClientRect) float64 {
	w := min(a.Right, b.Right) - max(a.Left, b.Left)
	h := min(a.Bottom, b.Bottom) - max(a.Top, b.Top)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}
