package score

import (
	"reflect"
	"testing"

	"github.com/tapscan/tapscan/taptarget"
)

func target(selector string, rects ...taptarget.ClientRect) taptarget.TapTarget {
	return taptarget.TapTarget{
		ClientRects: rects,
		Selector:    selector,
		Snippet:     "<" + selector + ">",
	}
}

func TestEvaluate_TooSmall(t *testing.T) {
	targets := []taptarget.TapTarget{
		target("a.ok", taptarget.Rect(0, 0, 48, 48)),
		target("a.narrow", taptarget.Rect(0, 100, 30, 60)),
		target("a.short", taptarget.Rect(0, 300, 120, 20)),
	}

	findings := Evaluate(targets)
	if len(findings) != 2 {
		t.Fatalf("findings: got %d, want 2", len(findings))
	}
	if findings[0].Selector != "a.narrow" || findings[0].Kind != KindTooSmall {
		t.Errorf("first finding: %+v", findings[0])
	}
	if findings[1].Selector != "a.short" {
		t.Errorf("second finding: %+v", findings[1])
	}
}

func TestEvaluate_LargestRectDecides(t *testing.T) {
	// A multi-line link paints several small rects; only the largest is
	// measured.
	targets := []taptarget.TapTarget{
		target("a.wrapped",
			taptarget.Rect(0, 0, 10, 10),
			taptarget.Rect(0, 10, 60, 50),
		),
	}

	if findings := Evaluate(targets); len(findings) != 0 {
		t.Errorf("largest rect is big enough, got findings: %+v", findings)
	}
}

func TestEvaluate_Overlap(t *testing.T) {
	// Two 48px targets directly on top of each other horizontally, 10px
	// apart vertically: the finger centered on either lands mostly on
	// both.
	targets := []taptarget.TapTarget{
		target("button.top", taptarget.Rect(0, 0, 48, 48)),
		target("button.bottom", taptarget.Rect(0, 10, 48, 48)),
	}

	findings := Evaluate(targets)
	if len(findings) != 2 {
		t.Fatalf("findings: got %d, want mutual overlap pair", len(findings))
	}
	for _, f := range findings {
		if f.Kind != KindOverlap {
			t.Errorf("kind: got %q", f.Kind)
		}
		if f.OverlapRatio <= maxOverlapRatio {
			t.Errorf("ratio %v not above threshold", f.OverlapRatio)
		}
	}
	if findings[0].OverlapSelector != "button.bottom" {
		t.Errorf("neighbour: got %q", findings[0].OverlapSelector)
	}
}

func TestEvaluate_DistantTargetsNoOverlap(t *testing.T) {
	targets := []taptarget.TapTarget{
		target("a.left", taptarget.Rect(0, 0, 48, 48)),
		target("a.right", taptarget.Rect(200, 0, 48, 48)),
	}

	if findings := Evaluate(targets); len(findings) != 0 {
		t.Errorf("distant targets flagged: %+v", findings)
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	targets := []taptarget.TapTarget{
		target("a.one", taptarget.Rect(0, 0, 20, 20)),
		target("a.two", taptarget.Rect(5, 5, 20, 20)),
	}

	first := Evaluate(targets)
	second := Evaluate(targets)
	if !reflect.DeepEqual(first, second) {
		t.Error("evaluation not deterministic")
	}
}

func TestEvaluate_Empty(t *testing.T) {
	if findings := Evaluate(nil); len(findings) != 0 {
		t.Errorf("no targets produced findings: %+v", findings)
	}
}
