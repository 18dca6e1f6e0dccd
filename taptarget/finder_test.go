package taptarget

import (
	"reflect"
	"strings"
	"testing"
)

// page builds a small document with one visible button, one link lost in
// prose, and one input without an href.
func page() (*fakeNode, *fakeNode, *fakeNode, *fakeNode) {
	button := el("button").display("inline-block").rect(10, 10, 80, 40).attr("id", "go").add(txt("Go"))
	link := el("a").display("inline").rect(120, 10, 60, 15).attr("href", "/contact").add(txt("Contact us"))
	prose := el("p").add(txt("Some prose and "), link, txt(" more prose."))
	input := el("input").display("inline-block").rect(10, 80, 150, 25).attr("type", "text")
	body := el("body").rect(0, 0, 800, 600).add(button, prose, input)
	root := el("html").add(body)
	return root, button, link, input
}

func TestCollectTapTargets(t *testing.T) {
	root, _, _, _ := page()
	f, _ := newFakeFinder(root)

	targets := f.CollectTapTargets()
	if len(targets) != 2 {
		t.Fatalf("targets: got %d, want 2 (button and input)", len(targets))
	}

	for _, tgt := range targets {
		if len(tgt.ClientRects) == 0 {
			t.Errorf("target %q emitted with no client rects", tgt.Selector)
		}
	}

	button, input := targets[0], targets[1]
	if !strings.HasPrefix(button.Snippet, "<button") {
		t.Errorf("first target snippet: got %q, want the button", button.Snippet)
	}
	if button.Href != "" {
		t.Errorf("button href: got %q, want empty", button.Href)
	}
	if input.Href != "" {
		t.Errorf("input href: got %q, want empty (attribute absent)", input.Href)
	}
	if button.Selector != "button#go" {
		t.Errorf("button selector: got %q", button.Selector)
	}
}

func TestCollectTapTargets_ProseLinkExcluded(t *testing.T) {
	root, _, link, _ := page()
	f, _ := newFakeFinder(root)

	for _, tgt := range f.CollectTapTargets() {
		if tgt.Href == "/contact" {
			t.Errorf("prose link %v emitted as tap target", link.attrs)
		}
	}
}

func TestCollectTapTargets_DisplayNoneAncestor(t *testing.T) {
	button := el("button").rect(0, 0, 50, 20)
	root := el("html").add(el("body").add(el("div").display("none").add(button)))
	f, _ := newFakeFinder(root)

	if targets := f.CollectTapTargets(); len(targets) != 0 {
		t.Errorf("button under display:none div: got %d targets", len(targets))
	}
}

func TestCollectTapTargets_ZeroSizeSealedButton(t *testing.T) {
	button := el("button").display("inline-block").overflow("hidden", "hidden")
	root := el("html").add(el("body").add(button))
	f, _ := newFakeFinder(root)

	if targets := f.CollectTapTargets(); len(targets) != 0 {
		t.Errorf("zero-size sealed button: got %d targets", len(targets))
	}
}

func TestCollectTapTargets_RoleCandidates(t *testing.T) {
	div := el("div").attr("role", "slider").rect(0, 0, 200, 30)
	root := el("html").add(el("body").add(div))
	f, _ := newFakeFinder(root)

	targets := f.CollectTapTargets()
	if len(targets) != 1 {
		t.Fatalf("role=slider div: got %d targets, want 1", len(targets))
	}
}

func TestCollectTapTargets_Idempotent(t *testing.T) {
	root, _, _, _ := page()
	f, _ := newFakeFinder(root)

	first := f.CollectTapTargets()
	second := f.CollectTapTargets()
	if !reflect.DeepEqual(first, second) {
		t.Error("two passes over the same snapshot differ")
	}
}

func TestCollectTapTargets_CustomCandidates(t *testing.T) {
	root, _, _, _ := page()
	f, _ := newFakeFinder(root, WithCandidates(CandidateSet{Tags: []string{"input"}}))

	targets := f.CollectTapTargets()
	if len(targets) != 1 {
		t.Fatalf("input-only candidates: got %d targets, want 1", len(targets))
	}
	if !strings.HasPrefix(targets[0].Snippet, "<input") {
		t.Errorf("snippet: got %q, want the input", targets[0].Snippet)
	}
}

func TestCollectTapTargets_DetachedValues(t *testing.T) {
	root, button, _, _ := page()
	f, _ := newFakeFinder(root)

	targets := f.CollectTapTargets()
	// Mutating the emitted rects must not touch host geometry.
	targets[0].ClientRects[0].Left = -999
	if button.rects[0].Left == -999 {
		t.Error("emitted rects alias host geometry")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s    string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exact", 5, "exact"},
		{"overflowing", 5, "over…"},
		{"héllo wörld", 6, "héllo…"},
	}
	for _, tt := range tests {
		got := Truncate(tt.s, tt.n)
		if got != tt.want {
			t.Errorf("Truncate(%q, %d): got %q, want %q", tt.s, tt.n, got, tt.want)
		}
		if len([]rune(got)) > tt.n {
			t.Errorf("Truncate(%q, %d): result longer than bound", tt.s, tt.n)
		}
	}
}
