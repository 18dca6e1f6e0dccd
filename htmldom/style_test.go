package htmldom

import (
	"testing"

	"github.com/tapscan/tapscan/taptarget"
)

func styleOf(t *testing.T, d *Document, selector string) taptarget.ComputedStyle {
	t.Helper()
	nodes := d.Query([]string{selector})
	if len(nodes) != 1 {
		t.Fatalf("query %q: got %d matches, want 1", selector, len(nodes))
	}
	return d.ComputedStyle(nodes[0])
}

func TestComputedStyle_TagDefaults(t *testing.T) {
	d := mustParse(t, `<div></div><span></span><button></button><table><tr><td></td></tr></table>`)

	tests := []struct {
		selector string
		display  string
	}{
		{"div", "block"},
		{"span", "inline"},
		{"button", "inline-block"},
		{"tr", "table-row"},
	}
	for _, tt := range tests {
		if got := styleOf(t, d, tt.selector).Display; got != tt.display {
			t.Errorf("%s display: got %q, want %q", tt.selector, got, tt.display)
		}
	}
}

func TestComputedStyle_InlineOverrides(t *testing.T) {
	d := mustParse(t, `<div id="a" style="display: none"></div>
		<div id="b" style="overflow:hidden"></div>
		<div id="c" style="overflow-y: scroll; Visibility: Collapse"></div>`)

	if got := styleOf(t, d, "div#a").Display; got != "none" {
		t.Errorf("display override: got %q", got)
	}
	b := styleOf(t, d, "div#b")
	if b.OverflowX != "hidden" || b.OverflowY != "hidden" {
		t.Errorf("overflow shorthand: got %q/%q", b.OverflowX, b.OverflowY)
	}
	c := styleOf(t, d, "div#c")
	if c.OverflowY != "scroll" || c.OverflowX != "visible" {
		t.Errorf("overflow-y only: got %q/%q", c.OverflowX, c.OverflowY)
	}
	if c.Visibility != "collapse" {
		t.Errorf("case-insensitive visibility: got %q", c.Visibility)
	}
}

func TestComputedStyle_VisibilityInherits(t *testing.T) {
	d := mustParse(t, `<div style="visibility:hidden"><span id="in"></span></div>
		<div style="visibility:hidden"><span id="own" style="visibility:visible"></span></div>`)

	if got := styleOf(t, d, "span#in").Visibility; got != "hidden" {
		t.Errorf("inherited visibility: got %q, want hidden", got)
	}
	if got := styleOf(t, d, "span#own").Visibility; got != "visible" {
		t.Errorf("own visibility wins: got %q, want visible", got)
	}
}

func TestParseInlineStyle_Malformed(t *testing.T) {
	props := parseInlineStyle("display:none;;broken;width: 10px ;:oops")
	if props["display"] != "none" || props["width"] != "10px" {
		t.Errorf("parse: got %v", props)
	}
	if len(props) != 2 {
		t.Errorf("malformed declarations leaked through: %v", props)
	}
}

func TestCSSLength(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"120px", 120, true},
		{"0", 0, true},
		{"33.5px", 33.5, true},
		{"", 0, false},
		{"auto", 0, false},
		{"50%", 0, false},
	}
	for _, tt := range tests {
		got, ok := cssLength(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("cssLength(%q): got %v/%v, want %v/%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestQuery_DocumentOrderAndForms(t *testing.T) {
	d := mustParse(t, `<body>
		<a href="/1">one</a>
		<div role="button">two</div>
		<button class="cta big">three</button>
	</body>`)

	nodes := d.Query([]string{"button", "a", "[role=button]"})
	if len(nodes) != 3 {
		t.Fatalf("query: got %d matches, want 3", len(nodes))
	}
	if nodes[0].Tag() != "a" || nodes[1].Tag() != "div" || nodes[2].Tag() != "button" {
		t.Errorf("document order violated: %s %s %s", nodes[0].Tag(), nodes[1].Tag(), nodes[2].Tag())
	}

	if got := d.Query([]string{"button.cta"}); len(got) != 1 {
		t.Errorf("class selector: got %d matches", len(got))
	}
	if got := d.Query([]string{"[href]"}); len(got) != 1 {
		t.Errorf("bare attribute selector: got %d matches", len(got))
	}
}
