package gatherer

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/tapscan/tapscan/taptarget"
)

// PageSnapshot is a one-shot serialization of a rendered page: the
// element/text tree with the computed styles and client rects captured
// in the browser at snapshot time. It implements the taptarget host
// interfaces, so the whole analysis runs in-process over the frozen
// tree; the page is not consulted again.
type PageSnapshot struct {
	URL  string
	root *snapNode
}

// decodeSnapshot parses the JSON payload produced by snapshot.js.
func decodeSnapshot(pageURL string, data []byte) (*PageSnapshot, error) {
	var root snapNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("gatherer: decode snapshot: %w", err)
	}
	if root.NodeKind != "element" {
		return nil, fmt.Errorf("gatherer: decode snapshot: root is %q, want element", root.NodeKind)
	}
	linkParents(&root, nil)
	return &PageSnapshot{URL: pageURL, root: &root}, nil
}

func linkParents(n *snapNode, parent *snapNode) {
	n.parent = parent
	for _, c := range n.ChildNodes {
		linkParents(c, n)
	}
}

// Root returns the document element of the snapshot.
func (s *PageSnapshot) Root() taptarget.Node {
	return s.root
}

// ComputedStyle implements taptarget.StyleProvider.
func (s *PageSnapshot) ComputedStyle(n taptarget.Node) taptarget.ComputedStyle {
	sn, ok := n.(*snapNode)
	if !ok || sn.NodeKind != "element" {
		return taptarget.ComputedStyle{}
	}
	return taptarget.ComputedStyle{
		Display:    sn.Style.Display,
		Visibility: sn.Style.Visibility,
		OverflowX:  sn.Style.OverflowX,
		OverflowY:  sn.Style.OverflowY,
	}
}

// Rects implements taptarget.GeometryProvider.
func (s *PageSnapshot) Rects(n taptarget.Node) []taptarget.ClientRect {
	sn, ok := n.(*snapNode)
	if !ok {
		return nil
	}
	return sn.ClientRects
}

// Query implements taptarget.NodeSelector. It supports the selector
// forms the candidate set emits: a bare tag name and "[attr=value]".
func (s *PageSnapshot) Query(selectors []string) []taptarget.Node {
	var out []taptarget.Node
	s.root.walk(func(n *snapNode) {
		if n.NodeKind != "element" {
			return
		}
		for _, sel := range selectors {
			if matchesSnapshotSelector(n, sel) {
				out = append(out, n)
				return
			}
		}
	})
	return out
}

// Finder builds a taptarget.Finder over the snapshot.
func (s *PageSnapshot) Finder(opts ...taptarget.Option) *taptarget.Finder {
	return taptarget.NewFinder(s.root, s, s, s, opts...)
}

func matchesSnapshotSelector(n *snapNode, sel string) bool {
	if strings.HasPrefix(sel, "[") && strings.HasSuffix(sel, "]") {
		key, val, ok := strings.Cut(strings.Trim(sel, "[]"), "=")
		if !ok {
			return false
		}
		got, present := n.Attr(key)
		return present && got == val
	}
	return n.TagName == sel
}

// snapNode is one serialized node. It implements taptarget.Node; the
// decoded tree is pointer-identical across calls, which gives the
// identity stability the analysis requires.
type snapNode struct {
	NodeKind     string                 `json:"kind"`
	TagName      string                 `json:"tag"`
	NodeText     string                 `json:"text"`
	Attrs        []snapAttr             `json:"attrs"`
	ClientW      int                    `json:"clientWidth"`
	ClientH      int                    `json:"clientHeight"`
	Style        snapStyle              `json:"style"`
	ClientRects  []taptarget.ClientRect `json:"rects"`
	ChildNodes   []*snapNode            `json:"children"`

	parent *snapNode
	kids   []taptarget.Node
}

type snapAttr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type snapStyle struct {
	Display    string `json:"display"`
	Visibility string `json:"visibility"`
	OverflowX  string `json:"overflowX"`
	OverflowY  string `json:"overflowY"`
}

func (n *snapNode) Tag() string {
	if n.NodeKind != "element" {
		return ""
	}
	return n.TagName
}

func (n *snapNode) Kind() taptarget.NodeKind {
	if n.NodeKind == "text" {
		return taptarget.TextNode
	}
	return taptarget.ElementNode
}

func (n *snapNode) Parent() taptarget.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *snapNode) Children() []taptarget.Node {
	if n.kids == nil && len(n.ChildNodes) > 0 {
		n.kids = make([]taptarget.Node, len(n.ChildNodes))
		for i, c := range n.ChildNodes {
			n.kids[i] = c
		}
	}
	return n.kids
}

func (n *snapNode) Text() string {
	if n.NodeKind == "text" {
		return n.NodeText
	}
	var b strings.Builder
	n.walk(func(d *snapNode) {
		if d.NodeKind == "text" {
			b.WriteString(d.NodeText)
		}
	})
	return b.String()
}

func (n *snapNode) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (n *snapNode) ClientWidth() int  { return n.ClientW }
func (n *snapNode) ClientHeight() int { return n.ClientH }

func (n *snapNode) walk(fn func(*snapNode)) {
	fn(n)
	for _, c := range n.ChildNodes {
		c.walk(fn)
	}
}

// voidTags never carry children or a closing tag when re-serialized.
var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// OuterHTML rebuilds the node's markup from the serialized tree. The
// result is equivalent, not byte-identical, to the browser's
// outerHTML; it is only used for human-readable snippets.
func (n *snapNode) OuterHTML() string {
	var b strings.Builder
	n.writeHTML(&b)
	return b.String()
}

func (n *snapNode) writeHTML(b *strings.Builder) {
	if n.NodeKind == "text" {
		b.WriteString(html.EscapeString(n.NodeText))
		return
	}
	b.WriteByte('<')
	b.WriteString(n.TagName)
	for _, a := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.Value))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	if voidTags[n.TagName] {
		return
	}
	for _, c := range n.ChildNodes {
		c.writeHTML(b)
	}
	b.WriteString("</")
	b.WriteString(n.TagName)
	b.WriteByte('>')
}
