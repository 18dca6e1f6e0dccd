package taptarget

import (
	"sort"
	"strings"
)

// fakeNode is the in-memory tree used by the core tests. Style and
// geometry live directly on the node; fakeDoc serves them through the
// provider interfaces.
type fakeNode struct {
	tag      string
	kind     NodeKind
	parent   *fakeNode
	children []*fakeNode
	text     string // own text, text nodes only
	attrs    map[string]string
	cw, ch   int
	style    ComputedStyle
	rects    []ClientRect
}

func el(tag string) *fakeNode {
	return &fakeNode{
		tag:   tag,
		kind:  ElementNode,
		attrs: map[string]string{},
		style: ComputedStyle{
			Display:    "block",
			Visibility: "visible",
			OverflowX:  "visible",
			OverflowY:  "visible",
		},
	}
}

func txt(s string) *fakeNode {
	return &fakeNode{kind: TextNode, text: s}
}

func (n *fakeNode) add(kids ...*fakeNode) *fakeNode {
	for _, k := range kids {
		k.parent = n
		n.children = append(n.children, k)
	}
	return n
}

func (n *fakeNode) display(d string) *fakeNode   { n.style.Display = d; return n }
func (n *fakeNode) overflow(x, y string) *fakeNode {
	n.style.OverflowX, n.style.OverflowY = x, y
	return n
}
func (n *fakeNode) attr(k, v string) *fakeNode { n.attrs[k] = v; return n }
func (n *fakeNode) rect(l, t, w, h float64) *fakeNode {
	n.rects = append(n.rects, Rect(l, t, w, h))
	n.cw, n.ch = int(w), int(h)
	return n
}

func (n *fakeNode) Tag() string      { return n.tag }
func (n *fakeNode) Kind() NodeKind   { return n.kind }
func (n *fakeNode) ClientWidth() int { return n.cw }
func (n *fakeNode) ClientHeight() int { return n.ch }

func (n *fakeNode) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *fakeNode) Children() []Node {
	kids := make([]Node, len(n.children))
	for i, c := range n.children {
		kids[i] = c
	}
	return kids
}

func (n *fakeNode) Text() string {
	if n.kind == TextNode {
		return n.text
	}
	var sb strings.Builder
	for _, c := range n.children {
		sb.WriteString(c.Text())
	}
	return sb.String()
}

func (n *fakeNode) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

func (n *fakeNode) OuterHTML() string {
	if n.kind == TextNode {
		return n.text
	}
	var sb strings.Builder
	sb.WriteString("<" + n.tag)
	keys := make([]string, 0, len(n.attrs))
	for k := range n.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(` ` + k + `="` + n.attrs[k] + `"`)
	}
	sb.WriteString(">")
	for _, c := range n.children {
		sb.WriteString(c.OuterHTML())
	}
	sb.WriteString("</" + n.tag + ">")
	return sb.String()
}

// fakeDoc implements the provider interfaces over a fakeNode tree.
// styleCalls counts ComputedStyle lookups so tests can observe the
// visibility memo cache.
type fakeDoc struct {
	root       *fakeNode
	styleCalls int
}

func (d *fakeDoc) ComputedStyle(n Node) ComputedStyle {
	d.styleCalls++
	fn, ok := n.(*fakeNode)
	if !ok || fn.kind == TextNode {
		return ComputedStyle{}
	}
	return fn.style
}

func (d *fakeDoc) Rects(n Node) []ClientRect {
	fn, ok := n.(*fakeNode)
	if !ok {
		return nil
	}
	return append([]ClientRect(nil), fn.rects...)
}

// Query walks the tree depth-first and returns every node matching any
// selector: a bare tag name or a "[role=x]" attribute form.
func (d *fakeDoc) Query(selectors []string) []Node {
	tags := map[string]bool{}
	roles := map[string]bool{}
	for _, s := range selectors {
		if strings.HasPrefix(s, "[role=") {
			roles[strings.TrimSuffix(strings.TrimPrefix(s, "[role="), "]")] = true
		} else {
			tags[s] = true
		}
	}

	var out []Node
	var walk func(*fakeNode)
	walk = func(n *fakeNode) {
		if n.kind == ElementNode {
			if tags[n.tag] || roles[n.attrs["role"]] {
				out = append(out, n)
			}
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(d.root)
	return out
}

// newFakeFinder wires a Finder over a fake tree rooted at an <html>
// element.
func newFakeFinder(root *fakeNode, opts ...Option) (*Finder, *fakeDoc) {
	doc := &fakeDoc{root: root}
	return NewFinder(root, doc, doc, doc, opts...), doc
}
