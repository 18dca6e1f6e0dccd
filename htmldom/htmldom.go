// Package htmldom binds the taptarget core to a static HTML parse tree
// (golang.org/x/net/html). It is a snapshot host: computed style comes
// from per-tag defaults plus inline style attributes, and geometry only
// from explicit inline left/top/width/height values. There is no layout
// engine; elements without explicit geometry paint nothing.
//
// This host exists for tests and for auditing serialized DOM snapshots
// offline; live pages go through the gatherer package, which reads real
// computed styles and client rects over CDP.
package htmldom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/tapscan/tapscan/taptarget"
)

// Document wraps a parsed HTML tree and implements the core's Node
// navigation and provider interfaces. The tree must not be mutated after
// Parse; style and adapter lookups are cached against it.
type Document struct {
	doc    *html.Node
	root   *html.Node // the <html> element
	nodes  map[*html.Node]*node
	styles map[*html.Node]taptarget.ComputedStyle
}

// Parse reads an HTML document. The parser supplies the usual implied
// structure, so fragments like "<button>x</button>" gain html/head/body
// ancestors.
func Parse(r io.Reader) (*Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("htmldom: parse: %w", err)
	}
	root := findRootElement(doc)
	if root == nil {
		return nil, fmt.Errorf("htmldom: document has no root element")
	}
	return &Document{
		doc:    doc,
		root:   root,
		nodes:  make(map[*html.Node]*node),
		styles: make(map[*html.Node]taptarget.ComputedStyle),
	}, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Root returns the document's root element.
func (d *Document) Root() taptarget.Node {
	return d.adapt(d.root)
}

// Finder wires a taptarget.Finder over this document.
func (d *Document) Finder(opts ...taptarget.Option) *taptarget.Finder {
	return taptarget.NewFinder(d.Root(), d, d, d, opts...)
}

// adapt returns the canonical Node for an html.Node. One adapter per
// underlying node, so Node values stay identity-comparable across calls.
func (d *Document) adapt(hn *html.Node) *node {
	if hn == nil {
		return nil
	}
	if n, ok := d.nodes[hn]; ok {
		return n
	}
	n := &node{d: d, n: hn}
	d.nodes[hn] = n
	return n
}

func findRootElement(doc *html.Node) *html.Node {
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// node adapts one html.Node to the taptarget.Node interface.
type node struct {
	d *Document
	n *html.Node
}

func (n *node) Tag() string {
	if n.n.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(n.n.Data)
}

func (n *node) Kind() taptarget.NodeKind {
	if n.n.Type == html.TextNode {
		return taptarget.TextNode
	}
	return taptarget.ElementNode
}

func (n *node) Parent() taptarget.Node {
	p := n.n.Parent
	if p == nil || p.Type == html.DocumentNode {
		return nil
	}
	adapted := n.d.adapt(p)
	return adapted
}

func (n *node) Children() []taptarget.Node {
	var kids []taptarget.Node
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode && c.Type != html.TextNode {
			continue
		}
		kids = append(kids, n.d.adapt(c))
	}
	return kids
}

func (n *node) Text() string {
	if n.n.Type == html.TextNode {
		return n.n.Data
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(hn *html.Node) {
		if hn.Type == html.TextNode {
			sb.WriteString(hn.Data)
		}
		for c := hn.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n.n)
	return sb.String()
}

func (n *node) Attr(name string) (string, bool) {
	for _, a := range n.n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (n *node) OuterHTML() string {
	var sb strings.Builder
	if err := html.Render(&sb, n.n); err != nil {
		return ""
	}
	return sb.String()
}

func (n *node) ClientWidth() int {
	w, _ := n.d.clientSize(n.n)
	return w
}

func (n *node) ClientHeight() int {
	_, h := n.d.clientSize(n.n)
	return h
}
