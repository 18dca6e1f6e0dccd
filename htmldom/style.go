package htmldom

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/tapscan/tapscan/taptarget"
)

// displayDefaults maps tags whose user-agent default display differs
// from the CSS initial value ("inline"). Only the values the core
// algorithm distinguishes need to be faithful.
var displayDefaults = map[string]string{
	"html": "block", "body": "block", "div": "block", "p": "block",
	"main": "block", "section": "block", "article": "block",
	"header": "block", "footer": "block", "nav": "block", "aside": "block",
	"form": "block", "fieldset": "block", "ul": "block", "ol": "block",
	"li": "block", "dl": "block", "dt": "block", "dd": "block",
	"h1": "block", "h2": "block", "h3": "block", "h4": "block",
	"h5": "block", "h6": "block", "blockquote": "block", "pre": "block",
	"hr": "block", "address": "block", "figure": "block",

	"button": "inline-block", "input": "inline-block",
	"select": "inline-block", "textarea": "inline-block",

	"table": "table", "tr": "table-row", "tbody": "table-row-group",
	"thead": "table-header-group", "tfoot": "table-footer-group",
	"td": "table-cell", "th": "table-cell",
	"col": "table-column", "colgroup": "table-column-group",
}

// ComputedStyle resolves a node's style from tag defaults, the inherited
// visibility of its ancestors, and its inline style attribute. Cached per
// node for the lifetime of the Document.
func (d *Document) ComputedStyle(n taptarget.Node) taptarget.ComputedStyle {
	hn := d.unwrap(n)
	if hn == nil || hn.Type != html.ElementNode {
		return taptarget.ComputedStyle{}
	}
	return d.computedStyle(hn)
}

func (d *Document) computedStyle(hn *html.Node) taptarget.ComputedStyle {
	if st, ok := d.styles[hn]; ok {
		return st
	}

	st := taptarget.ComputedStyle{
		Display:    "inline",
		Visibility: d.inheritedVisibility(hn),
		OverflowX:  "visible",
		OverflowY:  "visible",
	}
	if dd, ok := displayDefaults[tagName(hn)]; ok {
		st.Display = dd
	}

	props := parseInlineStyle(attrValue(hn, "style"))
	if v, ok := props["display"]; ok {
		st.Display = v
	}
	if v, ok := props["visibility"]; ok {
		st.Visibility = v
	}
	if v, ok := props["overflow"]; ok {
		st.OverflowX, st.OverflowY = v, v
	}
	if v, ok := props["overflow-x"]; ok {
		st.OverflowX = v
	}
	if v, ok := props["overflow-y"]; ok {
		st.OverflowY = v
	}

	d.styles[hn] = st
	return st
}

// inheritedVisibility resolves the visibility a node inherits: its own
// inline value wins, otherwise the nearest ancestor value, defaulting to
// "visible".
func (d *Document) inheritedVisibility(hn *html.Node) string {
	for cur := hn.Parent; cur != nil && cur.Type == html.ElementNode; cur = cur.Parent {
		if v, ok := parseInlineStyle(attrValue(cur, "style"))["visibility"]; ok {
			return v
		}
	}
	return "visible"
}

// parseInlineStyle splits a style attribute into lowercase
// property/value pairs. Malformed declarations are skipped, never rejected.
func parseInlineStyle(style string) map[string]string {
	if style == "" {
		return nil
	}
	props := make(map[string]string)
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.ToLower(strings.TrimSpace(value))
		if name != "" && value != "" {
			props[name] = value
		}
	}
	return props
}

func (d *Document) unwrap(n taptarget.Node) *html.Node {
	adapted, ok := n.(*node)
	if !ok {
		return nil
	}
	return adapted.n
}

func tagName(hn *html.Node) string {
	return strings.ToLower(hn.Data)
}

func attrValue(hn *html.Node, key string) string {
	for _, a := range hn.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
