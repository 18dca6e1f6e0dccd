package htmldom

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tapscan/tapscan/taptarget"
)

// Rects returns the rectangle an element declares through explicit
// inline left/top/width/height values, or nothing when no extent is
// declared. Text nodes and undeclared elements paint no rect in this
// host; absent geometry means "no visible area", never an error.
func (d *Document) Rects(n taptarget.Node) []taptarget.ClientRect {
	hn := d.unwrap(n)
	if hn == nil || hn.Type != html.ElementNode {
		return nil
	}

	props := parseInlineStyle(attrValue(hn, "style"))
	w, hasW := cssLength(props["width"])
	h, hasH := cssLength(props["height"])
	if !hasW && !hasH {
		return nil
	}
	left, _ := cssLength(props["left"])
	top, _ := cssLength(props["top"])
	return []taptarget.ClientRect{taptarget.Rect(left, top, w, h)}
}

func (d *Document) clientSize(hn *html.Node) (int, int) {
	props := parseInlineStyle(attrValue(hn, "style"))
	w, _ := cssLength(props["width"])
	h, _ := cssLength(props["height"])
	return int(w), int(h)
}

// cssLength parses "120px", "120" or "0" into a float. Anything else
// (percentages, keywords, absence) resolves to no length.
func cssLength(v string) (float64, bool) {
	if v == "" {
		return 0, false
	}
	v = strings.TrimSuffix(v, "px")
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
