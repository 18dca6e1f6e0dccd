package htmldom

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/tapscan/tapscan/taptarget"
)

// Query returns the elements matching any of the given simple selectors,
// in document order, each element once. Supported forms cover what the
// candidate set needs and a little more:
//
//	tag          "button"
//	[attr]       "[disabled]"
//	[attr=val]   "[role=slider]"
//	tag[attr=val], tag.class, tag#id and combinations thereof
func (d *Document) Query(selectors []string) []taptarget.Node {
	parsed := make([]simpleSelector, 0, len(selectors))
	for _, s := range selectors {
		parsed = append(parsed, parseSimpleSelector(s))
	}

	var out []taptarget.Node
	var walk func(*html.Node)
	walk = func(hn *html.Node) {
		if hn.Type == html.ElementNode {
			for _, sel := range parsed {
				if matchesSelector(hn, sel) {
					out = append(out, d.adapt(hn))
					break
				}
			}
		}
		for c := hn.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.doc)
	return out
}

type simpleSelector struct {
	tag     string
	id      string
	class   string
	attrKey string
	attrVal string
}

// parseSimpleSelector parses "tag.class", "#id", "[role=x]", etc.
func parseSimpleSelector(sel string) simpleSelector {
	var s simpleSelector

	if idx := strings.IndexByte(sel, '['); idx >= 0 {
		attrPart := strings.TrimRight(sel[idx+1:], "]")
		sel = sel[:idx]
		if key, val, ok := strings.Cut(attrPart, "="); ok {
			s.attrKey = key
			s.attrVal = strings.Trim(val, `"'`)
		} else {
			s.attrKey = attrPart
		}
	}

	if idx := strings.IndexByte(sel, '#'); idx >= 0 {
		s.id = sel[idx+1:]
		sel = sel[:idx]
	}

	if idx := strings.IndexByte(sel, '.'); idx >= 0 {
		s.class = sel[idx+1:]
		sel = sel[:idx]
	}

	s.tag = strings.ToLower(sel)
	return s
}

func matchesSelector(hn *html.Node, s simpleSelector) bool {
	if s.tag != "" && tagName(hn) != s.tag {
		return false
	}
	if s.id != "" && attrValue(hn, "id") != s.id {
		return false
	}
	if s.class != "" {
		found := false
		for _, c := range strings.Fields(attrValue(hn, "class")) {
			if c == s.class {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if s.attrKey != "" {
		val, present := lookupAttr(hn, s.attrKey)
		if !present {
			return false
		}
		if s.attrVal != "" && val != s.attrVal {
			return false
		}
	}
	return true
}

func lookupAttr(hn *html.Node, key string) (string, bool) {
	for _, a := range hn.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
