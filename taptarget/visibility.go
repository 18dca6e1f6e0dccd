package taptarget

// collapsibleTags are the table structure tags that visibility:collapse
// removes from layout entirely.
var collapsibleTags = map[string]bool{
	"tr":       true,
	"tbody":    true,
	"col":      true,
	"colgroup": true,
}

// isVisible decides whether a node paints anything at all, memoized by
// node identity for the lifetime of the pass. Repeated queries across a
// subtree would otherwise cost O(depth²) in ancestor walks.
func (p *pass) isVisible(n Node) bool {
	if v, ok := p.visible[n]; ok {
		return v
	}
	v := p.resolveVisible(n)
	p.visible[n] = v
	return v
}

// resolveVisible applies the visibility rules in order, first match wins:
//
//  1. display:none paints nothing.
//  2. visibility:collapse removes table rows/sections/columns.
//  3. A block or inline-block box with zero extent on an axis whose
//     overflow is hidden has no visible content on that axis.
//  4. Visibility is inherited downward: a node below an invisible
//     ancestor (the root excepted) is invisible.
func (p *pass) resolveVisible(n Node) bool {
	st := p.f.style.ComputedStyle(n)

	if st.Display == "none" {
		return false
	}
	if st.Visibility == "collapse" && collapsibleTags[n.Tag()] {
		return false
	}
	if st.Display == "block" || st.Display == "inline-block" {
		if n.ClientWidth() == 0 && st.OverflowX == "hidden" {
			return false
		}
		if n.ClientHeight() == 0 && st.OverflowY == "hidden" {
			return false
		}
	}
	// A missing parent means the root was reached; the chain ends there.
	if parent := n.Parent(); parent != nil && parent != p.f.root {
		if !p.isVisible(parent) {
			return false
		}
	}
	return true
}
