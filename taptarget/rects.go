package taptarget

// collectRects gathers the node's own raw rectangles and, when
// includeDescendants is set, those of its descendants in document order.
// The returned slice is freshly allocated; it never aliases host data.
func (p *pass) collectRects(n Node, includeDescendants bool) []ClientRect {
	rects := append([]ClientRect(nil), p.f.geometry.Rects(n)...)
	if !includeDescendants {
		return rects
	}
	for _, c := range n.Children() {
		rects = append(rects, p.collectRects(c, true)...)
	}
	return rects
}

// visibleRects resolves the painted area of a node: nothing when the
// node is invisible, nothing when it is an empty box with no means of
// showing child content, and otherwise the collected rectangles narrowed
// to what ancestor scroll clipping actually exposes.
func (p *pass) visibleRects(n Node) []ClientRect {
	if !p.isVisible(n) {
		return nil
	}

	rects := p.collectRects(n, true)
	if allRectsEmpty(rects) {
		st := p.f.style.ComputedStyle(n)
		if (st.OverflowX == "hidden" && st.OverflowY == "hidden") || countElementChildren(n) == 0 {
			return nil
		}
	}

	return p.filterByScrollClip(n, rects)
}

// filterByScrollClip walks from the node's parent up to (but excluding)
// the root element. At each ancestor whose vertical overflow is not
// "visible", only rectangles fully contained in the ancestor's bounding
// rectangle survive.
//
// This is an approximation by intent: rects are kept or dropped whole,
// never clipped to the boundary, and horizontal overflow is ignored.
// Content straddling a scroll edge is therefore dropped even when a
// sliver of it is visible, a false negative the downstream audit
// tolerates, where a false positive would not be.
func (p *pass) filterByScrollClip(n Node, rects []ClientRect) []ClientRect {
	for anc := n.Parent(); anc != nil && anc != p.f.root; anc = anc.Parent() {
		if p.f.style.ComputedStyle(anc).OverflowY == "visible" {
			continue
		}
		bound := boundingRect(p.f.geometry.Rects(anc))
		var kept []ClientRect
		for _, r := range rects {
			if bound.contains(r) {
				kept = append(kept, r)
			}
		}
		rects = kept
		if len(rects) == 0 {
			break
		}
	}
	return rects
}

func countElementChildren(n Node) int {
	count := 0
	for _, c := range n.Children() {
		if c.Kind() == ElementNode {
			count++
		}
	}
	return count
}
