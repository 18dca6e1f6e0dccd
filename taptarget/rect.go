package taptarget

// ClientRect is an axis-aligned bounding rectangle in page coordinates.
// It carries no reference to its source node so it stays serializable
// across an execution-context boundary.
type ClientRect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect builds a ClientRect from its top-left corner and size.
func Rect(left, top, width, height float64) ClientRect {
	return ClientRect{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
		Width:  width,
		Height: height,
	}
}

// empty reports whether the rect has zero width and zero height.
func (r ClientRect) empty() bool {
	return r.Width == 0 && r.Height == 0
}

// contains reports whether inner lies fully within r, edges inclusive.
func (r ClientRect) contains(inner ClientRect) bool {
	return inner.Left >= r.Left &&
		inner.Top >= r.Top &&
		inner.Right <= r.Right &&
		inner.Bottom <= r.Bottom
}

// boundingRect returns the smallest rect enclosing all rects. The zero
// rect is returned for an empty slice.
func boundingRect(rects []ClientRect) ClientRect {
	if len(rects) == 0 {
		return ClientRect{}
	}
	b := rects[0]
	for _, r := range rects[1:] {
		if r.Left < b.Left {
			b.Left = r.Left
		}
		if r.Top < b.Top {
			b.Top = r.Top
		}
		if r.Right > b.Right {
			b.Right = r.Right
		}
		if r.Bottom > b.Bottom {
			b.Bottom = r.Bottom
		}
	}
	b.Width = b.Right - b.Left
	b.Height = b.Bottom - b.Top
	return b
}

// allRectsEmpty reports whether every rect has zero extent. Vacuously
// true for an empty slice.
func allRectsEmpty(rects []ClientRect) bool {
	for _, r := range rects {
		if !r.empty() {
			return false
		}
	}
	return true
}
