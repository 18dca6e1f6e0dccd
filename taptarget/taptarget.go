// Package taptarget identifies the elements of a rendered document tree
// that act as pointer-interactive tap targets (buttons, links, form
// controls, ARIA-interactive roles), resolves which of them are actually
// visible and reachable given layout, overflow clipping and scroll
// containers, and emits a detached geometric descriptor for each.
//
// The package is pure: it performs no I/O and reads the document only
// through the Node, StyleProvider, GeometryProvider and NodeSelector
// interfaces supplied by a host (see htmldom for a static host and
// gatherer for a live-page host). All descriptors it produces are plain
// values with no references back into the tree, so they can cross a
// process or runtime boundary as JSON.
//
// Visibility here is a deliberate approximation. Stacking contexts,
// transforms and true pointer hit-testing are not modelled; ambiguous
// cases resolve to exclusion, since over-reporting an invisible element
// as a tap target would mislead the downstream size/overlap audit.
package taptarget

// NodeKind distinguishes element nodes from text nodes.
type NodeKind int

const (
	ElementNode NodeKind = iota
	TextNode
)

// Node is one element or text node of the host document tree. The host
// owns the tree; this package only reads it.
//
// Implementations must be identity-stable: the same underlying document
// node must be represented by the same (comparable) Node value on every
// call, so that sibling identity checks and per-pass memoization work.
type Node interface {
	// Tag is the lowercase tag name, or "" for text nodes.
	Tag() string
	Kind() NodeKind
	// Parent returns nil once the tree root (or a detached node) is reached.
	Parent() Node
	// Children returns the ordered child nodes, text nodes included.
	Children() []Node
	// Text is the concatenated text content of the node and its descendants.
	Text() string
	Attr(name string) (string, bool)
	// OuterHTML is the serialized outer markup of the node.
	OuterHTML() string
	// ClientWidth and ClientHeight are the rendered box metrics of the
	// node, zero when unknown.
	ClientWidth() int
	ClientHeight() int
}

// ComputedStyle is the per-node style snapshot the algorithm depends on.
// Values are resolved CSS keywords ("none", "hidden", "inline-block", ...).
type ComputedStyle struct {
	Display    string
	Visibility string
	OverflowX  string
	OverflowY  string
}

// StyleProvider resolves the computed style of a node. Results are
// assumed valid for the instant they are read; the document must not
// mutate during a pass.
type StyleProvider interface {
	ComputedStyle(Node) ComputedStyle
}

// GeometryProvider returns the raw client rectangles painted by a node
// itself, excluding descendants. An element that paints nothing (or whose
// geometry is unknown) returns an empty slice, never an error.
type GeometryProvider interface {
	Rects(Node) []ClientRect
}

// NodeSelector returns the nodes matching a selector list, in document
// order, each node at most once.
type NodeSelector interface {
	Query(selectors []string) []Node
}
