package taptarget

// SnippetMax bounds the serialized markup carried by a TapTarget.
const SnippetMax = 700

// TapTarget describes one surviving tap target: where it paints, what it
// is, and how to locate it again. Fully detached from the live tree.
type TapTarget struct {
	// ClientRects is the visible painted area, never empty.
	ClientRects []ClientRect `json:"clientRects"`
	// Snippet is the outer markup, truncated to SnippetMax characters.
	Snippet string `json:"snippet"`
	// Path is a structural locator: comma-joined "childIndex,TAG" pairs
	// from the root down to the node.
	Path string `json:"path"`
	// Selector is a short generated CSS selector for the node.
	Selector string `json:"selector"`
	// Href is the node's href attribute, or "" when absent.
	Href string `json:"href"`
}

// Finder runs the tap-target resolution over one immutable snapshot of a
// document tree. It is single-threaded; create one Finder per snapshot
// and call CollectTapTargets from one goroutine.
type Finder struct {
	root       Node
	selector   NodeSelector
	style      StyleProvider
	geometry   GeometryProvider
	candidates CandidateSet
}

// Option configures a Finder.
type Option func(*Finder)

// WithCandidates overrides the default candidate tag/role set.
func WithCandidates(c CandidateSet) Option {
	return func(f *Finder) { f.candidates = c }
}

// NewFinder creates a Finder over the document rooted at root. The root
// is the document's root element (<html> in an HTML host); visibility
// inheritance and scroll clipping stop there.
func NewFinder(root Node, sel NodeSelector, style StyleProvider, geo GeometryProvider, opts ...Option) *Finder {
	f := &Finder{
		root:       root,
		selector:   sel,
		style:      style,
		geometry:   geo,
		candidates: DefaultCandidates(),
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// CollectTapTargets queries all candidates and returns a descriptor for
// each one that is visible and not flowing inline text. Query order is
// preserved. The nominal path never fails: nodes with missing or
// ambiguous style/geometry are excluded, not reported as errors.
func (f *Finder) CollectTapTargets() []TapTarget {
	p := f.newPass()

	var targets []TapTarget
	for _, n := range f.selector.Query(f.candidates.Selectors()) {
		if p.isInTextBlock(n) {
			continue
		}
		rects := p.visibleRects(n)
		if len(rects) == 0 {
			continue
		}

		href, _ := n.Attr("href")
		targets = append(targets, TapTarget{
			ClientRects: rects,
			Snippet:     Truncate(n.OuterHTML(), SnippetMax),
			Path:        nodePath(n),
			Selector:    nodeSelector(n),
			Href:        href,
		})
	}
	return targets
}

// pass holds the per-invocation state: the visibility memo cache, keyed
// by node identity and discarded when CollectTapTargets returns. Caching
// is an optimization only; results are identical without it because the
// snapshot is immutable for the duration of the pass.
type pass struct {
	f       *Finder
	visible map[Node]bool
}

func (f *Finder) newPass() *pass {
	return &pass{f: f, visible: make(map[Node]bool)}
}

// Truncate returns s unchanged when it has at most n characters, and
// otherwise its first n-1 characters followed by a single ellipsis.
// n must be positive.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
