package taptarget

// CandidateSet lists the tag names and ARIA roles that make a node a tap
// target candidate. It is injected configuration rather than a hidden
// constant so tests and embedders can substitute smaller sets.
type CandidateSet struct {
	Tags  []string
	Roles []string
}

// DefaultCandidates returns the standard candidate set: native
// interactive tags plus the pointer-interactive ARIA roles.
func DefaultCandidates() CandidateSet {
	return CandidateSet{
		Tags: []string{"button", "a", "input", "textarea", "select", "option"},
		Roles: []string{
			"button", "checkbox", "link", "menuitem", "menuitemcheckbox",
			"menuitemradio", "option", "scrollbar", "slider", "spinbutton",
		},
	}
}

// Selectors renders the set as a selector list suitable for
// NodeSelector.Query: bare tag names plus [role=...] attribute selectors.
func (c CandidateSet) Selectors() []string {
	sels := make([]string, 0, len(c.Tags)+len(c.Roles))
	sels = append(sels, c.Tags...)
	for _, role := range c.Roles {
		sels = append(sels, "[role="+role+"]")
	}
	return sels
}
