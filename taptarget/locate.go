package taptarget

import (
	"fmt"
	"strings"
)

// nodePath builds the structural locator for a node: for each step from
// the root down, the node's index among its parent's children (ignoring
// whitespace-only text nodes) and its uppercase tag name, all joined with
// commas. Stable against attribute changes, cheap to recompute.
func nodePath(n Node) string {
	var parts []string
	for cur := n; cur != nil; cur = cur.Parent() {
		parts = append(parts, fmt.Sprintf("%d,%s", childIndex(cur), strings.ToUpper(cur.Tag())))
	}
	// Collected leaf-first; reverse into root-first order.
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ",")
}

// childIndex counts the node's position among its parent's children,
// skipping whitespace-only text nodes. Roots index at 0.
func childIndex(n Node) int {
	parent := n.Parent()
	if parent == nil {
		return 0
	}
	idx := 0
	for _, sib := range parent.Children() {
		if sib == n {
			break
		}
		if sib.Kind() == TextNode && strings.TrimSpace(sib.Text()) == "" {
			continue
		}
		idx++
	}
	return idx
}

// nodeSelector generates a short CSS selector for a node: up to four
// ancestor parts joined with " > ", each part the tag name plus "#id"
// when an id exists (which also terminates the walk, ids being unique
// enough) or the first class otherwise.
func nodeSelector(n Node) string {
	var parts []string
	for cur := n; cur != nil && len(parts) < 4; cur = cur.Parent() {
		parts = append(parts, selectorPart(cur))
		if id, ok := cur.Attr("id"); ok && id != "" {
			break
		}
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " > ")
}

func selectorPart(n Node) string {
	part := n.Tag()
	if id, ok := n.Attr("id"); ok && id != "" {
		return part + "#" + id
	}
	if class, ok := n.Attr("class"); ok {
		if first := strings.Fields(class); len(first) > 0 {
			return part + "." + first[0]
		}
	}
	return part
}
