package glycan

import "strings"

// RenderChai renders a Graph back to explicit-link Chai notation. Bonds
// are emitted in their original order under each parent, so for any
// string accepted by ParseChai with no extraneous internal whitespace,
// RenderChai(ParseChai(s)) == s.
func RenderChai(g *Graph) string {
	if len(g.Components) == 0 {
		return ""
	}
	children := make([][]Bond, len(g.Components)+1)
	for _, b := range g.Bonds {
		// Bonds violating the tree shape (indices out of range, or a child
		// not after its parent) cannot be rendered; dropping them keeps the
		// traversal finite on malformed input.
		if b.ParentIndex < 1 || b.ChildIndex <= b.ParentIndex || b.ChildIndex > len(g.Components) {
			continue
		}
		children[b.ParentIndex] = append(children[b.ParentIndex], b)
	}
	r := &renderer{graph: g, children: children}
	r.render(1)
	return r.sb.String()
}

type renderer struct {
	sb       strings.Builder
	graph    *Graph
	children [][]Bond
}

func (r *renderer) render(idx int) {
	r.sb.WriteString(r.graph.Components[idx-1].CCD)
	for _, b := range r.children[idx] {
		r.sb.WriteString("(")
		r.sb.WriteString(oxygenSuffix(b.ParentAtom))
		r.sb.WriteString("-")
		r.sb.WriteString(carbonSuffix(b.ChildAtom))
		r.sb.WriteString(" ")
		r.render(b.ChildIndex)
		r.sb.WriteString(")")
	}
}

// oxygenSuffix returns the numeric part of a parent atom label ("O4" → "4").
// Labels without the conventional prefix pass through unchanged.
func oxygenSuffix(atom string) string {
	if strings.HasPrefix(atom, "O") {
		return atom[1:]
	}
	return atom
}

// carbonSuffix returns the numeric part of a child atom label ("C1" → "1").
func carbonSuffix(atom string) string {
	if strings.HasPrefix(atom, "C") {
		return atom[1:]
	}
	return atom
}
