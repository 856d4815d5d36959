package glycan

// Component is one monosaccharide unit, identified by its CCD code.
// Identity within a tree is purely positional.
type Component struct {
	CCD string
}

// Bond is a directed parent→child edge inside one tree. Indices are
// 1-based positions in the component list; atoms are CCD atom labels
// such as "O4" (parent side) and "C1" (child side).
type Bond struct {
	ParentIndex int
	ParentAtom  string
	ChildIndex  int
	ChildAtom   string
}

// Graph is a rooted glycan tree: components in preorder (root at index 1)
// plus the bonds connecting them. Every non-root component appears as
// exactly one bond's child, and a child's index is always greater than
// its parent's. A Graph is immutable once returned by a parser.
type Graph struct {
	Components []Component
	Bonds      []Bond
}

// CCDList returns the component CCD codes in preorder. The code at slice
// index i belongs to component index i+1.
func (g *Graph) CCDList() []string {
	codes := make([]string, len(g.Components))
	for i, c := range g.Components {
		codes[i] = c.CCD
	}
	return codes
}
