package ir

import "github.com/foldkit/spir/glycan"

// GlycanBonds converts a parsed glycan tree into model bonds on the given
// chain. Each end carries both the residue and component index of its
// component so that dialects addressing at either granularity can consume
// the bond unchanged.
func GlycanBonds(chainID string, g *glycan.Graph) []Bond {
	bonds := make([]Bond, 0, len(g.Bonds))
	for _, b := range g.Bonds {
		bonds = append(bonds, Bond{
			Atom1: AtomRef{
				ChainID:        chainID,
				ResidueIndex:   b.ParentIndex,
				ComponentIndex: b.ParentIndex,
				AtomName:       b.ParentAtom,
			},
			Atom2: AtomRef{
				ChainID:        chainID,
				ResidueIndex:   b.ChildIndex,
				ComponentIndex: b.ChildIndex,
				AtomName:       b.ChildAtom,
			},
		})
	}
	return bonds
}

// GlycanAnchorBond links a polymer residue to the anomeric carbon of a
// glycan tree's root component.
func GlycanAnchorBond(polymerChain string, residue int, atomName, glycanChain string) Bond {
	return Bond{
		Atom1: AtomRef{
			ChainID:      polymerChain,
			ResidueIndex: residue,
			AtomName:     atomName,
		},
		Atom2: AtomRef{
			ChainID:        glycanChain,
			ResidueIndex:   1,
			ComponentIndex: 1,
			AtomName:       "C1",
		},
	}
}

// AnchorAtomName guesses the sidechain attachment atom for a glycan
// anchored at the given 1-based position of a protein sequence: ND2 for
// asparagine, OG for serine, OG1 for threonine, empty otherwise.
func AnchorAtomName(sequence string, position int) string {
	if position < 1 || position > len(sequence) {
		return ""
	}
	switch sequence[position-1] {
	case 'N', 'n':
		return "ND2"
	case 'S', 's':
		return "OG"
	case 'T', 't':
		return "OG1"
	}
	return ""
}
