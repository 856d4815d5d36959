package ir

import "strconv"

// MergeDuplicateBonds removes exact duplicates, keeping first occurrences
// in order. The key is order-dependent: a bond and its atom-swapped twin
// are distinct (see the Bond doc).
func MergeDuplicateBonds(bonds []Bond) []Bond {
	seen := make(map[bondKey]bool, len(bonds))
	out := make([]Bond, 0, len(bonds))
	for _, b := range bonds {
		k := b.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, b)
	}
	return out
}

// NormalizeMultiComponent rewrites every multi-component glycan ligand into
// per-component single-CCD ligands, for dialects that can only address
// ligands at single-residue granularity.
//
// A ligand with base id G and N>1 CCD codes becomes N ligands G1..GN. Every
// bond end referencing chain G is re-targeted at the ligand holding its
// component (component index first, else residue index, else 1; clamped to
// range) with residue index forced to 1 and the atom name preserved. Bonds
// not touching a split ligand pass through, and exact duplicates are merged
// afterwards. If nothing needs splitting the input is returned unchanged.
func NormalizeMultiComponent(c Complex) Complex {
	newLigands := make([]Ligand, 0, len(c.Ligands))
	splitIDs := make(map[string][]string)

	for _, l := range c.Ligands {
		if !l.MultiComponent() {
			newLigands = append(newLigands, l)
			continue
		}
		base := l.IDs[0]
		componentIDs := make([]string, 0, len(l.CCDCodes))
		for i, ccd := range l.CCDCodes {
			id := base + strconv.Itoa(i+1)
			componentIDs = append(componentIDs, id)
			newLigands = append(newLigands, Ligand{IDs: []string{id}, CCDCodes: []string{ccd}})
		}
		splitIDs[base] = componentIDs
	}

	if len(splitIDs) == 0 {
		return c
	}

	rewire := func(a AtomRef) AtomRef {
		componentIDs, ok := splitIDs[a.ChainID]
		if !ok {
			return a
		}
		idx := a.ComponentIndex
		if idx == 0 {
			idx = a.ResidueIndex
		}
		if idx < 1 {
			idx = 1
		}
		if idx > len(componentIDs) {
			idx = len(componentIDs)
		}
		return AtomRef{
			ChainID:      componentIDs[idx-1],
			ResidueIndex: 1,
			AtomName:     a.AtomName,
		}
	}

	newBonds := make([]Bond, 0, len(c.Bonds))
	for _, b := range c.Bonds {
		newBonds = append(newBonds, Bond{Atom1: rewire(b.Atom1), Atom2: rewire(b.Atom2)})
	}

	out := c
	out.Ligands = newLigands
	out.Bonds = MergeDuplicateBonds(newBonds)
	return out
}
