package ir

import "fmt"

// AtomRef locates one atom across every dialect: a chain plus a residue
// index (polymers), a component index (multi-component ligands), or a bare
// atom for entities like ions. Indices are 1-based; zero means unset.
// AtomIndex is a 0-based index into a SMILES/file ligand's atoms and is
// nil when unset, since 0 is a valid index.
type AtomRef struct {
	ChainID        string
	CopyIndex      int
	ResidueIndex   int
	ComponentIndex int
	AtomName       string
	AtomIndex      *int
}

// AddressError reports an AtomRef that violates the addressing invariants.
type AddressError struct {
	Reason string
}

func (e *AddressError) Error() string {
	return "atom address: " + e.Reason
}

// Validate enforces the addressing invariants: at least one of residue or
// component index must be present unless an atom name or atom index alone
// disambiguates, and an atom may be named or indexed but never both.
func (a AtomRef) Validate() error {
	if a.ResidueIndex == 0 && a.ComponentIndex == 0 &&
		a.AtomName == "" && a.AtomIndex == nil {
		return &AddressError{
			Reason: fmt.Sprintf("chain %q: need residue or component index, or an atom name/index", a.ChainID),
		}
	}
	if a.AtomName != "" && a.AtomIndex != nil {
		return &AddressError{
			Reason: fmt.Sprintf("chain %q: atom name and atom index are mutually exclusive", a.ChainID),
		}
	}
	return nil
}

// Bond is an unordered pair of atom locators. Equality and deduplication
// are nonetheless order-dependent throughout (atom1 vs atom2 position
// matters), matching the established wire behavior.
type Bond struct {
	Atom1 AtomRef
	Atom2 AtomRef
}

// Validate checks both ends of the bond.
func (b Bond) Validate() error {
	if err := b.Atom1.Validate(); err != nil {
		return err
	}
	return b.Atom2.Validate()
}

// ValidateBonds checks every bond, returning the first violation.
func ValidateBonds(bonds []Bond) error {
	for _, b := range bonds {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// atomKey is a comparable projection of AtomRef used for bond dedup.
// CopyIndex is deliberately not part of the key; dedup matches on the
// same chain/residue/component/atom fields the wire formats address by.
type atomKey struct {
	chain      string
	residue    int
	component  int
	atomName   string
	atomIdx    int
	hasAtomIdx bool
}

func (a AtomRef) key() atomKey {
	k := atomKey{
		chain:     a.ChainID,
		residue:   a.ResidueIndex,
		component: a.ComponentIndex,
		atomName:  a.AtomName,
	}
	if a.AtomIndex != nil {
		k.atomIdx = *a.AtomIndex
		k.hasAtomIdx = true
	}
	return k
}

type bondKey struct {
	a1, a2 atomKey
}

func (b Bond) key() bondKey {
	return bondKey{a1: b.Atom1.key(), a2: b.Atom2.key()}
}
