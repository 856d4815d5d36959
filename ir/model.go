package ir

import "fmt"

// ChainType identifies the polymer kind of a chain.
type ChainType string

const (
	ChainProtein ChainType = "protein"
	ChainRNA     ChainType = "rna"
	ChainDNA     ChainType = "dna"
)

// Modification is a covalent residue/base modification at a 1-based
// position, identified by CCD code (e.g. HY3, 6OG).
type Modification struct {
	CCD      string
	Position int
}

// PolymerChain is one polymer entity. IDs lists the chain identifiers of
// its physical copies; all copies share the sequence.
type PolymerChain struct {
	Type          ChainType
	IDs           []string
	Sequence      string
	Modifications []Modification
	MSAPath       string
	Cyclic        bool
}

// Ligand is one ligand entity: a list of copy ids plus exactly one of a
// CCD code list or a free-form chemical string (SMILES). ServerResidues
// optionally preserves the original AlphaFold Server glycan notation for
// exact round-tripping.
type Ligand struct {
	IDs            []string
	CCDCodes       []string
	SMILES         string
	ServerResidues string
}

// LigandShapeError reports a ligand that specifies neither or both of the
// CCD list and the chemical string.
type LigandShapeError struct {
	ID string
}

func (e *LigandShapeError) Error() string {
	return fmt.Sprintf("ligand %q: exactly one of CCD codes or SMILES required", e.ID)
}

// Validate enforces the exactly-one-of shape.
func (l Ligand) Validate() error {
	if (len(l.CCDCodes) == 0) == (l.SMILES == "") {
		id := ""
		if len(l.IDs) > 0 {
			id = l.IDs[0]
		}
		return &LigandShapeError{ID: id}
	}
	return nil
}

// CCDList returns a copy of the ordered CCD codes; code i pairs with
// glycan component index i+1.
func (l Ligand) CCDList() []string {
	if l.CCDCodes == nil {
		return nil
	}
	out := make([]string, len(l.CCDCodes))
	copy(out, l.CCDCodes)
	return out
}

// MultiComponent reports whether the ligand carries more than one CCD code.
func (l Ligand) MultiComponent() bool {
	return len(l.CCDCodes) > 1
}

// Ion is one ion entity (e.g. MG) with its copy ids.
type Ion struct {
	IDs  []string
	Code string
}

// Complex is the aggregate model of one job: everything a structure
// predictor needs to know about the assembly, independent of dialect.
type Complex struct {
	Name     string
	Seeds    []int
	Proteins []PolymerChain
	RNAs     []PolymerChain
	DNAs     []PolymerChain
	Ligands  []Ligand
	Ions     []Ion
	Bonds    []Bond
	UserCCD  string
}
