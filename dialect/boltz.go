package dialect

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/foldkit/spir/ir"
)

// Boltz YAML: sequences keyed by entity kind plus bond constraints that
// address atoms as [chain, residue, atom] triples. Boltz addresses ligands
// at single-residue granularity, so multi-component glycans must go
// through ir.NormalizeMultiComponent before DumpBoltz.

type boltzDoc struct {
	Version     int               `yaml:"version"`
	Sequences   []boltzEntry      `yaml:"sequences"`
	Constraints []boltzConstraint `yaml:"constraints,omitempty"`
}

type boltzEntry struct {
	Protein *boltzPolymer `yaml:"protein,omitempty"`
	RNA     *boltzPolymer `yaml:"rna,omitempty"`
	DNA     *boltzPolymer `yaml:"dna,omitempty"`
	Ligand  *boltzLigand  `yaml:"ligand,omitempty"`
}

type boltzPolymer struct {
	ID       flexIDs `yaml:"id"`
	Sequence string  `yaml:"sequence"`
}

type boltzLigand struct {
	ID     flexIDs `yaml:"id"`
	CCD    string  `yaml:"ccd,omitempty"`
	SMILES string  `yaml:"smiles,omitempty"`
}

type boltzConstraint struct {
	Bond *boltzBond `yaml:"bond,omitempty"`
}

type boltzBond struct {
	Atom1 boltzAtom `yaml:"atom1"`
	Atom2 boltzAtom `yaml:"atom2"`
}

// boltzAtom is one constraint end on the wire: a [chain, residue, atom]
// sequence.
type boltzAtom struct {
	Chain   string
	Residue int
	Atom    string
}

func (a boltzAtom) MarshalYAML() (interface{}, error) {
	return []any{a.Chain, a.Residue, a.Atom}, nil
}

func (a *boltzAtom) UnmarshalYAML(value *yaml.Node) error {
	var raw []yaml.Node
	if err := value.Decode(&raw); err != nil || len(raw) != 3 {
		return fmt.Errorf("constraint atom must be a [chain, residue, atom] triple")
	}
	if err := raw[0].Decode(&a.Chain); err != nil {
		return fmt.Errorf("constraint atom chain: %w", err)
	}
	if err := raw[1].Decode(&a.Residue); err != nil {
		return fmt.Errorf("constraint atom residue: %w", err)
	}
	if err := raw[2].Decode(&a.Atom); err != nil {
		return fmt.Errorf("constraint atom name: %w", err)
	}
	return nil
}

// LoadBoltz parses Boltz YAML into the shared model.
func LoadBoltz(data string) (ir.Complex, error) {
	var doc boltzDoc
	if err := yaml.Unmarshal([]byte(data), &doc); err != nil {
		return ir.Complex{}, fmt.Errorf("boltz: %w", err)
	}
	if len(doc.Sequences) == 0 {
		return ir.Complex{}, fmt.Errorf("boltz: not a Boltz YAML input (no sequences)")
	}

	var c ir.Complex
	for i, entry := range doc.Sequences {
		switch {
		case entry.Protein != nil:
			c.Proteins = append(c.Proteins, ir.PolymerChain{
				Type: ir.ChainProtein, IDs: entry.Protein.ID, Sequence: entry.Protein.Sequence,
			})
		case entry.RNA != nil:
			c.RNAs = append(c.RNAs, ir.PolymerChain{
				Type: ir.ChainRNA, IDs: entry.RNA.ID, Sequence: entry.RNA.Sequence,
			})
		case entry.DNA != nil:
			c.DNAs = append(c.DNAs, ir.PolymerChain{
				Type: ir.ChainDNA, IDs: entry.DNA.ID, Sequence: entry.DNA.Sequence,
			})
		case entry.Ligand != nil:
			l := ir.Ligand{IDs: entry.Ligand.ID, SMILES: entry.Ligand.SMILES}
			if entry.Ligand.CCD != "" {
				l.CCDCodes = []string{entry.Ligand.CCD}
			}
			if err := l.Validate(); err != nil {
				return ir.Complex{}, fmt.Errorf("boltz: sequence entry %d: %w", i, err)
			}
			c.Ligands = append(c.Ligands, l)
		default:
			return ir.Complex{}, fmt.Errorf("boltz: unknown sequence entry %d", i)
		}
	}

	for _, constraint := range doc.Constraints {
		if constraint.Bond == nil {
			continue
		}
		b := constraint.Bond
		c.Bonds = append(c.Bonds, ir.Bond{
			Atom1: ir.AtomRef{ChainID: b.Atom1.Chain, ResidueIndex: b.Atom1.Residue, AtomName: b.Atom1.Atom},
			Atom2: ir.AtomRef{ChainID: b.Atom2.Chain, ResidueIndex: b.Atom2.Residue, AtomName: b.Atom2.Atom},
		})
	}
	return c, nil
}

// DumpBoltz renders the shared model as Boltz YAML. Bonds missing an atom
// name on either end have no Boltz representation and are skipped.
func DumpBoltz(c ir.Complex) (string, error) {
	doc := boltzDoc{Version: 1, Sequences: []boltzEntry{}}

	for _, p := range c.Proteins {
		doc.Sequences = append(doc.Sequences, boltzEntry{Protein: &boltzPolymer{ID: p.IDs, Sequence: p.Sequence}})
	}
	for _, p := range c.RNAs {
		doc.Sequences = append(doc.Sequences, boltzEntry{RNA: &boltzPolymer{ID: p.IDs, Sequence: p.Sequence}})
	}
	for _, p := range c.DNAs {
		doc.Sequences = append(doc.Sequences, boltzEntry{DNA: &boltzPolymer{ID: p.IDs, Sequence: p.Sequence}})
	}
	for _, l := range c.Ligands {
		entry := boltzLigand{ID: l.IDs}
		switch {
		case len(l.CCDCodes) > 0:
			// Multi-component ligands should have been normalized away;
			// writing the first code keeps the output loadable either way.
			entry.CCD = l.CCDCodes[0]
		default:
			entry.SMILES = l.SMILES
		}
		doc.Sequences = append(doc.Sequences, boltzEntry{Ligand: &entry})
	}

	for _, b := range c.Bonds {
		if b.Atom1.AtomName == "" || b.Atom2.AtomName == "" {
			continue
		}
		doc.Constraints = append(doc.Constraints, boltzConstraint{Bond: &boltzBond{
			Atom1: boltzAtom{Chain: b.Atom1.ChainID, Residue: orOne(b.Atom1.ResidueIndex), Atom: b.Atom1.AtomName},
			Atom2: boltzAtom{Chain: b.Atom2.ChainID, Residue: orOne(b.Atom2.ResidueIndex), Atom: b.Atom2.AtomName},
		}})
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("boltz: %w", err)
	}
	return string(out), nil
}
