package dialect

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/foldkit/spir/ir"
)

// AlphaFold3 JSON: a single job object with dialect "alphafold3",
// sequences keyed by entity kind, and bondedAtomPairs as
// [[chain, residue, atom], [chain, residue, atom]] triples.

type af3Job struct {
	Name            string         `json:"name"`
	ModelSeeds      []int          `json:"modelSeeds"`
	Sequences       []af3Entry     `json:"sequences"`
	BondedAtomPairs []af3BondPair  `json:"bondedAtomPairs,omitempty"`
	Dialect         string         `json:"dialect"`
	Version         int            `json:"version"`
	UserCCD         string         `json:"userCCD,omitempty"`
	UserCCDPath     string         `json:"userCCDPath,omitempty"`
}

type af3Entry struct {
	Protein *af3Polymer `json:"protein,omitempty"`
	RNA     *af3Polymer `json:"rna,omitempty"`
	DNA     *af3Polymer `json:"dna,omitempty"`
	Ligand  *af3Ligand  `json:"ligand,omitempty"`
}

type af3Polymer struct {
	ID       flexIDs `json:"id"`
	Sequence string  `json:"sequence"`
}

type af3Ligand struct {
	ID       flexIDs  `json:"id"`
	CCDCodes []string `json:"ccdCodes,omitempty"`
	SMILES   string   `json:"smiles,omitempty"`
}

type af3BondPair [2]af3Atom

// af3Atom is one bond end on the wire: a [chain, residue, atom] triple.
type af3Atom struct {
	Chain   string
	Residue int
	Atom    string
}

func (a af3Atom) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]any{a.Chain, a.Residue, a.Atom})
}

func (a *af3Atom) UnmarshalJSON(data []byte) error {
	var raw [3]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("bond atom must be a [chain, residue, atom] triple: %w", err)
	}
	if err := json.Unmarshal(raw[0], &a.Chain); err != nil {
		return fmt.Errorf("bond atom chain: %w", err)
	}
	if err := json.Unmarshal(raw[1], &a.Residue); err != nil {
		return fmt.Errorf("bond atom residue: %w", err)
	}
	if err := json.Unmarshal(raw[2], &a.Atom); err != nil {
		return fmt.Errorf("bond atom name: %w", err)
	}
	return nil
}

// LoadAF3 parses AlphaFold3 JSON into the shared model.
func LoadAF3(data string) (ir.Complex, error) {
	var job af3Job
	if err := json.Unmarshal([]byte(data), &job); err != nil {
		return ir.Complex{}, fmt.Errorf("af3: %w", err)
	}
	if job.Dialect != "alphafold3" {
		return ir.Complex{}, fmt.Errorf("af3: not an AlphaFold3 JSON (dialect=alphafold3)")
	}

	var c ir.Complex
	c.Name = job.Name
	c.Seeds = job.ModelSeeds

	for i, entry := range job.Sequences {
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
			l := ir.Ligand{IDs: entry.Ligand.ID, CCDCodes: entry.Ligand.CCDCodes, SMILES: entry.Ligand.SMILES}
			if err := l.Validate(); err != nil {
				return ir.Complex{}, fmt.Errorf("af3: sequence entry %d: %w", i, err)
			}
			c.Ligands = append(c.Ligands, l)
		default:
			return ir.Complex{}, fmt.Errorf("af3: unknown sequence entry %d", i)
		}
	}

	for _, pair := range job.BondedAtomPairs {
		c.Bonds = append(c.Bonds, ir.Bond{
			Atom1: ir.AtomRef{ChainID: pair[0].Chain, ResidueIndex: pair[0].Residue, AtomName: pair[0].Atom},
			Atom2: ir.AtomRef{ChainID: pair[1].Chain, ResidueIndex: pair[1].Residue, AtomName: pair[1].Atom},
		})
	}

	if job.UserCCD != "" {
		c.UserCCD = job.UserCCD
	} else if job.UserCCDPath != "" {
		c.UserCCD = job.UserCCDPath
	}
	return c, nil
}

// DumpAF3 renders the shared model as AlphaFold3 JSON.
func DumpAF3(c ir.Complex) (string, error) {
	job := af3Job{
		Name:       c.Name,
		ModelSeeds: c.Seeds,
		Sequences:  []af3Entry{},
		Dialect:    "alphafold3",
		Version:    4,
	}
	if job.Name == "" {
		job.Name = "spir-job"
	}
	if len(job.ModelSeeds) == 0 {
		job.ModelSeeds = []int{0}
	}

	for _, p := range c.Proteins {
		job.Sequences = append(job.Sequences, af3Entry{Protein: &af3Polymer{ID: p.IDs, Sequence: p.Sequence}})
	}
	for _, p := range c.RNAs {
		job.Sequences = append(job.Sequences, af3Entry{RNA: &af3Polymer{ID: p.IDs, Sequence: p.Sequence}})
	}
	for _, p := range c.DNAs {
		job.Sequences = append(job.Sequences, af3Entry{DNA: &af3Polymer{ID: p.IDs, Sequence: p.Sequence}})
	}
	for _, l := range c.Ligands {
		if err := l.Validate(); err != nil {
			return "", fmt.Errorf("af3: %w", err)
		}
		job.Sequences = append(job.Sequences, af3Entry{Ligand: &af3Ligand{
			ID: l.IDs, CCDCodes: l.CCDCodes, SMILES: l.SMILES,
		}})
	}

	for _, b := range c.Bonds {
		job.BondedAtomPairs = append(job.BondedAtomPairs, af3BondPair{
			af3Atom{Chain: b.Atom1.ChainID, Residue: orOne(b.Atom1.ResidueIndex), Atom: b.Atom1.AtomName},
			af3Atom{Chain: b.Atom2.ChainID, Residue: orOne(b.Atom2.ResidueIndex), Atom: b.Atom2.AtomName},
		})
	}

	if c.UserCCD != "" {
		// Heuristic: a value with a newline is inline mmCIF text, anything
		// else is a path.
		if strings.Contains(c.UserCCD, "\n") {
			job.UserCCD = c.UserCCD
		} else {
			job.UserCCDPath = c.UserCCD
		}
	}
	return marshalJSONIndent(job)
}

func orOne(idx int) int {
	if idx == 0 {
		return 1
	}
	return idx
}
