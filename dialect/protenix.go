package dialect

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/foldkit/spir/ir"
)

// Protenix JSON: a top-level list of jobs whose entities carry copy counts,
// with covalent bonds addressed by 1-based entity index, copy number,
// residue position, and an atom that is either a name or a 0-based index.

type protenixJob struct {
	Name          string             `json:"name"`
	Sequences     []protenixEntry    `json:"sequences"`
	CovalentBonds []protenixCovalent `json:"covalent_bonds,omitempty"`
}

type protenixEntry struct {
	ProteinChain *protenixPolymer `json:"proteinChain,omitempty"`
	DNASequence  *protenixPolymer `json:"dnaSequence,omitempty"`
	RNASequence  *protenixPolymer `json:"rnaSequence,omitempty"`
	Ligand       *protenixLigand  `json:"ligand,omitempty"`
	Ion          *protenixIon     `json:"ion,omitempty"`
}

type protenixPolymer struct {
	Sequence string `json:"sequence"`
	Count    int    `json:"count"`
}

type protenixLigand struct {
	Ligand string `json:"ligand"`
	Count  int    `json:"count"`
}

type protenixIon struct {
	Ion   string `json:"ion"`
	Count int    `json:"count"`
}

type protenixCovalent struct {
	Entity1   string       `json:"entity1"`
	Copy1     int          `json:"copy1"`
	Position1 string       `json:"position1"`
	Atom1     protenixAtom `json:"atom1"`
	Entity2   string       `json:"entity2"`
	Copy2     int          `json:"copy2"`
	Position2 string       `json:"position2"`
	Atom2     protenixAtom `json:"atom2"`
}

// protenixAtom is either an atom name or a 0-based atom index on the wire.
type protenixAtom struct {
	Name  string
	Index *int
}

func (a protenixAtom) MarshalJSON() ([]byte, error) {
	if a.Index != nil {
		return json.Marshal(*a.Index)
	}
	return json.Marshal(a.Name)
}

func (a *protenixAtom) UnmarshalJSON(data []byte) error {
	var idx int
	if err := json.Unmarshal(data, &idx); err == nil {
		a.Index = &idx
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("covalent bond atom must be a name or an index")
	}
	// Some writers quote the index.
	if idx, err := strconv.Atoi(name); err == nil {
		a.Index = &idx
		return nil
	}
	a.Name = name
	return nil
}

// splitCCDConcat splits a concatenated ligand code like CCD_NAG_BMA_BGC
// into its component codes.
func splitCCDConcat(code string) []string {
	if !strings.HasPrefix(code, "CCD_") {
		return []string{code}
	}
	var out []string
	for _, part := range strings.Split(code, "_")[1:] {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// LoadProtenix parses Protenix JSON into the shared model. Only the first
// job of a multi-job file is read. Chain ids are allocated in entity order,
// count copies at a time, so every chain in the job gets a distinct id.
func LoadProtenix(data string) (ir.Complex, error) {
	var jobs []json.RawMessage
	if err := json.Unmarshal([]byte(data), &jobs); err != nil {
		return ir.Complex{}, fmt.Errorf("protenix: expected a top-level list of jobs: %w", err)
	}
	if len(jobs) == 0 {
		return ir.Complex{}, fmt.Errorf("protenix: empty job list")
	}
	var job protenixJob
	if err := json.Unmarshal(jobs[0], &job); err != nil {
		return ir.Complex{}, fmt.Errorf("protenix: %w", err)
	}

	var c ir.Complex
	c.Name = job.Name

	alloc := &chainAllocator{}
	var chainIDsByEntity [][]string

	for i, entry := range job.Sequences {
		switch {
		case entry.ProteinChain != nil:
			ids := alloc.next(countOrOne(entry.ProteinChain.Count))
			c.Proteins = append(c.Proteins, ir.PolymerChain{
				Type: ir.ChainProtein, IDs: ids, Sequence: entry.ProteinChain.Sequence,
			})
			chainIDsByEntity = append(chainIDsByEntity, ids)
		case entry.DNASequence != nil:
			ids := alloc.next(countOrOne(entry.DNASequence.Count))
			c.DNAs = append(c.DNAs, ir.PolymerChain{
				Type: ir.ChainDNA, IDs: ids, Sequence: entry.DNASequence.Sequence,
			})
			chainIDsByEntity = append(chainIDsByEntity, ids)
		case entry.RNASequence != nil:
			ids := alloc.next(countOrOne(entry.RNASequence.Count))
			c.RNAs = append(c.RNAs, ir.PolymerChain{
				Type: ir.ChainRNA, IDs: ids, Sequence: entry.RNASequence.Sequence,
			})
			chainIDsByEntity = append(chainIDsByEntity, ids)
		case entry.Ligand != nil:
			ids := alloc.next(countOrOne(entry.Ligand.Count))
			l := ir.Ligand{IDs: ids}
			if strings.HasPrefix(entry.Ligand.Ligand, "CCD_") {
				l.CCDCodes = splitCCDConcat(entry.Ligand.Ligand)
			} else {
				l.SMILES = entry.Ligand.Ligand
			}
			c.Ligands = append(c.Ligands, l)
			chainIDsByEntity = append(chainIDsByEntity, ids)
		case entry.Ion != nil:
			ids := alloc.next(countOrOne(entry.Ion.Count))
			c.Ions = append(c.Ions, ir.Ion{IDs: ids, Code: entry.Ion.Ion})
			chainIDsByEntity = append(chainIDsByEntity, ids)
		default:
			return ir.Complex{}, fmt.Errorf("protenix: unknown sequence entry %d", i)
		}
	}

	for i, cb := range job.CovalentBonds {
		a1, err := protenixAtomRef(chainIDsByEntity, cb.Entity1, cb.Copy1, cb.Position1, cb.Atom1)
		if err != nil {
			return ir.Complex{}, fmt.Errorf("protenix: covalent bond %d: %w", i, err)
		}
		a2, err := protenixAtomRef(chainIDsByEntity, cb.Entity2, cb.Copy2, cb.Position2, cb.Atom2)
		if err != nil {
			return ir.Complex{}, fmt.Errorf("protenix: covalent bond %d: %w", i, err)
		}
		c.Bonds = append(c.Bonds, ir.Bond{Atom1: a1, Atom2: a2})
	}
	return c, nil
}

func protenixAtomRef(chainIDsByEntity [][]string, entity string, copyNum int, position string, atom protenixAtom) (ir.AtomRef, error) {
	e, err := strconv.Atoi(entity)
	if err != nil || e < 1 || e > len(chainIDsByEntity) {
		return ir.AtomRef{}, fmt.Errorf("entity %q out of range", entity)
	}
	ids := chainIDsByEntity[e-1]
	if copyNum < 1 {
		copyNum = 1
	}
	if copyNum > len(ids) {
		return ir.AtomRef{}, fmt.Errorf("copy %d out of range for entity %q", copyNum, entity)
	}
	pos := 1
	if position != "" {
		pos, err = strconv.Atoi(position)
		if err != nil {
			return ir.AtomRef{}, fmt.Errorf("position %q: %w", position, err)
		}
	}
	ref := ir.AtomRef{
		ChainID:        ids[copyNum-1],
		ResidueIndex:   pos,
		ComponentIndex: pos,
		AtomName:       atom.Name,
		AtomIndex:      atom.Index,
	}
	return ref, nil
}

// DumpProtenix renders the shared model as Protenix JSON. Entity numbering
// follows the emitted sequence order.
func DumpProtenix(c ir.Complex) (string, error) {
	job := protenixJob{Name: c.Name, Sequences: []protenixEntry{}}
	if job.Name == "" {
		job.Name = "spir-job"
	}

	var entityChainIDs [][]string
	for _, p := range c.Proteins {
		job.Sequences = append(job.Sequences, protenixEntry{
			ProteinChain: &protenixPolymer{Sequence: p.Sequence, Count: len(p.IDs)},
		})
		entityChainIDs = append(entityChainIDs, p.IDs)
	}
	for _, d := range c.DNAs {
		job.Sequences = append(job.Sequences, protenixEntry{
			DNASequence: &protenixPolymer{Sequence: d.Sequence, Count: len(d.IDs)},
		})
		entityChainIDs = append(entityChainIDs, d.IDs)
	}
	for _, r := range c.RNAs {
		job.Sequences = append(job.Sequences, protenixEntry{
			RNASequence: &protenixPolymer{Sequence: r.Sequence, Count: len(r.IDs)},
		})
		entityChainIDs = append(entityChainIDs, r.IDs)
	}
	for _, l := range c.Ligands {
		code := l.SMILES
		if len(l.CCDCodes) > 0 {
			code = "CCD_" + strings.Join(l.CCDCodes, "_")
		}
		job.Sequences = append(job.Sequences, protenixEntry{
			Ligand: &protenixLigand{Ligand: code, Count: len(l.IDs)},
		})
		entityChainIDs = append(entityChainIDs, l.IDs)
	}
	for _, ion := range c.Ions {
		job.Sequences = append(job.Sequences, protenixEntry{
			Ion: &protenixIon{Ion: ion.Code, Count: len(ion.IDs)},
		})
		entityChainIDs = append(entityChainIDs, ion.IDs)
	}

	findEntityAndCopy := func(chainID string) (int, int, error) {
		for e, ids := range entityChainIDs {
			for i, id := range ids {
				if id == chainID {
					return e + 1, i + 1, nil
				}
			}
		}
		return 0, 0, fmt.Errorf("protenix: unknown chain id in bond: %s", chainID)
	}

	for _, b := range c.Bonds {
		e1, copy1, err := findEntityAndCopy(b.Atom1.ChainID)
		if err != nil {
			return "", err
		}
		e2, copy2, err := findEntityAndCopy(b.Atom2.ChainID)
		if err != nil {
			return "", err
		}
		job.CovalentBonds = append(job.CovalentBonds, protenixCovalent{
			Entity1:   strconv.Itoa(e1),
			Copy1:     copy1,
			Position1: strconv.Itoa(protenixPosition(b.Atom1)),
			Atom1:     protenixAtom{Name: b.Atom1.AtomName, Index: b.Atom1.AtomIndex},
			Entity2:   strconv.Itoa(e2),
			Copy2:     copy2,
			Position2: strconv.Itoa(protenixPosition(b.Atom2)),
			Atom2:     protenixAtom{Name: b.Atom2.AtomName, Index: b.Atom2.AtomIndex},
		})
	}

	return marshalJSONIndent([]protenixJob{job})
}

func protenixPosition(a ir.AtomRef) int {
	if a.ResidueIndex != 0 {
		return a.ResidueIndex
	}
	if a.ComponentIndex != 0 {
		return a.ComponentIndex
	}
	return 1
}
