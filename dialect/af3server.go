package dialect

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/foldkit/spir/glycan"
	"github.com/foldkit/spir/ir"
)

// AlphaFold Server JSON: a top-level list of jobs. Entities carry a copy
// count instead of chain ids, so ids are allocated here in order of
// appearance. Glycans live on the protein entry in the implicit-link
// notation, anchored by residue position.

type serverJob struct {
	Name       string        `json:"name"`
	ModelSeeds []string      `json:"modelSeeds"`
	Sequences  []serverEntry `json:"sequences"`
	Dialect    string        `json:"dialect"`
	Version    int           `json:"version"`
}

type serverEntry struct {
	ProteinChain *serverProtein `json:"proteinChain,omitempty"`
	DNASequence  *serverNucleic `json:"dnaSequence,omitempty"`
	RNASequence  *serverNucleic `json:"rnaSequence,omitempty"`
	Ligand       *serverLigand  `json:"ligand,omitempty"`
	Ion          *serverIon     `json:"ion,omitempty"`
}

type serverProtein struct {
	Sequence string         `json:"sequence"`
	Count    int            `json:"count"`
	Glycans  []serverGlycan `json:"glycans,omitempty"`
}

type serverGlycan struct {
	Residues string `json:"residues"`
	Position int    `json:"position"`
}

type serverNucleic struct {
	Sequence string `json:"sequence"`
	Count    int    `json:"count"`
}

type serverLigand struct {
	Ligand string `json:"ligand"`
	Count  int    `json:"count"`
}

type serverIon struct {
	Ion   string `json:"ion"`
	Count int    `json:"count"`
}

// LoadAF3Server parses AlphaFold Server JSON into the shared model. Only
// the first job of a multi-job file is read.
func LoadAF3Server(data string) (ir.Complex, error) {
	var jobs []json.RawMessage
	if err := json.Unmarshal([]byte(data), &jobs); err != nil {
		return ir.Complex{}, fmt.Errorf("af3-server: expected a top-level list of jobs: %w", err)
	}
	if len(jobs) == 0 {
		return ir.Complex{}, fmt.Errorf("af3-server: empty job list")
	}
	var job serverJob
	if err := json.Unmarshal(jobs[0], &job); err != nil {
		return ir.Complex{}, fmt.Errorf("af3-server: %w", err)
	}

	var c ir.Complex
	c.Name = job.Name
	for _, s := range job.ModelSeeds {
		seed, err := strconv.Atoi(s)
		if err != nil {
			return ir.Complex{}, fmt.Errorf("af3-server: model seed %q: %w", s, err)
		}
		c.Seeds = append(c.Seeds, seed)
	}

	alloc := &chainAllocator{}

	for i, entry := range job.Sequences {
		switch {
		case entry.ProteinChain != nil:
			p := entry.ProteinChain
			ids := alloc.next(countOrOne(p.Count))
			c.Proteins = append(c.Proteins, ir.PolymerChain{
				Type: ir.ChainProtein, IDs: ids, Sequence: p.Sequence,
			})
			for _, g := range p.Glycans {
				graph, err := glycan.ParseServer(g.Residues)
				if err != nil {
					return ir.Complex{}, fmt.Errorf("af3-server: glycan on entry %d: %w", i, err)
				}
				gid := alloc.next(1)[0]
				c.Ligands = append(c.Ligands, ir.Ligand{
					IDs:            []string{gid},
					CCDCodes:       graph.CCDList(),
					ServerResidues: g.Residues,
				})
				c.Bonds = append(c.Bonds, ir.GlycanBonds(gid, graph)...)
				pos := g.Position
				if pos < 1 {
					pos = 1
				}
				anchorAtom := ir.AnchorAtomName(p.Sequence, pos)
				c.Bonds = append(c.Bonds, ir.GlycanAnchorBond(ids[0], pos, anchorAtom, gid))
			}
		case entry.DNASequence != nil:
			ids := alloc.next(countOrOne(entry.DNASequence.Count))
			c.DNAs = append(c.DNAs, ir.PolymerChain{
				Type: ir.ChainDNA, IDs: ids, Sequence: entry.DNASequence.Sequence,
			})
		case entry.RNASequence != nil:
			ids := alloc.next(countOrOne(entry.RNASequence.Count))
			c.RNAs = append(c.RNAs, ir.PolymerChain{
				Type: ir.ChainRNA, IDs: ids, Sequence: entry.RNASequence.Sequence,
			})
		case entry.Ligand != nil:
			ids := alloc.next(countOrOne(entry.Ligand.Count))
			c.Ligands = append(c.Ligands, ir.Ligand{
				IDs:      ids,
				CCDCodes: []string{stripCCDPrefix(entry.Ligand.Ligand)},
			})
		case entry.Ion != nil:
			ids := alloc.next(countOrOne(entry.Ion.Count))
			c.Ions = append(c.Ions, ir.Ion{IDs: ids, Code: entry.Ion.Ion})
		default:
			return ir.Complex{}, fmt.Errorf("af3-server: unknown sequence entry %d", i)
		}
	}
	return c, nil
}

// DumpAF3Server renders the shared model as AlphaFold Server JSON. Glycan
// ligands anchored to a protein become glycans entries on that protein;
// remaining ligands must be single-CCD, since the server dialect cannot
// address anything finer.
func DumpAF3Server(c ir.Complex) (string, error) {
	proteinIndexByChain := make(map[string]int)
	for i, p := range c.Proteins {
		for _, id := range p.IDs {
			proteinIndexByChain[id] = i
		}
	}
	ligandByChain := make(map[string]ir.Ligand)
	for _, l := range c.Ligands {
		for _, id := range l.IDs {
			ligandByChain[id] = l
		}
	}

	// Collect protein-anchored glycans: protein index → (position, ligand id)
	// pairs in bond order, deduplicated.
	type anchor struct {
		pos   int
		ligID string
	}
	type anchorKey struct {
		protein int
		anchor
	}
	anchorsByProtein := make(map[int][]anchor)
	seenAnchors := make(map[anchorKey]bool)
	anchoredLigands := make(map[string]bool)
	for _, b := range c.Bonds {
		var pIdx, pos int
		var ligID string
		if i, ok := proteinIndexByChain[b.Atom1.ChainID]; ok && isCCDLigand(ligandByChain, b.Atom2.ChainID) {
			pIdx, pos, ligID = i, orOne(b.Atom1.ResidueIndex), b.Atom2.ChainID
		} else if i, ok := proteinIndexByChain[b.Atom2.ChainID]; ok && isCCDLigand(ligandByChain, b.Atom1.ChainID) {
			pIdx, pos, ligID = i, orOne(b.Atom2.ResidueIndex), b.Atom1.ChainID
		} else {
			continue
		}
		a := anchor{pos: pos, ligID: ligID}
		k := anchorKey{protein: pIdx, anchor: a}
		if seenAnchors[k] {
			continue
		}
		seenAnchors[k] = true
		anchorsByProtein[pIdx] = append(anchorsByProtein[pIdx], a)
		anchoredLigands[ligID] = true
	}

	job := serverJob{
		Name:       c.Name,
		ModelSeeds: []string{},
		Sequences:  []serverEntry{},
		Dialect:    "alphafoldserver",
		Version:    1,
	}
	if job.Name == "" {
		job.Name = "spir-job"
	}
	for _, s := range c.Seeds {
		job.ModelSeeds = append(job.ModelSeeds, strconv.Itoa(s))
	}

	for i, p := range c.Proteins {
		entry := serverProtein{Sequence: p.Sequence, Count: len(p.IDs)}
		for _, a := range anchorsByProtein[i] {
			residues, err := serverGlycanResidues(ligandByChain[a.ligID])
			if err != nil {
				return "", err
			}
			entry.Glycans = append(entry.Glycans, serverGlycan{Residues: residues, Position: a.pos})
		}
		job.Sequences = append(job.Sequences, serverEntry{ProteinChain: &entry})
	}
	for _, d := range c.DNAs {
		job.Sequences = append(job.Sequences, serverEntry{
			DNASequence: &serverNucleic{Sequence: d.Sequence, Count: len(d.IDs)},
		})
	}
	for _, r := range c.RNAs {
		job.Sequences = append(job.Sequences, serverEntry{
			RNASequence: &serverNucleic{Sequence: r.Sequence, Count: len(r.IDs)},
		})
	}

	var unsupported []string
	for _, l := range c.Ligands {
		if anyAnchored(anchoredLigands, l.IDs) {
			continue
		}
		switch {
		case len(l.CCDCodes) == 1:
			job.Sequences = append(job.Sequences, serverEntry{
				Ligand: &serverLigand{Ligand: "CCD_" + l.CCDCodes[0], Count: len(l.IDs)},
			})
		case len(l.CCDCodes) > 1:
			unsupported = append(unsupported, "multi-CCD unanchored glycan")
		default:
			unsupported = append(unsupported, "SMILES ligand not supported in AlphaFold Server")
		}
	}
	for _, ion := range c.Ions {
		job.Sequences = append(job.Sequences, serverEntry{
			Ion: &serverIon{Ion: ion.Code, Count: len(ion.IDs)},
		})
	}

	if len(unsupported) > 0 {
		sort.Strings(unsupported)
		return "", &UnsupportedTargetError{Format: FormatAF3Server, Reasons: uniqueStrings(unsupported)}
	}

	return marshalJSONIndent([]serverJob{job})
}

// serverGlycanResidues renders a ligand's glycan notation for the server
// dialect: the preserved original string when available, otherwise a
// left-nested chain of its CCD codes ([A,B,C] → A(B(C))).
func serverGlycanResidues(l ir.Ligand) (string, error) {
	if l.ServerResidues != "" {
		return l.ServerResidues, nil
	}
	if len(l.CCDCodes) == 0 {
		return "", &UnsupportedTargetError{
			Format:  FormatAF3Server,
			Reasons: []string{"anchored ligand without CCD codes"},
		}
	}
	s := l.CCDCodes[len(l.CCDCodes)-1]
	for i := len(l.CCDCodes) - 2; i >= 0; i-- {
		s = l.CCDCodes[i] + "(" + s + ")"
	}
	return s, nil
}

// chainAllocator hands out spreadsheet-style chain ids (A, B, ..., AA, ...)
// in order of appearance.
type chainAllocator struct {
	used int
}

func (a *chainAllocator) next(n int) []string {
	ids := ir.SpreadsheetIDs(a.used + n)[a.used:]
	a.used += n
	return ids
}

func countOrOne(count int) int {
	if count < 1 {
		return 1
	}
	return count
}

func stripCCDPrefix(s string) string {
	return strings.TrimPrefix(s, "CCD_")
}

func isCCDLigand(byChain map[string]ir.Ligand, chainID string) bool {
	l, ok := byChain[chainID]
	return ok && len(l.CCDCodes) > 0
}

func anyAnchored(anchored map[string]bool, ids []string) bool {
	for _, id := range ids {
		if anchored[id] {
			return true
		}
	}
	return false
}

func uniqueStrings(sorted []string) []string {
	out := sorted[:0]
	var prev string
	for i, s := range sorted {
		if i == 0 || s != prev {
			out = append(out, s)
		}
		prev = s
	}
	return out
}
