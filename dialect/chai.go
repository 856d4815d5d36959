package dialect

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/foldkit/spir/glycan"
	"github.com/foldkit/spir/ir"
)

// Chai: a FASTA file with >kind|chain headers plus an optional restraints
// CSV. Glycan payloads use the explicit-link grammar; covalent restraint
// rows carry residue tokens like "N436@N" (residue letter, position, atom
// initial) on the protein side and "@C1" on the glycan side.

var restraintsHeader = []string{
	"chainA", "res_idxA", "chainB", "res_idxB", "connection_type", "confidence",
	"min_distance_angstrom", "max_distance_angstrom", "comment", "restraint_id",
}

// LoadChai parses a Chai FASTA plus optional restraints CSV into the
// shared model. Chain ids are allocated in entry order.
func LoadChai(fastaText, restraintsCSV string) (ir.Complex, error) {
	entries, err := parseFASTA(fastaText)
	if err != nil {
		return ir.Complex{}, err
	}

	var c ir.Complex
	chainIDs := ir.SpreadsheetIDs(len(entries))
	for i, e := range entries {
		id := chainIDs[i]
		switch e.kind {
		case "protein":
			c.Proteins = append(c.Proteins, ir.PolymerChain{
				Type: ir.ChainProtein, IDs: []string{id}, Sequence: e.payload,
			})
		case "rna":
			c.RNAs = append(c.RNAs, ir.PolymerChain{
				Type: ir.ChainRNA, IDs: []string{id}, Sequence: e.payload,
			})
		case "dna":
			c.DNAs = append(c.DNAs, ir.PolymerChain{
				Type: ir.ChainDNA, IDs: []string{id}, Sequence: e.payload,
			})
		case "glycan":
			graph, err := glycan.ParseChai(e.payload)
			if err != nil {
				return ir.Complex{}, fmt.Errorf("chai: glycan entry %q: %w", e.name, err)
			}
			c.Ligands = append(c.Ligands, ir.Ligand{IDs: []string{id}, CCDCodes: graph.CCDList()})
			c.Bonds = append(c.Bonds, ir.GlycanBonds(id, graph)...)
		default:
			// Chai examples carry SMILES under a generic ligand entry.
			c.Ligands = append(c.Ligands, ir.Ligand{IDs: []string{id}, SMILES: e.payload})
		}
	}

	if restraintsCSV != "" {
		bonds, err := parseRestraintsCSV(restraintsCSV)
		if err != nil {
			return ir.Complex{}, err
		}
		c.Bonds = append(c.Bonds, bonds...)
	}
	return c, nil
}

// DumpChai renders the shared model as a FASTA string plus a restraints
// CSV. The restraints string is empty when there is nothing to anchor.
func DumpChai(c ir.Complex) (fasta string, restraints string, err error) {
	var sb strings.Builder
	proteinSeqByChain := make(map[string]string)

	writeEntry := func(header, payload string) {
		sb.WriteString(">")
		sb.WriteString(header)
		sb.WriteString("\n")
		sb.WriteString(payload)
		sb.WriteString("\n")
	}

	for _, p := range c.Proteins {
		for _, id := range p.IDs {
			writeEntry("protein|"+id, p.Sequence)
			proteinSeqByChain[id] = p.Sequence
		}
	}
	for _, r := range c.RNAs {
		for _, id := range r.IDs {
			writeEntry("rna|"+id, r.Sequence)
		}
	}
	for _, d := range c.DNAs {
		for _, id := range d.IDs {
			writeEntry("dna|"+id, d.Sequence)
		}
	}
	for _, l := range c.Ligands {
		for _, id := range l.IDs {
			if len(l.CCDCodes) > 0 {
				spec, err := chaiGlycanSpec(l, id, c.Bonds)
				if err != nil {
					return "", "", err
				}
				writeEntry("glycan|"+id, spec)
			} else {
				writeEntry("ligand|"+id, l.SMILES)
			}
		}
	}

	restraints = dumpRestraintsCSV(c, proteinSeqByChain)
	return sb.String(), restraints, nil
}

// chaiGlycanSpec renders one glycan ligand in the explicit-link grammar.
// Multi-component ligands are rebuilt into a tree from the intra-ligand
// bonds; with no usable bonds the preserved server notation (or the first
// code) is the best remaining description.
func chaiGlycanSpec(l ir.Ligand, chainID string, bonds []ir.Bond) (string, error) {
	if len(l.CCDCodes) == 1 {
		return l.CCDCodes[0], nil
	}

	components := make([]glycan.Component, len(l.CCDCodes))
	for i, ccd := range l.CCDCodes {
		components[i] = glycan.Component{CCD: ccd}
	}
	var gbonds []glycan.Bond
	inRange := func(idx int) bool { return idx >= 1 && idx <= len(l.CCDCodes) }
	for _, b := range bonds {
		if b.Atom1.ChainID != chainID || b.Atom2.ChainID != chainID {
			continue
		}
		if !inRange(b.Atom1.ComponentIndex) || !inRange(b.Atom2.ComponentIndex) {
			continue
		}
		// Orient parent (O*) → child (C*) regardless of stored order.
		switch {
		case strings.HasPrefix(b.Atom1.AtomName, "O") && strings.HasPrefix(b.Atom2.AtomName, "C"):
			gbonds = append(gbonds, glycan.Bond{
				ParentIndex: b.Atom1.ComponentIndex, ParentAtom: b.Atom1.AtomName,
				ChildIndex: b.Atom2.ComponentIndex, ChildAtom: b.Atom2.AtomName,
			})
		case strings.HasPrefix(b.Atom2.AtomName, "O") && strings.HasPrefix(b.Atom1.AtomName, "C"):
			gbonds = append(gbonds, glycan.Bond{
				ParentIndex: b.Atom2.ComponentIndex, ParentAtom: b.Atom2.AtomName,
				ChildIndex: b.Atom1.ComponentIndex, ChildAtom: b.Atom1.AtomName,
			})
		}
	}
	if len(gbonds) > 0 {
		return glycan.RenderChai(&glycan.Graph{Components: components, Bonds: gbonds}), nil
	}
	if l.ServerResidues != "" {
		return l.ServerResidues, nil
	}
	return l.CCDCodes[0], nil
}

// dumpRestraintsCSV writes covalent rows for protein↔glycan root anchors
// only; intra-glycan connectivity is already encoded in the FASTA glycan
// string.
func dumpRestraintsCSV(c ir.Complex, proteinSeqByChain map[string]string) string {
	if len(c.Bonds) == 0 {
		return ""
	}
	glycanChains := make(map[string]bool)
	for _, l := range c.Ligands {
		if len(l.CCDCodes) > 0 {
			for _, id := range l.IDs {
				glycanChains[id] = true
			}
		}
	}

	rows := [][]string{restraintsHeader}
	type anchorKey struct {
		proteinChain string
		pos          int
		glycanChain  string
	}
	seen := make(map[anchorKey]bool)
	count := 0
	for _, b := range c.Bonds {
		var pAtom, gAtom ir.AtomRef
		if _, ok := proteinSeqByChain[b.Atom1.ChainID]; ok && glycanChains[b.Atom2.ChainID] {
			pAtom, gAtom = b.Atom1, b.Atom2
		} else if _, ok := proteinSeqByChain[b.Atom2.ChainID]; ok && glycanChains[b.Atom1.ChainID] {
			pAtom, gAtom = b.Atom2, b.Atom1
		} else {
			continue
		}
		// Only root-component anchors are expressible.
		if !(gAtom.ComponentIndex == 1 || (gAtom.ComponentIndex == 0 && gAtom.ResidueIndex == 1)) {
			continue
		}
		k := anchorKey{proteinChain: pAtom.ChainID, pos: pAtom.ResidueIndex, glycanChain: gAtom.ChainID}
		if seen[k] {
			continue
		}
		seen[k] = true
		count++
		rows = append(rows, []string{
			pAtom.ChainID,
			formatProteinAnchor(pAtom, proteinSeqByChain),
			gAtom.ChainID,
			"@C1",
			"covalent",
			"1.0",
			"0.0",
			"0.0",
			"protein-glycan",
			"bond" + strconv.Itoa(count),
		})
	}
	if len(rows) == 1 {
		return ""
	}
	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(strings.Join(row, ","))
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatProteinAnchor formats the protein side of an anchor restraint as
// ResidueLetterPosition@AtomInitial, e.g. N192@N or T10@O.
func formatProteinAnchor(a ir.AtomRef, seqByChain map[string]string) string {
	pos := a.ResidueIndex
	if pos == 0 {
		if a.AtomName != "" {
			return "@" + a.AtomName
		}
		return ""
	}
	seq := seqByChain[a.ChainID]
	var resLetter string
	if pos >= 1 && pos <= len(seq) {
		resLetter = strings.ToUpper(string(seq[pos-1]))
	}
	var atomLetter string
	if a.AtomName != "" {
		atomLetter = strings.ToUpper(a.AtomName[:1])
	} else {
		switch resLetter {
		case "N":
			atomLetter = "N"
		case "S", "T":
			atomLetter = "O"
		}
	}
	left := strconv.Itoa(pos)
	if resLetter != "" {
		left = resLetter + left
	}
	if atomLetter == "" {
		return left
	}
	return left + "@" + atomLetter
}

type fastaEntry struct {
	kind    string
	name    string
	payload string
}

func parseFASTA(text string) ([]fastaEntry, error) {
	var entries []fastaEntry
	var current *fastaEntry
	var buf strings.Builder

	flush := func() {
		if current != nil {
			current.payload = buf.String()
			entries = append(entries, *current)
			buf.Reset()
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			flush()
			parts := strings.SplitN(line[1:], "|", 2)
			current = &fastaEntry{kind: parts[0]}
			if len(parts) > 1 {
				current.name = parts[1]
			}
		} else {
			if current == nil {
				return nil, fmt.Errorf("chai: sequence data before first FASTA header")
			}
			buf.WriteString(line)
		}
	}
	flush()
	if len(entries) == 0 {
		return nil, fmt.Errorf("chai: no FASTA entries")
	}
	return entries, nil
}

func parseRestraintsCSV(text string) ([]ir.Bond, error) {
	reader := csv.NewReader(strings.NewReader(strings.TrimSpace(text)))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("chai: restraints csv: %w", err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[strings.TrimSpace(name)] = i
	}
	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var bonds []ir.Bond
	for _, row := range records[1:] {
		if !strings.EqualFold(field(row, "connection_type"), "covalent") {
			continue
		}
		chainA := field(row, "chainA")
		chainB := field(row, "chainB")
		if chainA == "" || chainB == "" {
			continue
		}
		idxA, atomA := parseResidueToken(field(row, "res_idxA"))
		idxB, atomB := parseResidueToken(field(row, "res_idxB"))
		bonds = append(bonds, ir.Bond{
			Atom1: ir.AtomRef{ChainID: chainA, ResidueIndex: idxA, AtomName: atomA},
			Atom2: ir.AtomRef{ChainID: chainB, ResidueIndex: idxB, AtomName: atomB},
		})
	}
	return bonds, nil
}

// parseResidueToken splits a restraint residue token like "N436@N",
// "436@N", "@C1", or "436" into its position and atom name.
func parseResidueToken(token string) (int, string) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, ""
	}
	left := token
	atom := ""
	if at := strings.Index(token, "@"); at >= 0 {
		left, atom = token[:at], token[at+1:]
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, left)
	idx := 0
	if digits != "" {
		idx, _ = strconv.Atoi(digits)
	}
	return idx, atom
}
