package dialect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foldkit/spir/ir"
)

const chaiFasta = `>protein|chain-a
NGSR
>glycan|tree
NAG(4-1 NAG)
>ligand|solvent
CCO
`

const chaiRestraints = `chainA,res_idxA,chainB,res_idxB,connection_type,confidence,min_distance_angstrom,max_distance_angstrom,comment,restraint_id
A,N1@N,B,@C1,covalent,1.0,0.0,0.0,protein-glycan,bond1
`

func TestLoadChai(t *testing.T) {
	c, err := LoadChai(chaiFasta, chaiRestraints)
	require.NoError(t, err)

	require.Len(t, c.Proteins, 1)
	assert.Equal(t, []string{"A"}, c.Proteins[0].IDs)
	assert.Equal(t, "NGSR", c.Proteins[0].Sequence)

	require.Len(t, c.Ligands, 2)
	assert.Equal(t, []string{"B"}, c.Ligands[0].IDs)
	assert.Equal(t, []string{"NAG", "NAG"}, c.Ligands[0].CCDCodes)
	assert.Equal(t, "CCO", c.Ligands[1].SMILES)

	// Intra-glycan bond from the tree plus the covalent restraint.
	require.Len(t, c.Bonds, 2)
	assert.Equal(t, "O4", c.Bonds[0].Atom1.AtomName)
	assert.Equal(t, 2, c.Bonds[0].Atom2.ComponentIndex)
	assert.Equal(t, ir.AtomRef{ChainID: "A", ResidueIndex: 1, AtomName: "N"}, c.Bonds[1].Atom1)
	assert.Equal(t, ir.AtomRef{ChainID: "B", AtomName: "C1"}, c.Bonds[1].Atom2)
}

func TestLoadChaiNoRestraints(t *testing.T) {
	c, err := LoadChai(">protein|x\nMKV\n", "")
	require.NoError(t, err)
	assert.Len(t, c.Proteins, 1)
	assert.Empty(t, c.Bonds)
}

func TestLoadChaiRejectsEmpty(t *testing.T) {
	_, err := LoadChai("", "")
	assert.Error(t, err)
}

func TestDumpChai(t *testing.T) {
	c := ir.Complex{
		Proteins: []ir.PolymerChain{{Type: ir.ChainProtein, IDs: []string{"A"}, Sequence: "NGSR"}},
		Ligands:  []ir.Ligand{{IDs: []string{"G"}, CCDCodes: []string{"NAG", "NAG"}}},
		Bonds: []ir.Bond{
			{
				Atom1: ir.AtomRef{ChainID: "G", ResidueIndex: 1, ComponentIndex: 1, AtomName: "O4"},
				Atom2: ir.AtomRef{ChainID: "G", ResidueIndex: 2, ComponentIndex: 2, AtomName: "C1"},
			},
			{
				Atom1: ir.AtomRef{ChainID: "A", ResidueIndex: 1, AtomName: "ND2"},
				Atom2: ir.AtomRef{ChainID: "G", ResidueIndex: 1, ComponentIndex: 1, AtomName: "C1"},
			},
		},
	}

	fasta, restraints, err := DumpChai(c)
	require.NoError(t, err)

	assert.Contains(t, fasta, ">protein|A\nNGSR\n")
	// The multi-component glycan is rebuilt into the explicit-link grammar.
	assert.Contains(t, fasta, ">glycan|G\nNAG(4-1 NAG)\n")

	lines := strings.Split(strings.TrimSpace(restraints), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(restraintsHeader, ","), lines[0])
	assert.Equal(t, "A,N1@N,G,@C1,covalent,1.0,0.0,0.0,protein-glycan,bond1", lines[1])
}

func TestDumpChaiDeduplicatesAnchors(t *testing.T) {
	anchor := ir.Bond{
		Atom1: ir.AtomRef{ChainID: "A", ResidueIndex: 3, AtomName: "OG"},
		Atom2: ir.AtomRef{ChainID: "G", ResidueIndex: 1, ComponentIndex: 1, AtomName: "C1"},
	}
	c := ir.Complex{
		Proteins: []ir.PolymerChain{{Type: ir.ChainProtein, IDs: []string{"A"}, Sequence: "NGS"}},
		Ligands:  []ir.Ligand{{IDs: []string{"G"}, CCDCodes: []string{"NAG"}}},
		Bonds:    []ir.Bond{anchor, anchor},
	}

	_, restraints, err := DumpChai(c)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(restraints), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[1], "S3@O")
}

func TestDumpChaiOutOfRangeGlycanBond(t *testing.T) {
	const job = `[{
	  "name": "oob",
	  "sequences": [
	    {"proteinChain": {"sequence": "NGSR", "count": 1}},
	    {"ligand": {"ligand": "CCD_NAG_BMA", "count": 1}}
	  ],
	  "covalent_bonds": [{
	    "entity1": "2", "copy1": 1, "position1": "5", "atom1": "O4",
	    "entity2": "2", "copy2": 1, "position2": "1", "atom2": "C1"
	  }]
	}]`
	c, err := LoadProtenix(job)
	require.NoError(t, err)

	// The bond addresses component 5 of a two-component ligand, so it
	// cannot join the tree; the glycan falls back to its first code.
	fasta, _, err := DumpChai(c)
	require.NoError(t, err)
	assert.Contains(t, fasta, ">glycan|B\nNAG\n")
}

func TestParseResidueToken(t *testing.T) {
	idx, atom := parseResidueToken("N436@N")
	assert.Equal(t, 436, idx)
	assert.Equal(t, "N", atom)

	idx, atom = parseResidueToken("@C1")
	assert.Equal(t, 0, idx)
	assert.Equal(t, "C1", atom)

	idx, atom = parseResidueToken("12")
	assert.Equal(t, 12, idx)
	assert.Equal(t, "", atom)
}
