package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foldkit/spir/ir"
)

const serverSample = `[
  {
    "name": "glyco",
    "modelSeeds": ["7"],
    "sequences": [
      {"proteinChain": {"sequence": "NGS", "count": 1, "glycans": [{"residues": "NAG(NAG)", "position": 1}]}},
      {"ligand": {"ligand": "CCD_ATP", "count": 1}},
      {"ion": {"ion": "MG", "count": 2}}
    ],
    "dialect": "alphafoldserver",
    "version": 1
  }
]`

func TestLoadAF3Server(t *testing.T) {
	c, err := LoadAF3Server(serverSample)
	require.NoError(t, err)

	assert.Equal(t, "glyco", c.Name)
	assert.Equal(t, []int{7}, c.Seeds)

	require.Len(t, c.Proteins, 1)
	assert.Equal(t, []string{"A"}, c.Proteins[0].IDs)

	// Glycan ligand gets the next free chain id after the protein.
	require.Len(t, c.Ligands, 2)
	assert.Equal(t, []string{"B"}, c.Ligands[0].IDs)
	assert.Equal(t, []string{"NAG", "NAG"}, c.Ligands[0].CCDCodes)
	assert.Equal(t, "NAG(NAG)", c.Ligands[0].ServerResidues)
	assert.Equal(t, []string{"ATP"}, c.Ligands[1].CCDCodes)

	require.Len(t, c.Ions, 1)
	assert.Equal(t, []string{"D", "E"}, c.Ions[0].IDs)

	// One intra-glycan bond plus the asparagine anchor.
	require.Len(t, c.Bonds, 2)
	intra := c.Bonds[0]
	assert.Equal(t, "B", intra.Atom1.ChainID)
	assert.Equal(t, "O4", intra.Atom1.AtomName)
	assert.Equal(t, 2, intra.Atom2.ComponentIndex)

	anchor := c.Bonds[1]
	assert.Equal(t, "A", anchor.Atom1.ChainID)
	assert.Equal(t, 1, anchor.Atom1.ResidueIndex)
	assert.Equal(t, "ND2", anchor.Atom1.AtomName)
	assert.Equal(t, "C1", anchor.Atom2.AtomName)
}

func TestAF3ServerRoundTrip(t *testing.T) {
	c, err := LoadAF3Server(serverSample)
	require.NoError(t, err)

	out, err := DumpAF3Server(c)
	require.NoError(t, err)

	c2, err := LoadAF3Server(out)
	require.NoError(t, err)
	assert.Equal(t, c, c2)
}

func TestDumpAF3ServerRejectsSMILES(t *testing.T) {
	_, err := DumpAF3Server(ir.Complex{
		Ligands: []ir.Ligand{{IDs: []string{"L"}, SMILES: "CCO"}},
	})
	require.Error(t, err)
	var ute *UnsupportedTargetError
	require.ErrorAs(t, err, &ute)
	assert.Equal(t, FormatAF3Server, ute.Format)
}

func TestDumpAF3ServerRejectsUnanchoredMultiCCD(t *testing.T) {
	_, err := DumpAF3Server(ir.Complex{
		Ligands: []ir.Ligand{{IDs: []string{"G"}, CCDCodes: []string{"NAG", "BMA"}}},
	})
	var ute *UnsupportedTargetError
	require.ErrorAs(t, err, &ute)
}

func TestDumpAF3ServerEmptyComplexSequencesList(t *testing.T) {
	out, err := DumpAF3Server(ir.Complex{})
	require.NoError(t, err)
	assert.Contains(t, out, `"sequences": []`)
}

func TestLoadAF3ServerReadsFirstJobOnly(t *testing.T) {
	two := `[
	  {"name": "first", "modelSeeds": [], "sequences": [{"proteinChain": {"sequence": "M", "count": 1}}], "dialect": "alphafoldserver", "version": 1},
	  {"name": "second", "modelSeeds": [], "sequences": [], "dialect": "alphafoldserver", "version": 1}
	]`
	c, err := LoadAF3Server(two)
	require.NoError(t, err)
	assert.Equal(t, "first", c.Name)
	assert.Len(t, c.Proteins, 1)
}
