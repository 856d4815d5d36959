package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foldkit/spir/ir"
)

const protenixSample = `[
  {
    "name": "glyco",
    "sequences": [
      {"proteinChain": {"sequence": "NGSR", "count": 2}},
      {"ligand": {"ligand": "CCD_NAG_BMA", "count": 1}},
      {"ligand": {"ligand": "CCO", "count": 1}},
      {"ion": {"ion": "MG", "count": 1}}
    ],
    "covalent_bonds": [
      {"entity1": "1", "copy1": 1, "position1": "1", "atom1": "ND2",
       "entity2": "2", "copy2": 1, "position2": "1", "atom2": "C1"}
    ]
  }
]`

func TestLoadProtenix(t *testing.T) {
	c, err := LoadProtenix(protenixSample)
	require.NoError(t, err)

	assert.Equal(t, "glyco", c.Name)
	require.Len(t, c.Proteins, 1)
	assert.Equal(t, []string{"A", "B"}, c.Proteins[0].IDs)

	// Chain ids keep advancing across entities.
	require.Len(t, c.Ligands, 2)
	assert.Equal(t, []string{"C"}, c.Ligands[0].IDs)
	assert.Equal(t, []string{"NAG", "BMA"}, c.Ligands[0].CCDCodes)
	assert.Equal(t, []string{"D"}, c.Ligands[1].IDs)
	assert.Equal(t, "CCO", c.Ligands[1].SMILES)
	require.Len(t, c.Ions, 1)
	assert.Equal(t, []string{"E"}, c.Ions[0].IDs)

	require.Len(t, c.Bonds, 1)
	b := c.Bonds[0]
	assert.Equal(t, "A", b.Atom1.ChainID)
	assert.Equal(t, "ND2", b.Atom1.AtomName)
	assert.Equal(t, "C", b.Atom2.ChainID)
	assert.Equal(t, 1, b.Atom2.ComponentIndex)
}

func TestLoadProtenixAtomIndex(t *testing.T) {
	data := `[
	  {"name": "x", "sequences": [
	    {"proteinChain": {"sequence": "M", "count": 1}},
	    {"ligand": {"ligand": "CCO", "count": 1}}
	  ],
	  "covalent_bonds": [
	    {"entity1": "1", "copy1": 1, "position1": "1", "atom1": "SG",
	     "entity2": "2", "copy2": 1, "position2": "1", "atom2": 0}
	  ]}
	]`
	c, err := LoadProtenix(data)
	require.NoError(t, err)
	require.Len(t, c.Bonds, 1)
	require.NotNil(t, c.Bonds[0].Atom2.AtomIndex)
	assert.Equal(t, 0, *c.Bonds[0].Atom2.AtomIndex)
	assert.Empty(t, c.Bonds[0].Atom2.AtomName)
}

func TestLoadProtenixRejectsBadEntity(t *testing.T) {
	data := `[
	  {"name": "x", "sequences": [{"proteinChain": {"sequence": "M", "count": 1}}],
	   "covalent_bonds": [
	     {"entity1": "9", "copy1": 1, "position1": "1", "atom1": "N",
	      "entity2": "1", "copy2": 1, "position2": "1", "atom2": "C"}
	   ]}
	]`
	_, err := LoadProtenix(data)
	assert.Error(t, err)
}

func TestProtenixRoundTrip(t *testing.T) {
	c, err := LoadProtenix(protenixSample)
	require.NoError(t, err)

	out, err := DumpProtenix(c)
	require.NoError(t, err)

	c2, err := LoadProtenix(out)
	require.NoError(t, err)
	assert.Equal(t, c, c2)
}

func TestDumpProtenixRejectsUnknownBondChain(t *testing.T) {
	_, err := DumpProtenix(ir.Complex{
		Proteins: []ir.PolymerChain{{Type: ir.ChainProtein, IDs: []string{"A"}, Sequence: "M"}},
		Bonds: []ir.Bond{{
			Atom1: ir.AtomRef{ChainID: "A", ResidueIndex: 1, AtomName: "N"},
			Atom2: ir.AtomRef{ChainID: "Z", ResidueIndex: 1, AtomName: "C"},
		}},
	})
	assert.Error(t, err)
}

func TestSplitCCDConcat(t *testing.T) {
	assert.Equal(t, []string{"NAG", "BMA", "BGC"}, splitCCDConcat("CCD_NAG_BMA_BGC"))
	assert.Equal(t, []string{"ATP"}, splitCCDConcat("CCD_ATP"))
	assert.Equal(t, []string{"CCO"}, splitCCDConcat("CCO"))
}
