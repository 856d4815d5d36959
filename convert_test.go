package spir

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/foldkit/spir/dialect"
)

func TestConvertGlycanMinimalAF3(t *testing.T) {
	s, err := ConvertGlycan("NAG(NAG)(BMA)", dialect.FormatAF3, false)
	require.NoError(t, err)

	var frag struct {
		Ligand struct {
			ID       string   `json:"id"`
			CCDCodes []string `json:"ccdCodes"`
		} `json:"ligand"`
	}
	require.NoError(t, json.Unmarshal([]byte(s), &frag))
	assert.Equal(t, "G", frag.Ligand.ID)
	assert.Equal(t, []string{"NAG", "NAG", "BMA"}, frag.Ligand.CCDCodes)
}

func TestConvertGlycanMinimalServerIsEcho(t *testing.T) {
	s, err := ConvertGlycan("  NAG ( NAG ) ( BMA )  ", dialect.FormatAF3Server, false)
	require.NoError(t, err)
	assert.Equal(t, "NAG ( NAG ) ( BMA )", s)
}

func TestConvertGlycanMinimalProtenix(t *testing.T) {
	s, err := ConvertGlycan("NAG(NAG)(BMA)", dialect.FormatProtenix, false)
	require.NoError(t, err)
	assert.Contains(t, s, `"ligand":"CCD_NAG_NAG_BMA"`)
}

func TestConvertGlycanMinimalBoltz(t *testing.T) {
	s, err := ConvertGlycan("NAG(NAG)(BMA)", dialect.FormatBoltz, false)
	require.NoError(t, err)
	assert.Contains(t, s, "components: [NAG, NAG, BMA]")
	assert.Contains(t, s, "ccd: NAG")
}

func TestConvertGlycanMinimalChai(t *testing.T) {
	s, err := ConvertGlycan("NAG(NAG)(BMA)", dialect.FormatChai, false)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(s), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, ">glycan|G", lines[0])
	// Trunk NAG gets O4, first branch BMA gets O3.
	assert.Equal(t, "NAG(4-1 NAG)(3-1 BMA)", lines[1])
}

func TestConvertGlycanFullAF3(t *testing.T) {
	s, err := ConvertGlycan("NAG(NAG(MAN(MAN(MAN))))", dialect.FormatAF3, true)
	require.NoError(t, err)

	var job struct {
		Dialect         string           `json:"dialect"`
		BondedAtomPairs [][2][3]any      `json:"bondedAtomPairs"`
		Sequences       []map[string]any `json:"sequences"`
	}
	require.NoError(t, json.Unmarshal([]byte(s), &job))
	assert.Equal(t, "alphafold3", job.Dialect)

	// Four intra-glycan bonds plus the anchor.
	require.Len(t, job.BondedAtomPairs, 5)
	anchored := false
	for _, pair := range job.BondedAtomPairs {
		if pair[0][0] == "A" && pair[0][2] == "ND2" && pair[1][2] == "C1" {
			anchored = true
		}
	}
	assert.True(t, anchored)
}

func TestConvertGlycanFullBoltz(t *testing.T) {
	s, err := ConvertGlycan("NAG(NAG(MAN(MAN(MAN))))", dialect.FormatBoltz, true)
	require.NoError(t, err)

	var doc struct {
		Sequences   []map[string]any `yaml:"sequences"`
		Constraints []map[string]any `yaml:"constraints"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(s), &doc))

	ligands := 0
	for _, e := range doc.Sequences {
		if _, ok := e["ligand"]; ok {
			ligands++
		}
	}
	assert.Equal(t, 5, ligands)
	assert.Len(t, doc.Constraints, 5)
}

func TestConvertGlycanFullChai(t *testing.T) {
	s, err := ConvertGlycan("NAG(NAG(MAN(MAN(MAN))))", dialect.FormatChai, true)
	require.NoError(t, err)

	parts := strings.Split(s, "\n---- restraints.csv ----\n")
	require.Len(t, parts, 2)
	assert.Contains(t, parts[0], ">glycan|G")
	assert.Contains(t, parts[0], "NAG(4-1 NAG(4-1 MAN(2-1 MAN(2-1 MAN))))")
	assert.Contains(t, parts[1], "A,N1@N,G,@C1,covalent")
}

func TestConvertGlycanFullProtenix(t *testing.T) {
	s, err := ConvertGlycan("NAG(NAG(MAN(MAN(MAN))))", dialect.FormatProtenix, true)
	require.NoError(t, err)

	var jobs []struct {
		CovalentBonds []map[string]any `json:"covalent_bonds"`
	}
	require.NoError(t, json.Unmarshal([]byte(s), &jobs))
	require.Len(t, jobs, 1)
	assert.Len(t, jobs[0].CovalentBonds, 5)
}

func TestConvertGlycanFullServerEmitsJob(t *testing.T) {
	s, err := ConvertGlycan("NAG(NAG)", dialect.FormatAF3Server, true)
	require.NoError(t, err)
	assert.Contains(t, s, `"dialect": "alphafoldserver"`)
	assert.Contains(t, s, `"residues": "NAG(NAG)"`)
}

func TestConvertGlycanRejectsBadInput(t *testing.T) {
	_, err := ConvertGlycan("(NAG)", dialect.FormatAF3, false)
	assert.Error(t, err)
}
