package spir

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/foldkit/spir/dialect"
	"github.com/foldkit/spir/glycan"
	"github.com/foldkit/spir/ir"
)

// ConvertGlycan converts an AlphaFold Server glycan string into its
// representation in the target dialect. With full=false it returns a small
// copy-pasteable snippet; with full=true a complete job file anchoring the
// glycan to a one-asparagine mock protein, with every inferred linkage
// spelled out as an explicit bond.
func ConvertGlycan(glycanStr string, target dialect.Format, full bool) (string, error) {
	graph, err := glycan.ParseServer(glycanStr)
	if err != nil {
		return "", err
	}

	if full {
		return convertGlycanFull(graph, strings.TrimSpace(glycanStr), target)
	}
	return convertGlycanSnippet(graph, strings.TrimSpace(glycanStr), target)
}

// glycanComplex builds the mock assembly used for full conversions: one
// asparagine protein A, the glycan as ligand G, its tree folded into bonds,
// and an ND2 to root C1 anchor.
func glycanComplex(graph *glycan.Graph, residues string) ir.Complex {
	c := ir.Complex{
		Name: "spir-glycan",
		Proteins: []ir.PolymerChain{
			{Type: ir.ChainProtein, IDs: []string{"A"}, Sequence: "N"},
		},
		Ligands: []ir.Ligand{
			{IDs: []string{"G"}, CCDCodes: graph.CCDList(), ServerResidues: residues},
		},
	}
	c.Bonds = ir.GlycanBonds("G", graph)
	c.Bonds = append(c.Bonds, ir.GlycanAnchorBond("A", 1, "ND2", "G"))
	return c
}

func convertGlycanFull(graph *glycan.Graph, residues string, target dialect.Format) (string, error) {
	c := glycanComplex(graph, residues)
	switch target {
	case dialect.FormatAF3:
		return dialect.DumpAF3(c)
	case dialect.FormatAF3Server:
		return dialect.DumpAF3Server(c)
	case dialect.FormatBoltz:
		return dialect.DumpBoltz(ir.NormalizeMultiComponent(c))
	case dialect.FormatProtenix:
		return dialect.DumpProtenix(c)
	case dialect.FormatChai:
		fasta, restraints, err := dialect.DumpChai(c)
		if err != nil {
			return "", err
		}
		return fasta + "\n---- restraints.csv ----\n" + restraints, nil
	}
	return "", fmt.Errorf("spir: unsupported format: %q", target)
}

func convertGlycanSnippet(graph *glycan.Graph, residues string, target dialect.Format) (string, error) {
	components := graph.CCDList()
	switch target {
	case dialect.FormatAF3:
		frag := map[string]any{"ligand": map[string]any{"id": "G", "ccdCodes": components}}
		data, err := json.MarshalIndent(frag, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	case dialect.FormatAF3Server:
		return residues, nil
	case dialect.FormatBoltz:
		var sb strings.Builder
		fmt.Fprintf(&sb, "# components: [%s]\n", strings.Join(components, ", "))
		sb.WriteString("ligand:\n")
		sb.WriteString("  id: G\n")
		fmt.Fprintf(&sb, "  ccd: %s\n", components[0])
		return sb.String(), nil
	case dialect.FormatChai:
		return ">glycan|G\n" + glycan.RenderChai(graph) + "\n", nil
	case dialect.FormatProtenix:
		frag := map[string]any{"ligand": map[string]any{
			"ligand": "CCD_" + strings.Join(components, "_"),
			"count":  1,
		}}
		data, err := json.Marshal(frag)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return "", fmt.Errorf("spir: unsupported format: %q", target)
}
