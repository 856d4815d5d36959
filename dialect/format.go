package dialect

import "fmt"

// Format names one supported dialect.
type Format string

const (
	FormatAF3       Format = "af3"
	FormatAF3Server Format = "af3-server"
	FormatBoltz     Format = "boltz"
	FormatChai      Format = "chai"
	FormatProtenix  Format = "protenix"
)

// Formats lists every supported dialect in display order.
func Formats() []Format {
	return []Format{FormatAF3, FormatAF3Server, FormatBoltz, FormatChai, FormatProtenix}
}

// ParseFormat resolves a user-supplied format name, accepting the
// "alphafold3" alias for af3.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "af3", "alphafold3":
		return FormatAF3, nil
	case "af3-server", "alphafoldserver":
		return FormatAF3Server, nil
	case "boltz":
		return FormatBoltz, nil
	case "chai":
		return FormatChai, nil
	case "protenix":
		return FormatProtenix, nil
	}
	return "", fmt.Errorf("unsupported format: %q", s)
}

// UnsupportedTargetError reports structure that the target dialect cannot
// express, e.g. a SMILES ligand written to AlphaFold Server inputs.
type UnsupportedTargetError struct {
	Format  Format
	Reasons []string
}

func (e *UnsupportedTargetError) Error() string {
	msg := fmt.Sprintf("cannot write %s", e.Format)
	for i, r := range e.Reasons {
		if i == 0 {
			msg += ": " + r
		} else {
			msg += ", " + r
		}
	}
	return msg
}
