// Package spir reads and writes structure-prediction job inputs across
// the AlphaFold3, AlphaFold Server, Boltz, Chai, and Protenix dialects,
// converting through one shared complex model.
package spir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/foldkit/spir/dialect"
	"github.com/foldkit/spir/ir"
)

// Job is one loaded prediction job: the dialect-independent model plus
// where it came from.
type Job struct {
	Complex      ir.Complex
	SourcePaths  []string
	SourceFormat dialect.Format
}

// Read loads a job from the given input files, auto-detecting the dialect.
// Chai inputs take two paths (FASTA then restraints CSV); every other
// dialect takes one.
func Read(paths ...string) (*Job, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("spir: read requires at least one path")
	}
	format, err := dialect.Detect(paths...)
	if err != nil {
		return nil, err
	}
	return ReadAs(format, paths...)
}

// ReadAs loads a job from the given input files as the named dialect.
func ReadAs(format dialect.Format, paths ...string) (*Job, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("spir: read requires at least one path")
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("spir: %w", err)
		}
	}

	text, err := os.ReadFile(paths[0])
	if err != nil {
		return nil, fmt.Errorf("spir: %w", err)
	}

	var c ir.Complex
	switch format {
	case dialect.FormatAF3:
		c, err = dialect.LoadAF3(string(text))
	case dialect.FormatAF3Server:
		c, err = dialect.LoadAF3Server(string(text))
	case dialect.FormatBoltz:
		c, err = dialect.LoadBoltz(string(text))
	case dialect.FormatProtenix:
		c, err = dialect.LoadProtenix(string(text))
	case dialect.FormatChai:
		restraints := ""
		if len(paths) > 1 {
			data, err := os.ReadFile(paths[1])
			if err != nil {
				return nil, fmt.Errorf("spir: %w", err)
			}
			restraints = string(data)
		}
		c, err = dialect.LoadChai(string(text), restraints)
	default:
		return nil, fmt.Errorf("spir: unsupported format: %q", format)
	}
	if err != nil {
		return nil, err
	}

	if c.Name == "" {
		c.Name = stem(paths[0])
	}
	return &Job{Complex: c, SourcePaths: paths, SourceFormat: format}, nil
}

// Stem is the job's base output name: the first source file's stem, else
// the complex name, else a fixed default.
func (j *Job) Stem() string {
	if len(j.SourcePaths) > 0 {
		return stem(j.SourcePaths[0])
	}
	if j.Complex.Name != "" {
		return j.Complex.Name
	}
	return "spir-job"
}

// Write renders the job in the target dialect under dir, creating it if
// needed. An empty name defaults to the job's stem. It returns the paths
// written: one file for most dialects, FASTA plus an optional restraints
// CSV for Chai.
func (j *Job) Write(format dialect.Format, dir, name string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("spir: %w", err)
	}
	if name == "" {
		name = j.Stem()
	}

	switch format {
	case dialect.FormatAF3:
		text, err := dialect.DumpAF3(j.Complex)
		if err != nil {
			return nil, err
		}
		return writeOne(filepath.Join(dir, name+".af3.json"), text)
	case dialect.FormatAF3Server:
		text, err := dialect.DumpAF3Server(j.Complex)
		if err != nil {
			return nil, err
		}
		return writeOne(filepath.Join(dir, name+".af3server.json"), text)
	case dialect.FormatBoltz:
		// Boltz addresses ligands per residue, so multi-component glycans
		// are split into per-component ligands first.
		text, err := dialect.DumpBoltz(ir.NormalizeMultiComponent(j.Complex))
		if err != nil {
			return nil, err
		}
		return writeOne(filepath.Join(dir, name+".boltz.yaml"), text)
	case dialect.FormatProtenix:
		text, err := dialect.DumpProtenix(j.Complex)
		if err != nil {
			return nil, err
		}
		return writeOne(filepath.Join(dir, name+".protenix.json"), text)
	case dialect.FormatChai:
		fasta, restraints, err := dialect.DumpChai(j.Complex)
		if err != nil {
			return nil, err
		}
		paths, err := writeOne(filepath.Join(dir, name+".fasta"), fasta)
		if err != nil {
			return nil, err
		}
		if restraints != "" {
			more, err := writeOne(filepath.Join(dir, name+".restraints.csv"), restraints)
			if err != nil {
				return nil, err
			}
			paths = append(paths, more...)
		}
		return paths, nil
	}
	return nil, fmt.Errorf("spir: unsupported format: %q", format)
}

// Validate checks that the given input files parse as a supported dialect.
// It returns nil when they do and a descriptive error when they do not.
func Validate(paths ...string) error {
	_, err := Read(paths...)
	return err
}

// ValidateAs is Validate with an explicit dialect instead of detection.
func ValidateAs(format dialect.Format, paths ...string) error {
	_, err := ReadAs(format, paths...)
	return err
}

func writeOne(path, text string) ([]string, error) {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return nil, fmt.Errorf("spir: %w", err)
	}
	return []string{path}, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
