package dialect

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Detect guesses the dialect of the given input files from their
// extensions and, for JSON and YAML, a shallow look at their structure.
func Detect(paths ...string) (Format, error) {
	if len(paths) == 1 {
		p := paths[0]
		switch strings.ToLower(filepath.Ext(p)) {
		case ".yaml", ".yml":
			data, err := os.ReadFile(p)
			if err != nil {
				return "", fmt.Errorf("detect: %w", err)
			}
			var doc map[string]any
			if err := yaml.Unmarshal(data, &doc); err != nil {
				return "", fmt.Errorf("detect: %s: %w", p, err)
			}
			if _, ok := doc["sequences"]; ok {
				return FormatBoltz, nil
			}
		case ".json":
			data, err := os.ReadFile(p)
			if err != nil {
				return "", fmt.Errorf("detect: %w", err)
			}
			if f, ok := sniffJSON(data); ok {
				return f, nil
			}
		case ".fasta", ".fa":
			return FormatChai, nil
		}
	}

	// Multiple paths: a FASTA plus restraints CSV is the Chai layout.
	for _, p := range paths {
		switch strings.ToLower(filepath.Ext(p)) {
		case ".fasta", ".fa":
			return FormatChai, nil
		}
	}
	return "", fmt.Errorf("detect: unable to auto-detect format from %v", paths)
}

func sniffJSON(data []byte) (Format, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err == nil {
		var dialect string
		if raw, ok := obj["dialect"]; ok && json.Unmarshal(raw, &dialect) == nil && dialect == "alphafold3" {
			return FormatAF3, true
		}
		return "", false
	}

	var list []map[string]json.RawMessage
	if err := json.Unmarshal(data, &list); err != nil || len(list) == 0 {
		return "", false
	}
	var dialect string
	if raw, ok := list[0]["dialect"]; ok && json.Unmarshal(raw, &dialect) == nil && dialect == "alphafoldserver" {
		return FormatAF3Server, true
	}
	if _, ok := list[0]["sequences"]; ok {
		return FormatProtenix, true
	}
	return "", false
}
