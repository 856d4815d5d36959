// spir - structure-prediction input converter
//
// Usage:
//
//	spir convert --src in.json --to boltz [--out path]   Convert between job dialects
//	spir validate --src in.json [--format af3]           Check that input files parse
//	spir glycan --in "NAG(NAG)" --to chai [--full]       Convert a server glycan string
//	spir formats                                         List supported dialects
//	spir version                                         Print version info
//
// Chai inputs take two --src paths: the FASTA first, then the restraints
// CSV. Chai outputs treat --out as a name prefix instead of a filename.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/foldkit/spir"
	"github.com/foldkit/spir/dialect"
)

const version = "0.2.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fatal("%v", err)
	}

	switch cmd := os.Args[1]; cmd {
	case "convert":
		cmdConvert(cfg, logger, os.Args[2:])
	case "validate":
		cmdValidate(os.Args[2:])
	case "glycan":
		cmdGlycan(os.Args[2:])
	case "formats":
		for _, f := range dialect.Formats() {
			fmt.Println(f)
		}
	case "version", "-v", "--version":
		fmt.Printf("spir %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		logger.Error("unknown command", "command", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `spir - structure-prediction input converter

Usage:
  spir convert --src <path> [--src <path>] --to <format> [--out <path>]
  spir validate --src <path> [--src <path>] [--format <format>] [--explain]
  spir glycan --in <glycan> --to <format> [--full]
  spir formats
  spir version

Formats: af3, af3-server, boltz, chai, protenix

Options:
  --src <path>      Input file; repeat for Chai (FASTA then restraints CSV)
  --to <format>     Target dialect
  --format <format> Override auto-detection when validating
  --explain         Print issue details even when the input is valid
  --out <path>      Output file path; for Chai, a name prefix
  --in <glycan>     AlphaFold Server glycan string, e.g. "NAG(NAG)(BMA)"
  --full            Emit a complete job file instead of a snippet

Environment:
  SPIR_OUT_DIR      Default output directory (default ".")
  SPIR_LOG_LEVEL    Log level: debug, info, warn, error (default "info")

Examples:
  spir convert --src job.af3server.json --to boltz
  spir convert --src job.fasta --src job.restraints.csv --to af3 --out job.af3.json
  spir glycan --in "NAG(NAG(BMA))" --to chai
`)
}

func cmdConvert(cfg Config, logger *slog.Logger, args []string) {
	var srcs []string
	var toName, outPath string
	parseArgs(args, map[string]func(string){
		"--src": func(v string) { srcs = append(srcs, v) },
		"--to":  func(v string) { toName = v },
		"--out": func(v string) { outPath = v },
	})
	if len(srcs) == 0 {
		fatal("convert: at least one --src is required")
	}
	if toName == "" {
		fatal("convert: --to is required")
	}
	target, err := dialect.ParseFormat(toName)
	if err != nil {
		fatal("convert: %v", err)
	}

	job, err := spir.Read(srcs...)
	if err != nil {
		fatal("convert: %v", err)
	}
	logger.Debug("loaded job",
		"format", job.SourceFormat,
		"proteins", len(job.Complex.Proteins),
		"ligands", len(job.Complex.Ligands),
		"bonds", len(job.Complex.Bonds))

	dir, name := cfg.OutDir, ""
	if outPath != "" {
		dir = filepath.Dir(outPath)
		name = filepath.Base(outPath)
		if target != dialect.FormatChai {
			// For single-file targets --out names the file; strip the
			// extension the writer will add back.
			name = strings.TrimSuffix(name, filepath.Ext(name))
			name = strings.TrimSuffix(name, "."+string(target))
			name = strings.TrimSuffix(name, ".af3server")
		}
	}

	paths, err := job.Write(target, dir, name)
	if err != nil {
		fatal("convert: %v", err)
	}
	for _, p := range paths {
		fmt.Println(p)
	}
}

func cmdValidate(args []string) {
	var srcs []string
	var formatName string
	explain := false
	parseArgs(args, map[string]func(string){
		"--src":     func(v string) { srcs = append(srcs, v) },
		"--format":  func(v string) { formatName = v },
		"--explain": func(string) { explain = true },
	})
	if len(srcs) == 0 {
		fatal("validate: at least one --src is required")
	}

	var err error
	if formatName != "" {
		var format dialect.Format
		format, err = dialect.ParseFormat(formatName)
		if err != nil {
			fatal("validate: %v", err)
		}
		err = spir.ValidateAs(format, srcs...)
	} else {
		err = spir.Validate(srcs...)
	}

	if err != nil {
		fmt.Println("Valid: no")
		fmt.Printf("Issues: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Valid: yes")
	if explain {
		fmt.Println("Issues: (none)")
	}
}

func cmdGlycan(args []string) {
	var input, toName string
	full := false
	parseArgs(args, map[string]func(string){
		"--in":   func(v string) { input = v },
		"--to":   func(v string) { toName = v },
		"--full": func(string) { full = true },
	})
	if input == "" {
		fatal("glycan: --in is required")
	}
	if toName == "" {
		toName = "af3"
	}
	target, err := dialect.ParseFormat(toName)
	if err != nil {
		fatal("glycan: %v", err)
	}

	out, err := spir.ConvertGlycan(input, target, full)
	if err != nil {
		fatal("glycan: %v", err)
	}
	fmt.Print(out)
	if !strings.HasSuffix(out, "\n") {
		fmt.Println()
	}
}

// boolFlags take no value argument.
var boolFlags = map[string]bool{"--full": true, "--explain": true}

// parseArgs walks args, dispatching "--flag value" and "--flag=value" forms
// to handlers. Boolean flags get an empty value.
func parseArgs(args []string, handlers map[string]func(string)) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, value := arg, ""
		hasValue := false
		if eq := strings.Index(arg, "="); eq >= 0 {
			name, value = arg[:eq], arg[eq+1:]
			hasValue = true
		}
		h, ok := handlers[name]
		if !ok {
			fatal("unknown flag: %s", name)
		}
		if !hasValue && !boolFlags[name] {
			if i+1 >= len(args) {
				fatal("flag %s requires a value", name)
			}
			i++
			value = args[i]
		}
		h(value)
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "spir: "+format+"\n", args...)
	os.Exit(1)
}
