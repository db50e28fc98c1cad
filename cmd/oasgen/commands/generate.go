package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/erraggy/oasgen"
	"github.com/erraggy/oasgen/generator"
	"github.com/erraggy/oasgen/graph"
	"github.com/erraggy/oasgen/internal/cliutil"
)

// flavorList collects --flavor values. Each value may itself be a comma
// separated list.
type flavorList []string

func (f *flavorList) String() string {
	if f == nil {
		return ""
	}
	return strings.Join(*f, ",")
}

func (f *flavorList) Set(value string) error {
	if _, err := generator.ParseFlavors(value); err != nil {
		return err
	}
	*f = append(*f, value)
	return nil
}

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	Output     string
	Flavors    flavorList
	InferTypes bool
	Strict     bool
	NoWarnings bool
	Format     string
	Verbose    bool
}

// SetupGenerateFlags creates and configures a FlagSet for the generate command.
// Returns the FlagSet and a GenerateFlags struct with bound flag variables.
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &GenerateFlags{}

	fs.StringVar(&flags.Output, "o", "", "output directory for generated files (required)")
	fs.StringVar(&flags.Output, "output", "", "output directory for generated files (required)")
	fs.Var(&flags.Flavors, "flavor", "output flavor, repeatable or comma separated: typescript, zod, zod-v3, zod-mini, valibot, transformers (default typescript)")
	fs.BoolVar(&flags.InferTypes, "infer-types", false, "declare a z.infer type next to each zod schema")
	fs.BoolVar(&flags.Strict, "strict", false, "fail on any generation issues (even warnings)")
	fs.BoolVar(&flags.NoWarnings, "no-warnings", false, "suppress info messages")
	fs.StringVar(&flags.Format, "format", FormatText, "report format: text, json, or yaml")
	fs.BoolVar(&flags.Verbose, "v", false, "log generation events to stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log generation events to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasgen generate [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Generate TypeScript types, validators and transformers from a schema graph.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasgen generate -o ./client graph.yaml\n")
		cliutil.Writef(fs.Output(), "  oasgen generate --flavor typescript,zod --infer-types -o ./client graph.yaml\n")
		cliutil.Writef(fs.Output(), "  oasgen generate --flavor valibot --flavor transformers -o ./client graph.json\n")
		cliutil.Writef(fs.Output(), "  cat graph.yaml | oasgen generate -o ./client --format json -\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Only one of zod, zod-v3 and zod-mini may be selected\n")
		cliutil.Writef(fs.Output(), "  - Files are written as types.gen.ts, zod.gen.ts, valibot.gen.ts and transformers.gen.ts\n")
		cliutil.Writef(fs.Output(), "  - With --format json or yaml only the manifest is written to stdout\n")
	}

	return fs, flags
}

// GenerateManifest is the structured report of one generate run.
type GenerateManifest struct {
	Version       string                    `json:"version" yaml:"version"`
	Input         string                    `json:"input" yaml:"input"`
	OutputDir     string                    `json:"outputDir" yaml:"outputDir"`
	Success       bool                      `json:"success" yaml:"success"`
	Files         []ManifestFile            `json:"files" yaml:"files"`
	Operations    []generator.OperationInfo `json:"operations,omitempty" yaml:"operations,omitempty"`
	Issues        []ManifestIssue           `json:"issues,omitempty" yaml:"issues,omitempty"`
	SymbolCount   int                       `json:"symbolCount" yaml:"symbolCount"`
	InfoCount     int                       `json:"infoCount" yaml:"infoCount"`
	WarningCount  int                       `json:"warningCount" yaml:"warningCount"`
	CriticalCount int                       `json:"criticalCount" yaml:"criticalCount"`
	GenerateTime  string                    `json:"generateTime" yaml:"generateTime"`
}

// ManifestFile describes one written file.
type ManifestFile struct {
	Name   string `json:"name" yaml:"name"`
	Flavor string `json:"flavor" yaml:"flavor"`
	Path   string `json:"path" yaml:"path"`
	Size   int    `json:"size" yaml:"size"`
}

// ManifestIssue is a generation issue in the manifest.
type ManifestIssue struct {
	Severity string `json:"severity" yaml:"severity"`
	Entity   string `json:"entity,omitempty" yaml:"entity,omitempty"`
	Flavor   string `json:"flavor,omitempty" yaml:"flavor,omitempty"`
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
	Message  string `json:"message" yaml:"message"`
}

// newManifest builds the manifest of result as written to outputDir.
func newManifest(specPath, outputDir string, result *generator.GenerateResult) GenerateManifest {
	m := GenerateManifest{
		Version:       oasgen.Version(),
		Input:         FormatSpecPath(specPath),
		OutputDir:     outputDir,
		Success:       result.Success,
		Files:         make([]ManifestFile, 0, len(result.Files)),
		Operations:    result.Operations,
		SymbolCount:   result.SymbolCount,
		InfoCount:     result.InfoCount,
		WarningCount:  result.WarningCount,
		CriticalCount: result.CriticalCount,
		GenerateTime:  result.GenerateTime.String(),
	}
	for _, f := range result.Files {
		m.Files = append(m.Files, ManifestFile{
			Name:   f.Name,
			Flavor: string(f.Flavor),
			Path:   filepath.Join(outputDir, f.Name),
			Size:   len(f.Content),
		})
	}
	for _, issue := range result.Issues {
		m.Issues = append(m.Issues, ManifestIssue{
			Severity: issue.Severity.String(),
			Entity:   issue.Entity,
			Flavor:   issue.Flavor,
			Path:     issue.Path,
			Message:  issue.Message,
		})
	}
	return m
}

// HandleGenerate executes the generate command
func HandleGenerate(args []string) error {
	fs, flags := SetupGenerateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("generate command requires exactly one file path or '-' for stdin")
	}
	specPath := fs.Arg(0)

	if flags.Output == "" {
		fs.Usage()
		return fmt.Errorf("output directory is required (use -o or --output)")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	flavors, err := generator.ParseFlavors(flags.Flavors...)
	if err != nil {
		return err
	}

	outputDir := filepath.Clean(flags.Output)
	if err := RejectSymlinkOutput(outputDir); err != nil {
		return err
	}

	genOpts := []generator.Option{
		generator.WithFilePath(specPath),
		generator.WithFlavors(flavors...),
		generator.WithInferTypes(flags.InferTypes),
		generator.WithStrictMode(flags.Strict),
		generator.WithIncludeInfo(!flags.NoWarnings),
	}
	if flags.Verbose {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		genOpts = append(genOpts, generator.WithLogger(graph.NewSlogAdapter(slog.New(handler))))
	}

	startTime := time.Now()
	result, err := generator.GenerateWithOptions(genOpts...)
	totalTime := time.Since(startTime)
	if err != nil {
		if result != nil && flags.Format == FormatText {
			printIssues(os.Stderr, result)
		}
		return fmt.Errorf("generating code: %w", err)
	}

	for _, file := range result.Files {
		if err := RejectSymlinkOutput(filepath.Join(outputDir, file.Name)); err != nil {
			return err
		}
	}
	if err := result.WriteFiles(outputDir); err != nil {
		return fmt.Errorf("writing files: %w", err)
	}

	if flags.Format != FormatText {
		return OutputStructured(os.Stdout, newManifest(specPath, outputDir, result), flags.Format)
	}

	out := os.Stdout
	OutputHeader(out, "Schema Graph Code Generator", specPath)
	cliutil.Writef(out, "Flavors: %s\n", joinFlavors(result))
	cliutil.Writef(out, "Operations: %d\n", len(result.Operations))
	cliutil.Writef(out, "Symbols: %d\n", result.SymbolCount)
	cliutil.Writef(out, "Total Time: %v\n\n", totalTime)

	printIssues(out, result)

	cliutil.Writef(out, "Generated Files (%d):\n", len(result.Files))
	for _, file := range result.Files {
		cliutil.Writef(out, "  - %s (%s)\n", filepath.Join(outputDir, file.Name), FormatBytes(int64(len(file.Content))))
	}
	cliutil.Writef(out, "\n")

	cliutil.Writef(out, "✓ Generation successful")
	if result.InfoCount > 0 || result.WarningCount > 0 {
		cliutil.Writef(out, " (%d info, %d warnings)", result.InfoCount, result.WarningCount)
	}
	cliutil.Writef(out, "\n")
	return nil
}

func printIssues(w io.Writer, result *generator.GenerateResult) {
	if len(result.Issues) == 0 {
		return
	}
	cliutil.Writef(w, "Generation Issues (%d):\n", len(result.Issues))
	for _, issue := range result.Issues {
		cliutil.Writef(w, "  %s\n", issue.String())
	}
	cliutil.Writef(w, "\n")
}

func joinFlavors(result *generator.GenerateResult) string {
	names := make([]string, 0, len(result.Files))
	for _, f := range result.Files {
		names = append(names, string(f.Flavor))
	}
	return strings.Join(names, ", ")
}
