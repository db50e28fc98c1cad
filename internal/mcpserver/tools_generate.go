package mcpserver

import (
	"context"
	"fmt"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasgen/generator"
)

type generateInput struct {
	Document   documentInput `json:"document"               jsonschema:"The schema-graph document to generate from"`
	Flavors    []string      `json:"flavors,omitempty"      jsonschema:"Output flavors: typescript, zod, zod-v3, zod-mini, valibot, transformers (default from OASGEN_FLAVORS, else typescript)"`
	InferTypes *bool         `json:"infer_types,omitempty"  jsonschema:"Declare a z.infer type next to each zod schema"`
	Strict     *bool         `json:"strict,omitempty"       jsonschema:"Fail when generation produces warnings"`
	NoWarnings *bool         `json:"no_warnings,omitempty"  jsonschema:"Drop info messages from the issue list"`
	OutputDir  string        `json:"output_dir,omitempty"   jsonschema:"Directory to write generated files to; files are returned inline when empty"`
}

type generatedFileInfo struct {
	Name    string `json:"name"`
	Flavor  string `json:"flavor"`
	Size    int    `json:"size"`
	Content string `json:"content,omitempty"`
}

type issueInfo struct {
	Entity   string `json:"entity,omitempty"`
	Flavor   string `json:"flavor,omitempty"`
	Path     string `json:"path"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type generateOutput struct {
	Success       bool                      `json:"success"`
	OutputDir     string                    `json:"output_dir,omitempty"`
	FileCount     int                       `json:"file_count"`
	Files         []generatedFileInfo       `json:"files"`
	Operations    []generator.OperationInfo `json:"operations,omitempty"`
	SymbolCount   int                       `json:"symbol_count"`
	Issues        []issueInfo               `json:"issues,omitempty"`
	WarningCount  int                       `json:"warning_count"`
	CriticalCount int                       `json:"critical_count"`
}

// generateMu serializes generation because cached documents are shared
// and generation refreshes their circular hints in place.
var generateMu sync.Mutex

func handleGenerate(ctx context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	flavors := cfg.Flavors
	if len(input.Flavors) > 0 {
		parsed, err := generator.ParseFlavors(input.Flavors...)
		if err != nil {
			return errResult(err), generateOutput{}, nil
		}
		flavors = parsed
	}

	doc, err := input.Document.resolve(ctx)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	opts := []generator.Option{
		generator.WithDocument(doc),
		generator.WithContext(ctx),
		generator.WithFlavors(flavors...),
		generator.WithInferTypes(boolOr(input.InferTypes, cfg.InferTypes)),
		generator.WithStrictMode(boolOr(input.Strict, cfg.Strict)),
		generator.WithIncludeInfo(!boolOr(input.NoWarnings, cfg.NoWarnings)),
	}

	generateMu.Lock()
	result, err := generator.GenerateWithOptions(opts...)
	generateMu.Unlock()
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	inline := input.OutputDir == ""
	if !inline {
		if err := result.WriteFiles(input.OutputDir); err != nil {
			return errResult(fmt.Errorf("failed to write generated files: %w", err)), generateOutput{}, nil
		}
	}

	output := generateOutput{
		Success:       result.Success,
		OutputDir:     input.OutputDir,
		FileCount:     len(result.Files),
		Operations:    result.Operations,
		SymbolCount:   result.SymbolCount,
		WarningCount:  result.WarningCount,
		CriticalCount: result.CriticalCount,
	}

	output.Files = makeSlice[generatedFileInfo](len(result.Files))
	for _, f := range result.Files {
		info := generatedFileInfo{Name: f.Name, Flavor: string(f.Flavor), Size: len(f.Content)}
		if inline {
			info.Content = string(f.Content)
		}
		output.Files = append(output.Files, info)
	}

	output.Issues = makeSlice[issueInfo](len(result.Issues))
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, issueInfo{
			Entity:   issue.Entity,
			Flavor:   issue.Flavor,
			Path:     issue.Path,
			Severity: issue.Severity.String(),
			Message:  issue.Message,
		})
	}

	return nil, output, nil
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
