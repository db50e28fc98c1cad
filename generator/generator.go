package generator

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/erraggy/oasgen/graph"
	"github.com/erraggy/oasgen/internal/issues"
	"github.com/erraggy/oasgen/internal/naming"
	"github.com/erraggy/oasgen/internal/options"
	"github.com/erraggy/oasgen/internal/schemautil"
	"github.com/erraggy/oasgen/internal/severity"
	"github.com/erraggy/oasgen/oaserrors"
	"github.com/erraggy/oasgen/symbols"
	"github.com/erraggy/oasgen/walker"
)

// Severity indicates the severity level of a generation issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about generation choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates shapes that degraded to unknown
	SeverityWarning = severity.SeverityWarning
	// SeverityCritical indicates entities that could not be generated
	SeverityCritical = severity.SeverityCritical
)

// GenerateIssue represents a single generation issue
type GenerateIssue = issues.Issue

// GeneratedFile represents a single generated file
type GeneratedFile struct {
	// Name is the file name (e.g., "types.gen.ts")
	Name string
	// Flavor is the flavor that produced the file
	Flavor Flavor
	// Content is the generated TypeScript source
	Content []byte
}

// GenerateResult contains the results of generating one schema graph
type GenerateResult struct {
	// Files contains all generated files in generation order
	Files []GeneratedFile
	// Operations summarizes the operations of the document
	Operations []OperationInfo
	// Issues contains all generation issues
	Issues []GenerateIssue
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// CriticalCount is the total number of critical issues
	CriticalCount int
	// Success is true if generation completed without critical issues
	Success bool
	// GenerateTime is the time taken to generate all flavors
	GenerateTime time.Duration
	// SymbolCount is the number of declarations across all files
	SymbolCount int
}

// HasCriticalIssues returns true if there are any critical issues
func (r *GenerateResult) HasCriticalIssues() bool {
	return r.CriticalCount > 0
}

// HasWarnings returns true if there are any warnings
func (r *GenerateResult) HasWarnings() bool {
	return r.WarningCount > 0
}

// GetFile returns the generated file with the given name, or nil if not found
func (r *GenerateResult) GetFile(name string) *GeneratedFile {
	for i := range r.Files {
		if r.Files[i].Name == name {
			return &r.Files[i]
		}
	}
	return nil
}

// Generator generates TypeScript artifacts from schema graphs
type Generator struct {
	// Flavors are the output flavors. Empty means typescript only.
	Flavors []Flavor

	// Naming overrides the default naming policy per flavor and entity kind
	Naming map[Flavor]walker.Naming

	// InferTypes declares a z.infer type next to each zod schema
	InferTypes bool

	// StrictMode causes generation to fail on warnings as well as critical issues
	StrictMode bool

	// IncludeInfo determines whether to include informational messages
	IncludeInfo bool

	// MaxDepth bounds nesting per entity; 0 uses walker.DefaultMaxDepth
	MaxDepth int

	// PaginationKeywords are the field names treated as pagination controls
	PaginationKeywords []string

	// Logger receives debug and warning events. Nil disables logging.
	Logger graph.Logger
}

// New creates a new Generator instance with default settings
func New() *Generator {
	return &Generator{
		Flavors:            []Flavor{FlavorTypeScript},
		IncludeInfo:        true,
		PaginationKeywords: DefaultPaginationKeywords,
	}
}

// Option is a function that configures a generate operation
type Option func(*generateConfig) error

// generateConfig holds configuration for a generate operation
type generateConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	document *graph.Document

	ctx                context.Context
	flavors            []Flavor
	naming             map[Flavor]walker.Naming
	inferTypes         bool
	strictMode         bool
	includeInfo        bool
	maxDepth           int
	paginationKeywords []string
	logger             graph.Logger
}

// GenerateWithOptions generates TypeScript artifacts using functional options.
//
// Example:
//
//	result, err := generator.GenerateWithOptions(
//	    generator.WithFilePath("graph.yaml"),
//	    generator.WithFlavors(generator.FlavorTypeScript, generator.FlavorZod),
//	)
func GenerateWithOptions(opts ...Option) (*GenerateResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("generator: invalid options: %w", err)
	}

	g := &Generator{
		Flavors:            cfg.flavors,
		Naming:             cfg.naming,
		InferTypes:         cfg.inferTypes,
		StrictMode:         cfg.strictMode,
		IncludeInfo:        cfg.includeInfo,
		MaxDepth:           cfg.maxDepth,
		PaginationKeywords: cfg.paginationKeywords,
		Logger:             cfg.logger,
	}

	if cfg.filePath != nil {
		doc, err := graph.Load(*cfg.filePath)
		if err != nil {
			return nil, fmt.Errorf("generator: failed to load document: %w", err)
		}
		return g.GenerateContext(cfg.ctx, doc)
	}
	return g.GenerateContext(cfg.ctx, cfg.document)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*generateConfig, error) {
	cfg := &generateConfig{
		ctx:                context.Background(),
		includeInfo:        true,
		naming:             make(map[Flavor]walker.Naming),
		paginationKeywords: DefaultPaginationKeywords,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"must specify an input source (use WithFilePath or WithDocument)",
		"must specify exactly one input source",
		cfg.filePath != nil, cfg.document != nil,
	); err != nil {
		return nil, &oaserrors.ConfigError{Option: "input", Message: err.Error()}
	}

	if _, err := normalizeFlavors(cfg.flavors); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithFilePath specifies a schema-graph file as the input source. "-"
// reads standard input.
func WithFilePath(path string) Option {
	return func(cfg *generateConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithDocument specifies an in-memory schema graph as the input source
func WithDocument(doc *graph.Document) Option {
	return func(cfg *generateConfig) error {
		if doc == nil {
			return &oaserrors.ConfigError{Option: "document", Message: "document cannot be nil"}
		}
		cfg.document = doc
		return nil
	}
}

// WithFlavors adds output flavors
// Default: typescript
func WithFlavors(flavors ...Flavor) Option {
	return func(cfg *generateConfig) error {
		cfg.flavors = append(cfg.flavors, flavors...)
		return nil
	}
}

// WithNaming overrides the naming policy of one entity kind in one flavor
func WithNaming(flavor Flavor, kind walker.EntityKind, template string, casing naming.Casing) Option {
	return func(cfg *generateConfig) error {
		p, err := naming.NewPolicy(template, casing)
		if err != nil {
			return err
		}
		if cfg.naming[flavor] == nil {
			cfg.naming[flavor] = make(walker.Naming)
		}
		cfg.naming[flavor][kind] = p
		return nil
	}
}

// WithInferTypes enables or disables z.infer types in the zod flavors
// Default: false
func WithInferTypes(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.inferTypes = enabled
		return nil
	}
}

// WithLogger sets the logger for generation events
func WithLogger(l graph.Logger) Option {
	return func(cfg *generateConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithMaxDepth sets the maximum nesting depth per entity
// Default: walker.DefaultMaxDepth
func WithMaxDepth(depth int) Option {
	return func(cfg *generateConfig) error {
		if depth < 0 {
			return &oaserrors.ConfigError{Option: "maxDepth", Value: depth, Message: "cannot be negative"}
		}
		cfg.maxDepth = depth
		return nil
	}
}

// WithStrictMode enables or disables strict mode (fail on warnings)
// Default: false
func WithStrictMode(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.strictMode = enabled
		return nil
	}
}

// WithIncludeInfo enables or disables informational messages
// Default: true
func WithIncludeInfo(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.includeInfo = enabled
		return nil
	}
}

// WithPaginationKeywords sets the field names treated as pagination
// controls
// Default: DefaultPaginationKeywords
func WithPaginationKeywords(keywords ...string) Option {
	return func(cfg *generateConfig) error {
		if len(keywords) == 0 {
			return &oaserrors.ConfigError{Option: "paginationKeywords", Message: "at least one keyword is required"}
		}
		cfg.paginationKeywords = keywords
		return nil
	}
}

// WithContext sets the context checked before each top-level entity
func WithContext(ctx context.Context) Option {
	return func(cfg *generateConfig) error {
		if ctx != nil {
			cfg.ctx = ctx
		}
		return nil
	}
}

// Generate loads a schema-graph file and generates it
func (g *Generator) Generate(path string) (*GenerateResult, error) {
	doc, err := graph.Load(path)
	if err != nil {
		return nil, fmt.Errorf("generator: failed to load document: %w", err)
	}
	return g.GenerateContext(context.Background(), doc)
}

// GenerateDocument generates an in-memory schema graph
func (g *Generator) GenerateDocument(doc *graph.Document) (*GenerateResult, error) {
	return g.GenerateContext(context.Background(), doc)
}

// GenerateContext generates every configured flavor of doc.
//
// An unresolved reference aborts the run: the returned result carries the
// issues and the files finished so far, and the error matches
// oaserrors.ErrReference.
func (g *Generator) GenerateContext(ctx context.Context, doc *graph.Document) (*GenerateResult, error) {
	if doc == nil {
		return nil, &oaserrors.ConfigError{Option: "document", Message: "document cannot be nil"}
	}
	flavors, err := normalizeFlavors(g.Flavors)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	graph.MarkCircular(doc)

	startTime := time.Now()
	logger := g.Logger
	if logger == nil {
		logger = graph.NopLogger{}
	}
	logEquivalentComponents(doc, logger)
	result := &GenerateResult{
		Files:      make([]GeneratedFile, 0, len(flavors)),
		Operations: g.operationInfos(doc),
		Issues:     make([]GenerateIssue, 0),
	}

	var types *symbols.File
	for _, f := range flavors {
		file, err := g.generateFlavor(ctx, f, doc, types, logger, result)
		if err != nil {
			g.finish(result, startTime)
			return result, fmt.Errorf("generator: %s: %w", f, err)
		}
		if f == FlavorTypeScript {
			types = file
		}
		result.Files = append(result.Files, GeneratedFile{Name: file.Name, Flavor: f, Content: Render(file)})
		result.SymbolCount += len(file.Symbols())
	}

	g.finish(result, startTime)
	if g.StrictMode && (result.CriticalCount > 0 || result.WarningCount > 0) {
		return result, fmt.Errorf("generator: generation failed in strict mode: %d critical issue(s), %d warning(s)",
			result.CriticalCount, result.WarningCount)
	}
	return result, nil
}

// generateFlavor resolves every entity of doc for one flavor: component
// schemas in document order, then each operation's request data and
// response, then webhooks. Transformers only cover schemas and responses.
func (g *Generator) generateFlavor(ctx context.Context, f Flavor, doc *graph.Document, types *symbols.File, logger graph.Logger, result *GenerateResult) (*symbols.File, error) {
	file := symbols.NewFile(f.FileName())
	opts := []walker.Option{
		walker.WithLogger(logger),
		walker.WithMaxDepth(g.MaxDepth),
		walker.WithContext(ctx),
	}
	for kind, p := range g.Naming[f] {
		opts = append(opts, walker.WithNaming(kind, p))
	}
	w := walker.New(doc, g.newEmitter(f, doc, types), file, opts...)
	defer func() { result.Issues = append(result.Issues, w.Issues()...) }()

	for _, id := range doc.ComponentIDs() {
		if _, err := w.ResolveComponent(id); err != nil {
			return file, err
		}
	}

	transformersOnly := f == FlavorTransformers
	for _, op := range doc.Operations {
		if op == nil {
			continue
		}
		data, response := operationEntities(op)
		if !transformersOnly {
			if _, err := w.ResolveEntity(data); err != nil {
				return file, err
			}
		}
		if response == nil {
			logger.Debug("response skipped", "operation", op.ID, "reason", "no successful response schema")
			continue
		}
		if _, err := w.ResolveEntity(*response); err != nil {
			return file, err
		}
	}

	if transformersOnly {
		return file, nil
	}
	for _, wh := range doc.Webhooks {
		if wh == nil {
			continue
		}
		entity, ok := webhookEntity(wh)
		if !ok {
			continue
		}
		if _, err := w.ResolveEntity(entity); err != nil {
			return file, err
		}
	}
	return file, nil
}

// logEquivalentComponents reports component schemas with the same
// structural hash. They are still generated separately.
func logEquivalentComponents(doc *graph.Document, logger graph.Logger) {
	names := doc.Components.Schemas.Keys()
	if len(names) < 2 {
		return
	}
	groups := schemautil.NewSchemaHasher().GroupByHash(names, func(name string) *graph.Node {
		n, _ := doc.Schema(name)
		return n
	})
	var dups [][]string
	for _, group := range groups {
		if len(group) > 1 {
			dups = append(dups, group)
		}
	}
	slices.SortFunc(dups, func(a, b []string) int {
		return slices.Index(names, a[0]) - slices.Index(names, b[0])
	})
	for _, group := range dups {
		logger.Debug("structurally identical components", "components", group)
	}
}

func (g *Generator) operationInfos(doc *graph.Document) []OperationInfo {
	out := make([]OperationInfo, 0, len(doc.Operations))
	for _, op := range doc.Operations {
		if op == nil {
			continue
		}
		out = append(out, OperationInfo{
			ID:          op.ID,
			Method:      op.Method,
			Path:        op.Path,
			HasResponse: responseNode(op) != nil,
			Pagination:  DetectPagination(op, doc, g.PaginationKeywords),
		})
	}
	return out
}

// finish updates counts and timing, and drops info messages when they are
// not included.
func (g *Generator) finish(result *GenerateResult, startTime time.Time) {
	result.GenerateTime = time.Since(startTime)
	result.InfoCount, result.WarningCount, result.CriticalCount = issues.Counts(result.Issues)
	result.Success = result.CriticalCount == 0

	if !g.IncludeInfo {
		result.Issues = issues.Filter(result.Issues, SeverityWarning)
		result.InfoCount = 0
	}
}
