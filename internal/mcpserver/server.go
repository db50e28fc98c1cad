// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasgen capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasgen"
)

const serverInstructions = `oasgen MCP server: generates TypeScript types, zod/valibot schemas and response transformers from schema-graph documents, and inspects their components.

Configuration: All defaults are configurable via OASGEN_* environment variables set in your MCP client config.

Key settings:
- OASGEN_FLAVORS (default: typescript) - comma-separated default flavors for generate
- OASGEN_STRICT (default: false) - fail generation on warnings
- OASGEN_NO_WARNINGS (default: false) - drop info messages from results
- OASGEN_INFER_TYPES (default: false) - declare z.infer types in zod output
- OASGEN_CACHE_ENABLED (default: true) - disable document caching entirely
- OASGEN_INSPECT_LIMIT (default: 100) - default result limit for inspect

Caching: Parsed documents are cached per session. File entries use path+mtime as key. URL entries are cached with a shorter TTL. A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		docCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasgen", Version: oasgen.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate TypeScript artifacts from a schema-graph document. Flavors: typescript, zod, zod-v3, zod-mini, valibot, transformers (one zod variant per call). Returns the generated files inline, or writes them when output_dir is set, plus an operation summary with detected pagination fields. Defaults are configurable via OASGEN_FLAVORS, OASGEN_STRICT and OASGEN_INFER_TYPES env vars.",
	}, handleGenerate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "inspect",
		Description: "Inspect the component schemas of a schema-graph document. Returns name, shape, incoming reference count and whether the component lies on a reference cycle. Filter by name glob or circular=true. Use group_by=shape to get distribution counts instead of individual items. Default limit is configurable via OASGEN_INSPECT_LIMIT.",
	}, handleInspect)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.InspectLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.InspectLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount represents a single group in group_by results.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort groups items by key, sorts by count descending (ties
// broken alphabetically by key), and returns the sorted groups.
func groupAndSort[T any](items []T, keyFn func(T) []string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		for _, key := range keyFn(item) {
			counts[key]++
		}
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// validateGroupBy checks that group_by is one of allowed.
func validateGroupBy(groupBy string, allowed []string) error {
	if groupBy == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(groupBy, a) {
			return nil
		}
	}
	return fmt.Errorf("invalid group_by value %q; valid values: %s", groupBy, strings.Join(allowed, ", "))
}

// validateGlobPattern checks whether a glob pattern is syntactically valid.
// Call this once before a filter loop so matchGlobName never encounters an
// invalid pattern at match time.
func validateGlobPattern(pattern string) error {
	if pattern == "" || !strings.ContainsAny(pattern, "*?[") {
		return nil
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return nil
}

// matchGlobName reports whether name matches pattern. Patterns without
// glob characters match case-insensitively by equality.
func matchGlobName(name, pattern string) bool {
	if pattern == "" {
		return true
	}
	if !strings.ContainsAny(pattern, "*?[") {
		return strings.EqualFold(name, pattern)
	}
	ok, _ := filepath.Match(pattern, name)
	return ok
}
