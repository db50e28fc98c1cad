// Package oasgen turns a normalized schema graph into TypeScript artifacts:
// plain type aliases, zod or valibot validators, and response transformers
// that revive date-time strings into Date objects.
//
// # Overview
//
// The module is organized as a small pipeline:
//
//   - graph: load and decode the schema-graph document, detect circular components
//   - walker: resolve each entity through the graph and dispatch to an emitter
//   - symbols: allocate stable, collision-free names and keep declarations in order
//   - emitter/typescript, emitter/zod, emitter/valibot, emitter/transformers: one emitter per flavor
//   - generator: drive the flavors in canonical order and render the files
//   - oaserrors: typed errors for errors.Is and errors.As
//
// # Installation
//
//	go get github.com/erraggy/oasgen
//
// # Quick Start
//
//	result, err := generator.GenerateWithOptions(
//		generator.WithFilePath("graph.yaml"),
//		generator.WithFlavors(generator.FlavorTypeScript, generator.FlavorZod),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles("src/client"); err != nil {
//		log.Fatal(err)
//	}
//
// # Flavors
//
// Each flavor writes one file. Only one zod variant (zod, zod-v3, zod-mini)
// may be selected per run.
//
//	typescript    types.gen.ts
//	zod           zod.gen.ts
//	valibot       valibot.gen.ts
//	transformers  transformers.gen.ts
//
// # Error Handling
//
// Generation issues are collected per entity with a severity. A critical
// issue (for example an unresolved $ref) fails the run; warnings fail it
// only in strict mode. Errors returned by the generator wrap the sentinels
// in oaserrors:
//
//	if errors.Is(err, oaserrors.ErrReference) {
//		// the graph names a schema it does not contain
//	}
//
// # Command-Line Interface
//
//	# Generate types and zod schemas
//	oasgen generate --flavor typescript,zod -o src/client graph.yaml
//
//	# Read from stdin and print a JSON manifest
//	cat graph.yaml | oasgen generate -o out --format json -
//
//	# Serve the generator over MCP on stdio
//	oasgen mcp
package oasgen
