// Package generator turns a schema graph into TypeScript source files.
//
// Each flavor produces one file. The walker resolves every component
// schema, then the request data and successful response of each
// operation, then webhook payloads, and the flavor's emitter declares
// them in dependency order.
//
// # Quick Start
//
// Generate types and zod schemas using functional options:
//
//	result, err := generator.GenerateWithOptions(
//		generator.WithFilePath("graph.yaml"),
//		generator.WithFlavors(generator.FlavorTypeScript, generator.FlavorZod),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles("./src/client"); err != nil {
//		log.Fatal(err)
//	}
//
// Or use a reusable Generator instance:
//
//	g := generator.New()
//	g.Flavors = []generator.Flavor{generator.FlavorValibot}
//	result, _ := g.Generate("graph.yaml")
//
// # Flavors
//
//   - typescript: static types in types.gen.ts
//   - zod, zod-v3, zod-mini: zod schemas in zod.gen.ts (one variant per run)
//   - valibot: valibot schemas in valibot.gen.ts
//   - transformers: response transformers in transformers.gen.ts
//
// Flavors always run in that order. When typescript runs too, response
// transformers are annotated with the response types of types.gen.ts.
//
// # Issues
//
// Shapes the emitters cannot express degrade to unknown and are reported
// as warnings or info messages in GenerateResult.Issues. An unresolved
// $ref is critical and aborts the run with an error matching
// oaserrors.ErrReference. StrictMode also fails on warnings.
//
// # Pagination
//
// OperationInfo reports the first query parameter or body property whose
// name matches one of the pagination keywords (see
// DefaultPaginationKeywords).
package generator
