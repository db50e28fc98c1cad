// Package walker resolves a schema graph into named declarations for one
// output flavor.
//
// A [Walker] visits each top-level entity (component schema, operation
// request or response, webhook) once, allocates its declaration name in a
// [symbols.File] and hands concrete shapes to a pluggable [Emitter]. The
// walker owns everything the flavors share:
//
//   - cycle detection through two reference stacks: a path stack shared by
//     every nested component resolution of one entity, and an ancestor
//     stack that restarts at each component
//   - deferred ("lazy") references for true self-recursion
//   - reuse of finished declarations, so a $ref is walked once per file
//   - member deduplication and singleton flattening of anonymous unions
//     and intersections
//   - the wrapping order of modifiers: read-only, then optional, then default
//
// # Quick Start
//
//	doc, _ := graph.Load("graph.yaml")
//	file := symbols.NewFile("types.gen.ts")
//	w := walker.New(doc, typescript.New(), file)
//	for _, id := range doc.ComponentIDs() {
//	    if _, err := w.ResolveComponent(id); err != nil {
//	        return err
//	    }
//	}
//
// # Errors
//
// A $ref the graph cannot resolve aborts the current entity with an error
// matching [oaserrors.ErrReference]; the message names the ref. Shapes the
// walker does not recognize degrade to the emitter's unknown shape, and a
// graph deeper than [WithMaxDepth] degrades the same way with a warning
// issue.
package walker
