// Package symbols allocates stable, collision-free names for generated
// declarations.
//
// A [File] is an arena of [Symbol] values keyed by (namespace, id). Symbols
// are created in two phases: [File.Reference] hands out a placeholder that
// other expressions may embed immediately, and [File.Finish] sets the value
// once the declaration body is built. This is what lets cyclic schemas
// refer to a declaration that is still under construction.
//
// Names come from a per-namespace [Registry]. The first id to claim a name
// keeps it; later ids get numeric suffixes starting at 2.
package symbols
