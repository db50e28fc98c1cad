// Package naming turns raw schema and operation names into declaration
// names.
//
// A [Policy] combines a name template (default "{{name}}") with a [Casing].
// The template is substituted first and the casing is applied to the whole
// result, so "z{{name}}" with camelCase turns "user_profile" into
// "zUserProfile". [SafeIdentifier] makes the result a valid TypeScript
// identifier.
package naming
