// Package schemautil provides shape helpers shared by the walker and the
// emitters: member deduplication, structural hashing and format checks.
package schemautil

import (
	"github.com/erraggy/oasgen/graph"
)

// IsBigInt reports whether n carries a 64-bit integer format, which does
// not fit a JavaScript number.
func IsBigInt(n *graph.Node) bool {
	if n == nil {
		return false
	}
	switch n.Type {
	case graph.ShapeInteger, graph.ShapeNumber, graph.ShapeString:
		return n.Format == "int64" || n.Format == "uint64"
	}
	return false
}

// IsDate reports whether n is a string in date or date-time format.
func IsDate(n *graph.Node) bool {
	return n != nil && n.Type == graph.ShapeString && (n.Format == "date-time" || n.Format == "date")
}

// IsDateTime reports whether n is a string in date-time format.
func IsDateTime(n *graph.Node) bool {
	return n != nil && n.Type == graph.ShapeString && n.Format == "date-time"
}

// IsNumeric reports whether n is a number or integer.
func IsNumeric(n *graph.Node) bool {
	return n != nil && (n.Type == graph.ShapeNumber || n.Type == graph.ShapeInteger)
}

// EnumLiterals returns the const values of an enum's members in order.
// ok is false when any member is not a const.
func EnumLiterals(n *graph.Node) (values []any, ok bool) {
	if n == nil {
		return nil, false
	}
	values = make([]any, 0, len(n.Items))
	for _, item := range n.Items {
		if item == nil || !item.HasConst() {
			return nil, false
		}
		values = append(values, item.Const)
	}
	return values, true
}

// IsStringEnum reports whether every member of an enum is a string const.
func IsStringEnum(n *graph.Node) bool {
	values, ok := EnumLiterals(n)
	if !ok || len(values) == 0 {
		return false
	}
	for _, v := range values {
		if _, isString := v.(string); !isString {
			return false
		}
	}
	return true
}

// IsNullable reports whether any member of a union is the null shape.
func IsNullable(n *graph.Node) bool {
	if n == nil {
		return false
	}
	if n.Type == graph.ShapeNull {
		return true
	}
	if n.Type != "" && n.Type != graph.ShapeEnum {
		return false
	}
	for _, item := range n.Items {
		if item != nil && (item.Type == graph.ShapeNull || (item.HasConst() && item.Const == nil)) {
			return true
		}
	}
	return false
}

// WithoutNull returns items minus null members.
func WithoutNull(items []*graph.Node) []*graph.Node {
	out := make([]*graph.Node, 0, len(items))
	for _, item := range items {
		if item != nil && item.Type == graph.ShapeNull {
			continue
		}
		out = append(out, item)
	}
	return out
}
