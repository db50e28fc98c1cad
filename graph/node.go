package graph

import (
	"go.yaml.in/yaml/v4"
)

// Shape is the concrete type tag of a Node.
type Shape string

const (
	ShapeObject    Shape = "object"
	ShapeArray     Shape = "array"
	ShapeTuple     Shape = "tuple"
	ShapeEnum      Shape = "enum"
	ShapeString    Shape = "string"
	ShapeNumber    Shape = "number"
	ShapeInteger   Shape = "integer"
	ShapeBoolean   Shape = "boolean"
	ShapeNull      Shape = "null"
	ShapeNever     Shape = "never"
	ShapeUnknown   Shape = "unknown"
	ShapeVoid      Shape = "void"
	ShapeUndefined Shape = "undefined"
)

// Known reports whether s is one of the recognized shape tags.
func (s Shape) Known() bool {
	switch s {
	case ShapeObject, ShapeArray, ShapeTuple, ShapeEnum, ShapeString, ShapeNumber,
		ShapeInteger, ShapeBoolean, ShapeNull, ShapeNever, ShapeUnknown, ShapeVoid, ShapeUndefined:
		return true
	}
	return false
}

// LogicalOperator combines the members of a composite node.
type LogicalOperator string

const (
	// OperatorOr builds a union. It is the default when no operator is set.
	OperatorOr LogicalOperator = "or"
	// OperatorAnd builds an intersection.
	OperatorAnd LogicalOperator = "and"
)

// AccessScope marks properties that only appear in one direction.
type AccessScope string

const (
	ScopeRead      AccessScope = "read"
	ScopeWrite     AccessScope = "write"
	ScopeReadWrite AccessScope = "read-write"
)

// Node is one unit of the normalized schema graph.
//
// Nodes are produced once by the loader and never mutated afterwards; the
// same instance may be reachable from several parents.
type Node struct {
	Type Shape  `yaml:"type,omitempty" json:"type,omitempty"`
	Ref  string `yaml:"$ref,omitempty" json:"$ref,omitempty"`

	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Deprecated  bool   `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`

	// Object
	Properties           *Properties `yaml:"properties,omitempty" json:"properties,omitempty"`
	Required             []string    `yaml:"required,omitempty" json:"required,omitempty"`
	AdditionalProperties *Node       `yaml:"additionalProperties,omitempty" json:"additionalProperties,omitempty"`

	// Array, tuple, enum and untyped composites
	Items           []*Node         `yaml:"items,omitempty" json:"items,omitempty"`
	LogicalOperator LogicalOperator `yaml:"logicalOperator,omitempty" json:"logicalOperator,omitempty"`
	MinItems        *int            `yaml:"minItems,omitempty" json:"minItems,omitempty"`
	MaxItems        *int            `yaml:"maxItems,omitempty" json:"maxItems,omitempty"`

	Const   any    `yaml:"const,omitempty" json:"const,omitempty"`
	Default any    `yaml:"default,omitempty" json:"default,omitempty"`
	Format  string `yaml:"format,omitempty" json:"format,omitempty"`

	// String
	Pattern   string `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	MinLength *int   `yaml:"minLength,omitempty" json:"minLength,omitempty"`
	MaxLength *int   `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`

	// Number
	Minimum          *float64 `yaml:"minimum,omitempty" json:"minimum,omitempty"`
	Maximum          *float64 `yaml:"maximum,omitempty" json:"maximum,omitempty"`
	ExclusiveMinimum *float64 `yaml:"exclusiveMinimum,omitempty" json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *float64 `yaml:"exclusiveMaximum,omitempty" json:"exclusiveMaximum,omitempty"`

	// Circular is an upstream hint that this $ref takes part in a cycle.
	// The walker never relies on it for termination.
	Circular    bool        `yaml:"circular,omitempty" json:"circular,omitempty"`
	AccessScope AccessScope `yaml:"accessScope,omitempty" json:"accessScope,omitempty"`

	// hasConst and hasDefault distinguish an explicit null from an absent value.
	hasConst   bool
	hasDefault bool
}

// HasRef reports whether the node is a reference.
func (n *Node) HasRef() bool {
	return n != nil && n.Ref != ""
}

// HasConst reports whether a const value was given, including null.
func (n *Node) HasConst() bool {
	return n != nil && (n.hasConst || n.Const != nil)
}

// HasDefault reports whether a default value was given, including null.
func (n *Node) HasDefault() bool {
	return n != nil && (n.hasDefault || n.Default != nil)
}

// SetConst sets the const value. A nil value marks an explicit null const.
func (n *Node) SetConst(v any) {
	n.Const = v
	n.hasConst = true
}

// SetDefault sets the default value. A nil value marks an explicit null default.
func (n *Node) SetDefault(v any) {
	n.Default = v
	n.hasDefault = true
}

// IsRequired reports whether name is listed as a required property.
func (n *Node) IsRequired(name string) bool {
	for _, r := range n.Required {
		if r == name {
			return true
		}
	}
	return false
}

// IsComposite reports whether the node is an object, array or tuple.
// Composite members are never merged by deduplication.
func (n *Node) IsComposite() bool {
	switch n.Type {
	case ShapeObject, ShapeArray, ShapeTuple:
		return true
	}
	return false
}

// Operator returns the logical operator, defaulting to OperatorOr.
func (n *Node) Operator() LogicalOperator {
	if n.LogicalOperator == "" {
		return OperatorOr
	}
	return n.LogicalOperator
}

// Clone returns a shallow copy. Child nodes are shared.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	if n.Items != nil {
		c.Items = append([]*Node(nil), n.Items...)
	}
	if n.Required != nil {
		c.Required = append([]string(nil), n.Required...)
	}
	return &c
}

// UnmarshalYAML normalizes the shorthand forms accepted in graph documents
// before decoding: a single items mapping becomes a one-element list,
// additionalProperties: true becomes an unknown node and false drops the key.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.MappingNode {
		value = normalizeNode(value)
	}

	type rawNode Node
	if err := value.Decode((*rawNode)(n)); err != nil {
		return err
	}

	if value.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(value.Content); i += 2 {
			key, val := value.Content[i].Value, value.Content[i+1]
			isNull := val.Kind == yaml.ScalarNode && val.Tag == "!!null"
			switch key {
			case "const":
				n.hasConst = true
				if isNull {
					n.Const = nil
				}
			case "default":
				n.hasDefault = true
				if isNull {
					n.Default = nil
				}
			}
		}
	}
	return nil
}

func normalizeNode(value *yaml.Node) *yaml.Node {
	var out *yaml.Node
	ensureCopy := func() {
		if out == nil {
			cp := *value
			cp.Content = append([]*yaml.Node(nil), value.Content...)
			out = &cp
		}
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		switch key.Value {
		case "items":
			if val.Kind == yaml.MappingNode {
				ensureCopy()
				out.Content[i+1] = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: []*yaml.Node{val}}
			}
		case "additionalProperties":
			if val.Kind == yaml.ScalarNode && val.Tag == "!!bool" {
				ensureCopy()
				if val.Value == "true" {
					out.Content[i+1] = &yaml.Node{
						Kind: yaml.MappingNode,
						Tag:  "!!map",
						Content: []*yaml.Node{
							{Kind: yaml.ScalarNode, Tag: "!!str", Value: "type"},
							{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(ShapeUnknown)},
						},
					}
				} else {
					out.Content[i+1] = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
				}
			}
		}
	}

	if out == nil {
		return value
	}
	return out
}
