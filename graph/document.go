package graph

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasgen/oaserrors"
)

// Resolver dereferences $ref ids against the schema graph.
// A missing id must produce an error that matches oaserrors.ErrReference.
type Resolver interface {
	ResolveRef(ref string) (*Node, error)
}

// Document is a normalized schema graph: component schemas plus the
// operations and webhooks that reference them.
type Document struct {
	Components Components   `yaml:"components" json:"components"`
	Operations []*Operation `yaml:"operations,omitempty" json:"operations,omitempty"`
	Webhooks   []*Webhook   `yaml:"webhooks,omitempty" json:"webhooks,omitempty"`
}

// Components holds the named, referenceable schemas.
type Components struct {
	Schemas *Properties `yaml:"schemas,omitempty" json:"schemas,omitempty"`
}

// ParameterLocation is where an operation parameter is sent.
type ParameterLocation string

const (
	InPath   ParameterLocation = "path"
	InQuery  ParameterLocation = "query"
	InHeader ParameterLocation = "header"
	InCookie ParameterLocation = "cookie"
)

// Parameter is a single operation parameter.
type Parameter struct {
	Name     string            `yaml:"name" json:"name"`
	In       ParameterLocation `yaml:"in" json:"in"`
	Required bool              `yaml:"required,omitempty" json:"required,omitempty"`
	Schema   *Node             `yaml:"schema,omitempty" json:"schema,omitempty"`
}

// Body is an operation or webhook request body.
type Body struct {
	Required  bool   `yaml:"required,omitempty" json:"required,omitempty"`
	MediaType string `yaml:"mediaType,omitempty" json:"mediaType,omitempty"`
	Schema    *Node  `yaml:"schema" json:"schema"`
}

// Response is a single operation response.
type Response struct {
	MediaType string `yaml:"mediaType,omitempty" json:"mediaType,omitempty"`
	Schema    *Node  `yaml:"schema,omitempty" json:"schema,omitempty"`
}

// Operation is one API operation. ID is its stable entity id.
type Operation struct {
	ID         string                 `yaml:"id" json:"id"`
	Method     string                 `yaml:"method" json:"method"`
	Path       string                 `yaml:"path" json:"path"`
	Parameters []*Parameter           `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Body       *Body                  `yaml:"body,omitempty" json:"body,omitempty"`
	Responses  *OrderedMap[*Response] `yaml:"responses,omitempty" json:"responses,omitempty"`
}

// Webhook is an incoming event definition.
type Webhook struct {
	Name   string `yaml:"name" json:"name"`
	Method string `yaml:"method,omitempty" json:"method,omitempty"`
	Body   *Body  `yaml:"body,omitempty" json:"body,omitempty"`
}

// Schema returns the component schema with the given name.
func (d *Document) Schema(name string) (*Node, bool) {
	return d.Components.Schemas.Get(name)
}

// ComponentIDs returns the $ref ids of all component schemas in source order.
func (d *Document) ComponentIDs() []string {
	names := d.Components.Schemas.Keys()
	ids := make([]string, 0, len(names))
	for _, name := range names {
		ids = append(ids, ComponentRef(name))
	}
	return ids
}

// AddSchema appends a component schema.
func (d *Document) AddSchema(name string, n *Node) {
	if d.Components.Schemas == nil {
		d.Components.Schemas = NewOrderedMap[*Node]()
	}
	d.Components.Schemas.Set(name, n)
}

// ResolveRef implements Resolver. Besides component refs it follows
// pointers into a component through properties, items and
// additionalProperties.
func (d *Document) ResolveRef(ref string) (*Node, error) {
	if !strings.HasPrefix(ref, ComponentPrefix) {
		return nil, oaserrors.Unresolved(ref)
	}
	path := JSONPointerToPath(ref)
	if len(path) < 3 {
		return nil, oaserrors.Unresolved(ref)
	}
	node, ok := d.Schema(path[2])
	if !ok || node == nil {
		return nil, oaserrors.Unresolved(ref)
	}

	rest := path[3:]
	for len(rest) > 0 {
		switch rest[0] {
		case "properties":
			if len(rest) < 2 {
				return nil, oaserrors.Unresolved(ref)
			}
			node, ok = node.Properties.Get(rest[1])
			rest = rest[2:]
		case "items":
			if len(rest) < 2 {
				return nil, oaserrors.Unresolved(ref)
			}
			idx, err := strconv.Atoi(rest[1])
			ok = err == nil && idx >= 0 && idx < len(node.Items)
			if ok {
				node = node.Items[idx]
			}
			rest = rest[2:]
		case "additionalProperties":
			node, ok = node.AdditionalProperties, node.AdditionalProperties != nil
			rest = rest[1:]
		default:
			ok = false
		}
		if !ok || node == nil {
			return nil, oaserrors.Unresolved(ref)
		}
	}
	return node, nil
}

var _ Resolver = (*Document)(nil)

// Load reads and decodes a schema-graph document from a file, or from
// stdin when path is "-".
func Load(path string) (*Document, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "failed to read document", Cause: err}
	}
	doc, err := Parse(data)
	if err != nil {
		var pe *oaserrors.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// Parse decodes a YAML or JSON schema-graph document and computes
// circular hints for its component references.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &oaserrors.ParseError{Message: "invalid document", Cause: err}
	}
	if doc.Components.Schemas == nil {
		doc.Components.Schemas = NewOrderedMap[*Node]()
	}
	for i, op := range doc.Operations {
		if op == nil || op.ID == "" {
			return nil, &oaserrors.ParseError{Message: fmt.Sprintf("operations[%d]: missing id", i)}
		}
	}
	for i, wh := range doc.Webhooks {
		if wh == nil || wh.Name == "" {
			return nil, &oaserrors.ParseError{Message: fmt.Sprintf("webhooks[%d]: missing name", i)}
		}
	}
	MarkCircular(&doc)
	return &doc, nil
}
