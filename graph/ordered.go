package graph

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"
)

// OrderedMap is a string-keyed map that remembers insertion order.
// Property and component iteration must follow source order so repeated
// runs produce byte-identical output.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

// Properties maps property names to their schemas in source order.
type Properties = OrderedMap[*Node]

// NewOrderedMap returns an empty map.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{values: make(map[string]V)}
}

// Set adds or replaces key. Replacing keeps the original position.
func (m *OrderedMap[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	var zero V
	if m == nil {
		return zero, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Each calls fn for every entry in insertion order until fn returns false.
func (m *OrderedMap[V]) Each(fn func(key string, value V) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// UnmarshalYAML decodes a mapping while keeping key order.
func (m *OrderedMap[V]) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping, got %s", value.Line, value.ShortTag())
	}
	m.keys = make([]string, 0, len(value.Content)/2)
	m.values = make(map[string]V, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var v V
		if err := value.Content[i+1].Decode(&v); err != nil {
			return fmt.Errorf("%s: %w", value.Content[i].Value, err)
		}
		m.Set(value.Content[i].Value, v)
	}
	return nil
}

// MarshalYAML encodes the map as a mapping in insertion order.
func (m *OrderedMap[V]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.Keys() {
		var val yaml.Node
		if err := val.Encode(m.values[k]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, &val)
	}
	return node, nil
}

// MarshalJSON encodes the map as an object in insertion order.
func (m *OrderedMap[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
