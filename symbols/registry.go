package symbols

import (
	"strconv"
	"strings"
)

// Namespace separates declarations from runtime values. Names may repeat
// across namespaces but never within one.
type Namespace uint8

const (
	// NamespaceType holds static type declarations.
	NamespaceType Namespace = iota
	// NamespaceValue holds runtime expressions such as validator schemas.
	NamespaceValue
)

// String returns the namespace name.
func (n Namespace) String() string {
	switch n {
	case NamespaceType:
		return "type"
	case NamespaceValue:
		return "value"
	default:
		return "unknown"
	}
}

// Registry allocates collision-free names for ids within one namespace of
// one File.
//
// Names are compared case-insensitively, so "Status" and "status" collide;
// the allocated name keeps the candidate's casing.
type Registry struct {
	byKey map[string]entry
	byID  map[string]string
}

type entry struct {
	id   string
	name string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byKey: make(map[string]entry),
		byID:  make(map[string]string),
	}
}

// Register binds id to candidate, or to candidate2, candidate3, ... when
// the candidate is taken by a different id. An id that already has a name
// keeps it and created is false.
func (r *Registry) Register(id, candidate string) (created bool, name string) {
	if existing, ok := r.byID[id]; ok {
		return false, existing
	}

	name = candidate
	for count := 2; ; count++ {
		e, taken := r.byKey[strings.ToLower(name)]
		if !taken {
			break
		}
		if e.id == id {
			return false, e.name
		}
		name = candidate + strconv.Itoa(count)
	}

	r.byKey[strings.ToLower(name)] = entry{id: id, name: name}
	r.byID[id] = name
	return true, name
}

// Lookup returns the name allocated for id without allocating.
func (r *Registry) Lookup(id string) (string, bool) {
	name, ok := r.byID[id]
	return name, ok
}

// Owner returns the id bound to name.
func (r *Registry) Owner(name string) (string, bool) {
	e, ok := r.byKey[strings.ToLower(name)]
	return e.id, ok
}

// Len returns the number of allocated names.
func (r *Registry) Len() int {
	return len(r.byID)
}
