package schemautil

import (
	"hash"
	"hash/fnv"
	"sort"
	"strconv"

	"github.com/erraggy/oasgen/graph"
)

// SchemaHasher computes structural hashes for nodes.
// Structural hashes ignore metadata (title, description, deprecated) and
// focus on fields that change the generated shape.
type SchemaHasher struct {
	visited map[*graph.Node]bool
}

// NewSchemaHasher creates a new SchemaHasher.
func NewSchemaHasher() *SchemaHasher {
	return &SchemaHasher{visited: make(map[*graph.Node]bool)}
}

// Hash computes a structural hash for n.
// Hash collisions are possible; compare structurally to confirm equivalence.
func (h *SchemaHasher) Hash(n *graph.Node) uint64 {
	clear(h.visited)
	hasher := fnv.New64a()
	h.hashNode(hasher, n)
	return hasher.Sum64()
}

// GroupByHash groups named nodes by structural hash. Names inside a group
// keep the order of names.
func (h *SchemaHasher) GroupByHash(names []string, lookup func(string) *graph.Node) map[uint64][]string {
	groups := make(map[uint64][]string)
	for _, name := range names {
		sum := h.Hash(lookup(name))
		groups[sum] = append(groups[sum], name)
	}
	return groups
}

// StructuralHash is a convenience wrapper around a fresh SchemaHasher.
func StructuralHash(n *graph.Node) uint64 {
	return NewSchemaHasher().Hash(n)
}

func (h *SchemaHasher) hashNode(hasher hash.Hash64, n *graph.Node) {
	if n == nil {
		h.writeString(hasher, "nil")
		return
	}
	if h.visited[n] {
		h.writeString(hasher, "circular")
		return
	}
	h.visited[n] = true
	defer func() { h.visited[n] = false }()

	if n.Ref != "" {
		h.writeString(hasher, "$ref:"+n.Ref)
		return
	}

	h.writeString(hasher, "type:"+string(n.Type))
	h.writeString(hasher, "format:"+n.Format)
	h.writeString(hasher, "pattern:"+n.Pattern)
	h.writeString(hasher, "operator:"+string(n.LogicalOperator))
	h.writeString(hasher, "scope:"+string(n.AccessScope))

	if n.HasConst() {
		h.writeString(hasher, "const:"+encodeConst(n.Const))
	}
	if n.HasDefault() {
		h.writeString(hasher, "default:"+encodeConst(n.Default))
	}

	if len(n.Required) > 0 {
		h.writeString(hasher, "required:")
		sorted := append([]string(nil), n.Required...)
		sort.Strings(sorted)
		for _, r := range sorted {
			h.writeString(hasher, r)
		}
	}

	if n.Properties.Len() > 0 {
		h.writeString(hasher, "properties:")
		keys := append([]string(nil), n.Properties.Keys()...)
		sort.Strings(keys)
		for _, k := range keys {
			child, _ := n.Properties.Get(k)
			h.writeString(hasher, k)
			h.hashNode(hasher, child)
		}
	}

	if n.AdditionalProperties != nil {
		h.writeString(hasher, "additionalProperties:")
		h.hashNode(hasher, n.AdditionalProperties)
	}

	// Member order is significant for tuples and unions alike.
	if len(n.Items) > 0 {
		h.writeString(hasher, "items:")
		for _, item := range n.Items {
			h.hashNode(hasher, item)
		}
	}

	h.writeInt(hasher, "minLength", n.MinLength)
	h.writeInt(hasher, "maxLength", n.MaxLength)
	h.writeInt(hasher, "minItems", n.MinItems)
	h.writeInt(hasher, "maxItems", n.MaxItems)
	h.writeFloat(hasher, "minimum", n.Minimum)
	h.writeFloat(hasher, "maximum", n.Maximum)
	h.writeFloat(hasher, "exclusiveMinimum", n.ExclusiveMinimum)
	h.writeFloat(hasher, "exclusiveMaximum", n.ExclusiveMaximum)
}

func (h *SchemaHasher) writeInt(hasher hash.Hash64, key string, v *int) {
	if v != nil {
		h.writeString(hasher, key+":"+strconv.Itoa(*v))
	}
}

func (h *SchemaHasher) writeFloat(hasher hash.Hash64, key string, v *float64) {
	if v != nil {
		h.writeString(hasher, key+":"+strconv.FormatFloat(*v, 'g', -1, 64))
	}
}

func (h *SchemaHasher) writeString(hasher hash.Hash64, s string) {
	_, _ = hasher.Write([]byte(s))
	_, _ = hasher.Write([]byte{0})
}
