package walker

// RefTracker is a LIFO stack of $ref ids.
type RefTracker struct {
	refs []string
}

// NewRefTracker returns a tracker seeded with refs.
func NewRefTracker(refs ...string) *RefTracker {
	return &RefTracker{refs: append([]string(nil), refs...)}
}

// Push adds ref on top.
func (t *RefTracker) Push(ref string) {
	t.refs = append(t.refs, ref)
}

// Pop removes the top ref. Popping an empty tracker is a no-op.
func (t *RefTracker) Pop() {
	if len(t.refs) > 0 {
		t.refs = t.refs[:len(t.refs)-1]
	}
}

// Contains reports whether ref is on the stack.
func (t *RefTracker) Contains(ref string) bool {
	for i := len(t.refs) - 1; i >= 0; i-- {
		if t.refs[i] == ref {
			return true
		}
	}
	return false
}

// Len returns the stack height.
func (t *RefTracker) Len() int {
	return len(t.refs)
}

// Refs returns a copy of the stack, bottom first.
func (t *RefTracker) Refs() []string {
	return append([]string(nil), t.refs...)
}

// State is the recursion state of one resolve call.
//
// The trackers are shared between a state and the states derived from it;
// Optional, Depth and the diagnostic path are per call.
type State struct {
	// PathStack holds every ref being resolved anywhere under the current
	// top-level entity.
	PathStack *RefTracker
	// AncestorStack holds the refs on the current component's call chain.
	AncestorStack *RefTracker
	// Optional is set when resolving an optional object property.
	Optional bool
	// Depth counts nested resolve calls under the current entity.
	Depth int

	path string
}

// NewState returns the state of a top-level entity: both trackers hold id.
func NewState(id string) *State {
	return &State{
		PathStack:     NewRefTracker(id),
		AncestorStack: NewRefTracker(id),
		path:          id,
	}
}

// nested returns the state for resolving the component id from inside
// another entity. The path stack is shared so cycles through any branch
// are seen; the ancestor stack restarts at id.
func (s *State) nested(id string) *State {
	return &State{
		PathStack:     s.PathStack,
		AncestorStack: NewRefTracker(id),
		Depth:         s.Depth,
		path:          id,
	}
}

// child returns the state for a child node reached through segments.
func (s *State) child(optional bool, segments ...string) *State {
	c := *s
	c.Optional = optional
	c.Depth = s.Depth + 1
	for _, seg := range segments {
		c.path += "/" + seg
	}
	return &c
}

// Path returns the JSON pointer of the node being resolved.
func (s *State) Path() string {
	return s.path
}
