package symbols

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrAlreadyFinished is returned when a symbol's value is set twice.
var ErrAlreadyFinished = errors.New("symbols: symbol already finished")

// Placeholder is an interned handle to a Symbol. It can be embedded in
// expression text before the symbol is named or finished; File.Render swaps
// it for the final name.
type Placeholder uint32

const placeholderMark = "\x00"

// String returns the token form embedded in expression text. The NUL bytes
// cannot occur in encoded literals, so tokens never clash with user data.
func (p Placeholder) String() string {
	return placeholderMark + "sym:" + strconv.FormatUint(uint64(p), 10) + placeholderMark
}

// Symbol is a named output declaration bound to one id.
type Symbol struct {
	ID          string
	Namespace   Namespace
	Name        string
	Placeholder Placeholder
	Exported    bool
	// TypeHint is the static type a flavor needs when referring to the
	// symbol before it is finished.
	TypeHint string
	// Meta carries flavor-specific annotations such as the entity kind.
	Meta map[string]string

	value    string
	finished bool
	skipped  bool
}

// Value returns the finished declaration text.
func (s *Symbol) Value() string { return s.value }

// Registered reports whether the symbol has a name.
func (s *Symbol) Registered() bool { return s.Name != "" }

// Finished reports whether the symbol's value has been set or skipped.
func (s *Symbol) Finished() bool { return s.finished }

// Skipped reports whether the symbol finished with nothing to emit.
func (s *Symbol) Skipped() bool { return s.skipped }

// Ref returns the placeholder token for use in expression text.
func (s *Symbol) Ref() string { return s.Placeholder.String() }

// Import is a module import of the generated file.
type Import struct {
	Module string
	// Names are named imports; Namespace is a `* as X` import.
	Names     []string
	Namespace string
	TypeOnly  bool
}

type symbolKey struct {
	ns Namespace
	id string
}

// File is the emission target of one flavor for one run: an arena of
// symbols, the namespace registries and the ordered declaration list.
// It is not safe for concurrent use.
type File struct {
	Name string

	arena      []*Symbol
	index      map[symbolKey]*Symbol
	registries map[Namespace]*Registry
	order      []*Symbol
	imports    map[string]*Import
}

// NewFile returns an empty File.
func NewFile(name string) *File {
	return &File{
		Name:  name,
		index: make(map[symbolKey]*Symbol),
		registries: map[Namespace]*Registry{
			NamespaceType:  NewRegistry(),
			NamespaceValue: NewRegistry(),
		},
		imports: make(map[string]*Import),
	}
}

// Registry returns the registry of ns.
func (f *File) Registry(ns Namespace) *Registry {
	return f.registries[ns]
}

// Reference returns the symbol for (id, ns), creating an unnamed,
// placeholder-only stub when none exists yet.
func (f *File) Reference(id string, ns Namespace) *Symbol {
	key := symbolKey{ns: ns, id: id}
	if sym, ok := f.index[key]; ok {
		return sym
	}
	sym := &Symbol{
		ID:          id,
		Namespace:   ns,
		Placeholder: Placeholder(len(f.arena)),
	}
	f.arena = append(f.arena, sym)
	f.index[key] = sym
	return sym
}

// Register names the symbol for (id, ns). created is false when the id was
// already named, in which case the existing symbol is returned unchanged.
func (f *File) Register(id string, ns Namespace, candidate string, exported bool) (*Symbol, bool) {
	sym := f.Reference(id, ns)
	created, name := f.registries[ns].Register(id, candidate)
	if sym.Name == "" {
		sym.Name = name
		sym.Exported = exported
	}
	return sym, created
}

// ByID returns the symbol for (id, ns) without creating one.
func (f *File) ByID(id string, ns Namespace) (*Symbol, bool) {
	sym, ok := f.index[symbolKey{ns: ns, id: id}]
	return sym, ok
}

// Lookup returns the name allocated for id in ns.
func (f *File) Lookup(id string, ns Namespace) (string, bool) {
	return f.registries[ns].Lookup(id)
}

// Finish sets the symbol's value and appends it to the declaration list.
func (f *File) Finish(sym *Symbol, value string) error {
	if sym.finished {
		return fmt.Errorf("%w: %s %s", ErrAlreadyFinished, sym.Namespace, sym.ID)
	}
	sym.value = value
	sym.finished = true
	f.order = append(f.order, sym)
	return nil
}

// Skip finishes the symbol without a value. Skipped symbols are not part
// of the declaration list.
func (f *File) Skip(sym *Symbol) error {
	if sym.finished {
		return fmt.Errorf("%w: %s %s", ErrAlreadyFinished, sym.Namespace, sym.ID)
	}
	sym.finished = true
	sym.skipped = true
	return nil
}

// Symbols returns the finished declarations in finish order.
func (f *File) Symbols() []*Symbol {
	return f.order
}

// Len returns the number of symbols in the arena, including stubs.
func (f *File) Len() int {
	return len(f.arena)
}

// AddImport records an import. Named imports from the same module merge.
func (f *File) AddImport(imp Import) {
	key := imp.Module
	if imp.Namespace != "" {
		key += " as " + imp.Namespace
	}
	if imp.TypeOnly {
		key += " (type)"
	}
	existing, ok := f.imports[key]
	if !ok {
		cp := imp
		cp.Names = append([]string(nil), imp.Names...)
		f.imports[key] = &cp
		return
	}
	for _, name := range imp.Names {
		if !containsString(existing.Names, name) {
			existing.Names = append(existing.Names, name)
		}
	}
}

// Imports returns the recorded imports sorted by module, with names sorted.
func (f *File) Imports() []Import {
	keys := make([]string, 0, len(f.imports))
	for k := range f.imports {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Import, 0, len(keys))
	for _, k := range keys {
		imp := *f.imports[k]
		imp.Names = append([]string(nil), imp.Names...)
		sort.Strings(imp.Names)
		out = append(out, imp)
	}
	return out
}

// Render replaces placeholder tokens in text with symbol names. A stub
// that never received a name renders as its id's last path segment.
func (f *File) Render(text string) string {
	if !strings.Contains(text, placeholderMark) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for {
		start := strings.Index(text, placeholderMark+"sym:")
		if start < 0 {
			b.WriteString(text)
			return b.String()
		}
		rest := text[start+len(placeholderMark)+len("sym:"):]
		end := strings.Index(rest, placeholderMark)
		if end < 0 {
			b.WriteString(text)
			return b.String()
		}
		b.WriteString(text[:start])
		n, err := strconv.ParseUint(rest[:end], 10, 32)
		if err != nil || int(n) >= len(f.arena) {
			b.WriteString(text[start : start+len(placeholderMark)+len("sym:")+end+len(placeholderMark)])
		} else {
			b.WriteString(f.arena[n].displayName())
		}
		text = rest[end+len(placeholderMark):]
	}
}

func (s *Symbol) displayName() string {
	if s.Name != "" {
		return s.Name
	}
	if i := strings.LastIndex(s.ID, "/"); i >= 0 {
		return s.ID[i+1:]
	}
	return s.ID
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
