package walker

import (
	"context"
	"errors"
	"fmt"

	"github.com/erraggy/oasgen/graph"
	"github.com/erraggy/oasgen/internal/issues"
	"github.com/erraggy/oasgen/internal/schemautil"
	"github.com/erraggy/oasgen/internal/severity"
	"github.com/erraggy/oasgen/oaserrors"
	"github.com/erraggy/oasgen/symbols"
)

const (
	infoIssue     = severity.SeverityInfo
	warningIssue  = severity.SeverityWarning
	criticalIssue = severity.SeverityCritical
)

// Walker resolves entities of one schema graph into one File.
// A Walker is not safe for concurrent use.
type Walker struct {
	resolver graph.Resolver
	emitter  Emitter
	file     *symbols.File

	naming    Naming
	overrides Naming
	logger    graph.Logger
	maxDepth  int
	ctx       context.Context
	onSkipped SchemaSkippedHandler

	entity *Entity
	issues []issues.Issue
}

// New creates a Walker that writes em's declarations into file.
func New(resolver graph.Resolver, em Emitter, file *symbols.File, opts ...Option) *Walker {
	w := &Walker{
		resolver:  resolver,
		emitter:   em,
		file:      file,
		overrides: make(Naming),
		logger:    graph.NopLogger{},
		maxDepth:  DefaultMaxDepth,
		ctx:       context.Background(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.naming = em.Naming().Merge(w.overrides)
	w.logger = w.logger.With("flavor", em.Flavor())
	if imp, ok := em.(Importer); ok {
		w.reserveImports(imp.Imports())
	}
	return w
}

// reserveImports records imports on the file and claims their local names.
func (w *Walker) reserveImports(imports []symbols.Import) {
	for _, imp := range imports {
		w.file.AddImport(imp)
		ns := symbols.NamespaceValue
		if imp.TypeOnly {
			ns = symbols.NamespaceType
		}
		names := imp.Names
		if imp.Namespace != "" {
			names = []string{imp.Namespace}
		}
		for _, name := range names {
			w.file.Registry(ns).Register("import:"+imp.Module+"#"+name, name)
		}
	}
}

// File returns the file the walker writes into.
func (w *Walker) File() *symbols.File {
	return w.file
}

// Emitter returns the walker's emitter.
func (w *Walker) Emitter() Emitter {
	return w.emitter
}

// Issues returns the issues recorded so far.
func (w *Walker) Issues() []issues.Issue {
	return w.issues
}

// ResolveComponent resolves the component schema with the given $ref id.
// Resolving an id again returns the same symbol.
func (w *Walker) ResolveComponent(id string) (*symbols.Symbol, error) {
	if sym, ok := w.file.ByID(id, w.emitter.Namespace()); ok && sym.Finished() {
		return sym, nil
	}
	node, err := w.resolver.ResolveRef(id)
	if err != nil {
		return nil, w.fail(id, err)
	}
	return w.ResolveEntity(Entity{ID: id, Name: graph.RefToName(id), Kind: KindDefinition, Node: node})
}

// ResolveEntity resolves a top-level entity. An UnresolvedReference aborts
// the entity; symbols finished before the failure are kept.
func (w *Walker) ResolveEntity(e Entity) (*symbols.Symbol, error) {
	if err := w.ctx.Err(); err != nil {
		return nil, fmt.Errorf("walker: %s: %w", e.ID, err)
	}
	if e.Kind == "" {
		e.Kind = KindDefinition
	}
	w.entity = &e
	defer func() { w.entity = nil }()

	sym, err := w.resolveEntity(&e, NewState(e.ID))
	if err != nil {
		return nil, w.fail(e.ID, err)
	}
	return sym, nil
}

// fail tags a reference error with the entity and records it.
func (w *Walker) fail(entity string, err error) error {
	var refErr *oaserrors.ReferenceError
	if errors.As(err, &refErr) && refErr.Entity == "" {
		refErr.Entity = entity
	}
	w.addIssue(entity, criticalIssue, err.Error())
	return err
}

// resolveEntity names, resolves and declares one entity. A symbol that is
// already named is returned as is, finished or not: an unfinished one is
// being built further up the stack.
func (w *Walker) resolveEntity(e *Entity, state *State) (*symbols.Symbol, error) {
	ns := w.emitter.Namespace()
	if sym, ok := w.file.ByID(e.ID, ns); ok && sym.Registered() {
		return sym, nil
	}

	sym, err := w.register(e.ID, e.Name, e.Kind)
	if err != nil {
		return nil, err
	}
	for k, v := range e.Meta {
		sym.Meta[k] = v
	}

	emission, err := w.Resolve(e.Node, state)
	if err != nil {
		return nil, err
	}

	decl := &Declaration{Symbol: sym, Entity: e, Emission: emission, File: w.file}
	value, ok := w.emitter.Declare(decl)
	if !ok {
		w.logger.Debug("declaration skipped", "id", e.ID, "kind", string(e.Kind))
		return sym, w.file.Skip(sym)
	}
	return sym, w.file.Finish(sym, value)
}

// register names the symbol for id with the policy of kind.
func (w *Walker) register(id, raw string, kind EntityKind) (*symbols.Symbol, error) {
	name, err := w.naming.Policy(kind).Apply(raw)
	if err != nil {
		return nil, err
	}
	sym, _ := w.file.Register(id, w.emitter.Namespace(), name, true)
	if sym.Meta == nil {
		sym.Meta = make(map[string]string)
	}
	sym.Meta["kind"] = string(kind)
	return sym, nil
}

// Resolve resolves node under state and applies the modifiers in order:
// read-only, optional, default.
func (w *Walker) Resolve(node *graph.Node, state *State) (Emission, error) {
	ctx := &Context{w: w, state: state, entity: w.entity}
	if node == nil {
		return w.emitter.Unknown(ctx), nil
	}
	node = flatten(node)

	e, err := w.dispatch(node, state, ctx)
	if err != nil {
		return Emission{}, err
	}
	e.HasCircularReference = e.HasCircularReference || ctx.circular
	e.HasLazyExpression = e.HasLazyExpression || ctx.lazy

	if node.AccessScope == graph.ScopeRead {
		e = w.emitter.Readonly(e)
		e.Readonly = true
	}
	if state.Optional {
		e = w.emitter.Optional(e)
		e.Optional = true
	}
	if node.HasDefault() {
		e = w.emitter.Default(e, node)
	}
	return e, nil
}

func (w *Walker) dispatch(node *graph.Node, state *State, ctx *Context) (Emission, error) {
	if state.Depth > w.maxDepth {
		w.logger.Warn("maximum depth exceeded", "path", state.Path(), "depth", state.Depth)
		w.addIssue(state.Path(), warningIssue, fmt.Sprintf("maximum depth %d exceeded; emitted unknown", w.maxDepth))
		w.skipped("depth", node, state)
		return w.emitter.Unknown(ctx), nil
	}

	switch {
	case node.Ref != "":
		return w.resolveRef(node, state)
	case node.Type != "":
		return w.emitter.Shape(node, ctx)
	case len(node.Items) > 0:
		return w.resolveMembers(node, ctx)
	}
	w.logger.Debug("unsupported shape", "path", state.Path())
	w.addIssue(state.Path(), infoIssue, "node has no $ref, type or members; emitted unknown")
	w.skipped("unsupported", node, state)
	return w.emitter.Unknown(ctx), nil
}

// flatten deduplicates an anonymous composite. A composite reduced to one
// member is replaced by that member, repeatedly, so the result is either a
// composite of several members or a plain node.
func flatten(node *graph.Node) *graph.Node {
	for node.Ref == "" && node.Type == "" && len(node.Items) > 0 {
		if len(schemautil.DeduplicateMembers(node.Items)) > 1 {
			return schemautil.Deduplicate(node)
		}
		node = schemautil.Deduplicate(node)
	}
	return node
}

func (w *Walker) resolveMembers(node *graph.Node, ctx *Context) (Emission, error) {
	members := make([]Emission, 0, len(node.Items))
	for i, item := range node.Items {
		e, err := ctx.ResolveItem(i, item)
		if err != nil {
			return Emission{}, err
		}
		members = append(members, e)
	}
	if len(members) == 1 {
		return members[0], nil
	}
	if node.Operator() == graph.OperatorAnd {
		return w.emitter.Intersection(members, node.Items, ctx), nil
	}
	return w.emitter.Union(members, node.Items, ctx), nil
}

func (w *Walker) resolveRef(node *graph.Node, state *State) (Emission, error) {
	ref := node.Ref
	isCyclic := state.PathStack.Contains(ref)
	isSelf := state.AncestorStack.Contains(ref)

	state.PathStack.Push(ref)
	state.AncestorStack.Push(ref)
	defer func() {
		state.PathStack.Pop()
		state.AncestorStack.Pop()
	}()

	if isCyclic {
		sym, err := w.ensureSymbol(ref)
		if err != nil {
			return Emission{}, err
		}
		var e Emission
		if isSelf {
			e = w.emitter.Lazy(sym)
			e.HasLazyExpression = true
			if e.TypeHint != "" && sym.TypeHint == "" {
				sym.TypeHint = e.TypeHint
			}
		} else {
			e = w.emitter.Reference(sym)
		}
		e.HasCircularReference = isSelf || node.Circular
		return e, nil
	}

	ns := w.emitter.Namespace()
	if sym, ok := w.file.ByID(ref, ns); ok && sym.Finished() {
		e := w.emitter.Reference(sym)
		e.HasCircularReference = node.Circular
		return e, nil
	}

	target, err := w.resolver.ResolveRef(ref)
	if err != nil {
		return Emission{}, err
	}
	sym, err := w.resolveEntity(&Entity{
		ID:   ref,
		Name: graph.RefToName(ref),
		Kind: KindDefinition,
		Node: target,
	}, state.nested(ref))
	if err != nil {
		return Emission{}, err
	}
	e := w.emitter.Reference(sym)
	e.HasCircularReference = node.Circular
	return e, nil
}

// ensureSymbol returns the symbol of ref, naming it if it has no name yet.
// Its body is left to the caller that is already building it.
func (w *Walker) ensureSymbol(ref string) (*symbols.Symbol, error) {
	sym := w.file.Reference(ref, w.emitter.Namespace())
	if sym.Registered() {
		return sym, nil
	}
	return w.register(ref, graph.RefToName(ref), KindDefinition)
}

func (w *Walker) skipped(reason string, node *graph.Node, state *State) {
	if w.onSkipped != nil {
		w.onSkipped(reason, node, state.Path())
	}
}

func (w *Walker) addIssue(path string, sev severity.Severity, msg string) {
	issue := issues.Issue{
		Path:     path,
		Flavor:   w.emitter.Flavor(),
		Message:  msg,
		Severity: sev,
	}
	if w.entity != nil {
		issue.Entity = w.entity.ID
	}
	w.issues = append(w.issues, issue)
}
