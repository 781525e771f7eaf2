// Package heuristic implements the interleaving heuristic's engine (§4.5,
// §4.6): the expression visitor that walks a typed AST, couples symbolic
// variables into the union-find whenever an operation requires their bits
// interleaved, and returns the resulting partition.
package heuristic

import (
	"fmt"
	"sort"

	"github.com/symvar/interleave/expr"
	"github.com/symvar/interleave/result"
	"github.com/symvar/interleave/typedesc"
	"github.com/symvar/interleave/unionfind"
	"github.com/symvar/interleave/variable"
)

// UnsupportedForBddBackendError reports an expression kind the BDD backend
// cannot encode (§7). Kind names the rejected operator, never the AST's
// internal type name, so it can be surfaced verbatim in a diagnostic.
type UnsupportedForBddBackendError struct {
	Kind string
}

func (e *UnsupportedForBddBackendError) Error() string {
	return fmt.Sprintf("interleave: unsupported for BDD backend: %s", e.Kind)
}

// MissingArgumentError reports an ArgRef with no entry in the argument map
// passed to Compute.
type MissingArgumentError struct {
	ID string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("interleave: missing argument binding for %q", e.ID)
}

// Option configures an Engine. See NodeKeyFunc and MaxDepth.
type Option func(*Engine)

// NodeKeyFunc overrides how a node is memoized. By default a node is keyed
// by its own pointer identity (expr.Node is always a pointer to a concrete
// struct), which is correct whenever the caller's AST is structurally
// shared, per §3's "Memoization table" note. A caller building a fresh
// node per occurrence of a semantically identical sub-expression should
// supply a key function recovering a stable identity (e.g. a content
// hash) instead, or caching degrades to "by node identity only."
func NodeKeyFunc(f func(expr.Node) any) Option {
	return func(e *Engine) { e.nodeKey = f }
}

// MaxDepth bounds the recursion depth of eval. The engine's own rules never
// recurse unboundedly on a well-formed finite AST, so this exists purely
// as a guard against a caller-constructed cyclic AST (expr.Node has no
// cycle-prevention of its own); zero (the default) means unbounded.
func MaxDepth(n int) Option {
	return func(e *Engine) { e.maxDepth = n }
}

// Engine evaluates one root expression to a variable partition. It is
// single-use: Compute constructs a fresh Engine (via NewEngine) per call,
// matching §5's "one Compute call owns exclusively its union-find and
// cache."
type Engine struct {
	uf         *unionfind.UnionFind
	cache      map[any]result.Result
	emptyCache *typedesc.Cache[result.Result]
	args       map[string]expr.Node
	nodeKey    func(expr.Node) any
	maxDepth   int
	depth      int
}

// NewEngine constructs an Engine bound to the given argument-id -> node
// bindings, ready for one Compute call.
func NewEngine(args map[string]expr.Node, opts ...Option) *Engine {
	e := &Engine{
		uf:         unionfind.New(),
		cache:      make(map[any]result.Result),
		emptyCache: typedesc.NewCache[result.Result](),
		args:       args,
		nodeKey:    func(n expr.Node) any { return n },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compute evaluates root and returns the resulting partition as a list of
// equivalence classes (§6). It is the package's sole entry point for
// running an analysis; the exported VisitX methods exist so that Engine
// satisfies expr.Visitor.
func Compute(root expr.Node, args map[string]expr.Node, opts ...Option) ([][]*variable.Var, error) {
	e := NewEngine(args, opts...)
	if _, err := e.eval(root); err != nil {
		return nil, err
	}
	return e.uf.GetDisjointSets(), nil
}

// eval returns the cached/memoized result of n, computing it via n's
// Accept dispatch on first encounter.
func (e *Engine) eval(n expr.Node) (result.Result, error) {
	key := e.nodeKey(n)
	if r, ok := e.cache[key]; ok {
		return r, nil
	}
	if e.maxDepth > 0 {
		e.depth++
		if e.depth > e.maxDepth {
			return nil, fmt.Errorf("interleave: exceeded max recursion depth %d", e.maxDepth)
		}
		defer func() { e.depth-- }()
	}
	r, err := n.Accept(e)
	if err != nil {
		return nil, err
	}
	e.cache[key] = r
	return r, nil
}

// put overwrites the memo entry for n. Used only by VisitWithField, which
// must cache the rebuilt record under the *new* node's identity rather
// than mutating the source record's cache entry (§4.5, §9 "mutating
// immutable records").
func (e *Engine) put(n expr.Node, r result.Result) {
	e.cache[e.nodeKey(n)] = r
}

func (e *Engine) emptyOf(t *typedesc.T) result.Result {
	return result.EmptyOf(t, e.emptyCache)
}

// couple implements §4.6. When both operands are Records it recurses
// field-wise, coupling field a's variables with field a's counterpart
// only -- never with a sibling field's variables -- so that, e.g.,
// comparing two records couples corresponding fields and nothing else.
// The flat cross-product-and-union only applies once both sides have
// been narrowed down to Flat leaves.
func (e *Engine) couple(l, r result.Result) {
	lRec, lIsRecord := l.(*result.Record)
	rRec, rIsRecord := r.(*result.Record)
	if lIsRecord && rIsRecord {
		names := make([]string, 0, len(lRec.Fields))
		for name := range lRec.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			rf, ok := rRec.Fields[name]
			if !ok {
				continue
			}
			e.couple(lRec.Fields[name], rf)
		}
		return
	}

	lv := result.GetAllVariables(l).Slice()
	rv := result.GetAllVariables(r).Slice()

	if len(lv) == 0 || len(rv) == 0 {
		return
	}
	if allBoolean(lv) || allBoolean(rv) {
		return
	}
	for _, a := range lv {
		for _, b := range rv {
			if typedesc.Equal(a.Type(), b.Type()) {
				e.uf.Union(a, b)
			}
		}
	}
}

func allBoolean(vars []*variable.Var) bool {
	for _, v := range vars {
		if v.Type().Kind() != typedesc.Bool {
			return false
		}
	}
	return true
}

func (e *Engine) VisitConstant(c *expr.Constant) (result.Result, error) {
	return e.emptyOf(c.Typ), nil
}

func (e *Engine) VisitArbitrary(a *expr.Arbitrary) (result.Result, error) {
	e.uf.Add(a.Var)
	return result.NewFlat(a.Var), nil
}

func (e *Engine) VisitArgRef(a *expr.ArgRef) (result.Result, error) {
	bound, ok := e.args[a.ID]
	if !ok {
		return nil, &MissingArgumentError{ID: a.ID}
	}
	return e.eval(bound)
}

func (e *Engine) VisitEmptySeq(n *expr.EmptySeq) (result.Result, error) {
	return e.emptyOf(n.Type()), nil
}

func (e *Engine) VisitEmptyMap(n *expr.EmptyMap) (result.Result, error) {
	return nil, &UnsupportedForBddBackendError{Kind: "empty-map"}
}

func (e *Engine) VisitEmptySet(n *expr.EmptySet) (result.Result, error) {
	return e.emptyOf(n.Type()), nil
}

func (e *Engine) VisitLogical(l *expr.Logical) (result.Result, error) {
	lr, err := e.eval(l.Left)
	if err != nil {
		return nil, err
	}
	rr, err := e.eval(l.Right)
	if err != nil {
		return nil, err
	}
	return result.Union(lr, rr)
}

func (e *Engine) VisitNot(n *expr.Not) (result.Result, error) {
	return e.eval(n.X)
}

func (e *Engine) VisitArith(a *expr.Arith) (result.Result, error) {
	lr, err := e.eval(a.Left)
	if err != nil {
		return nil, err
	}
	rr, err := e.eval(a.Right)
	if err != nil {
		return nil, err
	}
	e.couple(lr, rr)
	return result.Union(lr, rr)
}

func (e *Engine) VisitCompare(c *expr.Compare) (result.Result, error) {
	lr, err := e.eval(c.Left)
	if err != nil {
		return nil, err
	}
	rr, err := e.eval(c.Right)
	if err != nil {
		return nil, err
	}
	e.couple(lr, rr)
	return result.Union(lr, rr)
}

func (e *Engine) VisitEq(eq *expr.Eq) (result.Result, error) {
	lr, err := e.eval(eq.Left)
	if err != nil {
		return nil, err
	}
	rr, err := e.eval(eq.Right)
	if err != nil {
		return nil, err
	}
	e.couple(lr, rr)
	return result.Union(lr, rr)
}

func (e *Engine) VisitBitBinary(b *expr.BitBinary) (result.Result, error) {
	lr, err := e.eval(b.Left)
	if err != nil {
		return nil, err
	}
	rr, err := e.eval(b.Right)
	if err != nil {
		return nil, err
	}
	// Disjunctive bit combinations do not require interleaving -- the
	// classical BDD result (§4.5). And/xor couple; or does not.
	if b.Op != expr.BitOr {
		e.couple(lr, rr)
	}
	return result.Union(lr, rr)
}

func (e *Engine) VisitBitNot(b *expr.BitNot) (result.Result, error) {
	return e.eval(b.X)
}

func (e *Engine) VisitIf(i *expr.If) (result.Result, error) {
	if _, err := e.eval(i.Cond); err != nil {
		return nil, err
	}
	tr, err := e.eval(i.Then)
	if err != nil {
		return nil, err
	}
	fr, err := e.eval(i.Else)
	if err != nil {
		return nil, err
	}
	return result.Union(tr, fr)
}

func (e *Engine) VisitCast(c *expr.Cast) (result.Result, error) {
	return e.eval(c.Source)
}

func (e *Engine) VisitRecordCreate(r *expr.RecordCreate) (result.Result, error) {
	names := make([]string, 0, len(r.Fields))
	for name := range r.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make(map[string]result.Result, len(r.Fields))
	for _, name := range names {
		cr, err := e.eval(r.Fields[name])
		if err != nil {
			return nil, err
		}
		fields[name] = cr
	}
	return &result.Record{Fields: fields}, nil
}

func (e *Engine) VisitGetField(g *expr.GetField) (result.Result, error) {
	sr, err := e.eval(g.Source)
	if err != nil {
		return nil, err
	}
	rec, ok := sr.(*result.Record)
	if !ok {
		return nil, &result.ErrShapeMismatch{Op: "GetField", Detail: "source is not a Record"}
	}
	fv, ok := rec.Field(g.Field)
	if !ok {
		return nil, &result.ErrShapeMismatch{Op: "GetField", Detail: "no such field: " + g.Field}
	}
	return fv, nil
}

func (e *Engine) VisitWithField(w *expr.WithField) (result.Result, error) {
	sr, err := e.eval(w.Source)
	if err != nil {
		return nil, err
	}
	rec, ok := sr.(*result.Record)
	if !ok {
		return nil, &result.ErrShapeMismatch{Op: "WithField", Detail: "source is not a Record"}
	}
	vr, err := e.eval(w.Value)
	if err != nil {
		return nil, err
	}
	updated := rec.With(w.Field, vr)
	// Cache the rebuilt record under this node's own identity -- it is a
	// distinct expression from its source, not a mutation of it (§9).
	e.put(w, updated)
	return updated, nil
}

func (e *Engine) VisitListEmpty(l *expr.ListEmpty) (result.Result, error) {
	return e.emptyOf(l.Type()), nil
}

// VisitListCons implements the conservative list-cons rule (§4.5: "lists
// are unrolled later"). Naively unioning E(Head) with E(Tail) would
// violate Union's same-shape precondition whenever Head's type is a
// record: the cons node's own type is a sequence, which empty_of always
// shapes as Flat, so the combined result must be Flat regardless of what
// shape Head produced. Flatten collapses both operands' reachable
// variables into that single Flat.
func (e *Engine) VisitListCons(l *expr.ListCons) (result.Result, error) {
	hr, err := e.eval(l.Head)
	if err != nil {
		return nil, err
	}
	tr, err := e.eval(l.Tail)
	if err != nil {
		return nil, err
	}
	return result.Flatten(hr, tr), nil
}

// VisitListCase implements the documented conservative limitation (§4.5,
// §9): the list expression is evaluated for its side effects on the
// union-find, and the cons branch is never visited because its bound
// head/tail have no identity outside the branch body.
func (e *Engine) VisitListCase(l *expr.ListCase) (result.Result, error) {
	if _, err := e.eval(l.ListExpr); err != nil {
		return nil, err
	}
	return e.eval(l.EmptyBranch)
}

func (e *Engine) VisitUnsupported(u *expr.Unsupported) (result.Result, error) {
	return nil, &UnsupportedForBddBackendError{Kind: u.OpName}
}
