// Package result implements the interleaving result domain (§4.3): the
// tagged value every expression node evaluates to, and the type-directed
// generator that produces the empty result of a given shape (§4.4).
package result

import (
	"fmt"
	"sort"

	set "github.com/hashicorp/go-set/v2"
	"github.com/symvar/interleave/variable"
)

// Result is either a Flat or a Record. It is produced by evaluating an
// expression node and consumed by couple and by the union-find.
type Result interface {
	isResult()
}

// Flat holds the symbolic variables reachable from a primitive-typed
// expression. The pack's hashicorp/go-set is used here rather than a bare
// map, matching how the rest of the pack (hashicorp/nomad) represents
// small hashable-element sets; order is never significant for Flat's
// contents, only for the union-find's own bookkeeping (see package
// unionfind), so go-set's unordered semantics are safe here.
type Flat struct {
	Vars *set.Set[*variable.Var]
}

func (*Flat) isResult() {}

// NewFlat returns a Flat containing exactly the given variables.
func NewFlat(vars ...*variable.Var) *Flat {
	s := set.New[*variable.Var](len(vars))
	s.InsertSlice(vars)
	return &Flat{Vars: s}
}

// EmptyFlat returns a Flat containing no variables.
func EmptyFlat() *Flat { return &Flat{Vars: set.New[*variable.Var](0)} }

// Record holds one nested Result per declared field of a record-typed
// expression.
type Record struct {
	Fields map[string]Result
}

func (*Record) isResult() {}

// With returns a copy of r with the f field replaced by v. The source
// record is never mutated: per the design note on "mutating immutable
// records," a fresh Record is built and it is the caller's job (the
// heuristic engine) to cache it under the new expression node's identity.
func (r *Record) With(f string, v Result) *Record {
	fields := make(map[string]Result, len(r.Fields))
	for k, fv := range r.Fields {
		fields[k] = fv
	}
	fields[f] = v
	return &Record{Fields: fields}
}

// Field looks up a single field's Result by name.
func (r *Record) Field(name string) (Result, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// ErrShapeMismatch is returned whenever Union, or a field access in the
// heuristic engine, finds two results (or a result and an expectation) of incompatible
// shape. Per §4.3 this indicates a programming error in how the AST was
// built -- the type system is supposed to guarantee shape compatibility --
// so it is always fatal to the analysis (§7).
type ErrShapeMismatch struct {
	Op     string
	Detail string
}

func (e *ErrShapeMismatch) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("interleave: shape mismatch in %s", e.Op)
	}
	return fmt.Sprintf("interleave: shape mismatch in %s: %s", e.Op, e.Detail)
}

// Union combines two results of the same shape, field-wise for records.
// Cross-shape union (Flat with Record, or two Records with different field
// sets) is a *ErrShapeMismatch.
func Union(a, b Result) (Result, error) {
	switch av := a.(type) {
	case *Flat:
		bv, ok := b.(*Flat)
		if !ok {
			return nil, &ErrShapeMismatch{Op: "Union", Detail: "Flat with non-Flat"}
		}
		return &Flat{Vars: av.Vars.Union(bv.Vars)}, nil
	case *Record:
		bv, ok := b.(*Record)
		if !ok {
			return nil, &ErrShapeMismatch{Op: "Union", Detail: "Record with non-Record"}
		}
		if len(av.Fields) != len(bv.Fields) {
			return nil, &ErrShapeMismatch{Op: "Union", Detail: "records with different field sets"}
		}
		fields := make(map[string]Result, len(av.Fields))
		for name, af := range av.Fields {
			bf, ok := bv.Fields[name]
			if !ok {
				return nil, &ErrShapeMismatch{Op: "Union", Detail: "field " + name + " missing on right operand"}
			}
			u, err := Union(af, bf)
			if err != nil {
				return nil, err
			}
			fields[name] = u
		}
		return &Record{Fields: fields}, nil
	default:
		return nil, &ErrShapeMismatch{Op: "Union", Detail: "unknown result type"}
	}
}

// GetAllVariables flattens r into the set of every symbolic variable it
// reaches: a Flat returns its own set, a Record returns the union of
// GetAllVariables over its fields (visited in sorted field-name order).
// The returned set itself is unordered: iterating it, e.g. via Slice,
// yields no fixed sequence.
func GetAllVariables(r Result) *set.Set[*variable.Var] {
	switch v := r.(type) {
	case *Flat:
		return v.Vars.Copy()
	case *Record:
		all := set.New[*variable.Var](0)
		names := make([]string, 0, len(v.Fields))
		for name := range v.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			all = all.Union(GetAllVariables(v.Fields[name]))
		}
		return all
	default:
		return set.New[*variable.Var](0)
	}
}

// Flatten collapses one or more results of any shape into a single Flat
// containing every variable they reach. It is used where an expression's
// own type is atomic (so its result must be Flat per empty_of) even though
// its operands may not be -- see the list-cons rule in package heuristic.
func Flatten(rs ...Result) *Flat {
	all := set.New[*variable.Var](0)
	for _, r := range rs {
		all = all.Union(GetAllVariables(r))
	}
	return &Flat{Vars: all}
}

// SameShape reports whether a and b have the same shape: both Flat, or
// both Record with identical field-name sets and field-wise same shape.
// It is used by tests to check §8 invariant 1 without comparing contents.
func SameShape(a, b Result) bool {
	switch av := a.(type) {
	case *Flat:
		_, ok := b.(*Flat)
		return ok
	case *Record:
		bv, ok := b.(*Record)
		if !ok || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for name, af := range av.Fields {
			bf, ok := bv.Fields[name]
			if !ok || !SameShape(af, bf) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
