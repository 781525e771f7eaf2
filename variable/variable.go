// Package variable defines the symbolic-variable identity that the
// interleaving heuristic partitions.
package variable

import "github.com/symvar/interleave/typedesc"

// Var is a symbolic variable (an "arbitrary" in the expression algebra): an
// opaque, referentially-unique handle carrying its type descriptor and a
// name used only for diagnostics. Two *Var values are equal iff they are
// the same handle -- Go pointer identity gives us this for free, so Var is
// usable directly as a map key or as the element type of a set.
type Var struct {
	name string
	typ  *typedesc.T
}

// New allocates a fresh symbolic variable of the given type. Each call
// returns a distinct handle, even if name and typ are identical to a
// previous call.
func New(name string, typ *typedesc.T) *Var {
	return &Var{name: name, typ: typ}
}

// Type returns the variable's type descriptor.
func (v *Var) Type() *typedesc.T { return v.typ }

// Name returns the diagnostic name the variable was created with.
func (v *Var) Name() string { return v.name }

func (v *Var) String() string { return v.name }
