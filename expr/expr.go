// Package expr defines the typed expression-AST node kinds the
// interleaving heuristic walks (§3). Every node's identity is its own
// pointer, which doubles as the heuristic engine's memoization key
// whenever the AST is structurally shared (§3, "Memoization table").
package expr

import (
	"github.com/symvar/interleave/result"
	"github.com/symvar/interleave/typedesc"
	"github.com/symvar/interleave/variable"
)

// Node is any expression-AST node. Type must be O(1) -- every concrete
// node stores its own type descriptor rather than computing it on demand.
type Node interface {
	// Type returns the node's static type descriptor.
	Type() *typedesc.T
	// Accept double-dispatches into v's matching VisitX method.
	Accept(v Visitor) (result.Result, error)
}

// Visitor is implemented by the heuristic engine (one VisitX method per
// Node kind). It is declared here, not in package heuristic, so that Node
// implementations can call back into it without an import cycle -- the
// classic Go rendering of a visitor pattern.
type Visitor interface {
	VisitConstant(*Constant) (result.Result, error)
	VisitArbitrary(*Arbitrary) (result.Result, error)
	VisitArgRef(*ArgRef) (result.Result, error)
	VisitEmptySeq(*EmptySeq) (result.Result, error)
	VisitEmptyMap(*EmptyMap) (result.Result, error)
	VisitEmptySet(*EmptySet) (result.Result, error)
	VisitLogical(*Logical) (result.Result, error)
	VisitNot(*Not) (result.Result, error)
	VisitArith(*Arith) (result.Result, error)
	VisitCompare(*Compare) (result.Result, error)
	VisitEq(*Eq) (result.Result, error)
	VisitBitBinary(*BitBinary) (result.Result, error)
	VisitBitNot(*BitNot) (result.Result, error)
	VisitIf(*If) (result.Result, error)
	VisitCast(*Cast) (result.Result, error)
	VisitRecordCreate(*RecordCreate) (result.Result, error)
	VisitGetField(*GetField) (result.Result, error)
	VisitWithField(*WithField) (result.Result, error)
	VisitListEmpty(*ListEmpty) (result.Result, error)
	VisitListCons(*ListCons) (result.Result, error)
	VisitListCase(*ListCase) (result.Result, error)
	VisitUnsupported(*Unsupported) (result.Result, error)
}

// Constant is a literal value; its contents are irrelevant to the
// heuristic (only its type matters), so no value is stored.
type Constant struct {
	Typ *typedesc.T
}

func NewConstant(t *typedesc.T) *Constant { return &Constant{Typ: t} }

func (c *Constant) Type() *typedesc.T { return c.Typ }
func (c *Constant) Accept(v Visitor) (result.Result, error) { return v.VisitConstant(c) }

// Arbitrary is a symbolic-variable leaf ("arbitrary" in the glossary).
type Arbitrary struct {
	Var *variable.Var
}

func NewArbitrary(v *variable.Var) *Arbitrary { return &Arbitrary{Var: v} }

func (a *Arbitrary) Type() *typedesc.T { return a.Var.Type() }
func (a *Arbitrary) Accept(v Visitor) (result.Result, error) { return v.VisitArbitrary(a) }

// ArgRef refers to a sub-expression bound by id in the argument map passed
// to Compute. Its type is that of its bound sub-expression, which the
// caller supplies at construction time (the engine has no way to know it
// in advance of resolving the binding, per §4.5's "its static type is
// recovered from the bound node").
type ArgRef struct {
	ID  string
	Typ *typedesc.T
}

func NewArgRef(id string, t *typedesc.T) *ArgRef { return &ArgRef{ID: id, Typ: t} }

func (a *ArgRef) Type() *typedesc.T { return a.Typ }
func (a *ArgRef) Accept(v Visitor) (result.Result, error) { return v.VisitArgRef(a) }

// EmptySeq is the empty-sequence literal of a given element type.
type EmptySeq struct {
	ElemType *typedesc.T
}

func NewEmptySeq(elem *typedesc.T) *EmptySeq { return &EmptySeq{ElemType: elem} }

func (e *EmptySeq) Type() *typedesc.T { return typedesc.NewSeq(e.ElemType) }
func (e *EmptySeq) Accept(v Visitor) (result.Result, error) { return v.VisitEmptySeq(e) }

// EmptyMap is the empty-map literal. It is always rejected (§3, §4.5): the
// BDD backend cannot encode maps at all, so even an empty one fails.
type EmptyMap struct {
	KeyType, ValueType *typedesc.T
}

func NewEmptyMap(key, value *typedesc.T) *EmptyMap {
	return &EmptyMap{KeyType: key, ValueType: value}
}

func (e *EmptyMap) Type() *typedesc.T { return typedesc.NewMap(e.KeyType, e.ValueType) }
func (e *EmptyMap) Accept(v Visitor) (result.Result, error) { return v.VisitEmptyMap(e) }

// EmptySet is the empty-set literal of a given element type.
type EmptySet struct {
	ElemType *typedesc.T
}

func NewEmptySet(elem *typedesc.T) *EmptySet { return &EmptySet{ElemType: elem} }

func (e *EmptySet) Type() *typedesc.T { return typedesc.NewSet(e.ElemType) }
func (e *EmptySet) Accept(v Visitor) (result.Result, error) { return v.VisitEmptySet(e) }

// LogicalOp identifies and/or.
type LogicalOp int

const (
	LogicalAnd LogicalOp = iota
	LogicalOr
)

// Logical is a binary boolean and/or. Neither induces coupling (§4.5).
type Logical struct {
	Op          LogicalOp
	Left, Right Node
}

func NewLogical(op LogicalOp, left, right Node) *Logical {
	return &Logical{Op: op, Left: left, Right: right}
}

func (l *Logical) Type() *typedesc.T { return typedesc.NewBool() }
func (l *Logical) Accept(v Visitor) (result.Result, error) { return v.VisitLogical(l) }

// Not is boolean negation. It passes its child's result through unchanged.
type Not struct {
	X Node
}

func NewNot(x Node) *Not { return &Not{X: x} }

func (n *Not) Type() *typedesc.T { return typedesc.NewBool() }
func (n *Not) Accept(v Visitor) (result.Result, error) { return v.VisitNot(n) }

// ArithOp identifies a binary arithmetic operator.
type ArithOp int

const (
	Add ArithOp = iota
	Sub
	Mul
	Div
	Mod
)

// Arith is a binary arithmetic operation. It couples its operands (§4.6):
// arithmetic combination is exactly the case interleaving exists for.
type Arith struct {
	Op          ArithOp
	Left, Right Node
	ResultType  *typedesc.T
}

func NewArith(op ArithOp, left, right Node, resultType *typedesc.T) *Arith {
	return &Arith{Op: op, Left: left, Right: right, ResultType: resultType}
}

func (a *Arith) Type() *typedesc.T { return a.ResultType }
func (a *Arith) Accept(v Visitor) (result.Result, error) { return v.VisitArith(a) }

// CompareOp identifies a binary order comparison.
type CompareOp int

const (
	Lt CompareOp = iota
	Le
	Gt
	Ge
)

// Compare is a binary order comparison (<, ≤, >, ≥). It couples its
// operands, same as equality and arithmetic (§4.5).
type Compare struct {
	Op          CompareOp
	Left, Right Node
}

func NewCompare(op CompareOp, left, right Node) *Compare {
	return &Compare{Op: op, Left: left, Right: right}
}

func (c *Compare) Type() *typedesc.T { return typedesc.NewBool() }
func (c *Compare) Accept(v Visitor) (result.Result, error) { return v.VisitCompare(c) }

// Eq is binary equality or inequality (= / ≠). Both couple identically;
// Negated distinguishes ≠ only for callers that care, not for the
// heuristic's own rule.
type Eq struct {
	Negated     bool
	Left, Right Node
}

func NewEq(negated bool, left, right Node) *Eq {
	return &Eq{Negated: negated, Left: left, Right: right}
}

func (e *Eq) Type() *typedesc.T { return typedesc.NewBool() }
func (e *Eq) Accept(v Visitor) (result.Result, error) { return v.VisitEq(e) }

// BitOp identifies a binary bitwise operator.
type BitOp int

const (
	BitAnd BitOp = iota
	BitOr
	BitXor
)

// BitBinary is a binary bitwise and/or/xor. And and xor couple their
// operands; or does not (§4.5 -- the classical BDD result that disjunctive
// bit combinations need no interleaving).
type BitBinary struct {
	Op          BitOp
	Left, Right Node
	ResultType  *typedesc.T
}

func NewBitBinary(op BitOp, left, right Node, resultType *typedesc.T) *BitBinary {
	return &BitBinary{Op: op, Left: left, Right: right, ResultType: resultType}
}

func (b *BitBinary) Type() *typedesc.T { return b.ResultType }
func (b *BitBinary) Accept(v Visitor) (result.Result, error) { return v.VisitBitBinary(b) }

// BitNot is unary bitwise complement; it passes its operand through.
type BitNot struct {
	X          Node
	ResultType *typedesc.T
}

func NewBitNot(x Node, resultType *typedesc.T) *BitNot {
	return &BitNot{X: x, ResultType: resultType}
}

func (b *BitNot) Type() *typedesc.T { return b.ResultType }
func (b *BitNot) Accept(v Visitor) (result.Result, error) { return v.VisitBitNot(b) }

// If is a conditional. The condition is evaluated for side effects on the
// union-find only; it is never unioned with the branch results (§4.5).
type If struct {
	Cond, Then, Else Node
}

func NewIf(cond, then, els Node) *If { return &If{Cond: cond, Then: then, Else: els} }

func (i *If) Type() *typedesc.T { return i.Then.Type() }
func (i *If) Accept(v Visitor) (result.Result, error) { return v.VisitIf(i) }

// Cast passes its source's result through unchanged at a new static type.
type Cast struct {
	Source     Node
	ResultType *typedesc.T
}

func NewCast(source Node, resultType *typedesc.T) *Cast {
	return &Cast{Source: source, ResultType: resultType}
}

func (c *Cast) Type() *typedesc.T { return c.ResultType }
func (c *Cast) Accept(v Visitor) (result.Result, error) { return v.VisitCast(c) }

// RecordCreate builds a record value from per-field sub-expressions.
// RecordType's field-name set must match Fields' key set.
type RecordCreate struct {
	RecordType *typedesc.T
	Fields     map[string]Node
}

func NewRecordCreate(recordType *typedesc.T, fields map[string]Node) *RecordCreate {
	return &RecordCreate{RecordType: recordType, Fields: fields}
}

func (r *RecordCreate) Type() *typedesc.T { return r.RecordType }
func (r *RecordCreate) Accept(v Visitor) (result.Result, error) { return v.VisitRecordCreate(r) }

// GetField projects a single field out of a record-typed expression.
type GetField struct {
	Source    Node
	Field     string
	FieldType *typedesc.T
}

func NewGetField(source Node, field string, fieldType *typedesc.T) *GetField {
	return &GetField{Source: source, Field: field, FieldType: fieldType}
}

func (g *GetField) Type() *typedesc.T { return g.FieldType }
func (g *GetField) Accept(v Visitor) (result.Result, error) { return v.VisitGetField(g) }

// WithField rebuilds a record with one field replaced.
type WithField struct {
	Source Node
	Field  string
	Value  Node
}

func NewWithField(source Node, field string, value Node) *WithField {
	return &WithField{Source: source, Field: field, Value: value}
}

func (w *WithField) Type() *typedesc.T { return w.Source.Type() }
func (w *WithField) Accept(v Visitor) (result.Result, error) { return v.VisitWithField(w) }

// ListEmpty is the empty-list literal (distinct from EmptySeq only insofar
// as the expression algebra (§3) lists them separately under "List:
// empty"; both produce empty_of(Seq(T))).
type ListEmpty struct {
	ElemType *typedesc.T
}

func NewListEmpty(elem *typedesc.T) *ListEmpty { return &ListEmpty{ElemType: elem} }

func (l *ListEmpty) Type() *typedesc.T { return typedesc.NewSeq(l.ElemType) }
func (l *ListEmpty) Accept(v Visitor) (result.Result, error) { return v.VisitListEmpty(l) }

// ListCons prepends Head onto Tail. Its own type (a sequence) is atomic,
// so its result must be Flat regardless of Head's shape -- see
// heuristic.Engine.VisitListCons.
type ListCons struct {
	Head, Tail Node
}

func NewListCons(head, tail Node) *ListCons { return &ListCons{Head: head, Tail: tail} }

func (l *ListCons) Type() *typedesc.T { return l.Tail.Type() }
func (l *ListCons) Accept(v Visitor) (result.Result, error) { return v.VisitListCons(l) }

// ListCase destructures a list into an empty-case and a cons-case.
// ConsBody is carried for completeness but is never visited by the engine:
// the bound head/tail it would introduce have no stable identity outside
// the branch, so only the empty branch's result is returned (§4.5, §9 --
// a known conservative limitation, not a bug).
type ListCase struct {
	ListExpr    Node
	EmptyBranch Node
	ConsBody    Node
}

func NewListCase(listExpr, emptyBranch, consBody Node) *ListCase {
	return &ListCase{ListExpr: listExpr, EmptyBranch: emptyBranch, ConsBody: consBody}
}

func (l *ListCase) Type() *typedesc.T { return l.EmptyBranch.Type() }
func (l *ListCase) Accept(v Visitor) (result.Result, error) { return v.VisitListCase(l) }

// Unsupported represents any map, const-map, sequence, or regex operator
// (other than the list/seq leaves above) that the BDD backend cannot
// encode. OpName identifies the operator for the resulting error (§4.5,
// §7: ErrorKind::UnsupportedForBddBackend(kind)).
type Unsupported struct {
	OpName   string
	Typ      *typedesc.T
	Children []Node
}

func NewUnsupported(opName string, typ *typedesc.T, children ...Node) *Unsupported {
	return &Unsupported{OpName: opName, Typ: typ, Children: children}
}

func (u *Unsupported) Type() *typedesc.T { return u.Typ }
func (u *Unsupported) Accept(v Visitor) (result.Result, error) { return v.VisitUnsupported(u) }
