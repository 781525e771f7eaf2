package expr

import (
	"testing"

	"github.com/symvar/interleave/result"
	"github.com/symvar/interleave/typedesc"
	"github.com/symvar/interleave/variable"
)

// countingVisitor implements Visitor and records which method fired, so
// Accept's double dispatch can be checked without a full engine.
type countingVisitor struct {
	last string
}

func (v *countingVisitor) mark(name string) (result.Result, error) {
	v.last = name
	return result.EmptyFlat(), nil
}

func (v *countingVisitor) VisitConstant(*Constant) (result.Result, error) { return v.mark("Constant") }
func (v *countingVisitor) VisitArbitrary(*Arbitrary) (result.Result, error) { return v.mark("Arbitrary") }
func (v *countingVisitor) VisitArgRef(*ArgRef) (result.Result, error) { return v.mark("ArgRef") }
func (v *countingVisitor) VisitEmptySeq(*EmptySeq) (result.Result, error) { return v.mark("EmptySeq") }
func (v *countingVisitor) VisitEmptyMap(*EmptyMap) (result.Result, error) { return v.mark("EmptyMap") }
func (v *countingVisitor) VisitEmptySet(*EmptySet) (result.Result, error) { return v.mark("EmptySet") }
func (v *countingVisitor) VisitLogical(*Logical) (result.Result, error) { return v.mark("Logical") }
func (v *countingVisitor) VisitNot(*Not) (result.Result, error) { return v.mark("Not") }
func (v *countingVisitor) VisitArith(*Arith) (result.Result, error) { return v.mark("Arith") }
func (v *countingVisitor) VisitCompare(*Compare) (result.Result, error) { return v.mark("Compare") }
func (v *countingVisitor) VisitEq(*Eq) (result.Result, error) { return v.mark("Eq") }
func (v *countingVisitor) VisitBitBinary(*BitBinary) (result.Result, error) { return v.mark("BitBinary") }
func (v *countingVisitor) VisitBitNot(*BitNot) (result.Result, error) { return v.mark("BitNot") }
func (v *countingVisitor) VisitIf(*If) (result.Result, error) { return v.mark("If") }
func (v *countingVisitor) VisitCast(*Cast) (result.Result, error) { return v.mark("Cast") }
func (v *countingVisitor) VisitRecordCreate(*RecordCreate) (result.Result, error) {
	return v.mark("RecordCreate")
}
func (v *countingVisitor) VisitGetField(*GetField) (result.Result, error) { return v.mark("GetField") }
func (v *countingVisitor) VisitWithField(*WithField) (result.Result, error) {
	return v.mark("WithField")
}
func (v *countingVisitor) VisitListEmpty(*ListEmpty) (result.Result, error) {
	return v.mark("ListEmpty")
}
func (v *countingVisitor) VisitListCons(*ListCons) (result.Result, error) { return v.mark("ListCons") }
func (v *countingVisitor) VisitListCase(*ListCase) (result.Result, error) { return v.mark("ListCase") }
func (v *countingVisitor) VisitUnsupported(*Unsupported) (result.Result, error) {
	return v.mark("Unsupported")
}

func TestAcceptDispatchesToMatchingMethod(t *testing.T) {
	v := &countingVisitor{}
	intType := typedesc.NewInt()
	x := variable.New("x", intType)

	nodes := map[string]Node{
		"Constant":     NewConstant(intType),
		"Arbitrary":    NewArbitrary(x),
		"ArgRef":       NewArgRef("id", intType),
		"EmptySeq":     NewEmptySeq(intType),
		"EmptyMap":     NewEmptyMap(intType, intType),
		"EmptySet":     NewEmptySet(intType),
		"Logical":      NewLogical(LogicalAnd, NewConstant(typedesc.NewBool()), NewConstant(typedesc.NewBool())),
		"Not":          NewNot(NewConstant(typedesc.NewBool())),
		"Arith":        NewArith(Add, NewConstant(intType), NewConstant(intType), intType),
		"Compare":      NewCompare(Lt, NewConstant(intType), NewConstant(intType)),
		"Eq":           NewEq(false, NewConstant(intType), NewConstant(intType)),
		"BitBinary":    NewBitBinary(BitAnd, NewConstant(intType), NewConstant(intType), intType),
		"BitNot":       NewBitNot(NewConstant(intType), intType),
		"If":           NewIf(NewConstant(typedesc.NewBool()), NewConstant(intType), NewConstant(intType)),
		"Cast":         NewCast(NewConstant(intType), intType),
		"RecordCreate": NewRecordCreate(typedesc.NewRecord(nil), map[string]Node{}),
		"GetField":     NewGetField(NewConstant(typedesc.NewRecord(nil)), "f", intType),
		"WithField":    NewWithField(NewConstant(typedesc.NewRecord(nil)), "f", NewConstant(intType)),
		"ListEmpty":    NewListEmpty(intType),
		"ListCons":     NewListCons(NewConstant(intType), NewListEmpty(intType)),
		"ListCase":     NewListCase(NewListEmpty(intType), NewConstant(intType), NewConstant(intType)),
		"Unsupported":  NewUnsupported("map-get", intType),
	}

	for name, n := range nodes {
		v.last = ""
		if _, err := n.Accept(v); err != nil {
			t.Fatalf("%s: unexpected error %v", name, err)
		}
		if v.last != name {
			t.Fatalf("expected Accept to dispatch to Visit%s, dispatched to Visit%s", name, v.last)
		}
	}
}

func TestArithTypeIsResultType(t *testing.T) {
	intType := typedesc.NewInt()
	a := NewArith(Add, NewConstant(intType), NewConstant(intType), intType)
	if a.Type() != intType {
		t.Fatalf("expected Arith.Type() to be its declared result type")
	}
}

func TestIfTypeIsThenBranchType(t *testing.T) {
	intType := typedesc.NewInt()
	i := NewIf(NewConstant(typedesc.NewBool()), NewConstant(intType), NewConstant(intType))
	if i.Type() != intType {
		t.Fatalf("expected If.Type() to follow the then-branch")
	}
}
