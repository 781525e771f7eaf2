package typedesc

import "testing"

func TestEqualPrimitives(t *testing.T) {
	assertTrue(Equal(NewInt(), NewInt()), t)
	assertTrue(!Equal(NewInt(), NewUInt()), t)
	assertTrue(Equal(NewFixedInt(32), NewFixedInt(32)), t)
	assertTrue(!Equal(NewFixedInt(32), NewFixedInt(16)), t)
}

func TestEqualStructural(t *testing.T) {
	a := NewRecord(map[string]*T{"x": NewInt(), "y": NewInt()})
	b := NewRecord(map[string]*T{"y": NewInt(), "x": NewInt()})
	assertTrue(Equal(a, b), t)

	c := NewRecord(map[string]*T{"x": NewInt(), "y": NewBool()})
	assertTrue(!Equal(a, c), t)
}

func TestEqualNested(t *testing.T) {
	a := NewSeq(NewSet(NewInt()))
	b := NewSeq(NewSet(NewInt()))
	assertTrue(Equal(a, b), t)

	c := NewMap(NewString(), NewInt())
	d := NewMap(NewString(), NewUInt())
	assertTrue(!Equal(c, d), t)
}

func TestNewRecordSortsFields(t *testing.T) {
	rt := NewRecord(map[string]*T{"z": NewInt(), "a": NewBool(), "m": NewByte()})
	fields := rt.Fields()
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}
	want := []string{"a", "m", "z"}
	for i, name := range want {
		if fields[i].Name != name {
			t.Fatalf("field %d: expected %s, got %s", i, name, fields[i].Name)
		}
	}
}

func TestRecordBuilderSelfReferential(t *testing.T) {
	b := NewRecordBuilder()
	placeholder := b.Placeholder()
	nodeType := b.Build(map[string]*T{
		"value": NewInt(),
		"next":  placeholder,
	})
	next, ok := nodeType.Field("next")
	if !ok {
		t.Fatalf("expected a next field")
	}
	if next != placeholder {
		t.Fatalf("self-reference did not preserve pointer identity")
	}
}

func TestRecordBuilderBuildTwicePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Build called twice to panic")
		}
	}()
	b := NewRecordBuilder()
	b.Build(map[string]*T{"x": NewInt()})
	b.Build(map[string]*T{"x": NewInt()})
}

type recordingVisitor struct {
	calls []string
}

func (v *recordingVisitor) VisitBool() string       { return "bool" }
func (v *recordingVisitor) VisitByte() string       { return "byte" }
func (v *recordingVisitor) VisitChar() string       { return "char" }
func (v *recordingVisitor) VisitShort() string      { return "short" }
func (v *recordingVisitor) VisitUShort() string     { return "ushort" }
func (v *recordingVisitor) VisitInt() string        { return "int" }
func (v *recordingVisitor) VisitUInt() string       { return "uint" }
func (v *recordingVisitor) VisitLong() string       { return "long" }
func (v *recordingVisitor) VisitULong() string      { return "ulong" }
func (v *recordingVisitor) VisitBigInteger() string { return "bigint" }
func (v *recordingVisitor) VisitReal() string       { return "real" }
func (v *recordingVisitor) VisitString() string     { return "string" }
func (v *recordingVisitor) VisitFixedInt(width int) string {
	return "fixed-int"
}
func (v *recordingVisitor) VisitRecord(t *T) string { return "record" }
func (v *recordingVisitor) VisitSeq(elem *T) string { return "seq" }
func (v *recordingVisitor) VisitMap(key, value *T) string { return "map" }
func (v *recordingVisitor) VisitConstMap(key, value *T) string { return "const-map" }
func (v *recordingVisitor) VisitSet(elem *T) string { return "set" }

func TestVisitDispatch(t *testing.T) {
	v := &recordingVisitor{}
	if got := Visit[string](NewInt(), v); got != "int" {
		t.Fatalf("expected int, got %s", got)
	}
	if got := Visit[string](NewFixedInt(8), v); got != "fixed-int" {
		t.Fatalf("expected fixed-int, got %s", got)
	}
	rt := NewRecord(map[string]*T{"a": NewBool()})
	if got := Visit[string](rt, v); got != "record" {
		t.Fatalf("expected record, got %s", got)
	}
}

func assertTrue(cond bool, t *testing.T) {
	if !cond {
		t.Fatalf("expected condition to hold")
	}
}
