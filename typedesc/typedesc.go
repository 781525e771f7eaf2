// Package typedesc describes the statically-known shape of symbolic values:
// primitives, fixed-width integers, and structured records, sequences, maps
// and sets built out of them. Every symbolic variable and every expression
// node in package expr carries one of these as its type.
package typedesc

import "sort"

// Kind identifies which variant of the type algebra a T describes.
type Kind int

const (
	Bool Kind = iota
	Byte
	Char
	Short
	UShort
	Int
	UInt
	Long
	ULong
	BigInteger
	Real
	String
	FixedInt
	Record
	Seq
	Map
	ConstMap
	Set
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Byte:
		return "byte"
	case Char:
		return "char"
	case Short:
		return "short"
	case UShort:
		return "ushort"
	case Int:
		return "int"
	case UInt:
		return "uint"
	case Long:
		return "long"
	case ULong:
		return "ulong"
	case BigInteger:
		return "bigint"
	case Real:
		return "real"
	case String:
		return "string"
	case FixedInt:
		return "fixed-int"
	case Record:
		return "record"
	case Seq:
		return "seq"
	case Map:
		return "map"
	case ConstMap:
		return "const-map"
	case Set:
		return "set"
	default:
		return "unknown"
	}
}

// Field is one named member of a Record, in declaration order.
type Field struct {
	Name string
	Type *T
}

// T is a type descriptor: an opaque value describing a statically-typed
// value's shape. Two T values describe the same type iff Equal(a, b), which
// is structural, not referential -- two int32 descriptors built by separate
// callers still compare equal. Referential identity of a *T only matters for
// caching (Cache keys on it) and for building self-referential record types.
type T struct {
	kind   Kind
	width  int // meaningful only for FixedInt
	fields []Field
	elem   *T // Seq, Set
	key    *T // Map, ConstMap
	value  *T // Map, ConstMap
}

func primitive(k Kind) *T { return &T{kind: k} }

func NewBool() *T       { return primitive(Bool) }
func NewByte() *T       { return primitive(Byte) }
func NewChar() *T       { return primitive(Char) }
func NewShort() *T      { return primitive(Short) }
func NewUShort() *T     { return primitive(UShort) }
func NewInt() *T        { return primitive(Int) }
func NewUInt() *T       { return primitive(UInt) }
func NewLong() *T       { return primitive(Long) }
func NewULong() *T      { return primitive(ULong) }
func NewBigInteger() *T { return primitive(BigInteger) }
func NewReal() *T       { return primitive(Real) }
func NewString() *T     { return primitive(String) }

// NewFixedInt returns the type of a fixed-width integer of the given bit
// width. Width is carried on the descriptor itself, per the rewrite note in
// spec design (the source recovers it reflectively; here it is explicit).
func NewFixedInt(width int) *T { return &T{kind: FixedInt, width: width} }

func NewSeq(elem *T) *T      { return &T{kind: Seq, elem: elem} }
func NewSet(elem *T) *T      { return &T{kind: Set, elem: elem} }
func NewMap(key, val *T) *T  { return &T{kind: Map, key: key, value: val} }
func NewConstMap(key, val *T) *T { return &T{kind: ConstMap, key: key, value: val} }

// NewRecord builds a record type from a field set, ordering fields by name
// for determinism (§3: "Records are ordered by field name for determinism").
// Fields need not be supplied in sorted order.
func NewRecord(fields map[string]*T) *T {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	ordered := make([]Field, len(names))
	for i, name := range names {
		ordered[i] = Field{Name: name, Type: fields[name]}
	}
	return &T{kind: Record, fields: ordered}
}

// RecordBuilder constructs a record type descriptor whose identity (the
// pointer returned by Placeholder) is stable before its fields are known,
// so a field may reference the record type itself -- the only way this
// algebra admits a self-referential type. Build must be called exactly
// once before the type is used by any visitor.
type RecordBuilder struct {
	t *T
}

// NewRecordBuilder allocates the record's identity. The returned pointer
// (via Placeholder) may immediately be embedded as a field type elsewhere;
// it must not be passed to any Visit call until Build has been called.
func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{t: &T{kind: Record}}
}

// Placeholder returns the (not-yet-populated) record type's stable identity.
func (b *RecordBuilder) Placeholder() *T { return b.t }

// Build populates the record's fields (sorted by name) and returns its type.
// Calling Build twice panics: a record's shape must not change after use.
func (b *RecordBuilder) Build(fields map[string]*T) *T {
	if b.t.fields != nil {
		panic("typedesc: RecordBuilder.Build called twice")
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	ordered := make([]Field, len(names))
	for i, name := range names {
		ordered[i] = Field{Name: name, Type: fields[name]}
	}
	b.t.fields = ordered
	return b.t
}

func (t *T) Kind() Kind { return t.kind }

// Width is the bit width of a FixedInt type; it is meaningless otherwise.
func (t *T) Width() int { return t.width }

// Fields returns a record type's fields, sorted by name. It is empty for
// any non-Record type.
func (t *T) Fields() []Field { return t.fields }

// Field looks up a single field by name.
func (t *T) Field(name string) (*T, bool) {
	for _, f := range t.fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// Elem is the element type of a Seq or Set; nil otherwise.
func (t *T) Elem() *T { return t.elem }

// Key is the key type of a Map or ConstMap; nil otherwise.
func (t *T) Key() *T { return t.key }

// Value is the value type of a Map or ConstMap; nil otherwise.
func (t *T) Value() *T { return t.value }

// Equal reports whether a and b describe the same type structurally. This
// is distinct from pointer identity: two independently-built Int
// descriptors are Equal but not the same *T, and couple (§4.6) is defined
// in terms of this structural notion, not referential identity.
func Equal(a, b *T) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case FixedInt:
		return a.width == b.width
	case Record:
		if len(a.fields) != len(b.fields) {
			return false
		}
		for i, f := range a.fields {
			g := b.fields[i]
			if f.Name != g.Name || !Equal(f.Type, g.Type) {
				return false
			}
		}
		return true
	case Seq, Set:
		return Equal(a.elem, b.elem)
	case Map, ConstMap:
		return Equal(a.key, b.key) && Equal(a.value, b.value)
	default:
		return true
	}
}
