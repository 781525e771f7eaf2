package typedesc

// Visitor is the double-dispatch interface used throughout this module:
// callers implement one method per type-descriptor variant, and Visit
// dispatches to the right one. The empty-result generator (package result)
// and the Z3 sort converter (package sortconv) are both implementations
// of this same interface, instantiated at different
// result types R -- this is the "type-directed visitor pattern" shared
// between §4.1, §4.4 and §4.7.
//
// Recursive types must recurse through Visit (typically via a Cache, see
// cache.go), never by the implementation calling itself directly on a
// field/element/key/value type -- that is what lets a Cache memoize and
// guard against re-entrant recursion on self-referential records.
type Visitor[R any] interface {
	VisitBool() R
	VisitByte() R
	VisitChar() R
	VisitShort() R
	VisitUShort() R
	VisitInt() R
	VisitUInt() R
	VisitLong() R
	VisitULong() R
	VisitBigInteger() R
	VisitReal() R
	VisitString() R
	VisitFixedInt(width int) R
	VisitRecord(t *T) R
	VisitSeq(elem *T) R
	VisitMap(key, value *T) R
	VisitConstMap(key, value *T) R
	VisitSet(elem *T) R
}

// Visit dispatches on t's kind and calls the matching Visitor method.
func Visit[R any](t *T, v Visitor[R]) R {
	switch t.kind {
	case Bool:
		return v.VisitBool()
	case Byte:
		return v.VisitByte()
	case Char:
		return v.VisitChar()
	case Short:
		return v.VisitShort()
	case UShort:
		return v.VisitUShort()
	case Int:
		return v.VisitInt()
	case UInt:
		return v.VisitUInt()
	case Long:
		return v.VisitLong()
	case ULong:
		return v.VisitULong()
	case BigInteger:
		return v.VisitBigInteger()
	case Real:
		return v.VisitReal()
	case String:
		return v.VisitString()
	case FixedInt:
		return v.VisitFixedInt(t.width)
	case Record:
		return v.VisitRecord(t)
	case Seq:
		return v.VisitSeq(t.elem)
	case Map:
		return v.VisitMap(t.key, t.value)
	case ConstMap:
		return v.VisitConstMap(t.key, t.value)
	case Set:
		return v.VisitSet(t.elem)
	default:
		panic("typedesc: Visit on malformed type descriptor")
	}
}
