package result

import "github.com/symvar/interleave/typedesc"

// EmptyOf returns the empty result of the shape dictated by t: Flat(∅) for
// every primitive, fixed-width integer, sequence, map or set type (§4.4
// treats these as atomic -- only variable identity matters, never bit
// decomposition), and a Record with one empty_of(field-type) per declared
// field, recursively, for record types.
//
// cache memoizes per type-descriptor identity and guards a self-referential
// record type against infinite recursion; callers that evaluate many
// expressions against the same type universe should share one Cache (the
// heuristic engine does, across one Compute call).
func EmptyOf(t *typedesc.T, cache *typedesc.Cache[Result]) Result {
	if r, ok := cache.Get(t); ok {
		return r
	}
	if cache.Building(t) {
		// A record type reached itself while still being built. Its
		// fields are not fully known yet, but they don't need to be:
		// every non-Record shape is Flat(∅) regardless of contents, so
		// the placeholder a recursive reference needs is always safe
		// to hand back without waiting for the outer Build to finish.
		return EmptyFlat()
	}
	cache.EnterBuilding(t)
	r := typedesc.Visit[Result](t, emptyVisitor{cache: cache})
	cache.ExitBuilding(t)
	cache.Put(t, r)
	return r
}

type emptyVisitor struct {
	cache *typedesc.Cache[Result]
}

func (emptyVisitor) VisitBool() Result       { return EmptyFlat() }
func (emptyVisitor) VisitByte() Result       { return EmptyFlat() }
func (emptyVisitor) VisitChar() Result       { return EmptyFlat() }
func (emptyVisitor) VisitShort() Result      { return EmptyFlat() }
func (emptyVisitor) VisitUShort() Result     { return EmptyFlat() }
func (emptyVisitor) VisitInt() Result        { return EmptyFlat() }
func (emptyVisitor) VisitUInt() Result       { return EmptyFlat() }
func (emptyVisitor) VisitLong() Result       { return EmptyFlat() }
func (emptyVisitor) VisitULong() Result      { return EmptyFlat() }
func (emptyVisitor) VisitBigInteger() Result { return EmptyFlat() }
func (emptyVisitor) VisitReal() Result       { return EmptyFlat() }
func (emptyVisitor) VisitString() Result     { return EmptyFlat() }

func (emptyVisitor) VisitFixedInt(width int) Result { return EmptyFlat() }
func (emptyVisitor) VisitSeq(elem *typedesc.T) Result { return EmptyFlat() }
func (emptyVisitor) VisitMap(key, value *typedesc.T) Result { return EmptyFlat() }
func (emptyVisitor) VisitConstMap(key, value *typedesc.T) Result { return EmptyFlat() }
func (emptyVisitor) VisitSet(elem *typedesc.T) Result { return EmptyFlat() }

func (v emptyVisitor) VisitRecord(t *typedesc.T) Result {
	fields := make(map[string]Result, len(t.Fields()))
	for _, f := range t.Fields() {
		fields[f.Name] = EmptyOf(f.Type, v.cache)
	}
	return &Record{Fields: fields}
}
