package typedesc

import "github.com/bits-and-blooms/bitset"

// Cache memoizes a type-directed visitor's result per type-descriptor
// identity (pointer, not structural equality -- see Equal for that) and
// guards against re-entering a record type that is still being built.
//
// This is the same index-allocation-plus-bitset idiom the teacher codebase
// uses for dense variable sets in its liveness analysis, generalized here
// with a type parameter and repurposed to guard type recursion instead of
// tracking live/dead statements.
type Cache[R any] struct {
	ids      map[*T]uint
	next     uint
	values   []R
	done     *bitset.BitSet
	building *bitset.BitSet
}

// NewCache returns an empty Cache.
func NewCache[R any]() *Cache[R] {
	return &Cache[R]{
		ids:      make(map[*T]uint),
		done:     bitset.New(0),
		building: bitset.New(0),
	}
}

func (c *Cache[R]) idOf(t *T) uint {
	if id, ok := c.ids[t]; ok {
		return id
	}
	id := c.next
	c.next++
	c.ids[t] = id
	return id
}

// Get returns the memoized result for t, if any.
func (c *Cache[R]) Get(t *T) (R, bool) {
	id := c.idOf(t)
	if c.done.Test(id) {
		return c.values[id], true
	}
	var zero R
	return zero, false
}

// Put memoizes r as the result for t.
func (c *Cache[R]) Put(t *T, r R) {
	id := c.idOf(t)
	for id >= uint(len(c.values)) {
		var zero R
		c.values = append(c.values, zero)
	}
	c.values[id] = r
	c.done.Set(id)
}

// Building reports whether t is currently being visited (EnterBuilding was
// called and ExitBuilding has not yet matched it). A visitor that finds
// Building(t) true for the type it was asked to convert is looking at a
// self-referential type it re-entered -- §4.7 requires treating that as an
// error rather than recursing forever.
func (c *Cache[R]) Building(t *T) bool {
	return c.building.Test(c.idOf(t))
}

// EnterBuilding marks t as currently being visited.
func (c *Cache[R]) EnterBuilding(t *T) { c.building.Set(c.idOf(t)) }

// ExitBuilding clears the in-progress mark set by EnterBuilding.
func (c *Cache[R]) ExitBuilding(t *T) { c.building.Clear(c.idOf(t)) }
