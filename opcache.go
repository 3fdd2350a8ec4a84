// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sdd

// opCode identifies which binary operation a cache entry memoizes.
type opCode byte

const (
	opUnion opCode = iota
	opIntersection
	opDifference
)

// opKey is an operation-cache key: an operation and its two operands. For
// commutative operations (union, intersection) the operands are canonically
// ordered before the key is built, so a∪b and b∪a hit the same entry;
// difference is not commutative and keeps its operand order as given.
type opKey[V Value[V]] struct {
	op   opCode
	a, b Handle[V]
}

// opCache memoizes binary set operations. A failed operation (one that
// raised ErrIncompatibleLevels) is never stored, per the failure-semantics
// contract: a cache hit always reflects a value that was actually computed
// successfully.
type opCache[V Value[V]] struct {
	name    string
	entries map[opKey[V]]Handle[V]
	maxSize int
	hits    uint64
	misses  uint64
}

func newOpCache[V Value[V]](name string, maxSize int) *opCache[V] {
	return &opCache[V]{name: name, entries: make(map[opKey[V]]Handle[V], maxSize), maxSize: maxSize}
}

func (c *opCache[V]) key(op opCode, a, b Handle[V]) opKey[V] {
	if op != opDifference && a.Order(b) > 0 {
		a, b = b, a
	}
	return opKey[V]{op: op, a: a, b: b}
}

func (c *opCache[V]) get(op opCode, a, b Handle[V]) (Handle[V], bool) {
	v, ok := c.entries[c.key(op, a, b)]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

// put stores result under (op, a, b), taking out its own owning reference on
// result — the entry survives independently of whatever reference the
// operation's immediate caller holds, and is dropped only when the cache is
// released (Manager.Close); entries are never evicted. Nothing is stored (and no
// reference taken) once the cache is at capacity.
func (c *opCache[V]) put(m *Manager[V], op opCode, a, b Handle[V], result Handle[V]) {
	if c.maxSize > 0 && len(c.entries) >= c.maxSize {
		return
	}
	c.entries[c.key(op, a, b)] = m.Ref(result)
}

func (c *opCache[V]) len() int { return len(c.entries) }

// release drops this cache's owning reference on every entry and empties it.
// Used by Manager.Close to tear operation caches down before the dangling
// check runs.
func (c *opCache[V]) release(m *Manager[V]) {
	for _, h := range c.entries {
		m.Release(h)
	}
	c.entries = make(map[opKey[V]]Handle[V], c.maxSize)
}
