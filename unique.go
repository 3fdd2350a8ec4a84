// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sdd

// refEntry is one live entry of a uniqueTable: the canonical value plus its
// reference count and a monotonic id assigned at creation. The id exists
// purely so Handles can be hashed and ordered by identity without resorting
// to unsafe pointer-to-integer conversions: two entries holding equal values
// are the same *refEntry (that is the whole point of interning), so
// comparing or hashing the id is the same as comparing or hashing the
// pointer, portably.
type refEntry[T any] struct {
	id       uint64
	value    T
	refcount int
}

// uniqueTable is a content-addressed table: Intern returns the single entry
// canonically representing a value, creating it on first sight and bumping
// its refcount on every subsequent sight. It is a separate-chaining hash
// table (a Go map of buckets) rather than the open-addressed array the
// original design describes, because entries here are heap-allocated
// pointers shared across many Handles, not relocatable array slots; chaining
// keeps an entry's address (and so its id) stable across resizes, which
// pointer/array-slot schemes cannot offer.
type uniqueTable[T any] struct {
	name    string
	buckets map[uint64][]*refEntry[T]
	hash    func(T) uint64
	equal   func(a, b T) bool
	nextID  uint64
	size    int
	maxSize int // 0 means unbounded

	hits   uint64
	misses uint64
}

func newUniqueTable[T any](name string, initialSize, maxSize int, hash func(T) uint64, equal func(a, b T) bool) *uniqueTable[T] {
	if initialSize <= 0 {
		initialSize = _DEFAULTUNIQUESIZE
	}
	return &uniqueTable[T]{
		name:    name,
		buckets: make(map[uint64][]*refEntry[T], initialSize),
		hash:    hash,
		equal:   equal,
		maxSize: maxSize,
	}
}

// intern returns the canonical entry for v, creating it if this is the
// table's first sight of a value equal to v. The returned entry's refcount
// is bumped by one in either case: callers own exactly one reference to
// whatever intern returns and must release it with the table's release
// method once they stop using it. The returned bool is true exactly when
// this call created the entry (a cache miss) — callers that need to take
// out references on behalf of a freshly-created entry (e.g. a node ref'ing
// its children) must gate that on this flag, since a cache hit means those
// references were already taken by whichever call created the entry.
func (u *uniqueTable[T]) intern(v T) (*refEntry[T], bool, error) {
	h := u.hash(v)
	for _, e := range u.buckets[h] {
		if u.equal(e.value, v) {
			e.refcount++
			u.hits++
			return e, false, nil
		}
	}
	u.misses++
	if u.maxSize > 0 && u.size >= u.maxSize {
		return nil, false, outOfMemoryError(u.name)
	}
	u.nextID++
	e := &refEntry[T]{id: u.nextID, value: v, refcount: 1}
	u.buckets[h] = append(u.buckets[h], e)
	u.size++
	return e, true, nil
}

// ref bumps e's refcount; used when a Handle is copied rather than freshly
// interned (e.g. a function returns a sub-result it already holds a
// reference to).
func (u *uniqueTable[T]) ref(e *refEntry[T]) {
	e.refcount++
}

// release drops e's refcount and erases it from the table once it reaches
// zero, reporting whether an erase happened.
func (u *uniqueTable[T]) release(e *refEntry[T]) bool {
	if e.refcount <= 0 {
		return false
	}
	e.refcount--
	if e.refcount > 0 {
		return false
	}
	h := u.hash(e.value)
	bucket := u.buckets[h]
	for i, c := range bucket {
		if c == e {
			bucket[i] = bucket[len(bucket)-1]
			u.buckets[h] = bucket[:len(bucket)-1]
			break
		}
	}
	u.size--
	return true
}

// len reports the number of distinct entries currently interned.
func (u *uniqueTable[T]) len() int {
	return u.size
}

// dangling reports the entries still holding a positive refcount; used by
// manager teardown to build ErrDanglingOnTeardown.
func (u *uniqueTable[T]) dangling() []*refEntry[T] {
	var out []*refEntry[T]
	for _, bucket := range u.buckets {
		for _, e := range bucket {
			if e.refcount > 0 {
				out = append(out, e)
			}
		}
	}
	return out
}
