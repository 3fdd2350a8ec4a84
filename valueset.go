// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sdd

import "sort"

// ValueSet is an interned, canonical, non-empty-or-explicitly-empty set of
// values labeling one arc of a prototype node. Two ValueSets compare equal
// (via Equal) if and only if they share the same underlying entry, which
// holds for any two ValueSets built from the same elements through the same
// Manager: construction always goes through the Manager's value-set unique
// table (C1/C3 of the data model).
type ValueSet[V Value[V]] struct {
	entry *refEntry[[]V]
}

// Values returns the sorted, deduplicated elements of vs. The returned slice
// must not be mutated by the caller.
func (vs ValueSet[V]) Values() []V {
	if vs.entry == nil {
		return nil
	}
	return vs.entry.value
}

// Len returns the number of elements in vs.
func (vs ValueSet[V]) Len() int {
	if vs.entry == nil {
		return 0
	}
	return len(vs.entry.value)
}

// IsEmpty reports whether vs has no elements.
func (vs ValueSet[V]) IsEmpty() bool {
	return vs.Len() == 0
}

// Equal reports whether vs and other were interned to the same canonical
// entry.
func (vs ValueSet[V]) Equal(other ValueSet[V]) bool {
	return vs.entry == other.entry
}

// Less gives ValueSet a total order (lexicographic over the sorted
// elements), used to keep a prototype node's arcs in canonical order.
func (vs ValueSet[V]) Less(other ValueSet[V]) bool {
	return compareValueSlices(vs.Values(), other.Values()) < 0
}

// Contains reports whether v belongs to vs.
func (vs ValueSet[V]) Contains(v V) bool {
	elems := vs.Values()
	lo, hi := 0, len(elems)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case elems[mid] == v:
			return true
		case elems[mid].Less(v):
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return false
}

func (vs ValueSet[V]) id() uint64 {
	if vs.entry == nil {
		return 0
	}
	return vs.entry.id
}

// sortedUnique returns a sorted copy of vs with duplicates (by Value
// equality) removed.
func sortedUnique[V Value[V]](vs []V) []V {
	out := make([]V, len(vs))
	copy(out, vs)
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	if len(out) == 0 {
		return out
	}
	w := 1
	for r := 1; r < len(out); r++ {
		if out[r] != out[w-1] {
			out[w] = out[r]
			w++
		}
	}
	return out[:w]
}

// compareValueSlices gives two sorted value slices a lexicographic order:
// shorter-and-a-prefix sorts first, otherwise the first differing element
// decides.
func compareValueSlices[V Value[V]](a, b []V) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] == b[i] {
			continue
		}
		if a[i].Less(b[i]) {
			return -1
		}
		return 1
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

func equalValueSlices[V Value[V]](a, b []V) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func hashValueSlice[V Value[V]](vs []V) uint64 {
	var h uint64
	for _, v := range vs {
		h = hashCombine(h, v.Hash())
	}
	return h
}

// unionValues merges two sorted, deduplicated slices.
func unionValues[V Value[V]](a, b []V) []V {
	out := make([]V, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i].Less(b[j]):
			out = append(out, a[i])
			i++
		default:
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// intersectValues returns the elements common to two sorted, deduplicated
// slices.
func intersectValues[V Value[V]](a, b []V) []V {
	out := make([]V, 0)
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i].Less(b[j]):
			i++
		default:
			j++
		}
	}
	return out
}

// differenceValues returns the elements of a not present in b, both sorted
// and deduplicated.
func differenceValues[V Value[V]](a, b []V) []V {
	out := make([]V, 0, len(a))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			i++
			j++
		case a[i].Less(b[j]):
			out = append(out, a[i])
			i++
		default:
			j++
		}
	}
	out = append(out, a[i:]...)
	return out
}

// NewValueSet interns vs, deduplicating and sorting its elements, and
// returns the canonical ValueSet. This is the create operation of the
// value-set API; it and every other producer of a ValueSet (the set
// operations below, Manager.Arcs, Node) intern through internValueSet.
func (m *Manager[V]) NewValueSet(vs ...V) (ValueSet[V], error) {
	return m.internValueSet(vs)
}

// InsertValue interns the elements of vs together with v.
func (m *Manager[V]) InsertValue(vs ValueSet[V], v V) (ValueSet[V], error) {
	elems := append(append([]V(nil), vs.Values()...), v)
	return m.internValueSet(elems)
}

// EraseValue interns the elements of vs with v removed, if present.
func (m *Manager[V]) EraseValue(vs ValueSet[V], v V) (ValueSet[V], error) {
	elems := vs.Values()
	out := make([]V, 0, len(elems))
	for _, e := range elems {
		if e != v {
			out = append(out, e)
		}
	}
	return m.internValueSet(out)
}

// internValueSet interns the sorted-unique elements of vs into m's value-set
// unique table, returning the canonical ValueSet.
func (m *Manager[V]) internValueSet(vs []V) (ValueSet[V], error) {
	sorted := sortedUnique[V](vs)
	e, _, err := m.valuesTable.intern(sorted)
	if err != nil {
		return ValueSet[V]{}, err
	}
	return ValueSet[V]{entry: e}, nil
}

// releaseValueSet drops vs's reference in m's value-set unique table.
func (m *Manager[V]) releaseValueSet(vs ValueSet[V]) {
	if vs.entry != nil {
		m.valuesTable.release(vs.entry)
	}
}

// UnionValues interns the union of a and b's elements.
func (m *Manager[V]) UnionValues(a, b ValueSet[V]) (ValueSet[V], error) {
	return m.internValueSet(unionValues[V](a.Values(), b.Values()))
}

// IntersectionValues interns the intersection of a and b's elements.
func (m *Manager[V]) IntersectionValues(a, b ValueSet[V]) (ValueSet[V], error) {
	return m.internValueSet(intersectValues[V](a.Values(), b.Values()))
}

// DifferenceValues interns the elements of a not present in b.
func (m *Manager[V]) DifferenceValues(a, b ValueSet[V]) (ValueSet[V], error) {
	return m.internValueSet(differenceValues[V](a.Values(), b.Values()))
}
