// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sdd

// Value is the constraint satisfied by the scalar type used to label the
// arcs of a diagram. It must be comparable (so value sets can be deduped and
// interned) and totally ordered (so a value set can be kept sorted, which is
// what makes two structurally-equal sets compare byte-for-byte equal).
type Value[V any] interface {
	comparable
	Less(other V) bool
	Hash() uint64
}

// Domain supplies the delta-group operations a Manager needs to factor a
// common displacement out of a set of arc values: Shift moves a value by a
// displacement, Rebuild is its inverse, Common picks the displacement shared
// by every value in a slice, and Neutral is the displacement that leaves a
// value unchanged (the identity of the group). A Manager is parameterized by
// one Domain implementation for its whole lifetime.
type Domain[V Value[V]] interface {
	// Shift returns v displaced by k; Rebuild(Shift(v, k), k) must equal v.
	Shift(v, k V) V
	// Rebuild returns v displaced back by k; the inverse of Shift.
	Rebuild(v, k V) V
	// Common returns the displacement shared by every element of vs. Called
	// with a non-empty slice.
	Common(vs []V) V
	// Neutral is the displacement that leaves every value unchanged.
	Neutral() V
}

// Int is the built-in Value implementation used by every example and test in
// this package: a plain integer ordered the usual way.
type Int int

// Less implements Value.
func (a Int) Less(b Int) bool { return a < b }

// Hash implements Value.
func (a Int) Hash() uint64 { return uint64(int64(a)) }

// IntDomain is the built-in Domain for Int-labeled diagrams. It factors a
// set of integers around their minimum: Common is the minimum of the set,
// Shift subtracts it and Rebuild adds it back. Every delta-group identity
// (Rebuild(Shift(v,k),k) == v, Common of a set shifted by its own Common is
// the domain's Neutral) holds under ordinary integer arithmetic.
type IntDomain struct{}

// Shift implements Domain.
func (IntDomain) Shift(v, k Int) Int { return v - k }

// Rebuild implements Domain.
func (IntDomain) Rebuild(v, k Int) Int { return v + k }

// Common implements Domain.
func (IntDomain) Common(vs []Int) Int {
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// Neutral implements Domain.
func (IntDomain) Neutral() Int { return 0 }
