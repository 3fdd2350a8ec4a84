// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sdd

import "math/big"

func checkOperands[V Value[V]](op string, a, b Handle[V]) error {
	if a.IsOne() != b.IsOne() {
		return incompatibleLevelsError(op, a.TopLevel(), b.TopLevel())
	}
	if a.IsNode() && b.IsNode() && a.TopLevel() != b.TopLevel() {
		return incompatibleLevelsError(op, a.TopLevel(), b.TopLevel())
	}
	return nil
}

// Union computes the set union of the two diagrams a and b: every tuple
// accepted by a or by b. Union is commutative, associative, idempotent, and
// has Zero as identity.
func (m *Manager[V]) Union(a, b Handle[V]) (Handle[V], error) {
	if a.Equal(b) {
		return a, nil
	}
	if a.IsZero() {
		return b, nil
	}
	if b.IsZero() {
		return a, nil
	}
	if a.IsOne() && b.IsOne() {
		return One[V](), nil
	}
	if err := checkOperands("Union", a, b); err != nil {
		return Handle[V]{}, err
	}
	if cached, ok := m.unionCache.get(opUnion, a, b); ok {
		return cached, nil
	}

	arcsA, err := m.Arcs(a)
	if err != nil {
		return Handle[V]{}, err
	}
	arcsB, err := m.Arcs(b)
	if err != nil {
		return Handle[V]{}, err
	}
	level := a.TopLevel()

	var merged []Arc[V]
	for _, ax := range arcsA {
		remaining := ax.Values
		for _, bx := range arcsB {
			inter, err := m.IntersectionValues(ax.Values, bx.Values)
			if err != nil {
				return Handle[V]{}, err
			}
			if inter.IsEmpty() {
				continue
			}
			child, err := m.Union(ax.Successor, bx.Successor)
			if err != nil {
				return Handle[V]{}, err
			}
			merged = append(merged, Arc[V]{Values: inter, Successor: child})
			remaining, err = m.DifferenceValues(remaining, inter)
			if err != nil {
				return Handle[V]{}, err
			}
		}
		if !remaining.IsEmpty() {
			merged = append(merged, Arc[V]{Values: remaining, Successor: ax.Successor})
		}
	}
	for _, bx := range arcsB {
		remaining := bx.Values
		for _, ax := range arcsA {
			inter, err := m.IntersectionValues(bx.Values, ax.Values)
			if err != nil {
				return Handle[V]{}, err
			}
			if inter.IsEmpty() {
				continue
			}
			remaining, err = m.DifferenceValues(remaining, inter)
			if err != nil {
				return Handle[V]{}, err
			}
		}
		if !remaining.IsEmpty() {
			merged = append(merged, Arc[V]{Values: remaining, Successor: bx.Successor})
		}
	}

	result, err := m.Node(level, merged)
	if err != nil {
		return Handle[V]{}, err
	}
	m.unionCache.put(m, opUnion, a, b, result)
	return result, nil
}

// Intersection computes the set intersection of a and b: every tuple
// accepted by both. Zero is absorbing.
func (m *Manager[V]) Intersection(a, b Handle[V]) (Handle[V], error) {
	if a.IsZero() || b.IsZero() {
		return Zero[V](), nil
	}
	if a.Equal(b) {
		return a, nil
	}
	if a.IsOne() && b.IsOne() {
		return One[V](), nil
	}
	if err := checkOperands("Intersection", a, b); err != nil {
		return Handle[V]{}, err
	}
	if cached, ok := m.intersectionCache.get(opIntersection, a, b); ok {
		return cached, nil
	}

	arcsA, err := m.Arcs(a)
	if err != nil {
		return Handle[V]{}, err
	}
	arcsB, err := m.Arcs(b)
	if err != nil {
		return Handle[V]{}, err
	}
	level := a.TopLevel()

	var merged []Arc[V]
	for _, ax := range arcsA {
		for _, bx := range arcsB {
			inter, err := m.IntersectionValues(ax.Values, bx.Values)
			if err != nil {
				return Handle[V]{}, err
			}
			if inter.IsEmpty() {
				continue
			}
			child, err := m.Intersection(ax.Successor, bx.Successor)
			if err != nil {
				return Handle[V]{}, err
			}
			merged = append(merged, Arc[V]{Values: inter, Successor: child})
		}
	}

	result, err := m.Node(level, merged)
	if err != nil {
		return Handle[V]{}, err
	}
	m.intersectionCache.put(m, opIntersection, a, b, result)
	return result, nil
}

// Difference computes the tuples accepted by a but not by b.
func (m *Manager[V]) Difference(a, b Handle[V]) (Handle[V], error) {
	if a.IsZero() {
		return Zero[V](), nil
	}
	if b.IsZero() {
		return a, nil
	}
	if a.Equal(b) {
		return Zero[V](), nil
	}
	if err := checkOperands("Difference", a, b); err != nil {
		return Handle[V]{}, err
	}
	if cached, ok := m.differenceCache.get(opDifference, a, b); ok {
		return cached, nil
	}

	arcsA, err := m.Arcs(a)
	if err != nil {
		return Handle[V]{}, err
	}
	arcsB, err := m.Arcs(b)
	if err != nil {
		return Handle[V]{}, err
	}
	level := a.TopLevel()

	var merged []Arc[V]
	for _, ax := range arcsA {
		remaining := ax.Values
		for _, bx := range arcsB {
			inter, err := m.IntersectionValues(ax.Values, bx.Values)
			if err != nil {
				return Handle[V]{}, err
			}
			if inter.IsEmpty() {
				continue
			}
			child, err := m.Difference(ax.Successor, bx.Successor)
			if err != nil {
				return Handle[V]{}, err
			}
			if !child.IsZero() {
				merged = append(merged, Arc[V]{Values: inter, Successor: child})
			}
			remaining, err = m.DifferenceValues(remaining, inter)
			if err != nil {
				return Handle[V]{}, err
			}
		}
		if !remaining.IsEmpty() {
			merged = append(merged, Arc[V]{Values: remaining, Successor: ax.Successor})
		}
	}

	result, err := m.Node(level, merged)
	if err != nil {
		return Handle[V]{}, err
	}
	m.differenceCache.put(m, opDifference, a, b, result)
	return result, nil
}

// UnionAll folds Union left to right over hs, short-circuiting on nothing
// (Zero is Union's identity, not absorbing). An empty hs returns Zero.
func (m *Manager[V]) UnionAll(hs []Handle[V]) (Handle[V], error) {
	if len(hs) == 0 {
		return Zero[V](), nil
	}
	acc := hs[0]
	for _, h := range hs[1:] {
		var err error
		acc, err = m.Union(acc, h)
		if err != nil {
			return Handle[V]{}, err
		}
	}
	return acc, nil
}

// IntersectionAll folds Intersection left to right over hs, short-circuiting
// as soon as the accumulator hits Zero (Intersection's absorbing element).
// An empty hs returns Zero, since this package has no way to represent "the
// universe of all tuples" to fold from instead.
func (m *Manager[V]) IntersectionAll(hs []Handle[V]) (Handle[V], error) {
	if len(hs) == 0 {
		return Zero[V](), nil
	}
	acc := hs[0]
	for _, h := range hs[1:] {
		if acc.IsZero() {
			break
		}
		var err error
		acc, err = m.Intersection(acc, h)
		if err != nil {
			return Handle[V]{}, err
		}
	}
	return acc, nil
}

// CountPaths counts the number of tuples accepted by h, using arbitrary
// precision arithmetic since the count grows combinatorially with the
// diagram's depth. It memoizes per Handle for the duration of one call.
func (m *Manager[V]) CountPaths(h Handle[V]) (*big.Int, error) {
	return m.countPaths(h, make(map[Handle[V]]*big.Int))
}

func (m *Manager[V]) countPaths(h Handle[V], cache map[Handle[V]]*big.Int) (*big.Int, error) {
	if h.IsZero() {
		return big.NewInt(0), nil
	}
	if h.IsOne() {
		return big.NewInt(1), nil
	}
	if v, ok := cache[h]; ok {
		return v, nil
	}
	arcs, err := m.Arcs(h)
	if err != nil {
		return nil, err
	}
	total := big.NewInt(0)
	for _, a := range arcs {
		childCount, err := m.countPaths(a.Successor, cache)
		if err != nil {
			return nil, err
		}
		weight := big.NewInt(int64(a.Values.Len()))
		total.Add(total, new(big.Int).Mul(weight, childCount))
	}
	cache[h] = total
	return total, nil
}
