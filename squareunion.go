// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sdd

import "sort"

// squareUnion merges arcs sharing an identical successor by unioning their
// value sets, then returns the merged arcs sorted into canonical value-set
// order. It consumes every input arc's Values reference (releasing it once
// copied into a group) and returns arcs whose Values field is a freshly
// interned, owned reference that the caller (unify, in protonode.go) must
// release in turn — squareUnion always re-interns rather than passing an
// input's ValueSet through unchanged, which keeps ownership uniform
// regardless of how many arcs fed a given successor.
//
// squareUnion does not resolve value sets that overlap across different
// successors — Node still requires arcs to be pairwise disjoint in value.
// That never arises from the set operations in this package, which only
// ever build arcs by intersecting or complementing already-disjoint
// partitions.
func (m *Manager[V]) squareUnion(arcs []Arc[V]) ([]Arc[V], error) {
	type group struct {
		succ   Handle[V]
		values []V
	}
	groups := make([]group, 0, len(arcs))
	index := make(map[Handle[V]]int, len(arcs))
	for _, a := range arcs {
		if idx, ok := index[a.Successor]; ok {
			groups[idx].values = append(groups[idx].values, a.Values.Values()...)
			m.releaseValueSet(a.Values)
			continue
		}
		index[a.Successor] = len(groups)
		groups = append(groups, group{succ: a.Successor, values: append([]V(nil), a.Values.Values()...)})
		m.releaseValueSet(a.Values)
	}
	out := make([]Arc[V], len(groups))
	for i, g := range groups {
		vs, err := m.internValueSet(g.values)
		if err != nil {
			for _, done := range out[:i] {
				m.releaseValueSet(done.Values)
			}
			return nil, err
		}
		out[i] = Arc[V]{Values: vs, Successor: g.succ}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Values.Less(out[j].Values) })
	return out, nil
}
