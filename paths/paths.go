// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package paths enumerates the individual tuples accepted by a diagram. It
complements Manager.CountPaths (which only counts them) the way the source
project's count_combinations visitor is complemented by its own path-walking
tools: same arc-by-arc descent, but each full root-to-One walk is reported
instead of only weighed and folded.

Enumeration walks with an explicit stack of frames rather than recursion, so
a single call never grows the Go call stack with the diagram's depth; no
goroutines or channels are used either, per this package's own scope.
*/
package paths

import "github.com/dalzilio/sdd"

// frame is one level of the explicit walk: the arcs of the node currently
// being visited, which arc is selected, and which value of that arc's value
// set is currently chosen for the tuple being built.
type frame[V sdd.Value[V]] struct {
	arcs   []sdd.Arc[V]
	arcIdx int
	values []V
	valIdx int
}

// Enumerate calls visit once for every tuple accepted by h, in the order the
// diagram's levels and value sets are stored. It stops and returns visit's
// error the first time visit returns a non-nil one. Zero has no tuples; One
// has exactly the empty tuple.
func Enumerate[V sdd.Value[V]](m *sdd.Manager[V], h sdd.Handle[V], visit func(tuple []V) error) error {
	if h.IsZero() {
		return nil
	}
	if h.IsOne() {
		return visit(nil)
	}

	var stack []*frame[V]
	tuple := make([]V, 0, h.TopLevel())

	push := func(x sdd.Handle[V]) error {
		arcs, err := m.Arcs(x)
		if err != nil {
			return err
		}
		stack = append(stack, &frame[V]{arcs: arcs, values: arcs[0].Values.Values()})
		return nil
	}
	if err := push(h); err != nil {
		return err
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.valIdx >= len(top.values) {
			top.arcIdx++
			if top.arcIdx >= len(top.arcs) {
				stack = stack[:len(stack)-1]
				if len(tuple) > 0 {
					tuple = tuple[:len(tuple)-1]
				}
				continue
			}
			top.values = top.arcs[top.arcIdx].Values.Values()
			top.valIdx = 0
			continue
		}

		tuple = append(tuple, top.values[top.valIdx])
		succ := top.arcs[top.arcIdx].Successor
		top.valIdx++

		if succ.IsOne() {
			if err := visit(append([]V(nil), tuple...)); err != nil {
				return err
			}
			tuple = tuple[:len(tuple)-1]
			continue
		}
		if err := push(succ); err != nil {
			return err
		}
	}
	return nil
}
