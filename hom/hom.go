// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package hom implements a small homomorphism evaluator over this module's
diagrams: structure-preserving transformations applied to a Handle rather
than read from it, the way sdd.Union/Intersection/Difference do. It is a thin
consumer of the root package's Handle API, not part of the kernel: every
homomorphism here is built out of Manager.Node, Manager.Arcs and
Manager.Union, the same operations any other caller has access to.

Local applies an inner homomorphism only where a value predicate holds at a
given level, leaving every other arc (and every other level) untouched.
Expression substitutes a user-supplied function for the subdiagram found at a
given level. Fixpoint iterates a homomorphism until it stops changing its
operand under union — the standard way to compute a reachable state space
from a transition relation expressed as a homomorphism.
*/
package hom

import "github.com/dalzilio/sdd"

// Hom is a homomorphism over V-labeled diagrams.
type Hom[V sdd.Value[V]] interface {
	apply(m *sdd.Manager[V], x sdd.Handle[V], cache map[cacheKey[V]]sdd.Handle[V]) (sdd.Handle[V], error)
}

type cacheKey[V sdd.Value[V]] struct {
	hom Hom[V]
	x   sdd.Handle[V]
}

// Apply evaluates h on x.
func Apply[V sdd.Value[V]](m *sdd.Manager[V], h Hom[V], x sdd.Handle[V]) (sdd.Handle[V], error) {
	return h.apply(m, x, make(map[cacheKey[V]]sdd.Handle[V]))
}

type idHom[V sdd.Value[V]] struct{}

// Id is the identity homomorphism.
func Id[V sdd.Value[V]]() Hom[V] {
	return idHom[V]{}
}

func (idHom[V]) apply(m *sdd.Manager[V], x sdd.Handle[V], cache map[cacheKey[V]]sdd.Handle[V]) (sdd.Handle[V], error) {
	return x, nil
}

type localHom[V sdd.Value[V]] struct {
	level int
	pred  func(V) bool
	inner Hom[V]
}

// Local applies inner to the successor of every arc at level whose value set
// contains at least one value satisfying pred; every other arc, and every
// level other than level, passes through unchanged. When x sits below
// level, no arc chain reaches level (arcs only descend) and the result
// equals x.
func Local[V sdd.Value[V]](level int, pred func(V) bool, inner Hom[V]) Hom[V] {
	return &localHom[V]{level: level, pred: pred, inner: inner}
}

func (l *localHom[V]) apply(m *sdd.Manager[V], x sdd.Handle[V], cache map[cacheKey[V]]sdd.Handle[V]) (sdd.Handle[V], error) {
	if x.IsZero() || x.IsOne() {
		return x, nil
	}
	key := cacheKey[V]{hom: l, x: x}
	if v, ok := cache[key]; ok {
		return v, nil
	}
	arcs, err := m.Arcs(x)
	if err != nil {
		return sdd.Handle[V]{}, err
	}
	level := x.TopLevel()
	newArcs := make([]sdd.Arc[V], 0, len(arcs))
	for _, a := range arcs {
		succ := a.Successor
		if level == l.level {
			matches := false
			for _, v := range a.Values.Values() {
				if l.pred(v) {
					matches = true
					break
				}
			}
			if matches {
				succ, err = l.inner.apply(m, succ, cache)
				if err != nil {
					return sdd.Handle[V]{}, err
				}
			}
		} else {
			succ, err = l.apply(m, succ, cache)
			if err != nil {
				return sdd.Handle[V]{}, err
			}
		}
		newArcs = append(newArcs, sdd.Arc[V]{Values: a.Values, Successor: succ})
	}
	result, err := m.Node(level, newArcs)
	if err != nil {
		return sdd.Handle[V]{}, err
	}
	cache[key] = result
	return result, nil
}

type expressionHom[V sdd.Value[V]] struct {
	level int
	f     func(*sdd.Manager[V], sdd.Handle[V]) (sdd.Handle[V], error)
}

// Expression substitutes f(subdiagram) for the whole subdiagram found at
// level, leaving every level above it structurally untouched.
func Expression[V sdd.Value[V]](level int, f func(*sdd.Manager[V], sdd.Handle[V]) (sdd.Handle[V], error)) Hom[V] {
	return &expressionHom[V]{level: level, f: f}
}

func (e *expressionHom[V]) apply(m *sdd.Manager[V], x sdd.Handle[V], cache map[cacheKey[V]]sdd.Handle[V]) (sdd.Handle[V], error) {
	if x.TopLevel() == e.level || x.IsZero() || x.IsOne() {
		return e.f(m, x)
	}
	key := cacheKey[V]{hom: e, x: x}
	if v, ok := cache[key]; ok {
		return v, nil
	}
	arcs, err := m.Arcs(x)
	if err != nil {
		return sdd.Handle[V]{}, err
	}
	newArcs := make([]sdd.Arc[V], 0, len(arcs))
	for _, a := range arcs {
		succ, err := e.apply(m, a.Successor, cache)
		if err != nil {
			return sdd.Handle[V]{}, err
		}
		newArcs = append(newArcs, sdd.Arc[V]{Values: a.Values, Successor: succ})
	}
	result, err := m.Node(x.TopLevel(), newArcs)
	if err != nil {
		return sdd.Handle[V]{}, err
	}
	cache[key] = result
	return result, nil
}

type fixpointHom[V sdd.Value[V]] struct {
	inner Hom[V]
}

// Fixpoint repeatedly unions its operand with inner applied to it until a
// round adds nothing new, the standard saturation idiom for computing a
// reachable state space from a transition-relation homomorphism.
func Fixpoint[V sdd.Value[V]](inner Hom[V]) Hom[V] {
	return &fixpointHom[V]{inner: inner}
}

func (fp *fixpointHom[V]) apply(m *sdd.Manager[V], x sdd.Handle[V], cache map[cacheKey[V]]sdd.Handle[V]) (sdd.Handle[V], error) {
	acc := x
	for {
		step, err := fp.inner.apply(m, acc, cache)
		if err != nil {
			return sdd.Handle[V]{}, err
		}
		next, err := m.Union(acc, step)
		if err != nil {
			return sdd.Handle[V]{}, err
		}
		if next.Equal(acc) {
			return acc, nil
		}
		acc = next
	}
}

type composeHom[V sdd.Value[V]] struct {
	first, second Hom[V]
}

// Compose returns the homomorphism x ↦ first(second(x)).
func Compose[V sdd.Value[V]](first, second Hom[V]) Hom[V] {
	return &composeHom[V]{first: first, second: second}
}

func (c *composeHom[V]) apply(m *sdd.Manager[V], x sdd.Handle[V], cache map[cacheKey[V]]sdd.Handle[V]) (sdd.Handle[V], error) {
	y, err := c.second.apply(m, x, cache)
	if err != nil {
		return sdd.Handle[V]{}, err
	}
	return c.first.apply(m, y, cache)
}
