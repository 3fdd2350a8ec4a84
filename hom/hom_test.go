// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package hom_test

import (
	"testing"

	"github.com/dalzilio/sdd"
	"github.com/dalzilio/sdd/hom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleton(t *testing.T, m *sdd.Manager[sdd.Int], level int, v sdd.Int, tail sdd.Handle[sdd.Int]) sdd.Handle[sdd.Int] {
	t.Helper()
	vs, err := m.NewValueSet(v)
	require.NoError(t, err)
	h, err := m.Node(level, []sdd.Arc[sdd.Int]{{Values: vs, Successor: tail}})
	require.NoError(t, err)
	return m.Ref(h)
}

func TestIdentity(t *testing.T) {
	m := sdd.New[sdd.Int](sdd.IntDomain{})
	defer m.Close()

	h := singleton(t, m, 1, 0, sdd.One[sdd.Int]())
	defer m.Release(h)

	result, err := hom.Apply(m, hom.Id[sdd.Int](), h)
	require.NoError(t, err)
	assert.True(t, result.Equal(h))
}

// addTen replaces a level-1 node's value set with every value shifted by
// +10, keeping its successor.
func addTen(m *sdd.Manager[sdd.Int], x sdd.Handle[sdd.Int]) (sdd.Handle[sdd.Int], error) {
	arcs, err := m.Arcs(x)
	if err != nil {
		return sdd.Handle[sdd.Int]{}, err
	}
	var merged []sdd.Arc[sdd.Int]
	for _, a := range arcs {
		shifted := make([]sdd.Int, 0, a.Values.Len())
		for _, v := range a.Values.Values() {
			shifted = append(shifted, v+10)
		}
		vs, err := m.NewValueSet(shifted...)
		if err != nil {
			return sdd.Handle[sdd.Int]{}, err
		}
		merged = append(merged, sdd.Arc[sdd.Int]{Values: vs, Successor: a.Successor})
	}
	return m.Node(1, merged)
}

func TestLocal(t *testing.T) {
	m := sdd.New[sdd.Int](sdd.IntDomain{})
	defer m.Close()

	one := sdd.One[sdd.Int]()
	child0 := singleton(t, m, 1, 0, one)
	child1 := singleton(t, m, 1, 1, one)
	defer m.Release(child0)
	defer m.Release(child1)

	vs0, err := m.NewValueSet(0)
	require.NoError(t, err)
	vs1, err := m.NewValueSet(1)
	require.NoError(t, err)
	top, err := m.Node(2, []sdd.Arc[sdd.Int]{
		{Values: vs0, Successor: child0},
		{Values: vs1, Successor: child1},
	})
	require.NoError(t, err)
	m.Ref(top)
	defer m.Release(top)

	inner := hom.Expression[sdd.Int](1, addTen)
	l := hom.Local[sdd.Int](2, func(v sdd.Int) bool { return v == 0 }, inner)

	result, err := hom.Apply(m, l, top)
	require.NoError(t, err)
	m.Ref(result)
	defer m.Release(result)

	arcs, err := m.Arcs(result)
	require.NoError(t, err)
	require.Len(t, arcs, 2)

	found0, found1 := false, false
	for _, a := range arcs {
		childArcs, err := m.Arcs(a.Successor)
		require.NoError(t, err)
		require.Len(t, childArcs, 1)
		switch a.Values.Values()[0] {
		case 0:
			found0 = true
			assert.Equal(t, sdd.Int(10), childArcs[0].Values.Values()[0])
		case 1:
			found1 = true
			assert.Equal(t, sdd.Int(1), childArcs[0].Values.Values()[0])
		}
	}
	assert.True(t, found0)
	assert.True(t, found1)
}

func TestFixpoint(t *testing.T) {
	m := sdd.New[sdd.Int](sdd.IntDomain{})
	defer m.Close()

	h0 := singleton(t, m, 1, 0, sdd.One[sdd.Int]())
	defer m.Release(h0)

	step := func(mgr *sdd.Manager[sdd.Int], x sdd.Handle[sdd.Int]) (sdd.Handle[sdd.Int], error) {
		arcs, err := mgr.Arcs(x)
		if err != nil {
			return sdd.Handle[sdd.Int]{}, err
		}
		var grown []sdd.Int
		for _, v := range arcs[0].Values.Values() {
			if v+1 <= 2 {
				grown = append(grown, v+1)
			}
		}
		if len(grown) == 0 {
			return x, nil
		}
		vs, err := mgr.NewValueSet(grown...)
		if err != nil {
			return sdd.Handle[sdd.Int]{}, err
		}
		shifted, err := mgr.Node(1, []sdd.Arc[sdd.Int]{{Values: vs, Successor: arcs[0].Successor}})
		if err != nil {
			return sdd.Handle[sdd.Int]{}, err
		}
		return mgr.Union(x, shifted)
	}

	h := hom.Fixpoint[sdd.Int](hom.Expression[sdd.Int](1, step))
	result, err := hom.Apply(m, h, h0)
	require.NoError(t, err)
	m.Ref(result)
	defer m.Release(result)

	arcs, err := m.Arcs(result)
	require.NoError(t, err)
	require.Len(t, arcs, 1)
	assert.ElementsMatch(t, []sdd.Int{0, 1, 2}, arcs[0].Values.Values())

	count, err := m.CountPaths(result)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count.Int64())
}
