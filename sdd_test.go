// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sdd

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// singleton builds the one-arc node at level labeled {v} leading to tail,
// ref'ing the result on behalf of the caller.
func singleton(t *testing.T, m *Manager[Int], level int, v Int, tail Handle[Int]) Handle[Int] {
	t.Helper()
	vs, err := m.NewValueSet(v)
	require.NoError(t, err)
	h, err := m.Node(level, []Arc[Int]{{Values: vs, Successor: tail}})
	require.NoError(t, err)
	return m.Ref(h)
}

// hanoiDisks builds x0, y0, z0 as in spec.md's Tower of Hanoi scenario:
// three levels, each encoding a single disk placement.
func hanoiDisks(t *testing.T, m *Manager[Int]) (x0, y0, z0 Handle[Int]) {
	t.Helper()
	one := One[Int]()
	x0 = singleton(t, m, 1, 0, one)
	y0 = singleton(t, m, 2, 0, x0)
	y0 = singleton(t, m, 3, 0, y0)
	z0 = singleton(t, m, 2, 1, x0)
	z0 = singleton(t, m, 3, 1, z0)
	return
}

func TestHanoiInitialState(t *testing.T) {
	m := New[Int](IntDomain{})
	defer m.Close()

	x0, y0, z0 := hanoiDisks(t, m)
	defer m.Release(x0)
	defer m.Release(y0)
	defer m.Release(z0)

	count, err := m.CountPaths(x0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count.Int64())

	union, err := m.Union(y0, z0)
	require.NoError(t, err)
	m.Ref(union)
	defer m.Release(union)

	count, err = m.CountPaths(union)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count.Int64())

	inter, err := m.Intersection(union, y0)
	require.NoError(t, err)
	assert.True(t, inter.Equal(y0))
}

func TestUnionTwoDistinctSingletonsAtLevel3(t *testing.T) {
	m := New[Int](IntDomain{})
	defer m.Close()

	one := One[Int]()
	a := singleton(t, m, 1, 0, one)
	a = singleton(t, m, 2, 0, a)
	a = singleton(t, m, 3, 0, a)
	b := singleton(t, m, 1, 0, one)
	b = singleton(t, m, 2, 1, b)
	b = singleton(t, m, 3, 1, b)
	defer m.Release(a)
	defer m.Release(b)

	union, err := m.Union(a, b)
	require.NoError(t, err)
	m.Ref(union)
	defer m.Release(union)

	count, err := m.CountPaths(union)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count.Int64())

	arcs, err := m.Arcs(union)
	require.NoError(t, err)
	require.Len(t, arcs, 2)
	assert.False(t, arcs[0].Successor.Equal(arcs[1].Successor))
	inter, err := m.IntersectionValues(arcs[0].Values, arcs[1].Values)
	require.NoError(t, err)
	assert.True(t, inter.IsEmpty())
}

func TestDifferenceRoundTrip(t *testing.T) {
	m := New[Int](IntDomain{})
	defer m.Close()

	one := One[Int]()
	vs, err := m.NewValueSet(0, 1, 2)
	require.NoError(t, err)
	x, err := m.Node(1, []Arc[Int]{{Values: vs, Successor: one}})
	require.NoError(t, err)
	m.Ref(x)
	defer m.Release(x)

	filter, err := m.NewValueSet(0, 1)
	require.NoError(t, err)
	y, err := m.Node(1, []Arc[Int]{{Values: filter, Successor: one}})
	require.NoError(t, err)
	m.Ref(y)
	defer m.Release(y)

	y, err = m.Intersection(x, y)
	require.NoError(t, err)
	m.Ref(y)
	defer m.Release(y)

	diff, err := m.Difference(x, y)
	require.NoError(t, err)
	m.Ref(diff)
	defer m.Release(diff)

	rebuilt, err := m.Union(diff, y)
	require.NoError(t, err)
	assert.True(t, rebuilt.Equal(x))
}

func TestCommutativityCanonicity(t *testing.T) {
	m := New[Int](IntDomain{})
	defer m.Close()

	one := One[Int]()
	a := singleton(t, m, 1, 0, one)
	b := singleton(t, m, 1, 1, one)
	defer m.Release(a)
	defer m.Release(b)

	ab, err := m.Union(a, b)
	require.NoError(t, err)
	ba, err := m.Union(b, a)
	require.NoError(t, err)

	assert.True(t, ab.Equal(ba))
	assert.Equal(t, ab, ba)
}

func TestLevelMismatch(t *testing.T) {
	m := New[Int](IntDomain{})
	defer m.Close()

	one := One[Int]()
	a := singleton(t, m, 1, 0, one)
	a = singleton(t, m, 2, 0, a)
	defer m.Release(a)

	_, err := m.Intersection(a, one)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncompatibleLevels))
}

func TestLargeFanInUnion(t *testing.T) {
	m := New[Int](IntDomain{})
	defer m.Close()

	one := One[Int]()
	hs := make([]Handle[Int], 100)
	for i := 0; i < 100; i++ {
		hs[i] = singleton(t, m, 1, Int(i), one)
	}
	defer func() {
		for _, h := range hs {
			m.Release(h)
		}
	}()

	union, err := m.UnionAll(hs)
	require.NoError(t, err)
	m.Ref(union)
	defer m.Release(union)

	arcs, err := m.Arcs(union)
	require.NoError(t, err)
	require.Len(t, arcs, 1)
	assert.Equal(t, 100, arcs[0].Values.Len())
	assert.True(t, arcs[0].Successor.IsOne())

	count, err := m.CountPaths(union)
	require.NoError(t, err)
	assert.Equal(t, int64(100), count.Int64())
}

func TestAlgebraicLaws(t *testing.T) {
	m := New[Int](IntDomain{})
	defer m.Close()

	one := One[Int]()
	zero := Zero[Int]()
	x := singleton(t, m, 1, 0, one)
	y := singleton(t, m, 1, 1, one)
	z := singleton(t, m, 1, 2, one)
	defer m.Release(x)
	defer m.Release(y)
	defer m.Release(z)

	t.Run("idempotence", func(t *testing.T) {
		u, err := m.Union(x, x)
		require.NoError(t, err)
		assert.True(t, u.Equal(x))

		i, err := m.Intersection(x, x)
		require.NoError(t, err)
		assert.True(t, i.Equal(x))

		d, err := m.Difference(x, x)
		require.NoError(t, err)
		assert.True(t, d.IsZero())
	})

	t.Run("identity", func(t *testing.T) {
		u, err := m.Union(x, zero)
		require.NoError(t, err)
		assert.True(t, u.Equal(x))

		// x is a level-1 node and One a terminal: they are not comparable,
		// so no identity law applies and the operation is a level error.
		_, err = m.Intersection(x, one)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrIncompatibleLevels))

		d, err := m.Difference(x, zero)
		require.NoError(t, err)
		assert.True(t, d.Equal(x))
	})

	t.Run("absorbing", func(t *testing.T) {
		i, err := m.Intersection(x, zero)
		require.NoError(t, err)
		assert.True(t, i.IsZero())

		u, err := m.Union(zero, zero)
		require.NoError(t, err)
		assert.True(t, u.IsZero())
	})

	t.Run("commutativity", func(t *testing.T) {
		xy, err := m.Union(x, y)
		require.NoError(t, err)
		yx, err := m.Union(y, x)
		require.NoError(t, err)
		assert.Equal(t, xy, yx)

		xyI, err := m.Intersection(x, y)
		require.NoError(t, err)
		yxI, err := m.Intersection(y, x)
		require.NoError(t, err)
		assert.Equal(t, xyI, yxI)
	})

	t.Run("associativity", func(t *testing.T) {
		xyThenZ, err := m.Union(mustUnion(t, m, x, y), z)
		require.NoError(t, err)
		xThenYZ, err := m.Union(x, mustUnion(t, m, y, z))
		require.NoError(t, err)
		assert.Equal(t, xyThenZ, xThenYZ)

		xyThenZI, err := m.Intersection(mustUnion(t, m, x, y), z)
		require.NoError(t, err)
		xThenYZI, err := m.Intersection(x, mustUnion(t, m, y, z))
		require.NoError(t, err)
		assert.Equal(t, xyThenZI, xThenYZI)
	})

	t.Run("distributivity", func(t *testing.T) {
		yz, err := m.Union(y, z)
		require.NoError(t, err)
		lhs, err := m.Intersection(x, yz)
		require.NoError(t, err)

		xy, err := m.Intersection(x, y)
		require.NoError(t, err)
		xz, err := m.Intersection(x, z)
		require.NoError(t, err)
		rhs, err := m.Union(xy, xz)
		require.NoError(t, err)

		assert.True(t, lhs.Equal(rhs))
	})

	t.Run("de morgan on difference", func(t *testing.T) {
		yz, err := m.Union(y, z)
		require.NoError(t, err)
		lhs, err := m.Difference(x, yz)
		require.NoError(t, err)

		xy, err := m.Difference(x, y)
		require.NoError(t, err)
		xz, err := m.Difference(x, z)
		require.NoError(t, err)
		rhs, err := m.Intersection(xy, xz)
		require.NoError(t, err)

		assert.True(t, lhs.Equal(rhs))
	})

	t.Run("cardinality", func(t *testing.T) {
		u, err := m.Union(x, y)
		require.NoError(t, err)
		i, err := m.Intersection(x, y)
		require.NoError(t, err)

		cu, err := m.CountPaths(u)
		require.NoError(t, err)
		ci, err := m.CountPaths(i)
		require.NoError(t, err)
		cx, err := m.CountPaths(x)
		require.NoError(t, err)
		cy, err := m.CountPaths(y)
		require.NoError(t, err)

		lhs := new(big.Int).Add(cu, ci)
		rhs := new(big.Int).Add(cx, cy)
		assert.Equal(t, rhs.String(), lhs.String())
	})
}

func mustUnion(t *testing.T, m *Manager[Int], a, b Handle[Int]) Handle[Int] {
	t.Helper()
	h, err := m.Union(a, b)
	require.NoError(t, err)
	return h
}

func TestRefcountHygiene(t *testing.T) {
	m := New[Int](IntDomain{})

	x0, y0, z0 := hanoiDisks(t, m)
	union, err := m.Union(y0, z0)
	require.NoError(t, err)
	m.Ref(union)

	m.Release(x0)
	m.Release(y0)
	m.Release(z0)
	m.Release(union)

	require.NoError(t, m.Close())
}

func TestManagerUninitializedAfterClose(t *testing.T) {
	m := New[Int](IntDomain{})
	require.NoError(t, m.Close())
	assert.ErrorIs(t, m.checkOpen(), ErrManagerUninitialized)
}
