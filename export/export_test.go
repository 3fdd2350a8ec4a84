// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package export_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dalzilio/sdd"
	"github.com/dalzilio/sdd/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteZero(t *testing.T) {
	m := sdd.New[sdd.Int](sdd.IntDomain{})
	defer m.Close()

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, m, sdd.Zero[sdd.Int]()))
	out := buf.String()
	assert.Contains(t, out, "digraph sdd")
	assert.Contains(t, out, "node_0")
}

func TestWriteSharedSuccessor(t *testing.T) {
	m := sdd.New[sdd.Int](sdd.IntDomain{})
	defer m.Close()

	one := sdd.One[sdd.Int]()
	vs0, err := m.NewValueSet(0)
	require.NoError(t, err)
	child, err := m.Node(1, []sdd.Arc[sdd.Int]{{Values: vs0, Successor: one}})
	require.NoError(t, err)
	m.Ref(child)
	defer m.Release(child)

	vsA, err := m.NewValueSet(0)
	require.NoError(t, err)
	vsB, err := m.NewValueSet(1)
	require.NoError(t, err)
	top, err := m.Node(2, []sdd.Arc[sdd.Int]{
		{Values: vsA, Successor: child},
		{Values: vsB, Successor: child},
	})
	require.NoError(t, err)
	m.Ref(top)
	defer m.Release(top)

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, m, top))
	out := buf.String()

	// Node merges the two arcs that share child into one arc labeled "0,1",
	// so child is reached through that single arc and rendered exactly
	// once. The two non-terminal nodes (top and child) and the two edges
	// (top to child, child to the One terminal) each carry a [label="..."],
	// four in all.
	assert.Equal(t, 4, strings.Count(out, "[label=\""))
	assert.Equal(t, 2, strings.Count(out, "-> node_"))
}
