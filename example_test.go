// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sdd_test

import (
	"fmt"

	"github.com/dalzilio/sdd"
)

// This example shows the basic usage of the package: create a Manager,
// build a couple of small diagrams by hand, combine them and count the
// accepted tuples.
func Example_basic() {
	m := sdd.New[sdd.Int](sdd.IntDomain{})
	defer m.Close()

	one := sdd.One[sdd.Int]()

	vs0, _ := m.NewValueSet(0)
	x0, _ := m.Node(1, []sdd.Arc[sdd.Int]{{Values: vs0, Successor: one}})
	m.Ref(x0)
	defer m.Release(x0)

	vs1, _ := m.NewValueSet(1)
	y0, _ := m.Node(2, []sdd.Arc[sdd.Int]{{Values: vs1, Successor: x0}})
	m.Ref(y0)
	defer m.Release(y0)

	vs2, _ := m.NewValueSet(2)
	z0, _ := m.Node(2, []sdd.Arc[sdd.Int]{{Values: vs2, Successor: x0}})
	m.Ref(z0)
	defer m.Release(z0)

	union, _ := m.Union(y0, z0)
	m.Ref(union)
	defer m.Release(union)

	count, _ := m.CountPaths(union)
	fmt.Printf("Number of accepted tuples: %s\n", count.String())
	// Output:
	// Number of accepted tuples: 2
}
