// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
hanoi reproduces the Tower of Hanoi walkthrough from the source project's
examples directory: a handful of tiny three-level diagrams representing
single disk placements, combined with Union, and dumped to DOT so the
combination can be inspected visually.
*/
package main

import (
	"fmt"
	"os"

	"github.com/dalzilio/sdd"
	"github.com/dalzilio/sdd/export"
	"github.com/spf13/cobra"
)

var outDir string

func main() {
	root := &cobra.Command{
		Use:   "hanoi",
		Short: "Build and export the Tower of Hanoi example diagrams",
		RunE:  run,
	}
	root.Flags().StringVar(&outDir, "out", ".", "directory to write the .dot files to")
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// singleton builds the one-arc node at level labeled {v} leading to tail,
// mirroring hanoi.cc's by-hand SDD(level, {v}, tail) construction.
func singleton(m *sdd.Manager[sdd.Int], level int, v sdd.Int, tail sdd.Handle[sdd.Int]) (sdd.Handle[sdd.Int], error) {
	vs, err := m.NewValueSet(v)
	if err != nil {
		return sdd.Handle[sdd.Int]{}, err
	}
	return m.Node(level, []sdd.Arc[sdd.Int]{{Values: vs, Successor: tail}})
}

func run(cmd *cobra.Command, args []string) error {
	m := sdd.New[sdd.Int](sdd.IntDomain{})
	defer m.Close()

	one := sdd.One[sdd.Int]()

	x0, err := singleton(m, 1, sdd.Int(0), one)
	if err != nil {
		return err
	}

	y0, err := singleton(m, 2, sdd.Int(0), x0)
	if err != nil {
		return err
	}
	y0, err = singleton(m, 3, sdd.Int(0), y0)
	if err != nil {
		return err
	}

	z0, err := singleton(m, 2, sdd.Int(1), x0)
	if err != nil {
		return err
	}
	z0, err = singleton(m, 3, sdd.Int(1), z0)
	if err != nil {
		return err
	}

	m.Ref(y0)
	defer m.Release(y0)
	m.Ref(z0)
	defer m.Release(z0)

	union, err := m.Union(y0, z0)
	if err != nil {
		return err
	}
	m.Ref(union)
	defer m.Release(union)

	if err := dump(m, "y0", y0); err != nil {
		return err
	}
	if err := dump(m, "z0", z0); err != nil {
		return err
	}
	if err := dump(m, "y0_z0", union); err != nil {
		return err
	}

	count, err := m.CountPaths(union)
	if err != nil {
		return err
	}
	fmt.Printf("y0 + z0 accepts %s tuples\n", count.String())
	fmt.Println(m.Stats())
	return nil
}

func dump(m *sdd.Manager[sdd.Int], name string, h sdd.Handle[sdd.Int]) error {
	f, err := os.Create(outDir + "/" + name + ".dot")
	if err != nil {
		return err
	}
	defer f.Close()
	return export.Write(f, m, h)
}
