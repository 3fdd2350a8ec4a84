// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package export renders diagrams through the visitor interface the root
package's graph-export surface is built around: OnZero and OnOne are called
for the two terminals, OnNode once per distinct node reached (memoized by
node identity, so shared substructure is visited exactly once), after its
children have already been visited and assigned their own ids. This mirrors
the node-id-memoizing visitor the source project's own DOT writer uses,
generalized so a caller can plug in something other than DOT (e.g. a
different textual format, or a visitor that only collects statistics)
without touching the walk itself.

The dot subtype of Visitor, and Write, are this package's own DOT writer,
grounded on the same visitor shape.
*/
package export

import (
	"fmt"
	"io"

	"github.com/dalzilio/sdd"
)

// Visitor receives one callback per terminal reached and one callback per
// distinct node reached during a Walk. childIDs[i] is the id Walk assigned
// to arcs[i].Successor, already visited by the time OnNode is called.
type Visitor[V sdd.Value[V]] interface {
	OnZero(id int)
	OnOne(id int)
	OnNode(id, level int, arcs []sdd.Arc[V], childIDs []int)
}

// Walk drives v over h: terminals are reported through OnZero/OnOne, nodes
// through OnNode, with per-node memoization by identity (Handle equality)
// so a node reachable through several arcs is visited and reported exactly
// once, after all of its own successors have been.
func Walk[V sdd.Value[V]](m *sdd.Manager[V], v Visitor[V], h sdd.Handle[V]) error {
	w := &walker[V]{m: m, v: v, ids: make(map[sdd.Handle[V]]int), nextID: 1}
	_, err := w.visit(h)
	return err
}

type walker[V sdd.Value[V]] struct {
	m      *sdd.Manager[V]
	v      Visitor[V]
	ids    map[sdd.Handle[V]]int
	nextID int
}

func (w *walker[V]) visit(h sdd.Handle[V]) (int, error) {
	if h.IsZero() {
		w.v.OnZero(0)
		return 0, nil
	}
	if h.IsOne() {
		w.v.OnOne(1)
		return 1, nil
	}
	if id, ok := w.ids[h]; ok {
		return id, nil
	}
	w.nextID++
	id := w.nextID
	w.ids[h] = id

	arcs, err := w.m.Arcs(h)
	if err != nil {
		return 0, err
	}
	childIDs := make([]int, len(arcs))
	for i, a := range arcs {
		cid, err := w.visit(a.Successor)
		if err != nil {
			return 0, err
		}
		childIDs[i] = cid
	}
	w.v.OnNode(id, h.TopLevel(), arcs, childIDs)
	return id, nil
}

// Write renders h as a DOT digraph to w, using Walk with the built-in dot
// visitor. Values are formatted with fmt's default verb, one comma-separated
// list per arc label.
func Write[V sdd.Value[V]](w io.Writer, m *sdd.Manager[V], h sdd.Handle[V]) error {
	fmt.Fprintln(w, "digraph sdd {")
	v := &dotVisitor[V]{w: w}
	if err := Walk(m, v, h); err != nil {
		return err
	}
	fmt.Fprintln(w, "}")
	return nil
}

// dotVisitor is the built-in Visitor that writes DOT syntax as it is
// called, grounded on the source project's own to_dot_visitor: a square
// node for each terminal encountered, a plain node per level for every
// other node, and one labeled edge per arc.
type dotVisitor[V sdd.Value[V]] struct {
	w io.Writer
}

func (d *dotVisitor[V]) OnZero(id int) {
	fmt.Fprintf(d.w, "  node_%d [shape=square,label=\"0\"];\n", id)
}

func (d *dotVisitor[V]) OnOne(id int) {
	fmt.Fprintf(d.w, "  node_%d [shape=square,label=\"1\"];\n", id)
}

func (d *dotVisitor[V]) OnNode(id, level int, arcs []sdd.Arc[V], childIDs []int) {
	fmt.Fprintf(d.w, "  node_%d [label=\"%d\"];\n", id, level)
	for i, a := range arcs {
		fmt.Fprintf(d.w, "  node_%d -> node_%d [label=\"%s\"];\n", id, childIDs[i], formatValues(a.Values.Values()))
	}
}

func formatValues[V sdd.Value[V]](vs []V) string {
	s := ""
	for i, v := range vs {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprint(v)
	}
	return s
}
