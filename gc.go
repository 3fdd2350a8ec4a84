// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sdd

import "log"

// Ref records one more owner of h, mirroring the teacher's AddRef: every
// Handle a caller intends to hold onto beyond the call that produced it must
// be Ref'd, and every Ref must be matched by a Release. Terminals need no
// bookkeeping and are returned unchanged.
func (m *Manager[V]) Ref(h Handle[V]) Handle[V] {
	if !h.IsNode() {
		return h
	}
	m.envTable.ref(h.env)
	m.sddTable.ref(h.proto)
	return h
}

// Release drops one ownership claim on h. Unlike the teacher's mark-sweep
// gbc, which defers reclamation to an explicit collection pass, erasure here
// is immediate: the moment a prototype's refcount reaches zero, its stored
// value sets and its children are released in turn, cascading down the
// diagram exactly as far as ownership actually drops to zero. A diagram
// still referenced elsewhere (directly, or as another live diagram's arc)
// is left untouched.
func (m *Manager[V]) Release(h Handle[V]) {
	if !h.IsNode() {
		return
	}
	m.envTable.release(h.env)
	data := h.proto.value
	if !m.sddTable.release(h.proto) {
		return
	}
	if _DEBUG {
		log.Printf("sdd: erasing prototype %d (%d arcs)", h.proto.id, len(data.arcs))
	}
	for _, arc := range data.arcs {
		m.releaseValueSet(arc.shiftedValues)
	}
	for _, c := range data.children {
		m.Release(c)
	}
}
