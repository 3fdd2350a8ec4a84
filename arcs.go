// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sdd

// arcView caches the reconstructed arcs of a node Handle, keyed by identity.
// Reconstruction only ever reads from a node's interned environment and
// prototype, both immutable for the node's lifetime, so a Handle's arc view
// never changes. An entry is stored only while the cache holds fewer than
// maxSize entries, and stays until release (Manager.Close); releasing a
// Handle does not remove its entry.
type arcView[V Value[V]] struct {
	entries map[Handle[V]][]Arc[V]
	maxSize int
	hits    uint64
	misses  uint64
}

func newArcView[V Value[V]](maxSize int) *arcView[V] {
	return &arcView[V]{entries: make(map[Handle[V]][]Arc[V], maxSize), maxSize: maxSize}
}

// release drops the owning reference each cached entry's value sets hold
// (taken at interning time in Arcs, below) and empties the cache. Used by
// Manager.Close to tear the arc view down before the dangling check runs.
func (v *arcView[V]) release(m *Manager[V]) {
	for _, arcs := range v.entries {
		for _, a := range arcs {
			m.releaseValueSet(a.Values)
		}
	}
	v.entries = make(map[Handle[V]][]Arc[V], v.maxSize)
}

// Arcs reconstructs the true (value set, successor) pairs of a node Handle,
// undoing the delta-group shift applied at construction (unify, in
// protonode.go) and resolving every value/successor-delta stack slot against
// the node's environment. Terminals have no arcs.
func (m *Manager[V]) Arcs(h Handle[V]) ([]Arc[V], error) {
	if !h.IsNode() {
		return nil, nil
	}
	if cached, ok := m.arcCache.entries[h]; ok {
		m.arcCache.hits++
		return cached, nil
	}
	m.arcCache.misses++

	level := h.TopLevel()
	proto := h.Prototype()
	env := h.Environment()

	out := make([]Arc[V], 0, proto.Arity())
	for _, arc := range proto.entry.value.arcs {
		k := m.domain.Neutral()
		succ := One[V]()
		if level > 1 {
			vRebuilt := arc.valueDelta.Rebuild(env.ValueStack(), rebuildValueSlot[V])
			k = vRebuilt.Head().v
			sRebuilt := arc.successorDelta.Rebuild(env.SuccessorStack(), rebuildSuccSlot[V])
			succ = sRebuilt.Head().h
		}
		shifted := arc.shiftedValues.Values()
		trueVals := make([]V, len(shifted))
		for i, v := range shifted {
			trueVals[i] = m.domain.Rebuild(v, k)
		}
		trueSet, err := m.internValueSet(trueVals)
		if err != nil {
			return nil, err
		}
		out = append(out, Arc[V]{Values: trueSet, Successor: succ})
	}

	if m.arcCache.maxSize <= 0 || len(m.arcCache.entries) < m.arcCache.maxSize {
		m.arcCache.entries[h] = out
	}
	return out, nil
}
