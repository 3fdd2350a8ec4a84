// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sdd

// Arc is one branch supplied to Manager.Node: a value set and the diagram it
// leads to. Node accepts arcs that repeat a successor and merges them into
// the canonical sorted, successor-deduplicated form a prototype node
// requires; value sets of arcs with different successors must already be
// pairwise disjoint, since Node does not repartition them.
type Arc[V Value[V]] struct {
	Values    ValueSet[V]
	Successor Handle[V]
}

// protoArc is one arc of an interned prototype node. shiftedValues is the
// arc's true value set shifted by a per-arc displacement k (factored out via
// the Domain contract); valueDelta and successorDelta are the delta stacks
// that, together with the node's environment, reconstruct k and the arc's
// true successor (arcs.go). A slot in either stack is either the arc's own
// value (it disagreed with its siblings, so the environment does not carry
// it) or the default marker (every sibling arc agreed, so the shared value
// lives in the environment instead).
type protoArc[V Value[V]] struct {
	shiftedValues  ValueSet[V]
	valueDelta     Stack[valueSlot[V]]
	successorDelta Stack[succSlot[V]]
}

func equalProtoArc[V Value[V]](a, b protoArc[V]) bool {
	return a.shiftedValues.Equal(b.shiftedValues) &&
		StackEqual(a.valueDelta, b.valueDelta) &&
		StackEqual(a.successorDelta, b.successorDelta)
}

func hashProtoArc[V Value[V]](a protoArc[V]) uint64 {
	h := hashCombine(0, a.shiftedValues.id())
	h = hashCombine(h, StackHash(a.valueDelta, hashValueSlot[V]))
	h = hashCombine(h, StackHash(a.successorDelta, hashSuccSlot[V]))
	return h
}

// protoNodeData is the environment-free shape of a node: its sorted,
// disjoint arcs. Two nodes with the same arcs (in the same order) intern to
// the same prototype entry regardless of which environments reference them.
// children mirrors each arc's true successor, held for exactly the
// prototype entry's lifetime (one reference taken when the entry is first
// created, released in one cascade when its refcount finally reaches zero —
// see gc.go); it does not participate in equality or hashing, since it adds
// no information beyond what arcs already encodes.
type protoNodeData[V Value[V]] struct {
	arcs     []protoArc[V]
	children []Handle[V]
}

func equalProtoNodeData[V Value[V]](a, b protoNodeData[V]) bool {
	if len(a.arcs) != len(b.arcs) {
		return false
	}
	for i := range a.arcs {
		if !equalProtoArc(a.arcs[i], b.arcs[i]) {
			return false
		}
	}
	return true
}

func hashProtoNodeData[V Value[V]](d protoNodeData[V]) uint64 {
	var h uint64
	for _, a := range d.arcs {
		h = hashCombine(h, hashProtoArc(a))
	}
	return h
}

// ProtoNode is an interned prototype node.
type ProtoNode[V Value[V]] struct {
	entry *refEntry[protoNodeData[V]]
}

// Arity returns the number of arcs of the prototype node.
func (p ProtoNode[V]) Arity() int {
	return len(p.entry.value.arcs)
}

func (p ProtoNode[V]) id() uint64 {
	if p.entry == nil {
		return 0
	}
	return p.entry.id
}

// Node builds the canonical diagram for level with the given arcs. Arcs with
// an empty value set or a Zero successor are dropped (the reduction rule);
// arcs sharing an identical successor are merged by unioning their value
// sets (square union, squareunion.go) before the remaining arcs are
// interned. Every non-terminal successor must sit exactly at level-1;
// anything else is ErrIncompatibleLevels.
func (m *Manager[V]) Node(level int, arcs []Arc[V]) (Handle[V], error) {
	reduced := make([]Arc[V], 0, len(arcs))
	for _, a := range arcs {
		if a.Values.IsEmpty() || a.Successor.IsZero() {
			continue
		}
		if level == 1 {
			if !a.Successor.IsOne() {
				return Handle[V]{}, incompatibleLevelsError("Node", level, a.Successor.TopLevel())
			}
		} else if !a.Successor.IsNode() || a.Successor.TopLevel() != level-1 {
			return Handle[V]{}, incompatibleLevelsError("Node", level, a.Successor.TopLevel())
		}
		reduced = append(reduced, a)
	}
	merged, err := m.squareUnion(reduced)
	if err != nil {
		return Handle[V]{}, err
	}
	if len(merged) == 0 {
		return Zero[V](), nil
	}
	return m.unify(level, merged)
}

// unify builds the interned (environment, prototype) pair for a level's
// already-reduced, already-merged, sorted arc list.
func (m *Manager[V]) unify(level int, arcs []Arc[V]) (Handle[V], error) {
	n := len(arcs)
	stackLen := 0
	if level > 1 {
		stackLen = level - 1
	}

	shiftedSets := make([]ValueSet[V], n)
	candValueDelta := make([][]valueSlot[V], n)
	candSuccDelta := make([][]succSlot[V], n)

	for i, a := range arcs {
		vals := a.Values.Values()
		// A level-1 node has no delta-stack slot to carry k, so its values
		// are kept unshifted (k is Neutral, which Arcs also uses at level 1).
		k := m.domain.Neutral()
		if level > 1 {
			k = m.domain.Common(vals)
		}
		shifted := make([]V, len(vals))
		for j, v := range vals {
			shifted[j] = m.domain.Shift(v, k)
		}
		sv, err := m.internValueSet(shifted)
		if err != nil {
			return Handle[V]{}, err
		}
		shiftedSets[i] = sv
		m.releaseValueSet(a.Values)

		if level == 1 {
			candValueDelta[i] = nil
			candSuccDelta[i] = nil
			continue
		}
		candValueDelta[i] = append(Push(a.Successor.Environment().ValueStack(), definedValue(k)).Elements())
		candSuccDelta[i] = append(Push(a.Successor.Environment().SuccessorStack(), definedSuccessor(a.Successor)).Elements())
	}

	envValueStack := make([]valueSlot[V], stackLen)
	envSuccStack := make([]succSlot[V], stackLen)
	arcValueDelta := make([][]valueSlot[V], n)
	arcSuccDelta := make([][]succSlot[V], n)
	for i := range arcs {
		arcValueDelta[i] = make([]valueSlot[V], stackLen)
		arcSuccDelta[i] = make([]succSlot[V], stackLen)
	}

	for j := 0; j < stackLen; j++ {
		agreeVal := true
		for i := 1; i < n; i++ {
			if !equalValueSlot(candValueDelta[i][j], candValueDelta[0][j]) {
				agreeVal = false
				break
			}
		}
		if agreeVal {
			envValueStack[j] = candValueDelta[0][j]
			for i := range arcs {
				arcValueDelta[i][j] = defaultValueSlot[V]()
			}
		} else {
			envValueStack[j] = defaultValueSlot[V]()
			for i := range arcs {
				arcValueDelta[i][j] = candValueDelta[i][j]
			}
		}

		agreeSucc := true
		for i := 1; i < n; i++ {
			if !equalSuccSlot(candSuccDelta[i][j], candSuccDelta[0][j]) {
				agreeSucc = false
				break
			}
		}
		if agreeSucc {
			envSuccStack[j] = candSuccDelta[0][j]
			for i := range arcs {
				arcSuccDelta[i][j] = defaultSuccSlot[V]()
			}
		} else {
			envSuccStack[j] = defaultSuccSlot[V]()
			for i := range arcs {
				arcSuccDelta[i][j] = candSuccDelta[i][j]
			}
		}
	}

	protoArcs := make([]protoArc[V], n)
	children := make([]Handle[V], n)
	for i := range arcs {
		protoArcs[i] = protoArc[V]{
			shiftedValues:  shiftedSets[i],
			valueDelta:     NewStack(arcValueDelta[i]...),
			successorDelta: NewStack(arcSuccDelta[i]...),
		}
		children[i] = arcs[i].Successor
	}

	protoEntry, created, err := m.sddTable.intern(protoNodeData[V]{arcs: protoArcs, children: children})
	if err != nil {
		for _, sv := range shiftedSets {
			m.releaseValueSet(sv)
		}
		return Handle[V]{}, err
	}
	if created {
		for _, c := range children {
			m.Ref(c)
		}
	} else {
		// An equal prototype already existed and already owns a reference to
		// these exact children and value sets; the ones we just interned
		// above are redundant copies, release them back.
		for _, sv := range shiftedSets {
			m.releaseValueSet(sv)
		}
	}

	env, err := m.internEnv(level, NewStack(envValueStack...), NewStack(envSuccStack...))
	if err != nil {
		m.sddTable.release(protoEntry)
		return Handle[V]{}, err
	}

	return nodeHandle(env.entry, protoEntry), nil
}
