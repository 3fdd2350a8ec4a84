// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sdd

// valueSlot is one entry of a value-delta stack. isDefault marks "this
// position carries no value of its own here — use whatever the other half
// of the (environment, prototype) pair stores at this position instead",
// the mechanism that lets a value agreed upon by every arc of a node be
// hoisted once into the node's environment rather than repeated in every
// arc. A plain V could not serve as its own sentinel: nothing stops a real
// value from coinciding with whichever value s a Domain picks as Neutral.
type valueSlot[V Value[V]] struct {
	isDefault bool
	v         V
}

func definedValue[V Value[V]](v V) valueSlot[V] { return valueSlot[V]{v: v} }

func defaultValueSlot[V Value[V]]() valueSlot[V] { return valueSlot[V]{isDefault: true} }

func rebuildValueSlot[V Value[V]](own, other valueSlot[V]) valueSlot[V] {
	if other.isDefault {
		return own
	}
	return other
}

func equalValueSlot[V Value[V]](a, b valueSlot[V]) bool {
	return a.isDefault == b.isDefault && (a.isDefault || a.v == b.v)
}

func hashValueSlot[V Value[V]](s valueSlot[V]) uint64 {
	if s.isDefault {
		return 0xD
	}
	return hashCombine(1, s.v.Hash())
}

// succSlot is the successor-delta stack equivalent of valueSlot.
type succSlot[V Value[V]] struct {
	isDefault bool
	h         Handle[V]
}

func definedSuccessor[V Value[V]](h Handle[V]) succSlot[V] { return succSlot[V]{h: h} }

func defaultSuccSlot[V Value[V]]() succSlot[V] { return succSlot[V]{isDefault: true} }

func rebuildSuccSlot[V Value[V]](own, other succSlot[V]) succSlot[V] {
	if other.isDefault {
		return own
	}
	return other
}

func equalSuccSlot[V Value[V]](a, b succSlot[V]) bool {
	return a.isDefault == b.isDefault && (a.isDefault || a.h == b.h)
}

func hashSuccSlot[V Value[V]](s succSlot[V]) uint64 {
	if s.isDefault {
		return 0xE
	}
	return hashCombine(2, s.h.Hash())
}

// envData is the payload interned by a Manager's environment unique table:
// the level a diagram sits at, and the two delta stacks (values, successors)
// that let its prototype be reinterpreted at that level. |valueStack| and
// |successorStack| both equal level-1, per the environment invariant of the
// data model.
type envData[V Value[V]] struct {
	level          int
	valueStack     Stack[valueSlot[V]]
	successorStack Stack[succSlot[V]]
}

func equalEnvData[V Value[V]](a, b envData[V]) bool {
	if a.level != b.level {
		return false
	}
	return StackEqual(a.valueStack, b.valueStack) && StackEqual(a.successorStack, b.successorStack)
}

func hashEnvData[V Value[V]](e envData[V]) uint64 {
	h := hashInt(e.level)
	h = hashCombine(h, StackHash(e.valueStack, hashValueSlot[V]))
	h = hashCombine(h, StackHash(e.successorStack, hashSuccSlot[V]))
	return h
}

// Env is an interned, canonical environment: the per-reference part of a
// diagram, holding its level and the two delta stacks that reconstruct its
// arcs' true values and successors from its (shared) prototype node.
type Env[V Value[V]] struct {
	entry *refEntry[envData[V]]
}

// Level returns the environment's level.
func (e Env[V]) Level() int {
	if e.entry == nil {
		return 0
	}
	return e.entry.value.level
}

// ValueStack returns the environment's value-delta stack.
func (e Env[V]) ValueStack() Stack[valueSlot[V]] {
	return e.entry.value.valueStack
}

// SuccessorStack returns the environment's successor-delta stack.
func (e Env[V]) SuccessorStack() Stack[succSlot[V]] {
	return e.entry.value.successorStack
}

// Equal reports whether e and other were interned to the same canonical
// entry.
func (e Env[V]) Equal(other Env[V]) bool {
	return e.entry == other.entry
}

func (e Env[V]) id() uint64 {
	if e.entry == nil {
		return 0
	}
	return e.entry.id
}

// internEnv interns (level, valueStack, successorStack) into m's environment
// unique table.
func (m *Manager[V]) internEnv(level int, valueStack Stack[valueSlot[V]], successorStack Stack[succSlot[V]]) (Env[V], error) {
	data := envData[V]{level: level, valueStack: valueStack, successorStack: successorStack}
	e, _, err := m.envTable.intern(data)
	if err != nil {
		return Env[V]{}, err
	}
	return Env[V]{entry: e}, nil
}

func (m *Manager[V]) releaseEnv(e Env[V]) {
	if e.entry != nil {
		m.envTable.release(e.entry)
	}
}

// emptyEnv returns the level-0 sentinel environment (empty delta stacks).
// unify never produces it (a level-1 node gets a level-1 environment); New
// keeps it interned as Manager.baseEnv.
func (m *Manager[V]) emptyEnv() (Env[V], error) {
	return m.internEnv(0, NewStack[valueSlot[V]](), NewStack[succSlot[V]]())
}
