// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package sdd defines a concrete type for Hierarchical Set Decision Diagrams
(SDD) using a prototype (Σ-homomorphic) encoding, a data structure used to
compactly and canonically represent very large sets of tuples of values
together with the set-algebraic operations (union, intersection, difference)
over those sets.

Basics

An SDD is organized in levels, from 1 up to a diagram-specific maximum. Each
non-terminal node branches on a value set (rather than on a single bit, as in
a BDD) and every arc of a node points to a successor diagram exactly one
level below. The two terminals are Zero (the empty set of tuples) and One
(the singleton set containing the empty tuple).

Diagrams are manipulated through a Manager, parameterized by the scalar type
used as arc labels (any type satisfying the Value constraint). A Manager owns
three content-addressed unique tables (for value sets, environments and
prototype nodes) and the operation caches for union, intersection and
difference; all of them are process-local to that Manager and are never
shared across Manager instances.

Canonical form

For the sake of maximal sharing, a node is split into a "prototype" part
(the environment-free shape of the node, interned once for every
structurally-equal node in the manager) and an "environment" part (the
per-reference level and two delta stacks that let one prototype be reused
under different levels or with different successor deltas). Two diagrams are
structurally equal if and only if their (environment, prototype) pointers
are equal; the unique tables are what makes this pointer-equality guarantee
possible.

Automatic memory management

The library is written in pure Go. Every entry in a unique table is
reference-counted; when a Handle returned by the package is no longer
referenced by any live diagram (as tracked explicitly, not by the Go
garbage collector — see the Manager documentation), its table entry is
reclaimed immediately.
*/
package sdd
