// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sdd

import (
	"log"

	"github.com/pkg/errors"
)

// Sentinel error kinds, per the error taxonomy: IncompatibleLevels,
// OutOfMemory, ManagerUninitialized and DanglingOnTeardown. Callers compare
// against these with errors.Is; internal code attaches context with
// github.com/pkg/errors so that a failing operation keeps the offending
// operands visible without losing the sentinel identity.
var (
	// ErrIncompatibleLevels is raised when two operands presented to a
	// binary step have different tags (node vs terminal) or different top
	// levels. It is never cached and never leaves partial state behind.
	ErrIncompatibleLevels = errors.New("incompatible levels")

	// ErrOutOfMemory is raised when an interning or allocation request
	// failed, e.g. because a unique table hit its configured limit.
	ErrOutOfMemory = errors.New("unable to allocate: unique table exhausted")

	// ErrManagerUninitialized is returned by Close when the Manager has
	// already been torn down; other operations do not check for it.
	ErrManagerUninitialized = errors.New("manager not initialized")

	// ErrDanglingOnTeardown is raised when manager teardown finds
	// outstanding externally-held handles.
	ErrDanglingOnTeardown = errors.New("manager teardown found dangling references")
)

// incompatibleLevelsError wraps ErrIncompatibleLevels with the two operand
// levels that triggered it, for diagnostics; errors.Is(err,
// ErrIncompatibleLevels) still succeeds because we use errors.Wrapf, which
// preserves the cause chain.
func incompatibleLevelsError(op string, lhs, rhs int) error {
	err := errors.Wrapf(ErrIncompatibleLevels, "%s: left level %d, right level %d", op, lhs, rhs)
	if _DEBUG {
		log.Println(err)
	}
	return err
}

func outOfMemoryError(table string) error {
	err := errors.Wrapf(ErrOutOfMemory, "table %q", table)
	if _DEBUG {
		log.Println(err)
	}
	return err
}

func danglingOnTeardownError(count int) error {
	err := errors.Wrapf(ErrDanglingOnTeardown, "%d entries still referenced", count)
	if _DEBUG {
		log.Println(err)
	}
	return err
}
