// SPDX-License-Identifier: MIT
package logic

import "errors"

// Sentinel errors for the logic package. Callers should compare with
// errors.Is; context is added with fmt.Errorf("%s: %w", ...) at the
// boundary rather than by minting new sentinels per call site.
var (
	// ErrUnknownTerm indicates a Term handle that does not belong to the Context it was passed to.
	ErrUnknownTerm = errors.New("logic: term does not belong to this context")

	// ErrNotLinear indicates a term could not be interpreted as a linear arithmetic expression.
	ErrNotLinear = errors.New("logic: term is not linear")

	// ErrSortMismatch indicates an operation was applied to a term of the wrong sort.
	ErrSortMismatch = errors.New("logic: sort mismatch")

	// ErrArityMismatch indicates a variable-vector substitution with mismatched lengths.
	ErrArityMismatch = errors.New("logic: substitution arity mismatch")

	// ErrUnsupportedLogic indicates a term construct outside QF_LIA was requested.
	ErrUnsupportedLogic = errors.New("logic: unsupported logic construct")
)
