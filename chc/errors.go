// SPDX-License-Identifier: MIT
package chc

import "errors"

// Sentinel errors for clause ingestion. As in core/types.go, these are
// matched with errors.Is; context is added at the call site with
// fmt.Errorf("%s: %w", ...).
var (
	// ErrMalformedClause is returned for ill-typed or ill-structured input.
	ErrMalformedClause = errors.New("chc: malformed clause")

	// ErrUnknownPredicate indicates a clause referenced a predicate symbol never registered.
	ErrUnknownPredicate = errors.New("chc: unknown predicate symbol")

	// ErrReservedName indicates an attempt to register a predicate under a reserved name (true/false).
	ErrReservedName = errors.New("chc: predicate name is reserved")

	// ErrDuplicatePredicate indicates re-registration of an existing predicate name.
	ErrDuplicatePredicate = errors.New("chc: predicate already registered")

	// ErrSignatureConflict indicates a predicate symbol used with two different arities/sorts.
	ErrSignatureConflict = errors.New("chc: conflicting predicate signature")

	// ErrArityMismatch indicates a predicate instance whose argument count does not match its symbol's signature.
	ErrArityMismatch = errors.New("chc: predicate instance arity mismatch")
)
