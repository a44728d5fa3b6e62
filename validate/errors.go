// SPDX-License-Identifier: MIT
package validate

import "errors"

// Sentinel errors of the validate package. Validate returns a Report, not
// an error: a validation *failure* (the witness does not hold) is reported
// as Status NotValidated, since the validator never panics on ill-formed
// witnesses.
var (
	// ErrNoResult describes a VerificationResult carrying neither witness
	// (e.g. Unknown). Validate reports that case as Status NotValidated and
	// does not return this error.
	ErrNoResult = errors.New("validate: result carries no witness to check")
)
