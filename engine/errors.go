// SPDX-License-Identifier: MIT
package engine

import "errors"

// ErrNotChainStructured is returned when an Engine that requires a
// chain-structured NormalGraph (Entry -> q0 -> q1 -> ... -> qm -> Exit,
// with optional self-loops) is given a graph that is not.
var ErrNotChainStructured = errors.New("engine: graph is not chain-structured")
