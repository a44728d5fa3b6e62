// Package engine declares the stable solving contract that every CHC-deciding engine implements, independent of
// which refinement strategy it uses internally. engine/tpa is the one
// concrete Engine this repository ships.
package engine
