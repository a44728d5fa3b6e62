// Package chc implements the Horn clause data model of : predicate
// symbols, predicate instances, clauses, and the ClauseSystem that collects
// them. Two distinguished symbols, True and False, denote the entry and
// query positions and are never user-owned.
//
// ClauseSystem's ingestion API (AddUninterpretedPredicate, AddClause) is the
// single orchestrator over clause collection, grounded on
// builder.BuildGraph's "one entry point, validate early, wrap errors with
// context" shape from the teacher repo.
package chc
