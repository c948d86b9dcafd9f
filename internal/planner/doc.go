// Package planner turns grouped photo units into a validated copy plan.
//
// Planning is total: every unit and every file is inspected, and the
// result is either a complete plan or the complete set of validation
// errors. Nothing on disk is touched here; execution belongs to the
// copier package.
//
// Split: types.go (Entry, ValidationError, Request), planner.go
// (date resolution, tree routing, conflict checks).
package planner
