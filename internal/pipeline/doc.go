// Package pipeline orchestrates one import run: file discovery and unit
// grouping, parallel metadata resolution, sequence detection, planning,
// and plan execution, plus batch summary reporting.
//
// Split: discover.go (walk + grouping), resolve.go (worker pool around
// the metadata resolver), runner.go (orchestration + logging), stats.go
// (aggregate counters).
package pipeline
