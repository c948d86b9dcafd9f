// Package probe reads photo metadata through exiftool and parses the
// fields the pipeline cares about: the capture date, the burst sequence
// ordinal, and the HDR bracket shot number.
//
// The subprocess is wrapped behind the [Resolver] interface so the
// pipeline and its tests can substitute canned field maps. One exiftool
// handle serves one resolver; handles are not safe for concurrent use,
// so callers that parallelize open one resolver per worker.
//
// Split: probe.go (Resolver + exiftool wiring), fields.go (field parsing).
package probe
