// Package sequence detects HDR bracket and burst runs across photo units.
//
// Units are ordered by (capture time, unit key) and scanned twice: the
// first pass tags HDR bracket runs, the second tags burst runs among the
// units the first pass left untagged. A run needs at least two members;
// singletons are left untagged so a lone bracketed shot at a batch
// boundary gets no folder of its own.
package sequence

import (
	"sort"
	"time"
)

// Kind discriminates the two run types.
type Kind int

const (
	KindBurst Kind = iota
	KindHDR
)

// Tag marks a unit as a member of a detected run. Folder is the shared
// subfolder name, derived from the run's first unit key.
type Tag struct {
	Kind   Kind
	Folder string
}

// Unit is one photo unit as the detector sees it: grouping key, capture
// time, and the metadata ordinals. BurstOrdinal zero means "not in a
// burst". HDRShot is only meaningful when Bracketed is true.
type Unit struct {
	Key          string
	Taken        time.Time
	BurstOrdinal int
	HDRShot      int
	Bracketed    bool
}

// Folder name suffixes, appended to the first unit key of a run.
const (
	hdrSuffix   = "_HDR"
	burstSuffix = "_BURST"
)

// Detect returns the tag for every unit that belongs to an HDR or burst
// run. The input slice is not modified; ordering of the input does not
// affect the result because units are sorted by (Taken, Key) first.
// HDR wins over burst: units tagged by the HDR pass are skipped by the
// burst pass.
func Detect(units []Unit) map[string]Tag {
	sorted := make([]Unit, len(units))
	copy(sorted, units)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Taken.Equal(sorted[j].Taken) {
			return sorted[i].Taken.Before(sorted[j].Taken)
		}
		return sorted[i].Key < sorted[j].Key
	})

	tags := make(map[string]Tag)

	// Pass 1: HDR bracket runs.
	st := runState{kind: KindHDR, suffix: hdrSuffix, tags: tags}
	for _, u := range sorted {
		if u.Bracketed {
			st.observe(u.Key, u.HDRShot)
		} else {
			st.flush()
		}
	}
	st.flush()

	// Pass 2: burst runs over the units pass 1 left untagged. Ordinal
	// zero means "not in a burst" and acts like an absent ordinal.
	st = runState{kind: KindBurst, suffix: burstSuffix, tags: tags}
	for _, u := range sorted {
		if _, tagged := tags[u.Key]; tagged {
			continue
		}
		if u.BurstOrdinal > 0 {
			st.observe(u.Key, u.BurstOrdinal)
		} else {
			st.flush()
		}
	}
	st.flush()

	return tags
}

// runState tracks one in-progress run during a scan pass.
type runState struct {
	kind     Kind
	suffix   string
	tags     map[string]Tag
	members  []string
	expected int
}

// observe feeds the next unit with a present ordinal into the state
// machine. An ordinal of 1 always starts a fresh run (flushing the
// previous one); the expected next ordinal continues the current run;
// anything else breaks the run and the unit is discarded.
func (s *runState) observe(key string, ordinal int) {
	switch {
	case ordinal == 1:
		s.flush()
		s.members = []string{key}
		s.expected = 2
	case ordinal == s.expected && len(s.members) > 0:
		s.members = append(s.members, key)
		s.expected++
	default:
		s.flush()
	}
}

// flush tags the current run if it has at least two members, then clears
// the state. Shorter runs are discarded untagged.
func (s *runState) flush() {
	if len(s.members) > 1 {
		folder := s.members[0] + s.suffix
		for _, key := range s.members {
			s.tags[key] = Tag{Kind: s.kind, Folder: folder}
		}
	}
	s.members = nil
	s.expected = 1
}
