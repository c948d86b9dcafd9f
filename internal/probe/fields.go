package probe

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// captureDateLayout is exiftool's DateTimeOriginal format. Values are
// interpreted as UTC; cameras report local wall time without an offset.
const captureDateLayout = "2006:01:02 15:04:05"

// Sanity window for capture dates. Anything outside is treated as absent
// rather than trusted (corrupt metadata shows up as 1970 or 2106 dates).
const (
	minCaptureYear = 1990
	maxCaptureYear = 2050
)

var (
	burstSeqRe = regexp.MustCompile(`Sequence:\s*(\d+)`)
	hdrShotRe  = regexp.MustCompile(`Shot\s+(\d+)`)
)

// PlausibleDate reports whether t falls inside the capture-date sanity
// window. Shared with the cutoff scanner, which reads EXIF dates through
// a different decoder.
func PlausibleDate(t time.Time) bool {
	y := t.Year()
	return y >= minCaptureYear && y <= maxCaptureYear
}

// CaptureDate parses the DateTimeOriginal field. Reports false when the
// field is missing, malformed, or outside the sanity window.
func CaptureDate(f Fields) (time.Time, bool) {
	s, ok := f.String("DateTimeOriginal")
	if !ok {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(captureDateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	if !PlausibleDate(t) {
		return time.Time{}, false
	}
	return t, true
}

// BurstOrdinal extracts the burst sequence number from the SpecialMode
// field ("Sequence: <n>"). Zero means the shot is not part of a burst;
// absent or malformed fields also report zero.
func BurstOrdinal(f Fields) int {
	s, ok := f.String("SpecialMode")
	if !ok {
		return 0
	}
	m := burstSeqRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// HDRShot extracts the bracket shot number from the DriveMode field.
// A shot only counts as bracketed when the drive mode names both AE auto
// bracketing and the electronic shutter; otherwise reports false.
func HDRShot(f Fields) (int, bool) {
	s, ok := f.String("DriveMode")
	if !ok {
		return 0, false
	}
	if !strings.Contains(s, "AE Auto Bracketing") || !strings.Contains(s, "Electronic shutter") {
		return 0, false
	}
	m := hdrShotRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
