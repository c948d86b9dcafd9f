package pipeline

// RunStats summarizes one run for the caller's exit decision and the
// closing summary line.
type RunStats struct {
	Files            int
	Units            int
	Resolved         int
	HDRSequences     int
	BurstSequences   int
	Planned          int
	Copied           int
	BytesCopied      int64
	ValidationErrors int
	Failed           bool
}

// Sequences is the total number of detected sequence folders.
func (s RunStats) Sequences() int {
	return s.HDRSequences + s.BurstSequences
}
