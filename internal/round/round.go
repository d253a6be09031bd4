package round

import "fmt"

// ID uniquely identifies a process in the cluster.
type ID uint64

// Round names one attempt at reaching agreement. The (Tick, Process) pair
// is globally unique: Tick is a per-process counter and Process breaks ties,
// so no two processes ever produce equal rounds.
type Round struct {
	Tick    uint64
	Process ID
}

// New returns the first round for the given process, with a zero tick.
func New(p ID) Round {
	return Round{Process: p}
}

// Next returns the successor round: tick incremented, same process.
func (r Round) Next() Round {
	return Round{Tick: r.Tick + 1, Process: r.Process}
}

// Compare returns -1, 0 or 1 as r sorts before, equal to or after other.
// Ticks compare first; equal ticks break ties by process ID.
func (r Round) Compare(other Round) int {
	switch {
	case r.Tick < other.Tick:
		return -1
	case r.Tick > other.Tick:
		return 1
	case r.Process < other.Process:
		return -1
	case r.Process > other.Process:
		return 1
	default:
		return 0
	}
}

// Before reports whether r sorts strictly before other.
func (r Round) Before(other Round) bool {
	return r.Compare(other) < 0
}

// After reports whether r sorts strictly after other.
func (r Round) After(other Round) bool {
	return r.Compare(other) > 0
}

// Max returns the later of a and b.
func Max(a, b Round) Round {
	if a.Before(b) {
		return b
	}
	return a
}

// String returns "tick/process", e.g. "3/1".
func (r Round) String() string {
	return fmt.Sprintf("%d/%d", r.Tick, r.Process)
}
