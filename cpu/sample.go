package cpu

import (
	"time"

	"github.com/reugn/go-perfmon/internal/timeconv"
)

// Sample is one reading of a subject: its cumulative CPU time in
// microseconds and the monotonic instant at which it was taken.
type Sample struct {
	Work uint64
	Wall time.Time
}

// Delta computes the usage ratio and the CPU time consumed between prev
// and cur.
//
// A counter that went backwards yields zero work, and a wall clock that did
// not advance yields a ratio of exactly 0. The ratio is never negative or
// NaN and is not divided by the processor count.
func Delta(prev, cur Sample) (ratio float64, consumed time.Duration) {
	work := timeconv.SubSat(cur.Work, prev.Work)
	consumed = timeconv.ToDuration(work)

	wall := cur.Wall.Sub(prev.Wall)
	if wall <= 0 {
		return 0, consumed
	}
	return timeconv.Seconds(work) / wall.Seconds(), consumed
}
