// Package iostat reports cumulative I/O counters of the current process.
package iostat

import (
	"github.com/reugn/go-perfmon/internal/timeconv"
)

// Stats holds cumulative I/O counters since process start. Counters a
// platform does not track are zero.
type Stats struct {
	// ReadCount is the number of read operations (syscalls on Linux).
	ReadCount uint64
	// WriteCount is the number of write operations.
	WriteCount uint64
	// ReadBytes is the number of bytes fetched from storage.
	ReadBytes uint64
	// WriteBytes is the number of bytes sent to storage.
	WriteBytes uint64
}

// Sub returns the counters accumulated between prev and s. A counter that
// went backwards yields zero.
func (s Stats) Sub(prev Stats) Stats {
	return Stats{
		ReadCount:  timeconv.SubSat(s.ReadCount, prev.ReadCount),
		WriteCount: timeconv.SubSat(s.WriteCount, prev.WriteCount),
		ReadBytes:  timeconv.SubSat(s.ReadBytes, prev.ReadBytes),
		WriteBytes: timeconv.SubSat(s.WriteBytes, prev.WriteBytes),
	}
}

// Current returns the I/O counters of the current process.
func Current() (Stats, error) {
	return current()
}
