// Package cpu measures the CPU utilization of the current process, of other
// processes, and of individual threads of the current process.
//
// A sampler stores the most recent cumulative CPU time of its subject along
// with a monotonic timestamp. Each call to Usage or CPUTime takes a new
// sample, reports the delta against the stored one, and replaces it:
//
//	stat, err := cpu.CurrentProcess()
//	if err != nil {
//		return err
//	}
//	// ... do work ...
//	usage, err := stat.Usage() // 1.0 means one core fully busy
//
// Usage ratios are not divided by the number of processors. A process that
// keeps four cores busy reports roughly 4.0; callers that want a 0-100%
// figure of the whole machine divide by NumProcessors themselves.
//
// Samplers are not safe for concurrent use. Use one sampler per goroutine
// or synchronize externally.
package cpu

import (
	"runtime"

	"github.com/reugn/go-perfmon/internal/sysmonitor"
	"github.com/tklauser/numcpus"
)

// ErrUnsupported is returned when the platform cannot report the requested
// counter, for example per-thread CPU time on platforms other than Linux,
// Android, Darwin and Windows.
var ErrUnsupported = sysmonitor.ErrUnsupported

// ErrParse matches errors caused by a malformed textual counter source,
// such as an unexpected /proc/<pid>/task/<tid>/stat layout.
var ErrParse = sysmonitor.ErrParse

// TimeSource reports the cumulative user+system CPU time of one subject in
// microseconds. CPUTime must be a pure read: calling it has no effect on the
// subject.
type TimeSource interface {
	CPUTime() (uint64, error)
}

// TimeSourceFunc adapts an ordinary function to the TimeSource interface.
type TimeSourceFunc func() (uint64, error)

// CPUTime calls f().
func (f TimeSourceFunc) CPUTime() (uint64, error) {
	return f()
}

// NumProcessors returns the number of online logical processors.
func NumProcessors() (int, error) {
	n, err := numcpus.GetOnline()
	if err != nil || n <= 0 {
		return runtime.NumCPU(), nil
	}
	return n, nil
}
