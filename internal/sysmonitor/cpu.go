package sysmonitor

import (
	"fmt"
	"math"

	"github.com/reugn/go-perfmon/internal/timeconv"
	"github.com/shirou/gopsutil/v4/process"
)

// Raw CPU time accessors. Every accessor returns the cumulative user+system
// CPU time of its subject in microseconds, already normalized through
// timeconv, so native units never leave this package.
//
// Platform implementations:
//   - Linux, Android: clock_gettime(CLOCK_PROCESS_CPUTIME_ID) for the process,
//     /proc/<pid>/task/<tid>/stat for threads
//   - Darwin (macOS, iOS): getrusage for the process, thread_info for threads
//   - Windows: GetProcessTimes for the process, GetThreadTimes for threads
//   - Other platforms: gopsutil for the process, threads unsupported
//
// The platform files provide:
//
//	func ProcessCPUTime() (uint64, error)
//	func ThreadCPUTime(tid uint32) (uint64, error)
//	func CurrentThreadID() uint32

// ProcessHandle reads the CPU time of an arbitrary process through gopsutil.
type ProcessHandle struct {
	pid  int
	proc *process.Process
}

// NewProcessHandle opens pid. It fails if the process does not exist.
func NewProcessHandle(pid int) (*ProcessHandle, error) {
	if pid <= 0 || pid > math.MaxInt32 {
		return nil, fmt.Errorf("invalid PID: %d", pid)
	}
	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return nil, fmt.Errorf("failed to open process %d: %w", pid, err)
	}
	return &ProcessHandle{pid: pid, proc: proc}, nil
}

// PID returns the process id.
func (h *ProcessHandle) PID() int {
	return h.pid
}

// CPUTime returns the cumulative user+system time of the process.
func (h *ProcessHandle) CPUTime() (uint64, error) {
	times, err := h.proc.Times()
	if err != nil {
		return 0, fmt.Errorf("failed to get CPU times for process %d: %w", h.pid, err)
	}
	return timeconv.AddSat(
		timeconv.SecondsToMicros(times.User),
		timeconv.SecondsToMicros(times.System),
	), nil
}
