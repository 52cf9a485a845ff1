//go:build !linux && !darwin && !windows

package sysmonitor

import (
	"os"
)

// ProcessCPUTime returns the CPU time of the current process via gopsutil.
func ProcessCPUTime() (uint64, error) {
	h, err := NewProcessHandle(os.Getpid())
	if err != nil {
		return 0, err
	}
	return h.CPUTime()
}

// CurrentThreadID always returns 0 on unsupported platforms.
func CurrentThreadID() uint32 {
	return 0
}

// ThreadCPUTime is not supported on this platform.
func ThreadCPUTime(uint32) (uint64, error) {
	return 0, ErrUnsupported
}
