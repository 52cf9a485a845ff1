//go:build linux

package mem

import (
	"fmt"

	"github.com/prometheus/procfs"
)

func current() (ProcessMemoryInfo, error) {
	proc, err := procfs.Self()
	if err != nil {
		return ProcessMemoryInfo{}, fmt.Errorf("failed to open /proc/self: %w", err)
	}
	stat, err := proc.Stat()
	if err != nil {
		return ProcessMemoryInfo{}, fmt.Errorf("failed to read /proc/self/stat: %w", err)
	}
	status, err := proc.NewStatus()
	if err != nil {
		return ProcessMemoryInfo{}, fmt.Errorf("failed to read /proc/self/status: %w", err)
	}

	rss := uint64(stat.ResidentMemory())
	peak := status.VmHWM
	if peak < rss {
		peak = rss
	}
	return ProcessMemoryInfo{
		ResidentSetSize:     rss,
		ResidentSetSizePeak: peak,
		VirtualMemorySize:   uint64(stat.VirtualMemory()),
	}, nil
}
