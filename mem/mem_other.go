//go:build !linux && !darwin && !windows

package mem

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v4/process"
)

func current() (ProcessMemoryInfo, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return ProcessMemoryInfo{}, fmt.Errorf("failed to open current process: %w", err)
	}
	info, err := proc.MemoryInfo()
	if err != nil {
		return ProcessMemoryInfo{}, fmt.Errorf("failed to read memory info: %w", err)
	}
	peak := info.HWM
	if peak < info.RSS {
		peak = info.RSS
	}
	return ProcessMemoryInfo{
		ResidentSetSize:     info.RSS,
		ResidentSetSizePeak: peak,
		VirtualMemorySize:   info.VMS,
	}, nil
}
