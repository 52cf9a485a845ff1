//go:build !linux && !darwin

package iostat

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v4/process"
)

func current() (Stats, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return Stats{}, fmt.Errorf("failed to open current process: %w", err)
	}
	counters, err := proc.IOCounters()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read I/O counters: %w", err)
	}
	return Stats{
		ReadCount:  counters.ReadCount,
		WriteCount: counters.WriteCount,
		ReadBytes:  counters.ReadBytes,
		WriteBytes: counters.WriteBytes,
	}, nil
}
