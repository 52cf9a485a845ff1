//go:build !linux && !darwin && !windows

package fd

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v4/process"
)

func count() (int, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, fmt.Errorf("failed to open current process: %w", err)
	}
	n, err := proc.NumFDs()
	if err != nil {
		return 0, fmt.Errorf("failed to count descriptors: %w", err)
	}
	return int(n), nil
}
