//go:build darwin

package mem

import (
	"github.com/reugn/go-perfmon/internal/sysmonitor"
)

func current() (ProcessMemoryInfo, error) {
	info, err := sysmonitor.ReadTaskVMInfo()
	if err != nil {
		return ProcessMemoryInfo{}, err
	}
	return ProcessMemoryInfo{
		ResidentSetSize:     info.ResidentSize,
		ResidentSetSizePeak: info.ResidentSizePeak,
		VirtualMemorySize:   info.VirtualSize,
		PhysFootprint:       info.PhysFootprint,
		Compressed:          info.Compressed,
	}, nil
}
