//go:build windows

package mem

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modpsapi                 = windows.NewLazySystemDLL("psapi.dll")
	procGetProcessMemoryInfo = modpsapi.NewProc("GetProcessMemoryInfo")
)

// processMemoryCounters mirrors PROCESS_MEMORY_COUNTERS.
type processMemoryCounters struct {
	cb                         uint32
	pageFaultCount             uint32
	peakWorkingSetSize         uintptr
	workingSetSize             uintptr
	quotaPeakPagedPoolUsage    uintptr
	quotaPagedPoolUsage        uintptr
	quotaPeakNonPagedPoolUsage uintptr
	quotaNonPagedPoolUsage     uintptr
	pagefileUsage              uintptr
	peakPagefileUsage          uintptr
}

func current() (ProcessMemoryInfo, error) {
	var counters processMemoryCounters
	counters.cb = uint32(unsafe.Sizeof(counters))

	ret, _, err := procGetProcessMemoryInfo.Call(
		uintptr(windows.CurrentProcess()),
		uintptr(unsafe.Pointer(&counters)),
		uintptr(counters.cb),
	)
	// If the function fails, the return value is zero.
	if ret == 0 {
		return ProcessMemoryInfo{}, fmt.Errorf("GetProcessMemoryInfo failed: %w", err)
	}

	return ProcessMemoryInfo{
		ResidentSetSize:     uint64(counters.workingSetSize),
		ResidentSetSizePeak: uint64(counters.peakWorkingSetSize),
		VirtualMemorySize:   uint64(counters.pagefileUsage),
	}, nil
}
