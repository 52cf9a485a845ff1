// Package mem reports memory usage of the current process and of the
// system it runs on.
package mem

import (
	"github.com/reugn/go-perfmon/internal/sysmonitor"
)

// ProcessMemoryInfo describes the memory of the current process in bytes.
// Fields the platform does not report are zero.
type ProcessMemoryInfo struct {
	// ResidentSetSize is the non-swapped physical memory in use. On Windows
	// it is the working set.
	ResidentSetSize uint64
	// ResidentSetSizePeak is the highest ResidentSetSize observed.
	ResidentSetSizePeak uint64
	// VirtualMemorySize is the total virtual memory. On Windows it is the
	// pagefile usage (commit charge).
	VirtualMemorySize uint64
	// PhysFootprint is the macOS physical footprint as reported by
	// Activity Monitor.
	PhysFootprint uint64
	// Compressed is the macOS compressed memory of the process.
	Compressed uint64
}

// Current returns the memory info of the current process.
func Current() (ProcessMemoryInfo, error) {
	return current()
}

// SystemMemory holds the total and available memory of the system, or of
// the enclosing cgroup when a limit is set.
type SystemMemory = sysmonitor.SystemMemory

// SystemMemoryReader reads system memory information.
type SystemMemoryReader = sysmonitor.MemoryReader

// GetSystemMemory returns the memory of the system or the enclosing cgroup.
func GetSystemMemory() (SystemMemory, error) {
	return sysmonitor.GetSystemMemory()
}

// SetSystemMemoryReader replaces the system memory reader and returns a
// function restoring the previous one. Intended for tests.
func SetSystemMemoryReader(reader SystemMemoryReader) func() {
	return sysmonitor.SetMemoryReader(reader)
}
