package sysmonitor

import (
	"fmt"
	"sync"

	"github.com/shirou/gopsutil/v4/mem"
)

// SystemMemory represents system memory information in bytes.
type SystemMemory struct {
	Total     uint64
	Available uint64
}

// UsedPercent returns the used share of Total in the range [0, 100].
func (m SystemMemory) UsedPercent() float64 {
	if m.Total == 0 {
		return 0
	}
	if m.Available >= m.Total {
		return 0
	}
	return float64(m.Total-m.Available) / float64(m.Total) * 100.0
}

// MemoryReader is a function that reads system memory information.
type MemoryReader func() (SystemMemory, error)

var (
	memoryReader MemoryReader
	// memoryReaderMu protects concurrent access to memoryReader
	memoryReaderMu sync.RWMutex
)

// GetSystemMemory returns the current system memory statistics.
// On Linux a cgroup v2 or v1 memory limit takes precedence over host
// memory; the source is detected on the first call and reused afterwards.
func GetSystemMemory() (SystemMemory, error) {
	memoryReaderMu.RLock()
	reader := memoryReader
	memoryReaderMu.RUnlock()

	if reader == nil {
		return readSystemMemoryAuto()
	}
	return reader()
}

// readSystemMemoryAuto detects the environment and "upgrades" the reader.
func readSystemMemoryAuto() (SystemMemory, error) {
	for _, candidate := range platformMemoryReaders(OSFileSystem{}) {
		if m, err := candidate(); err == nil {
			upgradeMemoryReader(candidate)
			return m, nil
		}
	}

	// Fallback to host (bare metal, VM or unlimited container)
	m, err := readHostMemory()
	if err != nil {
		return SystemMemory{}, fmt.Errorf("failed to read system memory from all sources: %w", err)
	}
	upgradeMemoryReader(readHostMemory)
	return m, nil
}

func upgradeMemoryReader(reader MemoryReader) {
	memoryReaderMu.Lock()
	if memoryReader == nil {
		memoryReader = reader
	}
	memoryReaderMu.Unlock()
}

// readHostMemory reads host memory through gopsutil, which covers
// /proc/meminfo, host_statistics64, GlobalMemoryStatusEx and the BSDs.
func readHostMemory() (SystemMemory, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return SystemMemory{}, fmt.Errorf("failed to read host memory: %w", err)
	}
	if vm.Total == 0 {
		return SystemMemory{}, fmt.Errorf("host reported zero total memory")
	}
	available := vm.Available
	if available > vm.Total {
		available = vm.Total
	}
	return SystemMemory{
		Total:     vm.Total,
		Available: available,
	}, nil
}

// SetMemoryReader replaces the current memory reader (for testing).
// It returns a cleanup function to restore the previous reader.
func SetMemoryReader(reader MemoryReader) func() {
	memoryReaderMu.Lock()
	prev := memoryReader
	memoryReader = reader
	memoryReaderMu.Unlock()

	return func() {
		memoryReaderMu.Lock()
		memoryReader = prev
		memoryReaderMu.Unlock()
	}
}
