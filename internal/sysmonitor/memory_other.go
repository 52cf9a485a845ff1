//go:build !linux

package sysmonitor

// platformMemoryReaders returns no container-aware readers outside Linux.
func platformMemoryReaders(FileSystem) []MemoryReader {
	return nil
}
