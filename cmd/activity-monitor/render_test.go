package main

import (
	"testing"
	"time"

	"github.com/reugn/go-perfmon/iostat"
	"github.com/reugn/go-perfmon/mem"
	"github.com/reugn/go-perfmon/monitor"
	"github.com/stretchr/testify/assert"
)

func testSnapshot() snapshot {
	return snapshot{
		stats: monitor.Stats{
			ProcessCPU:        2.5,
			ProcessCPUPercent: 62.5,
			Processors:        4,
			FDCount:           1234,
			IO:                iostat.Stats{ReadCount: 10, WriteCount: 20, ReadBytes: 2048, WriteBytes: 1 << 20},
			Memory: mem.ProcessMemoryInfo{
				ResidentSetSize:     64 << 20,
				ResidentSetSizePeak: 80 << 20,
				VirtualMemorySize:   1 << 30,
			},
			MemoryUsedPercent: 1.5,
			GoroutineCount:    7,
			HeapAllocated:     4 << 20,
			Timestamp:         time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		threadUsage: 0.25,
		allocated:   3 << 20,
		collectors:  monitor.CollectAll,
	}
}

func TestSnapshot_Render(t *testing.T) {
	out := testSnapshot().render()

	assert.Contains(t, out, "03:04:05.000")
	assert.Contains(t, out, "cores: 4, process: 250.00% (62.50% of machine), current thread: 25.00%")
	assert.Contains(t, out, "rss: 64 MiB (peak 80 MiB), virtual: 1.0 GiB")
	assert.Contains(t, out, "open: 1,234")
	assert.Contains(t, out, "in: 2.0 KiB (10 ops), out: 1.0 MiB (20 ops)")
	assert.Contains(t, out, "allocated since start: 3.0 MiB")
	assert.NotContains(t, out, "CONSTRAINED")
	assert.NotContains(t, out, "footprint")
}

func TestSnapshot_RenderPartial(t *testing.T) {
	s := testSnapshot()
	s.threadUsage = -1
	s.constrained = true
	s.allocated = -(2 << 10)
	s.collectors = monitor.CollectFD
	s.stats.FDCount = -1

	out := s.render()
	assert.Contains(t, out, "current thread: n/a")
	assert.Contains(t, out, "CONSTRAINED")
	assert.Contains(t, out, "open: n/a")
	assert.Contains(t, out, "allocated since start: -2.0 KiB")
	assert.NotContains(t, out, "rss:")
	assert.NotContains(t, out, "ops")
}

func TestSignedBytes(t *testing.T) {
	assert.Equal(t, "0 B", signedBytes(0))
	assert.Equal(t, "1.0 KiB", signedBytes(1024))
	assert.Equal(t, "-1.0 KiB", signedBytes(-1024))
}
