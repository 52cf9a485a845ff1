// Package monitor periodically samples the resource usage of the current
// process and publishes immutable snapshots.
package monitor

import (
	"fmt"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
	"github.com/reugn/go-perfmon/cpu"
	"github.com/reugn/go-perfmon/fd"
	"github.com/reugn/go-perfmon/iostat"
	"github.com/reugn/go-perfmon/mem"
)

// Stats is one snapshot of process resource usage.
type Stats struct {
	// ProcessCPU is the CPU usage since the previous sample as a fraction
	// of one core; 2.0 means two fully busy cores.
	ProcessCPU float64
	// ProcessCPUPercent is ProcessCPU as a share of all processors (0-100).
	ProcessCPUPercent float64
	// Processors is the number of online logical processors.
	Processors int
	// FDCount is the number of open descriptors, or -1 if not collected.
	FDCount int
	// IO holds the cumulative I/O counters.
	IO iostat.Stats
	// Memory holds the process memory info.
	Memory mem.ProcessMemoryInfo
	// MemoryUsedPercent is the resident memory as a share of system or
	// cgroup memory (0-100).
	MemoryUsedPercent float64
	// GoroutineCount is the number of live goroutines.
	GoroutineCount int
	// HeapAllocated is the number of bytes of allocated heap objects.
	HeapAllocated uint64
	// Timestamp is the time the snapshot was taken.
	Timestamp time.Time
}

// sources are the collectors sampled by the monitor.
type sources struct {
	cpu        cpu.TimeSource
	fdCount    func() (int, error)
	io         func() (iostat.Stats, error)
	memory     func() (mem.ProcessMemoryInfo, error)
	system     func() (mem.SystemMemory, error)
	processors func() (int, error)
}

func defaultSources() sources {
	return sources{
		fdCount:    fd.Count,
		io:         iostat.Current,
		memory:     mem.Current,
		system:     mem.GetSystemMemory,
		processors: cpu.NumProcessors,
	}
}

// ResourceMonitor samples process resources on a fixed interval.
// GetStats and Close are safe for concurrent use.
type ResourceMonitor struct {
	config  Config
	log     logr.Logger
	sources sources

	// owned by the monitor goroutine after construction
	sampler  *cpu.Stat
	memStats runtime.MemStats

	// Current stats (atomic for thread-safe reads)
	stats atomic.Value // *Stats

	// Lifecycle
	mu   sync.Mutex
	done chan struct{}
	wg   sync.WaitGroup
}

// New creates a resource monitor for the current process and starts it.
// The first snapshot is collected before New returns.
func New(config *Config) (*ResourceMonitor, error) {
	return newWithSources(config, defaultSources())
}

func newWithSources(config *Config, p sources) (*ResourceMonitor, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid monitor config: %w", err)
	}

	var (
		sampler *cpu.Stat
		err     error
	)
	if p.cpu != nil {
		sampler, err = cpu.NewStat(p.cpu)
	} else {
		var ps *cpu.ProcessStat
		ps, err = cpu.CurrentProcess()
		if ps != nil {
			sampler = ps.Stat
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create process CPU sampler: %w", err)
	}

	log := config.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	rm := &ResourceMonitor{
		config:  *config,
		log:     log.WithName("monitor"),
		sources: p,
		sampler: sampler,
		done:    make(chan struct{}),
	}

	// Initialize with current stats; CPU usage starts at zero until the
	// first tick measures a full interval
	rm.stats.Store(rm.collectStats(nil))

	rm.wg.Add(1)
	go rm.monitor()

	return rm, nil
}

// GetStats returns the most recent snapshot.
func (rm *ResourceMonitor) GetStats() Stats {
	stats := rm.stats.Load()
	if stats == nil {
		return Stats{}
	}
	return *stats.(*Stats)
}

// IsResourceConstrained returns true if CPU or memory usage is above the
// configured thresholds.
func (rm *ResourceMonitor) IsResourceConstrained() bool {
	stats := rm.GetStats()
	if rm.config.MaxCPUPercent > 0 && stats.ProcessCPUPercent > rm.config.MaxCPUPercent {
		return true
	}
	return rm.config.MaxMemoryPercent > 0 && stats.MemoryUsedPercent > rm.config.MaxMemoryPercent
}

// collectStats takes a snapshot. Values that fail to collect are carried
// over from prev. The initial snapshot (prev == nil) reports no CPU usage,
// since the sampler has only just taken its baseline.
func (rm *ResourceMonitor) collectStats(prev *Stats) *Stats {
	stats := &Stats{FDCount: -1}
	if prev != nil {
		*stats = *prev
	}

	processors, err := rm.sources.processors()
	if err != nil || processors <= 0 {
		processors = runtime.NumCPU()
	}
	stats.Processors = processors

	if prev != nil {
		if usage, err := rm.sampler.Usage(); err != nil {
			rm.log.Error(err, "Failed to sample process CPU")
		} else {
			stats.ProcessCPU = usage
			stats.ProcessCPUPercent = clampPercent(usage / float64(processors) * 100)
		}
	}

	if rm.config.Collect.Has(CollectFD) {
		if n, err := rm.sources.fdCount(); err != nil {
			rm.log.Error(err, "Failed to count descriptors")
		} else {
			stats.FDCount = n
		}
	}

	if rm.config.Collect.Has(CollectIO) {
		if io, err := rm.sources.io(); err != nil {
			rm.log.Error(err, "Failed to read I/O counters")
		} else {
			stats.IO = io
		}
	}

	runtime.ReadMemStats(&rm.memStats)
	stats.HeapAllocated = rm.memStats.HeapAlloc

	if rm.config.Collect.Has(CollectMemory) {
		if info, err := rm.sources.memory(); err != nil {
			rm.log.Error(err, "Failed to read process memory")
		} else {
			stats.Memory = info
		}
		stats.MemoryUsedPercent = rm.memoryUsagePercent(stats.Memory)
	}

	stats.GoroutineCount = runtime.NumGoroutine()
	stats.Timestamp = time.Now()

	rm.log.V(1).Info("Collected resource stats",
		"cpu", stats.ProcessCPU, "fds", stats.FDCount,
		"rss", stats.Memory.ResidentSetSize, "goroutines", stats.GoroutineCount)

	return stats
}

// memoryUsagePercent relates resident memory to system memory, falling
// back to the Go runtime view when system memory is unavailable.
func (rm *ResourceMonitor) memoryUsagePercent(info mem.ProcessMemoryInfo) float64 {
	sys, err := rm.sources.system()
	if err == nil && sys.Total > 0 && info.ResidentSetSize > 0 {
		return clampPercent(float64(info.ResidentSetSize) / float64(sys.Total) * 100)
	}
	if err != nil {
		rm.log.V(1).Info("System memory unavailable, using runtime stats", "error", err.Error())
	}

	if rm.memStats.Sys == 0 {
		return 0
	}
	return clampPercent(float64(rm.memStats.Alloc) / float64(rm.memStats.Sys) * 100)
}

func clampPercent(p float64) float64 {
	switch {
	case math.IsNaN(p) || math.IsInf(p, 0) || p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

// monitor periodically collects resource statistics
func (rm *ResourceMonitor) monitor() {
	defer rm.wg.Done()

	ticker := time.NewTicker(rm.config.SampleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			prev := rm.stats.Load().(*Stats)
			rm.stats.Store(rm.collectStats(prev))
		case <-rm.done:
			return
		}
	}
}

// Close stops the resource monitor and waits for the sampling goroutine
// to exit. It is safe to call Close more than once.
func (rm *ResourceMonitor) Close() {
	rm.mu.Lock()
	select {
	case <-rm.done:
		// Already closed
	default:
		close(rm.done)
	}
	rm.mu.Unlock()

	rm.wg.Wait()
}
