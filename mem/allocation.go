package mem

import (
	"runtime/metrics"
	"sync"
)

const (
	heapAllocsMetric = "/gc/heap/allocs:bytes"
	heapFreesMetric  = "/gc/heap/frees:bytes"
)

// AllocationCounter tracks the net Go heap bytes allocated by the process
// while it is enabled. Allocations made while disabled are not counted,
// and neither are frees. The counter is disabled by default.
//
// Frees are only observed once the garbage collector has swept the
// objects, so Allocated may stay high until the next GC cycle.
type AllocationCounter struct {
	mu       sync.Mutex
	enabled  bool
	baseline int64 // live heap bytes when last enabled or reset
	carried  int64 // net bytes accumulated in previous enabled periods
	samples  []metrics.Sample
}

var allocations = &AllocationCounter{
	samples: []metrics.Sample{
		{Name: heapAllocsMetric},
		{Name: heapFreesMetric},
	},
}

// Allocations returns the process-wide allocation counter.
func Allocations() *AllocationCounter {
	return allocations
}

// Enable starts counting. Enabling an enabled counter has no effect.
func (c *AllocationCounter) Enable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.enabled {
		return
	}
	c.baseline = c.liveBytes()
	c.enabled = true
}

// Disable stops counting and keeps the value accumulated so far.
func (c *AllocationCounter) Disable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return
	}
	c.carried += c.liveBytes() - c.baseline
	c.enabled = false
}

// Enabled reports whether the counter is counting.
func (c *AllocationCounter) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Reset sets the counter back to zero without changing whether it is
// enabled.
func (c *AllocationCounter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.carried = 0
	if c.enabled {
		c.baseline = c.liveBytes()
	}
}

// Allocated returns the net heap bytes allocated while enabled. It can be
// negative when more memory was freed than allocated.
func (c *AllocationCounter) Allocated() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return c.carried
	}
	return c.carried + c.liveBytes() - c.baseline
}

// liveBytes must be called with mu held.
func (c *AllocationCounter) liveBytes() int64 {
	metrics.Read(c.samples)
	allocs, frees := metricValue(c.samples[0]), metricValue(c.samples[1])
	if frees > allocs {
		return 0
	}
	return int64(allocs - frees)
}

func metricValue(s metrics.Sample) uint64 {
	if s.Value.Kind() != metrics.KindUint64 {
		return 0
	}
	return s.Value.Uint64()
}
