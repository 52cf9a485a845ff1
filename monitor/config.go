package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

// minSampleInterval is the minimum allowed sampling interval
const minSampleInterval = 50 * time.Millisecond

// Collectors selects the optional statistics gathered on every sample.
type Collectors uint8

const (
	// CollectFD counts open file descriptors.
	CollectFD Collectors = 1 << iota
	// CollectIO reads cumulative I/O counters.
	CollectIO
	// CollectMemory reads process and system memory.
	CollectMemory

	// CollectAll enables every collector.
	CollectAll = CollectFD | CollectIO | CollectMemory
)

// Has reports whether every collector in other is enabled in c.
func (c Collectors) Has(other Collectors) bool {
	return c&other == other
}

func (c Collectors) String() string {
	if c == 0 {
		return "none"
	}
	var names []string
	if c.Has(CollectFD) {
		names = append(names, "fd")
	}
	if c.Has(CollectIO) {
		names = append(names, "io")
	}
	if c.Has(CollectMemory) {
		names = append(names, "memory")
	}
	return strings.Join(names, ",")
}

// ParseCollectors parses a comma separated list of collector names
// ("fd", "io", "memory", "all" or "none").
func ParseCollectors(s string) (Collectors, error) {
	var c Collectors
	for _, name := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "":
		case "fd":
			c |= CollectFD
		case "io":
			c |= CollectIO
		case "memory", "mem":
			c |= CollectMemory
		case "all":
			c |= CollectAll
		case "none":
		default:
			return 0, fmt.Errorf("unknown collector %q", name)
		}
	}
	return c, nil
}

// Config configures the resource monitor.
type Config struct {
	// SampleInterval is the frequency of resource sampling.
	// Minimum: 50ms. Default config value: 1s
	SampleInterval time.Duration

	// MaxCPUPercent is the process CPU usage, as a share of all processors
	// (0-100), above which the process is considered constrained.
	// Zero disables the check. Default config value: 80.0
	MaxCPUPercent float64

	// MaxMemoryPercent is the resident memory, as a share of system or
	// cgroup memory (0-100), above which the process is considered
	// constrained. Zero disables the check. Default config value: 85.0
	MaxMemoryPercent float64

	// Collect selects the optional collectors.
	// Default config value: CollectAll
	Collect Collectors

	// Logger receives collector failures. Default config value: logr.Discard()
	Logger logr.Logger
}

// DefaultConfig returns safe defaults.
func DefaultConfig() *Config {
	return &Config{
		SampleInterval:   time.Second,
		MaxCPUPercent:    80.0,
		MaxMemoryPercent: 85.0,
		Collect:          CollectAll,
		Logger:           logr.Discard(),
	}
}

func (c *Config) validate() error {
	if c.SampleInterval < minSampleInterval {
		return fmt.Errorf("sample interval must be at least %v", minSampleInterval)
	}
	if c.MaxCPUPercent < 0 || c.MaxCPUPercent > 100 {
		return fmt.Errorf("MaxCPUPercent must be between 0 and 100")
	}
	if c.MaxMemoryPercent < 0 || c.MaxMemoryPercent > 100 {
		return fmt.Errorf("MaxMemoryPercent must be between 0 and 100")
	}
	if c.Collect&^CollectAll != 0 {
		return fmt.Errorf("unknown collectors: %08b", uint8(c.Collect&^CollectAll))
	}
	return nil
}
