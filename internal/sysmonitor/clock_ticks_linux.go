//go:build linux

package sysmonitor

import (
	"encoding/binary"
	"math/bits"
	"sync"

	"github.com/tklauser/go-sysconf"
)

const (
	// atClkTck is the auxiliary vector key holding the clock tick rate
	atClkTck = 17
	// defaultClockTicks is USER_HZ on every mainstream architecture
	defaultClockTicks = 100
	maxClockTicks     = 10000
)

var (
	clockTicksOnce sync.Once
	clockTicks     int64
)

// ClockTicks returns the number of scheduler clock ticks per second. The
// value is resolved once and cached for the process lifetime.
func ClockTicks() int64 {
	clockTicksOnce.Do(func() {
		clockTicks = detectClockTicks(OSFileSystem{})
	})
	return clockTicks
}

// detectClockTicks reads AT_CLKTCK from /proc/self/auxv, then falls back
// to sysconf(_SC_CLK_TCK), then to USER_HZ.
func detectClockTicks(fs FileSystem) int64 {
	if data, err := fs.ReadFile("/proc/self/auxv"); err == nil {
		if hz, ok := parseAuxvClockTicks(data, bits.UintSize/8); ok {
			return hz
		}
	}

	if hz, err := sysconf.Sysconf(sysconf.SC_CLK_TCK); err == nil && hz > 0 && hz <= maxClockTicks {
		return hz
	}

	return defaultClockTicks
}

// parseAuxvClockTicks scans native-endian (key, value) word pairs of the
// given word size for AT_CLKTCK.
func parseAuxvClockTicks(data []byte, wordSize int) (int64, bool) {
	entry := 2 * wordSize
	for off := 0; off+entry <= len(data); off += entry {
		var key, val uint64
		switch wordSize {
		case 8:
			key = binary.NativeEndian.Uint64(data[off:])
			val = binary.NativeEndian.Uint64(data[off+wordSize:])
		case 4:
			key = uint64(binary.NativeEndian.Uint32(data[off:]))
			val = uint64(binary.NativeEndian.Uint32(data[off+wordSize:]))
		default:
			return 0, false
		}

		if key == 0 { // AT_NULL
			break
		}
		if key == atClkTck && val > 0 && val <= maxClockTicks {
			return int64(val), true
		}
	}
	return 0, false
}
