// Package timeconv converts native CPU time representations into
// microseconds stored as uint64.
//
// Supported representations:
//   - scheduler clock ticks with a ticks-per-second rate (Linux /proc)
//   - FILETIME high/low words in 100ns units (Windows)
//   - seconds+microseconds pairs (timeval, mach time_value)
//   - seconds+nanoseconds pairs (timespec) and raw nanoseconds
//   - float seconds (gopsutil)
//
// All arithmetic saturates. Negative native fields clamp to zero instead of
// wrapping, and values that do not fit clamp to math.MaxUint64.
package timeconv

import (
	"math"
	"math/bits"
	"time"
)

const (
	microsPerSecond = 1_000_000
	nanosPerMicro   = 1_000
	// a FILETIME unit is 100ns
	filetimeUnitsPerMicro = 10
)

// AddSat returns a+b, clamped to math.MaxUint64.
func AddSat(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}

// MulSat returns a*b, clamped to math.MaxUint64.
func MulSat(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}

// SubSat returns a-b, or 0 if b > a.
func SubSat(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

// nonNegative clamps a signed native field to zero.
func nonNegative(v int64) uint64 {
	if v < 0 {
		return 0
	}
	return uint64(v)
}

// TicksToMicros converts a scheduler tick count at hz ticks per second.
// A non-positive hz yields 0.
func TicksToMicros(ticks, hz int64) uint64 {
	if hz <= 0 {
		return 0
	}
	t := nonNegative(ticks)
	h := uint64(hz)
	// split into whole seconds and remainder so the multiplication
	// only overflows when the result itself would
	whole := MulSat(t/h, microsPerSecond)
	hi, lo := bits.Mul64(t%h, microsPerSecond)
	frac, _ := bits.Div64(hi, lo, h)
	return AddSat(whole, frac)
}

// FiletimeToMicros converts a FILETIME split into its high and low words.
func FiletimeToMicros(high, low uint32) uint64 {
	units := uint64(high)<<32 | uint64(low)
	return units / filetimeUnitsPerMicro
}

// TimevalToMicros converts a seconds+microseconds pair. Either field may be
// negative on some drivers; negative fields contribute nothing.
func TimevalToMicros(sec, usec int64) uint64 {
	return AddSat(MulSat(nonNegative(sec), microsPerSecond), nonNegative(usec))
}

// TimespecToMicros converts a seconds+nanoseconds pair.
func TimespecToMicros(sec, nsec int64) uint64 {
	return AddSat(MulSat(nonNegative(sec), microsPerSecond), nonNegative(nsec)/nanosPerMicro)
}

// NanosToMicros converts raw nanoseconds.
func NanosToMicros(ns int64) uint64 {
	return nonNegative(ns) / nanosPerMicro
}

// SecondsToMicros converts fractional seconds.
func SecondsToMicros(s float64) uint64 {
	switch {
	case math.IsNaN(s) || s <= 0:
		return 0
	case s >= math.MaxUint64/microsPerSecond:
		return math.MaxUint64
	}
	return uint64(s * microsPerSecond)
}

// ToDuration converts microseconds to a time.Duration, clamped to the
// largest representable duration.
func ToDuration(us uint64) time.Duration {
	if us > uint64(math.MaxInt64/int64(time.Microsecond)) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(us) * time.Microsecond
}

// Seconds returns microseconds as fractional seconds.
func Seconds(us uint64) float64 {
	return float64(us) / microsPerSecond
}
