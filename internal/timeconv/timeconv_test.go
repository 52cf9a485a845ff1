package timeconv

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSaturatingArithmetic(t *testing.T) {
	assert.Equal(t, uint64(5), AddSat(2, 3))
	assert.Equal(t, uint64(math.MaxUint64), AddSat(math.MaxUint64, 1))
	assert.Equal(t, uint64(6), MulSat(2, 3))
	assert.Equal(t, uint64(math.MaxUint64), MulSat(math.MaxUint64/2, 3))
	assert.Equal(t, uint64(1), SubSat(3, 2))
	assert.Equal(t, uint64(0), SubSat(2, 3))
}

func TestTicksToMicros(t *testing.T) {
	tests := []struct {
		name     string
		ticks    int64
		hz       int64
		expected uint64
	}{
		{"zero", 0, 100, 0},
		{"one tick at 100Hz", 1, 100, 10_000},
		{"one second at 100Hz", 100, 100, 1_000_000},
		{"fractional at 250Hz", 375, 250, 1_500_000},
		{"1000Hz", 1, 1000, 1_000},
		{"negative ticks", -5, 100, 0},
		{"zero rate", 100, 0, 0},
		{"negative rate", 100, -1, 0},
		{"overflow", math.MaxInt64, 1, math.MaxUint64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TicksToMicros(tt.ticks, tt.hz))
		})
	}
}

func TestFiletimeToMicros(t *testing.T) {
	assert.Equal(t, uint64(0), FiletimeToMicros(0, 0))
	// 10 units of 100ns = 1us
	assert.Equal(t, uint64(1), FiletimeToMicros(0, 10))
	assert.Equal(t, uint64(1_000_000), FiletimeToMicros(0, 10_000_000))
	// high word carries bit 32
	assert.Equal(t, uint64(1<<32)/10, FiletimeToMicros(1, 0))
	assert.Equal(t, uint64(math.MaxUint64)/10, FiletimeToMicros(math.MaxUint32, math.MaxUint32))
}

func TestTimevalToMicros(t *testing.T) {
	assert.Equal(t, uint64(1_500_000), TimevalToMicros(1, 500_000))
	assert.Equal(t, uint64(2_000_000), TimevalToMicros(2, -3))
	assert.Equal(t, uint64(42), TimevalToMicros(-1, 42))
	assert.Equal(t, uint64(math.MaxUint64), TimevalToMicros(math.MaxInt64, math.MaxInt64))
}

func TestTimespecToMicros(t *testing.T) {
	assert.Equal(t, uint64(1_000_001), TimespecToMicros(1, 1_999))
	assert.Equal(t, uint64(0), TimespecToMicros(-1, -1))
}

func TestNanosAndSecondsToMicros(t *testing.T) {
	assert.Equal(t, uint64(1), NanosToMicros(1_999))
	assert.Equal(t, uint64(0), NanosToMicros(-1))

	assert.Equal(t, uint64(1_250_000), SecondsToMicros(1.25))
	assert.Equal(t, uint64(0), SecondsToMicros(-1))
	assert.Equal(t, uint64(0), SecondsToMicros(math.NaN()))
	assert.Equal(t, uint64(math.MaxUint64), SecondsToMicros(math.Inf(1)))
}

func TestToDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, ToDuration(1_500_000))
	assert.Equal(t, time.Duration(math.MaxInt64), ToDuration(math.MaxUint64))
	assert.InDelta(t, 1.5, Seconds(1_500_000), 1e-9)
}

func TestNormalizersAreMonotonic(t *testing.T) {
	for _, hz := range []int64{1, 60, 100, 250, 1000, 1024} {
		prev := TicksToMicros(0, hz)
		for ticks := int64(1); ticks < 5000; ticks++ {
			cur := TicksToMicros(ticks, hz)
			if cur < prev {
				t.Fatalf("TicksToMicros not monotonic at hz=%d ticks=%d: %d < %d", hz, ticks, cur, prev)
			}
			prev = cur
		}
	}

	prev := uint64(0)
	for low := uint32(0); low < 100_000; low += 7 {
		cur := FiletimeToMicros(0, low)
		if cur < prev {
			t.Fatalf("FiletimeToMicros not monotonic at low=%d", low)
		}
		prev = cur
	}

	prev = 0
	for sec := int64(0); sec < 3; sec++ {
		for usec := int64(0); usec < 1_000_000; usec += 9_973 {
			cur := TimevalToMicros(sec, usec)
			if cur < prev {
				t.Fatalf("TimevalToMicros not monotonic at %d.%06d", sec, usec)
			}
			prev = cur
		}
	}
}
