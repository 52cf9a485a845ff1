package mem

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrent(t *testing.T) {
	info, err := Current()
	require.NoError(t, err)

	assert.Positive(t, info.ResidentSetSize)
	assert.GreaterOrEqual(t, info.ResidentSetSizePeak, info.ResidentSetSize)
	assert.GreaterOrEqual(t, info.VirtualMemorySize, info.ResidentSetSize)
}

func TestCurrent_TracksGrowth(t *testing.T) {
	before, err := Current()
	require.NoError(t, err)

	// touch every page so it becomes resident
	buf := make([]byte, 64<<20)
	for i := 0; i < len(buf); i += 4096 {
		buf[i] = 1
	}

	after, err := Current()
	require.NoError(t, err)
	assert.Greater(t, after.ResidentSetSizePeak, before.ResidentSetSize)
	assert.NotZero(t, buf[0])
}

func TestSystemMemoryReader(t *testing.T) {
	restore := SetSystemMemoryReader(func() (SystemMemory, error) {
		return SystemMemory{Total: 8 << 30, Available: 2 << 30}, nil
	})
	defer restore()

	sys, err := GetSystemMemory()
	require.NoError(t, err)
	assert.Equal(t, uint64(8<<30), sys.Total)
	assert.InDelta(t, 75.0, sys.UsedPercent(), 1e-9)

	failing := errors.New("cgroup gone")
	restoreFailing := SetSystemMemoryReader(func() (SystemMemory, error) {
		return SystemMemory{}, failing
	})
	_, err = GetSystemMemory()
	assert.ErrorIs(t, err, failing)
	restoreFailing()
}
