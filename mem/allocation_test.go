package mem

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sink [][]byte

func allocate(n, size int) {
	for i := 0; i < n; i++ {
		sink = append(sink, make([]byte, size))
	}
}

func TestAllocationCounter_Lifecycle(t *testing.T) {
	c := Allocations()
	require.Same(t, c, Allocations())
	t.Cleanup(func() {
		c.Disable()
		c.Reset()
		sink = nil
	})

	c.Disable()
	c.Reset()
	assert.False(t, c.Enabled())
	assert.Zero(t, c.Allocated())

	// disabled counters ignore allocations
	allocate(64, 16<<10)
	assert.Zero(t, c.Allocated())

	c.Enable()
	assert.True(t, c.Enabled())
	allocate(256, 16<<10)
	enabled := c.Allocated()
	assert.GreaterOrEqual(t, enabled, int64(256*16<<10)/2)

	c.Disable()
	frozen := c.Allocated()
	allocate(64, 16<<10)
	assert.Equal(t, frozen, c.Allocated(), "value is kept while disabled")

	c.Reset()
	assert.Zero(t, c.Allocated())
	assert.False(t, c.Enabled())
}

func TestAllocationCounter_Frees(t *testing.T) {
	c := Allocations()
	t.Cleanup(func() {
		c.Disable()
		c.Reset()
	})

	c.Reset()
	sink = nil
	runtime.GC()

	c.Enable()
	allocate(256, 16<<10)
	grown := c.Allocated()

	sink = nil
	runtime.GC()
	assert.Less(t, c.Allocated(), grown)
}

func TestAllocationCounter_Concurrent(t *testing.T) {
	c := Allocations()
	t.Cleanup(func() {
		c.Disable()
		c.Reset()
	})

	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				c.Enable()
				_ = c.Allocated()
				c.Reset()
				c.Disable()
			}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}
	c.Disable()
	assert.False(t, c.Enabled())
}
