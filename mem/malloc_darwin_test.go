//go:build darwin && !ios

package mem

import (
	"testing"

	"github.com/reugn/go-perfmon/internal/sysmonitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultZoneName = "DefaultMallocZone"

func TestMallocZones(t *testing.T) {
	zones, err := MallocZones()
	require.NoError(t, err)
	require.NotEmpty(t, zones)

	names := make([]string, 0, len(zones))
	for _, z := range zones {
		names = append(names, z.Name())
	}
	assert.Contains(t, names, defaultZoneName)
}

func TestDefaultMallocZone(t *testing.T) {
	zone, err := DefaultMallocZone()
	require.NoError(t, err)
	assert.Equal(t, defaultZoneName, zone.Name())

	stats, err := zone.Statistics()
	require.NoError(t, err)
	assert.Positive(t, stats.BlocksInUse)
	assert.Positive(t, stats.SizeInUse)
	assert.GreaterOrEqual(t, stats.MaxSizeInUse, stats.SizeInUse)
	assert.GreaterOrEqual(t, stats.SizeAllocated, stats.SizeInUse)
}

func TestVMRegions(t *testing.T) {
	regions, err := VMRegions()
	require.NoError(t, err)
	require.NotEmpty(t, regions)

	var resident uint64
	for i, r := range regions {
		assert.Positive(t, r.Size)
		if i > 0 {
			prev := regions[i-1]
			assert.GreaterOrEqual(t, r.Address, prev.Address+prev.Size)
		}
		resident += r.ResidentBytes
	}
	assert.Positive(t, resident)
}

func TestToVMRegions(t *testing.T) {
	raw := []sysmonitor.VMRegion{{
		Address: 0x1000,
		Size:    0x8000,
		Info: sysmonitor.VMRegionInfo{
			UserTag:         uint32(RegionStack),
			PagesResident:   3,
			PagesDirtied:    2,
			PagesSwappedOut: 1,
		},
	}}

	regions := toVMRegions(raw, 4096)
	require.Len(t, regions, 1)
	assert.Equal(t, VMRegion{
		Address:       0x1000,
		Size:          0x8000,
		Kind:          RegionStack,
		ResidentBytes: 3 * 4096,
		DirtyBytes:    2 * 4096,
		SwappedBytes:  4096,
	}, regions[0])
}

func TestVMRegionKind_String(t *testing.T) {
	assert.Equal(t, "malloc-nano", RegionMallocNano.String())
	assert.Equal(t, "stack", RegionStack.String())
	assert.Equal(t, "tag(99)", VMRegionKind(99).String())
}
