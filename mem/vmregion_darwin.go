//go:build darwin && !ios

package mem

import (
	"fmt"
	"os"

	"github.com/reugn/go-perfmon/internal/sysmonitor"
)

// VMRegionKind is the user tag of a VM region, as defined in
// mach/vm_statistics.h.
type VMRegionKind uint32

const (
	RegionMalloc              VMRegionKind = 1
	RegionMallocSmall         VMRegionKind = 2
	RegionMallocLarge         VMRegionKind = 3
	RegionMallocHuge          VMRegionKind = 4
	RegionSbrk                VMRegionKind = 5
	RegionRealloc             VMRegionKind = 6
	RegionMallocTiny          VMRegionKind = 7
	RegionMallocLargeReusable VMRegionKind = 8
	RegionMallocLargeReused   VMRegionKind = 9
	RegionMallocNano          VMRegionKind = 11
	RegionStack               VMRegionKind = 30
	RegionDylib               VMRegionKind = 33
	RegionDyld                VMRegionKind = 60
	RegionDyldMalloc          VMRegionKind = 61
)

var regionKindNames = map[VMRegionKind]string{
	RegionMalloc:              "malloc",
	RegionMallocSmall:         "malloc-small",
	RegionMallocLarge:         "malloc-large",
	RegionMallocHuge:          "malloc-huge",
	RegionSbrk:                "sbrk",
	RegionRealloc:             "realloc",
	RegionMallocTiny:          "malloc-tiny",
	RegionMallocLargeReusable: "malloc-large-reusable",
	RegionMallocLargeReused:   "malloc-large-reused",
	RegionMallocNano:          "malloc-nano",
	RegionStack:               "stack",
	RegionDylib:               "dylib",
	RegionDyld:                "dyld",
	RegionDyldMalloc:          "dyld-malloc",
}

func (k VMRegionKind) String() string {
	if name, ok := regionKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("tag(%d)", uint32(k))
}

// VMRegion describes one mapped region of the current process.
type VMRegion struct {
	Address       uint64
	Size          uint64
	Kind          VMRegionKind
	ResidentBytes uint64
	DirtyBytes    uint64
	SwappedBytes  uint64
}

// VMRegions returns the mapped regions of the current process in
// ascending address order.
func VMRegions() ([]VMRegion, error) {
	raw, err := sysmonitor.ReadVMRegions()
	if err != nil {
		return nil, err
	}
	return toVMRegions(raw, uint64(os.Getpagesize())), nil
}

func toVMRegions(raw []sysmonitor.VMRegion, pageSize uint64) []VMRegion {
	regions := make([]VMRegion, len(raw))
	for i, r := range raw {
		regions[i] = VMRegion{
			Address:       r.Address,
			Size:          r.Size,
			Kind:          VMRegionKind(r.Info.UserTag),
			ResidentBytes: uint64(r.Info.PagesResident) * pageSize,
			DirtyBytes:    uint64(r.Info.PagesDirtied) * pageSize,
			SwappedBytes:  uint64(r.Info.PagesSwappedOut) * pageSize,
		}
	}
	return regions
}
