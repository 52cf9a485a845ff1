//go:build darwin

package sysmonitor

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// MallocStatistics mirrors malloc_statistics_t.
type MallocStatistics struct {
	BlocksInUse   uint32
	SizeInUse     uint64
	MaxSizeInUse  uint64
	SizeAllocated uint64
}

// mallocZone mirrors the leading fields of malloc_zone_t.
type mallocZone struct {
	reserved1   uintptr
	reserved2   uintptr
	size        uintptr
	malloc      uintptr
	calloc      uintptr
	valloc      uintptr
	free        uintptr
	realloc     uintptr
	destroy     uintptr
	zoneName    *byte
	batchMalloc uintptr
	batchFree   uintptr
	introspect  *mallocIntrospection
}

// mallocIntrospection mirrors the leading fields of malloc_introspection_t.
type mallocIntrospection struct {
	enumerator  uintptr
	goodSize    uintptr
	check       uintptr
	print       uintptr
	log         uintptr
	forceLock   uintptr
	forceUnlock uintptr
	statistics  uintptr
}

// MallocZone is a malloc zone of the current process. Zones are owned by
// libmalloc and stay valid for the life of the process unless another
// thread destroys them.
type MallocZone struct {
	ptr *mallocZone
}

// Name returns the zone name, or an empty string for an unnamed zone.
func (z MallocZone) Name() string {
	if z.ptr == nil || z.ptr.zoneName == nil {
		return ""
	}
	return unix.BytePtrToString(z.ptr.zoneName)
}

// Statistics returns the usage statistics of the zone. ErrUnsupported is
// returned for zones that do not implement the statistics hook.
func (z MallocZone) Statistics() (MallocStatistics, error) {
	if z.ptr == nil || z.ptr.introspect == nil || z.ptr.introspect.statistics == 0 {
		return MallocStatistics{}, ErrUnsupported
	}
	lib, err := loadLibSystem()
	if err != nil {
		return MallocStatistics{}, err
	}
	var stats MallocStatistics
	lib.mallocZoneStatistics(unsafe.Pointer(z.ptr), &stats)
	return stats, nil
}

// MallocZones returns every malloc zone registered in the current process.
func MallocZones() ([]MallocZone, error) {
	lib, err := loadLibSystem()
	if err != nil {
		return nil, err
	}

	var (
		addresses unsafe.Pointer
		count     uint32
	)
	if kr := lib.mallocGetAllZones(lib.machTaskSelf(), 0, &addresses, &count); kr != kernSuccess {
		return nil, fmt.Errorf("malloc_get_all_zones failed: %w", KernReturn(kr))
	}
	if addresses == nil || count == 0 {
		return nil, nil
	}

	ptrs := unsafe.Slice((**mallocZone)(addresses), count)
	zones := make([]MallocZone, 0, count)
	for _, p := range ptrs {
		if p != nil {
			zones = append(zones, MallocZone{ptr: p})
		}
	}
	return zones, nil
}

// DefaultMallocZone returns the zone used by malloc.
func DefaultMallocZone() (MallocZone, error) {
	lib, err := loadLibSystem()
	if err != nil {
		return MallocZone{}, err
	}
	return MallocZone{ptr: (*mallocZone)(lib.mallocDefaultZone())}, nil
}

// VMRegionInfo mirrors vm_region_extended_info_data_t.
type VMRegionInfo struct {
	Protection            int32
	UserTag               uint32
	PagesResident         uint32
	PagesSharedNowPrivate uint32
	PagesSwappedOut       uint32
	PagesDirtied          uint32
	RefCount              uint32
	ShadowDepth           uint16
	ExternalPager         uint8
	ShareMode             uint8
	PagesReusable         uint32
}

// VMRegion is one mapped region of the current task.
type VMRegion struct {
	Address uint64
	Size    uint64
	Info    VMRegionInfo
}

// ReadVMRegions walks the address space of the current task with
// mach_vm_region(VM_REGION_EXTENDED_INFO), in ascending address order.
func ReadVMRegions() ([]VMRegion, error) {
	lib, err := loadLibSystem()
	if err != nil {
		return nil, err
	}

	task := lib.machTaskSelf()
	var regions []VMRegion
	for addr := uint64(1); ; {
		var (
			size       uint64
			objectName uint32
			info       VMRegionInfo
		)
		count := infoCount(unsafe.Sizeof(info))
		kr := lib.machVMRegion(task, &addr, &size, vmRegionExtendedInfoFlavor,
			unsafe.Pointer(&info), &count, &objectName)
		switch {
		case kr == kernInvalidAddress:
			// past the last region
			return regions, nil
		case kr != kernSuccess:
			return regions, fmt.Errorf("mach_vm_region(%#x) failed: %w", addr, KernReturn(kr))
		}

		regions = append(regions, VMRegion{Address: addr, Size: size, Info: info})
		next := addr + size
		if size == 0 || next <= addr {
			return regions, nil
		}
		addr = next
	}
}
