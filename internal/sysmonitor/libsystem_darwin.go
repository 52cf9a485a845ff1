//go:build darwin

package sysmonitor

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

const libSystemPath = "/usr/lib/libSystem.B.dylib"

const (
	kernSuccess        = 0
	kernInvalidAddress = 1

	threadBasicInfoFlavor      = 3  // THREAD_BASIC_INFO
	taskVMInfoFlavor           = 22 // TASK_VM_INFO
	rusageInfoV2Flavor         = 2  // RUSAGE_INFO_V2
	vmRegionExtendedInfoFlavor = 13 // VM_REGION_EXTENDED_INFO
)

// libSystem holds the libSystem entry points resolved through purego, so
// no cgo toolchain is needed to build for macOS or iOS.
type libSystem struct {
	pthreadSelf         func() uintptr
	pthreadMachThreadNP func(thread uintptr) uint32
	machTaskSelf        func() uint32
	threadInfo          func(thread uint32, flavor int32, info unsafe.Pointer, count *uint32) int32
	taskInfo            func(task uint32, flavor int32, info unsafe.Pointer, count *uint32) int32
	procPidRusage       func(pid int32, flavor int32, buffer unsafe.Pointer) int32
	machVMRegion        func(task uint32, address, size *uint64, flavor int32, info unsafe.Pointer, count, objectName *uint32) int32

	mallocGetAllZones    func(task uint32, reader uintptr, addresses *unsafe.Pointer, count *uint32) int32
	mallocDefaultZone    func() unsafe.Pointer
	mallocZoneStatistics func(zone unsafe.Pointer, stats *MallocStatistics)
}

var (
	libSystemOnce sync.Once
	libSystemLib  *libSystem
	libSystemErr  error
)

func loadLibSystem() (*libSystem, error) {
	libSystemOnce.Do(func() {
		handle, err := purego.Dlopen(libSystemPath, purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			libSystemErr = fmt.Errorf("failed to load %s: %w", libSystemPath, err)
			return
		}

		lib := &libSystem{}
		bindings := []struct {
			fptr any
			name string
		}{
			{&lib.pthreadSelf, "pthread_self"},
			{&lib.pthreadMachThreadNP, "pthread_mach_thread_np"},
			{&lib.machTaskSelf, "mach_task_self"},
			{&lib.threadInfo, "thread_info"},
			{&lib.taskInfo, "task_info"},
			{&lib.procPidRusage, "proc_pid_rusage"},
			{&lib.machVMRegion, "mach_vm_region"},
			{&lib.mallocGetAllZones, "malloc_get_all_zones"},
			{&lib.mallocDefaultZone, "malloc_default_zone"},
			{&lib.mallocZoneStatistics, "malloc_zone_statistics"},
		}
		for _, b := range bindings {
			sym, err := purego.Dlsym(handle, b.name)
			if err != nil {
				libSystemErr = fmt.Errorf("failed to resolve %s: %w", b.name, err)
				return
			}
			purego.RegisterFunc(b.fptr, sym)
		}
		libSystemLib = lib
	})
	return libSystemLib, libSystemErr
}

// timeValue mirrors mach time_value_t.
type timeValue struct {
	Seconds      int32
	Microseconds int32
}

// threadBasicInfo mirrors thread_basic_info_data_t.
type threadBasicInfo struct {
	UserTime     timeValue
	SystemTime   timeValue
	CPUUsage     int32
	Policy       int32
	RunState     int32
	Flags        int32
	SuspendCount int32
	SleepTime    int32
}

// TaskVMInfo mirrors the leading fields of task_vm_info_data_t, up to and
// including phys_footprint (TASK_VM_INFO_REV1).
type TaskVMInfo struct {
	VirtualSize               uint64
	RegionCount               int32
	PageSize                  int32
	ResidentSize              uint64
	ResidentSizePeak          uint64
	Device                    uint64
	DevicePeak                uint64
	Internal                  uint64
	InternalPeak              uint64
	External                  uint64
	ExternalPeak              uint64
	Reusable                  uint64
	ReusablePeak              uint64
	PurgeableVolatilePmap     uint64
	PurgeableVolatileResident uint64
	PurgeableVolatileVirtual  uint64
	Compressed                uint64
	CompressedPeak            uint64
	CompressedLifetime        uint64
	PhysFootprint             uint64
}

// RusageInfoV2 mirrors struct rusage_info_v2.
type RusageInfoV2 struct {
	UUID                [16]uint8
	UserTime            uint64
	SystemTime          uint64
	PkgIdleWkups        uint64
	InterruptWkups      uint64
	Pageins             uint64
	WiredSize           uint64
	ResidentSize        uint64
	PhysFootprint       uint64
	ProcStartAbstime    uint64
	ProcExitAbstime     uint64
	ChildUserTime       uint64
	ChildSystemTime     uint64
	ChildPkgIdleWkups   uint64
	ChildInterruptWkups uint64
	ChildPageins        uint64
	ChildElapsedAbstime uint64
	DiskioBytesRead     uint64
	DiskioBytesWritten  uint64
}

// natural_t count of a mach info structure
func infoCount(size uintptr) uint32 {
	return uint32(size / unsafe.Sizeof(uint32(0)))
}

// ReadTaskVMInfo queries task_info(TASK_VM_INFO) for the current task.
func ReadTaskVMInfo() (TaskVMInfo, error) {
	lib, err := loadLibSystem()
	if err != nil {
		return TaskVMInfo{}, err
	}

	var info TaskVMInfo
	count := infoCount(unsafe.Sizeof(info))
	if kr := lib.taskInfo(lib.machTaskSelf(), taskVMInfoFlavor, unsafe.Pointer(&info), &count); kr != kernSuccess {
		return TaskVMInfo{}, fmt.Errorf("task_info(TASK_VM_INFO) failed: %w", KernReturn(kr))
	}
	return info, nil
}

// ReadRusageInfo queries proc_pid_rusage(RUSAGE_INFO_V2) for pid.
func ReadRusageInfo(pid int) (RusageInfoV2, error) {
	lib, err := loadLibSystem()
	if err != nil {
		return RusageInfoV2{}, err
	}

	var info RusageInfoV2
	if ret := lib.procPidRusage(int32(pid), rusageInfoV2Flavor, unsafe.Pointer(&info)); ret != 0 {
		return RusageInfoV2{}, fmt.Errorf("proc_pid_rusage(%d) failed with code %d", pid, ret)
	}
	return info, nil
}
