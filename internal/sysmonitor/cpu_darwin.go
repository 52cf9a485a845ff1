//go:build darwin

package sysmonitor

import (
	"fmt"
	"unsafe"

	"github.com/reugn/go-perfmon/internal/timeconv"
	"golang.org/x/sys/unix"
)

// ProcessCPUTime returns the CPU time of the current process using
// getrusage(RUSAGE_SELF). clock_gettime is missing on older macOS and iOS
// releases, so getrusage is used on every Darwin version.
func ProcessCPUTime() (uint64, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, fmt.Errorf("getrusage(RUSAGE_SELF) failed: %w", err)
	}
	return timeconv.AddSat(
		timeconv.TimevalToMicros(int64(ru.Utime.Sec), int64(ru.Utime.Usec)),
		timeconv.TimevalToMicros(int64(ru.Stime.Sec), int64(ru.Stime.Usec)),
	), nil
}

// CurrentThreadID returns the mach thread port of the calling OS thread,
// or 0 if libSystem could not be loaded.
func CurrentThreadID() uint32 {
	lib, err := loadLibSystem()
	if err != nil {
		return 0
	}
	return lib.pthreadMachThreadNP(lib.pthreadSelf())
}

// ThreadCPUTime returns the CPU time of the thread behind the mach port tid
// using thread_info(THREAD_BASIC_INFO).
func ThreadCPUTime(tid uint32) (uint64, error) {
	lib, err := loadLibSystem()
	if err != nil {
		return 0, err
	}

	var info threadBasicInfo
	count := infoCount(unsafe.Sizeof(info))
	if kr := lib.threadInfo(tid, threadBasicInfoFlavor, unsafe.Pointer(&info), &count); kr != kernSuccess {
		return 0, fmt.Errorf("thread_info(%d) failed: %w", tid, KernReturn(kr))
	}

	return timeconv.AddSat(
		timeconv.TimevalToMicros(int64(info.UserTime.Seconds), int64(info.UserTime.Microseconds)),
		timeconv.TimevalToMicros(int64(info.SystemTime.Seconds), int64(info.SystemTime.Microseconds)),
	), nil
}
