//go:build windows

package sysmonitor

import (
	"fmt"
	"unsafe"

	"github.com/reugn/go-perfmon/internal/timeconv"
	"golang.org/x/sys/windows"
)

// THREAD_QUERY_LIMITED_INFORMATION is the minimum access right accepted by
// GetThreadTimes (Windows Vista and later).
const threadQueryLimitedInformation = 0x0800

var (
	modkernel32        = windows.NewLazySystemDLL("kernel32.dll")
	procGetThreadTimes = modkernel32.NewProc("GetThreadTimes")
)

// ProcessCPUTime returns the kernel+user time of the current process using
// GetProcessTimes on the process pseudo-handle, which needs no closing.
// The value is raw cumulative time and is not scaled by processor count.
func ProcessCPUTime() (uint64, error) {
	var creation, exit, kernel, user windows.Filetime
	if err := windows.GetProcessTimes(windows.CurrentProcess(), &creation, &exit, &kernel, &user); err != nil {
		return 0, fmt.Errorf("GetProcessTimes failed: %w", err)
	}
	return sumFiletimes(kernel, user), nil
}

// CurrentThreadID returns the id of the calling OS thread.
func CurrentThreadID() uint32 {
	return windows.GetCurrentThreadId()
}

// ThreadCPUTime returns the kernel+user time of thread tid. The thread
// handle is opened for this call only and closed on every return path.
func ThreadCPUTime(tid uint32) (uint64, error) {
	h, err := windows.OpenThread(threadQueryLimitedInformation, false, tid)
	if err != nil {
		return 0, fmt.Errorf("failed to open thread %d: %w", tid, err)
	}
	defer windows.CloseHandle(h)

	var creation, exit, kernel, user windows.Filetime
	ret, _, callErr := procGetThreadTimes.Call(
		uintptr(h),
		uintptr(unsafe.Pointer(&creation)),
		uintptr(unsafe.Pointer(&exit)),
		uintptr(unsafe.Pointer(&kernel)),
		uintptr(unsafe.Pointer(&user)),
	)
	// If the function fails, the return value is zero.
	if ret == 0 {
		return 0, fmt.Errorf("GetThreadTimes failed for thread %d: %w", tid, callErr)
	}
	return sumFiletimes(kernel, user), nil
}

func sumFiletimes(kernel, user windows.Filetime) uint64 {
	return timeconv.AddSat(
		timeconv.FiletimeToMicros(kernel.HighDateTime, kernel.LowDateTime),
		timeconv.FiletimeToMicros(user.HighDateTime, user.LowDateTime),
	)
}
