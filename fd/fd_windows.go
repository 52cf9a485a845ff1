//go:build windows

package fd

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32               = windows.NewLazySystemDLL("kernel32.dll")
	procGetProcessHandleCount = modkernel32.NewProc("GetProcessHandleCount")
)

func count() (int, error) {
	var handles uint32
	ret, _, err := procGetProcessHandleCount.Call(
		uintptr(windows.CurrentProcess()),
		uintptr(unsafe.Pointer(&handles)),
	)
	// If the function fails, the return value is zero.
	if ret == 0 {
		return 0, fmt.Errorf("GetProcessHandleCount failed: %w", err)
	}
	return int(handles), nil
}
