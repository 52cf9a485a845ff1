// Package fd reports the number of open file descriptors (handles on
// Windows) of the current process.
package fd

import (
	"github.com/reugn/go-perfmon/internal/sysmonitor"
)

// ErrUnsupported is returned where the platform offers no way to count
// descriptors, such as iOS.
var ErrUnsupported = sysmonitor.ErrUnsupported

// Count returns the number of descriptors currently open in this process.
func Count() (int, error) {
	return count()
}
