//go:build linux

package fd

import (
	"fmt"
	"os"

	"github.com/prometheus/procfs"
)

const selfFDDir = "/proc/self/fd"

func count() (int, error) {
	proc, err := procfs.Self()
	if err != nil {
		return 0, fmt.Errorf("failed to open /proc/self: %w", err)
	}
	// Kernels before 6.2 (most Android devices) report a zero size for the
	// fd directory, and procfs falls back to listing it.
	info, err := os.Stat(selfFDDir)
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", selfFDDir, err)
	}
	n, err := proc.FileDescriptorsLen()
	if err != nil {
		return 0, fmt.Errorf("failed to list %s: %w", selfFDDir, err)
	}
	return excludeListingFD(n, info.Size() > 0), nil
}

// excludeListingFD drops the descriptor opened to list the fd directory
// when the count was not taken from the directory size.
func excludeListingFD(n int, sized bool) int {
	if sized || n <= 0 {
		return n
	}
	return n - 1
}
