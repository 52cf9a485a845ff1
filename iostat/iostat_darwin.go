//go:build darwin

package iostat

import (
	"os"

	"github.com/reugn/go-perfmon/internal/sysmonitor"
)

// Darwin tracks disk bytes per process but no operation counts.
func current() (Stats, error) {
	info, err := sysmonitor.ReadRusageInfo(os.Getpid())
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		ReadBytes:  info.DiskioBytesRead,
		WriteBytes: info.DiskioBytesWritten,
	}, nil
}
