//go:build linux

package iostat

import (
	"fmt"

	"github.com/prometheus/procfs"
)

func current() (Stats, error) {
	proc, err := procfs.Self()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to open /proc/self: %w", err)
	}
	pio, err := proc.IO()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read /proc/self/io: %w", err)
	}
	return Stats{
		ReadCount:  pio.SyscR,
		WriteCount: pio.SyscW,
		ReadBytes:  pio.ReadBytes,
		WriteBytes: pio.WriteBytes,
	}, nil
}
