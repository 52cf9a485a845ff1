//go:build darwin && !ios

package mem

import (
	"github.com/reugn/go-perfmon/internal/sysmonitor"
)

// MallocStatistics holds the usage statistics of one malloc zone.
type MallocStatistics = sysmonitor.MallocStatistics

// MallocZone is a libmalloc zone of the current process.
type MallocZone = sysmonitor.MallocZone

// MallocZones returns every malloc zone registered in the current process.
// Zones may be destroyed by other threads while the result is in use.
func MallocZones() ([]MallocZone, error) {
	return sysmonitor.MallocZones()
}

// DefaultMallocZone returns the zone backing malloc.
func DefaultMallocZone() (MallocZone, error) {
	return sysmonitor.DefaultMallocZone()
}
