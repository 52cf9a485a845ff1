package cpu

import (
	"os"

	"github.com/reugn/go-perfmon/internal/sysmonitor"
)

// ProcessStat samples the CPU time of a whole process.
type ProcessStat struct {
	*Stat
	pid int
}

// CurrentProcess returns a sampler for the calling process.
func CurrentProcess(opts ...Option) (*ProcessStat, error) {
	stat, err := NewStat(TimeSourceFunc(sysmonitor.ProcessCPUTime), opts...)
	if err != nil {
		return nil, err
	}
	return &ProcessStat{Stat: stat, pid: os.Getpid()}, nil
}

// NewProcessStat returns a sampler for the process pid. The current
// process is read through the native accessor, other processes through
// the platform process table.
func NewProcessStat(pid int, opts ...Option) (*ProcessStat, error) {
	if pid == os.Getpid() {
		return CurrentProcess(opts...)
	}
	handle, err := sysmonitor.NewProcessHandle(pid)
	if err != nil {
		return nil, err
	}
	stat, err := NewStat(handle, opts...)
	if err != nil {
		return nil, err
	}
	return &ProcessStat{Stat: stat, pid: pid}, nil
}

// PID returns the sampled process id.
func (p *ProcessStat) PID() int {
	return p.pid
}
