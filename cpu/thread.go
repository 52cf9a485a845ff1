package cpu

import (
	"github.com/reugn/go-perfmon/internal/sysmonitor"
)

// ThreadID identifies an OS thread of the current process: the kernel tid
// on Linux and Android, the mach thread port on Darwin, and the thread id on
// Windows. It is valid for threads of the current process only.
type ThreadID uint32

// CurrentThreadID returns the id of the OS thread running the caller.
//
// Goroutines migrate between OS threads. Call runtime.LockOSThread first if
// the id must keep referring to the thread the goroutine runs on.
func CurrentThreadID() ThreadID {
	return ThreadID(sysmonitor.CurrentThreadID())
}

// ThreadStat samples the CPU time of a single OS thread.
type ThreadStat struct {
	*Stat
	tid ThreadID
}

// CurrentThread returns a sampler for the OS thread running the caller.
// See CurrentThreadID for the runtime.LockOSThread requirement.
func CurrentThread(opts ...Option) (*ThreadStat, error) {
	return NewThreadStat(CurrentThreadID(), opts...)
}

// NewThreadStat returns a sampler for the thread tid of this process.
func NewThreadStat(tid ThreadID, opts ...Option) (*ThreadStat, error) {
	source := TimeSourceFunc(func() (uint64, error) {
		return sysmonitor.ThreadCPUTime(uint32(tid))
	})
	stat, err := NewStat(source, opts...)
	if err != nil {
		return nil, err
	}
	return &ThreadStat{Stat: stat, tid: tid}, nil
}

// ID returns the sampled thread id.
func (t *ThreadStat) ID() ThreadID {
	return t.tid
}
