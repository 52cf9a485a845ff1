//go:build linux

package sysmonitor

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/reugn/go-perfmon/internal/timeconv"
	"golang.org/x/sys/unix"
)

const (
	// offsets of utime and stime among the fields following the comm field
	// of /proc/<pid>/stat (state is offset 0, field 3 in proc(5))
	statUTimeOffset = 11
	statSTimeOffset = 12
)

// ProcessCPUTime returns the CPU time of the current process using
// clock_gettime(CLOCK_PROCESS_CPUTIME_ID).
func ProcessCPUTime() (uint64, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_PROCESS_CPUTIME_ID, &ts); err != nil {
		return 0, fmt.Errorf("clock_gettime(CLOCK_PROCESS_CPUTIME_ID) failed: %w", err)
	}
	return timeconv.TimespecToMicros(int64(ts.Sec), int64(ts.Nsec)), nil
}

// CurrentThreadID returns the kernel thread id of the calling OS thread.
func CurrentThreadID() uint32 {
	return uint32(unix.Gettid())
}

// ThreadCPUTime returns the CPU time of thread tid of the current process,
// read from /proc/<pid>/task/<tid>/stat.
func ThreadCPUTime(tid uint32) (uint64, error) {
	return readTaskCPUTime(OSFileSystem{}, os.Getpid(), tid, ClockTicks())
}

func readTaskCPUTime(fs FileSystem, pid int, tid uint32, hz int64) (uint64, error) {
	path := fmt.Sprintf("/proc/%d/task/%d/stat", pid, tid)
	data, err := fs.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	utime, stime, err := parseStatTimes(path, data)
	if err != nil {
		return 0, err
	}

	return timeconv.AddSat(
		timeconv.TicksToMicros(utime, hz),
		timeconv.TicksToMicros(stime, hz),
	), nil
}

// parseStatTimes extracts utime and stime (in clock ticks) from the content
// of a stat file. The comm field may contain spaces and parentheses, so the
// remaining fields are located after the last ')'.
func parseStatTimes(source string, data []byte) (utime, stime int64, err error) {
	end := bytes.LastIndexByte(data, ')')
	if end < 0 {
		return 0, 0, &ParseError{Source: source, Field: "comm"}
	}

	fields := bytes.Fields(data[end+1:])
	if len(fields) <= statSTimeOffset {
		return 0, 0, &ParseError{
			Source: source,
			Field:  "stime",
			Err:    fmt.Errorf("expected at least %d fields after comm, got %d", statSTimeOffset+1, len(fields)),
		}
	}

	utime, err = strconv.ParseInt(string(fields[statUTimeOffset]), 10, 64)
	if err != nil {
		return 0, 0, &ParseError{Source: source, Field: "utime", Err: err}
	}

	stime, err = strconv.ParseInt(string(fields[statSTimeOffset]), 10, 64)
	if err != nil {
		return 0, 0, &ParseError{Source: source, Field: "stime", Err: err}
	}

	return utime, stime, nil
}
