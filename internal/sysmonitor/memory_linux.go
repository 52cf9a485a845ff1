//go:build linux

package sysmonitor

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// errUnlimited marks a cgroup without a memory limit.
var errUnlimited = errors.New("unlimited memory limit")

// cgroup v1 reports "no limit" as a page-aligned value near MaxInt64.
const cgroupV1UnlimitedThreshold = 1 << 60

// cgroupConfig describes where a cgroup version keeps its memory files.
type cgroupConfig struct {
	usagePath      string
	limitPath      string
	statPath       string
	statKey        string
	checkUnlimited bool
}

var (
	cgroupV2Config = cgroupConfig{
		usagePath: "/sys/fs/cgroup/memory.current",
		limitPath: "/sys/fs/cgroup/memory.max",
		statPath:  "/sys/fs/cgroup/memory.stat",
		statKey:   "inactive_file",
	}
	cgroupV1Config = cgroupConfig{
		usagePath:      "/sys/fs/cgroup/memory/memory.usage_in_bytes",
		limitPath:      "/sys/fs/cgroup/memory/memory.limit_in_bytes",
		statPath:       "/sys/fs/cgroup/memory/memory.stat",
		statKey:        "total_inactive_file",
		checkUnlimited: true,
	}
)

func platformMemoryReaders(fs FileSystem) []MemoryReader {
	return []MemoryReader{
		makeCgroupReader(fs, cgroupV2Config),
		makeCgroupReader(fs, cgroupV1Config),
	}
}

func makeCgroupReader(fs FileSystem, config cgroupConfig) MemoryReader {
	return func() (SystemMemory, error) {
		return readCgroupMemoryWithFS(fs, config)
	}
}

func readCgroupMemoryWithFS(fs FileSystem, config cgroupConfig) (SystemMemory, error) {
	usage, err := readCgroupValueWithFS(fs, config.usagePath, false)
	if err != nil {
		return SystemMemory{}, fmt.Errorf("failed to read cgroup memory usage: %w", err)
	}

	limit, err := readCgroupValueWithFS(fs, config.limitPath, config.checkUnlimited)
	if err != nil {
		return SystemMemory{}, fmt.Errorf("failed to read cgroup memory limit: %w", err)
	}

	// inactive_file is reclaimable; a missing stat file degrades to 0
	inactiveFile, _ := readCgroupStatWithFS(fs, config.statPath, config.statKey)

	// Available = (Limit - Usage) + Reclaimable, capped at Limit
	var available uint64
	if usage > limit {
		available = inactiveFile
	} else {
		available = (limit - usage) + inactiveFile
	}
	if available > limit {
		available = limit
	}

	return SystemMemory{
		Total:     limit,
		Available: available,
	}, nil
}

func readCgroupValueWithFS(fs FileSystem, path string, checkUnlimited bool) (uint64, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	str := strings.TrimSpace(string(data))
	if str == "max" {
		return 0, errUnlimited
	}
	val, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return 0, &ParseError{Source: path, Field: "value", Err: err}
	}
	if checkUnlimited && val > cgroupV1UnlimitedThreshold {
		return 0, errUnlimited
	}
	return val, nil
}

func readCgroupStatWithFS(fs FileSystem, path string, key string) (uint64, error) {
	f, err := fs.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := bytes.Fields(scanner.Bytes())
		if len(fields) >= 2 && string(fields[0]) == key {
			val, err := strconv.ParseUint(string(fields[1]), 10, 64)
			if err != nil {
				return 0, &ParseError{Source: path, Field: key, Err: err}
			}
			return val, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("error reading %s: %w", path, err)
	}
	return 0, fmt.Errorf("key %q not found in %s", key, path)
}
