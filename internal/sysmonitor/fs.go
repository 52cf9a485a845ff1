package sysmonitor

import (
	"io/fs"
	"os"
	"strings"
	"testing/fstest"
)

// FileSystem abstracts the pseudo-file reads (/proc, /sys/fs/cgroup)
// performed by the Linux accessors so they can be exercised with fixtures.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	Open(name string) (fs.File, error)
}

// OSFileSystem implements FileSystem using the os package.
type OSFileSystem struct{}

func (OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (OSFileSystem) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// MapFileSystem is an in-memory FileSystem keyed by absolute path.
type MapFileSystem map[string]string

var _ FileSystem = MapFileSystem(nil)

func (m MapFileSystem) ReadFile(name string) ([]byte, error) {
	data, ok := m[name]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
	}
	return []byte(data), nil
}

func (m MapFileSystem) Open(name string) (fs.File, error) {
	data, ok := m[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	key := strings.TrimPrefix(name, "/")
	return fstest.MapFS{key: &fstest.MapFile{Data: []byte(data)}}.Open(key)
}
