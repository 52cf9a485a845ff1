//go:build linux

package iostat

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrent_CountsSyscalls(t *testing.T) {
	before, err := Current()
	if errors.Is(err, fs.ErrPermission) {
		t.Skipf("I/O counters not readable: %v", err)
	}
	require.NoError(t, err)

	f, err := os.Create(filepath.Join(t.TempDir(), "writes"))
	require.NoError(t, err)
	defer f.Close()
	for i := 0; i < 8; i++ {
		_, err := f.Write([]byte("x"))
		require.NoError(t, err)
	}

	after, err := Current()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, after.WriteCount-before.WriteCount, uint64(8))
}
