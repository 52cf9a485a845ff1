//go:build linux

package fd

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExcludeListingFD(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		sized bool
		want  int
	}{
		{"directory size", 5, true, 5},
		{"listed", 6, false, 5},
		{"listed only itself", 1, false, 0},
		{"empty listing", 0, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, excludeListingFD(tt.n, tt.sized))
		})
	}
}

func TestCount_MatchesDirectoryListing(t *testing.T) {
	// ReadDir holds one descriptor open while listing
	entries, err := os.ReadDir(selfFDDir)
	require.NoError(t, err)

	n, err := Count()
	require.NoError(t, err)
	assert.Equal(t, len(entries)-1, n)
}
