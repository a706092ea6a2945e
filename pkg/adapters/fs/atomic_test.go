package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("Creates New File", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "p1.json")

		require.NoError(t, WriteFileAtomic(filename, []byte(`{"id":"p1"}`), 0644))

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, `{"id":"p1"}`, string(got))
	})

	t.Run("Overwrites Existing File", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "p1.json")
		require.NoError(t, os.WriteFile(filename, []byte("initial"), 0644))

		require.NoError(t, WriteFileAtomic(filename, []byte("overwritten"), 0644))

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, "overwritten", string(got))
	})

	t.Run("Leaves No Temp Files", func(t *testing.T) {
		dir := t.TempDir()
		for i := 0; i < 3; i++ {
			require.NoError(t, WriteFileAtomic(filepath.Join(dir, "a.json"), []byte("x"), 0644))
		}

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.HasPrefix(e.Name(), TempFilePrefix), e.Name())
		}
		assert.Len(t, entries, 1)
	})

	t.Run("Fails if Directory Missing", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "missing_folder", "p1.json")
		assert.Error(t, WriteFileAtomic(filename, []byte("fail"), 0644))
	})
}
