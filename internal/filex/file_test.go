package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPhoto(t *testing.T) {
	dir := t.TempDir()

	photo := filepath.Join(dir, "photo.jpg")
	require.NoError(t, os.WriteFile(photo, []byte("jpegdata"), 0o600))

	t.Run("reads supported file", func(t *testing.T) {
		data, err := ReadPhoto(photo)
		require.NoError(t, err)
		assert.Equal(t, []byte("jpegdata"), data)
	})

	t.Run("rejects unsupported extension", func(t *testing.T) {
		doc := filepath.Join(dir, "notes.txt")
		require.NoError(t, os.WriteFile(doc, []byte("text"), 0o600))
		_, err := ReadPhoto(doc)
		assert.ErrorContains(t, err, "unsupported photo type")
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		big := filepath.Join(dir, "big.png")
		require.NoError(t, os.WriteFile(big, make([]byte, MaxPhotoSize+1), 0o600))
		_, err := ReadPhoto(big)
		assert.ErrorContains(t, err, "photo too large")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadPhoto(filepath.Join(dir, "absent.jpg"))
		assert.Error(t, err)
	})
}
