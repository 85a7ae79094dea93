// Package filex provides file helpers for the CLI.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxPhotoSize is the API's upload limit (1 MB).
const MaxPhotoSize = 1 << 20

var photoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ReadPhoto loads an image file for story submission, rejecting
// unsupported extensions and files over MaxPhotoSize.
func ReadPhoto(path string) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !photoExtensions[ext] {
		return nil, fmt.Errorf("unsupported photo type: %s", ext)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > MaxPhotoSize {
		return nil, fmt.Errorf("photo too large: %d bytes (max %d)", info.Size(), MaxPhotoSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
