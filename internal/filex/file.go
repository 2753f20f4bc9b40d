// Package filex contains file helpers shared by the client (reading a photo
// to upload) and the development backend (the local photo directory).
package filex

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// ErrFileTooLarge is returned by ReadFileLimited when the file exceeds the limit.
var ErrFileTooLarge = errors.New("file too large")

// EnsureDir creates dir (relative paths resolve against the working
// directory) and returns its absolute path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// ReadFileLimited reads at most limit bytes of path. Larger files yield
// ErrFileTooLarge.
func ReadFileLimited(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(data)) > limit {
		return nil, ErrFileTooLarge
	}
	return data, nil
}

// DetectContentType sniffs the MIME type of data.
func DetectContentType(data []byte) string {
	return http.DetectContentType(data)
}

// IsImage reports whether contentType is one of the image types accepted
// as a profile photo.
func IsImage(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}
