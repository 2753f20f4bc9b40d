// Package photos stores profile pictures and hands back the URL clients
// should load them from.
package photos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store persists one photo and returns its public URL.
type Store interface {
	Put(ctx context.Context, userID string, contentType string, data []byte) (string, error)
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Extension maps an accepted image content type to a file extension.
func Extension(contentType string) (string, bool) {
	ext, ok := extensions[contentType]
	return ext, ok
}

// objectName builds a fresh, collision-free name so a new upload never
// overwrites a URL a client may still hold.
func objectName(contentType string) (string, error) {
	ext, ok := Extension(contentType)
	if !ok {
		return "", fmt.Errorf("unsupported content type %q", contentType)
	}
	return fmt.Sprintf("%d-%s%s", time.Now().Unix(), uuid.NewString(), ext), nil
}
