package photos

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/familyaccount/internal/filex"
)

// PathPrefix is where the backend serves locally stored photos.
const PathPrefix = "/photos/"

// LocalStore writes photos into a directory served by the backend itself.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates dir if needed. baseURL is the externally visible
// address of the backend, e.g. "http://localhost:5000".
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &LocalStore{dir: abs, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStore) Put(ctx context.Context, userID string, contentType string, data []byte) (string, error) {
	name, err := objectName(contentType)
	if err != nil {
		return "", err
	}

	userDir := filepath.Join(s.dir, userID)
	if _, err := filex.EnsureDir(userDir); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(userDir, name), data, 0o640); err != nil {
		return "", fmt.Errorf("write photo: %w", err)
	}

	return s.baseURL + PathPrefix + userID + "/" + name, nil
}

// Handler serves the stored files under PathPrefix. Directory listings are
// refused.
func (s *LocalStore) Handler() http.Handler {
	fs := http.FileServer(http.Dir(s.dir))
	return http.StripPrefix(PathPrefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		fs.ServeHTTP(w, r)
	}))
}
