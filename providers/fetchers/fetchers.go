/*
Package fetchers provides dependency manifest retrieval for local and remote
project sources.
*/
package fetchers

import (
	"context"
	"errors"
)

// ErrManifestNotFound is returned when a requested manifest file does not
// exist in the source.
var ErrManifestNotFound = errors.New("manifest file not found")

// ManifestFetcher retrieves raw dependency manifest contents by path.
type ManifestFetcher interface {
	ManifestContent(ctx context.Context, path string) ([]byte, error)
}

// MemoryFetcher serves manifest contents from an in-memory path/content map
// (useful for testing or for building custom source logic).
type MemoryFetcher struct {
	Files map[string][]byte
}

// ManifestContent retrieves contents from the map using path as the key.
func (mf MemoryFetcher) ManifestContent(ctx context.Context, path string) ([]byte, error) {
	content, ok := mf.Files[path]
	if !ok {
		return nil, ErrManifestNotFound
	}
	return content, nil
}
