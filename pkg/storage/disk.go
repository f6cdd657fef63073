// Package storage provides a filesystem abstraction with two drivers:
//
//   - "local" — local filesystem (default)
//   - "s3"    — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Boot it once at server start with storage.Connect(), then:
//
//	storage.Put("exports/inventory.csv", data)
//	data, _ := storage.Get("exports/inventory.csv")
//	url := storage.URL("exports/inventory.csv")
//	storage.Disk("s3").Put("exports/inventory.csv", data)
package storage

import (
	"io"
	"time"
)

// DiskDriver is the filesystem driver interface.
type DiskDriver interface {
	// Put writes content to path, creating parent directories as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// GetStream returns a ReadCloser for the file. Caller must close it.
	GetStream(path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Delete removes the file at path.
	Delete(path string) error

	// URL returns the public URL for path.
	URL(path string) string

	// LastModified returns the modification time of path.
	LastModified(path string) (time.Time, error)
}
