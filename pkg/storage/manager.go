package storage

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/stockroomhq/stockroom/config"
)

var (
	mu          sync.RWMutex
	disks       = map[string]DiskDriver{}
	defaultDisk string
)

// Connect builds the configured disks. The local disk is always
// available; the s3 disk is registered only when a bucket is configured.
func Connect() error {
	mu.Lock()
	defer mu.Unlock()

	disks["local"] = newLocalDisk(config.StorageLocalRoot(), config.StorageURL())

	if bucket := config.StorageS3Bucket(); bucket != "" {
		s3d, err := newS3Disk(s3Config{
			Bucket:    bucket,
			Region:    config.StorageS3Region(),
			Key:       config.StorageS3Key(),
			Secret:    config.StorageS3Secret(),
			Endpoint:  config.StorageS3Endpoint(),
			PublicURL: config.StorageS3URL(),
		})
		if err != nil {
			return fmt.Errorf("storage: s3 disk: %w", err)
		}
		disks["s3"] = s3d
	}

	defaultDisk = config.StorageDefault()
	if _, ok := disks[defaultDisk]; !ok {
		defaultDisk = "local"
	}
	return nil
}

// Disk returns a named disk, or the default disk when name is unknown.
func Disk(name string) DiskDriver {
	mu.RLock()
	defer mu.RUnlock()
	if d, ok := disks[name]; ok {
		return d
	}
	return disks[defaultDisk]
}

// Default returns the default disk.
func Default() DiskDriver {
	mu.RLock()
	defer mu.RUnlock()
	return disks[defaultDisk]
}

// Package-level helpers operating on the default disk.

func Put(path string, content []byte) error        { return Default().Put(path, content) }
func PutStream(path string, r io.Reader) error     { return Default().PutStream(path, r) }
func Get(path string) ([]byte, error)              { return Default().Get(path) }
func GetStream(path string) (io.ReadCloser, error) { return Default().GetStream(path) }
func Exists(path string) bool                      { return Default().Exists(path) }
func Delete(path string) error                     { return Default().Delete(path) }
func URL(path string) string                       { return Default().URL(path) }
func LastModified(path string) (time.Time, error)  { return Default().LastModified(path) }
