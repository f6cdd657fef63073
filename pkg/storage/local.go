package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// localDisk stores files under a root directory on the local filesystem.
type localDisk struct {
	root    string
	baseURL string
}

func newLocalDisk(root, baseURL string) *localDisk {
	return &localDisk{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

// fullPath resolves a relative path under the disk root and rejects
// traversal outside of it.
func (d *localDisk) fullPath(path string) (string, error) {
	clean := filepath.Clean("/" + path)
	full := filepath.Join(d.root, clean)
	if !strings.HasPrefix(full, filepath.Clean(d.root)) {
		return "", fmt.Errorf("storage: path %q escapes disk root", path)
	}
	return full, nil
}

func (d *localDisk) Put(path string, content []byte) error {
	full, err := d.fullPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, content, 0o644)
}

func (d *localDisk) PutStream(path string, r io.Reader) error {
	full, err := d.fullPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	f, err := os.Create(full)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, r)
	return err
}

func (d *localDisk) Get(path string) ([]byte, error) {
	full, err := d.fullPath(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(full)
}

func (d *localDisk) GetStream(path string) (io.ReadCloser, error) {
	full, err := d.fullPath(path)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

func (d *localDisk) Exists(path string) bool {
	full, err := d.fullPath(path)
	if err != nil {
		return false
	}
	_, err = os.Stat(full)
	return err == nil
}

func (d *localDisk) Delete(path string) error {
	full, err := d.fullPath(path)
	if err != nil {
		return err
	}
	return os.Remove(full)
}

func (d *localDisk) URL(path string) string {
	return d.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (d *localDisk) LastModified(path string) (time.Time, error) {
	full, err := d.fullPath(path)
	if err != nil {
		return time.Time{}, err
	}
	info, err := os.Stat(full)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
