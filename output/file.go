package output

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/csak/csak/scan"
)

// File buffers nothing while the scan runs and writes the final open ports to
// path in a single atomic replace once the scan is done.
type File struct {
	path  string
	proto scan.Protocol
}

func NewFile(path string, proto scan.Protocol) *File {
	return &File{
		path:  path,
		proto: proto,
	}
}

func (f *File) OnOpen(port int) {}

func (f *File) OnProgress(completed, total int) {}

func (f *File) OnDone(open []int) error {
	buf := &bytes.Buffer{}
	for _, port := range open {
		fmt.Fprintln(buf, scan.FormatLine(f.proto, port))
	}
	return WriteAtomic(f.path, buf.Bytes())
}

// WriteAtomic writes data to a temp file next to path and renames it over
// path, so readers never observe a partially written file. On failure the
// temp file is removed and path is left untouched.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	tmp, err := os.CreateTemp(dir, ".csak-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
