package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// TempFilePrefix marks in-flight writes. List and Watch ignore these files.
const TempFilePrefix = "edubrinca-tmp-"

// WriteFileAtomic replaces filename with data. The content goes to a sibling
// temp file which is flushed and renamed over the target, then the directory
// is synced so the rename survives a crash. Readers see the old or the new
// file, never a partial one. The store uses it for entities and the
// manifest; the backup exporter for backup files.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmp, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := flush(tmp, data, perm); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("rename into %s: %w", filename, err)
	}
	committed = true

	syncDir(dir)
	return nil
}

// flush writes, fsyncs and closes f, reporting the first failure.
func flush(f *os.File, data []byte, perm os.FileMode) error {
	_, err := f.Write(data)
	if err == nil {
		err = f.Chmod(perm)
	}
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	return nil
}

// syncDir is best effort; some platforms cannot fsync a directory.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
