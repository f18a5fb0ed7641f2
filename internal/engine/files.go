package engine

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tartampluch/go-phonebook/internal/book"
	"github.com/tartampluch/go-phonebook/internal/config"
)

// writeFileAtomic replaces path with data. Readers see either the old content or
// the new one, never a partial write.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	tmp, err := os.CreateTemp(dir, config.SnapshotTempPattern)
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	// Best effort cleanup; after a successful rename the file is gone.
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, config.FilePermUserRW); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// ExportVCardFile writes dir as a plain vCard file.
func ExportVCardFile(path string, dir *book.Directory) (int, error) {
	var buf bytes.Buffer
	count, err := WriteVCards(&buf, dir)
	if err != nil {
		return 0, err
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return 0, err
	}
	return count, nil
}
