package ops

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"

	"jot/internal/errors"
)

// writeFileAtomic writes data to path through a randomly named temp file
// in the same directory, then renames it into place. Failure at any step
// leaves the previous file untouched and removes the temp file.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewIO(err)
	}

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return errors.NewIO(err)
	}
	tempPath := path + "." + hex.EncodeToString(randBytes) + ".tmp"

	file, err := openFileNoFollow(tempPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
	if err != nil {
		return err
	}

	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err := file.Write(data); err != nil {
		return errors.NewIO(err)
	}
	if err := file.Sync(); err != nil {
		return errors.NewIO(err)
	}
	// Close before rename; required on Windows, harmless elsewhere.
	if err := file.Close(); err != nil {
		return errors.NewIO(err)
	}
	file = nil

	// os.Rename would follow a symlinked destination.
	if info, err := os.Lstat(path); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return errors.NewPathViolation()
	}
	if err := os.Rename(tempPath, path); err != nil {
		return errors.NewIO(err)
	}
	success = true
	return nil
}
