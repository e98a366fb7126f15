//go:build windows

package ops

import (
	"os"

	"jot/internal/errors"
)

// openFileNoFollow opens a file for writing. Windows has no O_NOFOLLOW;
// the path resolver already rejects a symlinked final component, and
// symlink creation there requires elevated privileges anyway.
func openFileNoFollow(path string, flag int, perm os.FileMode) (*os.File, error) {
	f, err := os.OpenFile(path, flag, perm)
	if err != nil {
		return nil, errors.NewIO(err)
	}
	return f, nil
}

// openFileNoFollowRead opens a file for reading. See openFileNoFollow.
func openFileNoFollowRead(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound()
		}
		return nil, errors.NewIO(err)
	}
	return f, nil
}
