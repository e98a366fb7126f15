//go:build !windows

package ops

import (
	stderrors "errors"
	"os"
	"syscall"

	"jot/internal/errors"
)

// openFileNoFollow opens a file for writing with O_NOFOLLOW so a symlink
// swapped into the final component after validation is refused by the
// kernel. O_CLOEXEC keeps the descriptor from leaking across exec.
//
// O_NOFOLLOW only covers the final component; directory components are
// handled by the path resolver, which resolves symlinks on the existing
// ancestors and re-checks workspace confinement on the result.
func openFileNoFollow(path string, flag int, perm os.FileMode) (*os.File, error) {
	fd, err := syscall.Open(path, flag|syscall.O_NOFOLLOW|syscall.O_CLOEXEC, uint32(perm))
	if err != nil {
		if stderrors.Is(err, syscall.ELOOP) {
			return nil, errors.NewPathViolation()
		}
		return nil, errors.NewIO(err)
	}
	return os.NewFile(uintptr(fd), path), nil
}

// openFileNoFollowRead opens a file for reading with the same symlink
// refusal as openFileNoFollow.
func openFileNoFollowRead(path string) (*os.File, error) {
	fd, err := syscall.Open(path, syscall.O_RDONLY|syscall.O_NOFOLLOW|syscall.O_CLOEXEC, 0)
	if err != nil {
		if stderrors.Is(err, syscall.ELOOP) {
			return nil, errors.NewPathViolation()
		}
		if stderrors.Is(err, syscall.ENOENT) {
			return nil, errors.NewNotFound()
		}
		return nil, errors.NewIO(err)
	}
	return os.NewFile(uintptr(fd), path), nil
}
