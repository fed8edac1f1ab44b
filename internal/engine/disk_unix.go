//go:build !windows

package engine

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// FreeDiskGiB returns the free space of the filesystem containing path,
// in GiB.
func FreeDiskGiB(path string) (float64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, fmt.Errorf("failed to stat filesystem at %s: %w", path, err)
	}

	free := uint64(stat.Bavail) * uint64(stat.Bsize)
	return float64(free) / (1 << 30), nil
}
