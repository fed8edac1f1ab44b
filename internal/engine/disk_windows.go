//go:build windows

package engine

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// FreeDiskGiB returns the free space of the volume containing path, in GiB.
func FreeDiskGiB(path string) (float64, error) {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, fmt.Errorf("invalid path %s: %w", path, err)
	}

	var freeBytesAvailable, totalBytes, totalFreeBytes uint64
	err = windows.GetDiskFreeSpaceEx(pathPtr, &freeBytesAvailable, &totalBytes, &totalFreeBytes)
	if err != nil {
		return 0, fmt.Errorf("failed to query free space at %s: %w", path, err)
	}

	return float64(freeBytesAvailable) / (1 << 30), nil
}
