//go:build linux

package scanner

import (
	"io/fs"
	"syscall"

	"github.com/relocator/relocator/internal/fsmodel"
)

// queryFilesystem reads block size, free blocks, and the root's device id
// via syscall.Statfs/Stat on Linux.
func queryFilesystem(root string, scratchpad bool) (fsmodel.Descriptor, uint64, error) {
	var statfs syscall.Statfs_t
	if err := syscall.Statfs(root, &statfs); err != nil {
		return fsmodel.Descriptor{}, 0, err
	}

	var stat syscall.Stat_t
	if err := syscall.Stat(root, &stat); err != nil {
		return fsmodel.Descriptor{}, 0, err
	}

	blockSize := uint64(statfs.Bsize)
	if blockSize == 0 {
		blockSize = 4096
	}

	descriptor := fsmodel.New(uint64(stat.Dev), blockSize, statfs.Bavail, scratchpad)
	return descriptor, uint64(stat.Dev), nil
}

// deviceIDOf returns the device id a file resides on, for cross-device-id
// boundary detection during the walk.
func deviceIDOf(info fs.FileInfo) (uint64, error) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, nil
	}
	return uint64(stat.Dev), nil
}
