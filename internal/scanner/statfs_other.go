//go:build !linux

package scanner

import (
	"io/fs"

	"github.com/relocator/relocator/internal/fsmodel"
)

// queryFilesystem is the portable fallback for platforms without
// syscall.Statfs: it reports a descriptor with an effectively unbounded
// free-block count and a single shared device id per root, so moves are
// never rejected on space grounds and cross-device detection degrades to
// "never crosses" (acceptable for tests and non-Linux development use; the
// authoritative path is the Linux implementation).
func queryFilesystem(root string, scratchpad bool) (fsmodel.Descriptor, uint64, error) {
	const blockSize = 4096
	descriptor := fsmodel.New(0, blockSize, ^uint64(0)/blockSize, scratchpad)
	return descriptor, 0, nil
}

func deviceIDOf(info fs.FileInfo) (uint64, error) {
	return 0, nil
}
