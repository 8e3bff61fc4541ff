package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// scanOneRoot walks a single canonicalized root, skipping non-regular
// files and anything that crosses the root's device boundary.
func scanOneRoot(ctx context.Context, root string, scratchpad bool) (RootScan, error) {
	descriptor, deviceID, err := queryFilesystem(root, scratchpad)
	if err != nil {
		return RootScan{}, fmt.Errorf("query filesystem %q: %w", root, err)
	}

	scan := RootScan{Path: root, Descriptor: descriptor, DeviceID: deviceID}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 || !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		fileDevice, err := deviceIDOf(info)
		if err != nil {
			return err
		}
		if fileDevice != deviceID {
			// cross-device-id traversal: skip this file. Directories are
			// not device-checked, so WalkDir still descends into a
			// mounted directory and each file under it is skipped here.
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		subdir, subpath := splitRelative(rel)

		scan.Files = append(scan.Files, RawFile{
			Subdir:  subdir,
			Subpath: subpath,
			Size:    uint64(info.Size()),
		})
		return nil
	})
	if err != nil {
		return RootScan{}, err
	}

	return scan, nil
}

// splitRelative divides a root-relative path into its first component (the
// subdir) and the remaining tail (the subpath). A file directly under the
// root has the empty-string subdir sentinel.
func splitRelative(rel string) (subdir, subpath string) {
	rel = filepath.ToSlash(rel)
	idx := strings.IndexByte(rel, '/')
	if idx < 0 {
		return "", rel
	}
	return rel[:idx], rel[idx+1:]
}
