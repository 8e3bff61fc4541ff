// Package scanner enumerates files under a set of roots and builds the
// inventory and per-root filesystem descriptors the planner consumes. It is
// a collaborator of the core planner, not part of it: the planner never
// sees a path string, only interned ids.
package scanner

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/relocator/relocator/internal/fsmodel"
	"github.com/relocator/relocator/internal/intern"
	"github.com/relocator/relocator/internal/inventory"
	apperrors "github.com/relocator/relocator/pkg/errors"
	"github.com/relocator/relocator/pkg/parallel"
)

// RawFile is one file discovered under a root, before interning.
type RawFile struct {
	Subdir  string // first path component under root, "" for files at the root
	Subpath string // remaining tail under root/subdir
	Size    uint64
}

// RootScan is the result of walking one root.
type RootScan struct {
	Path       string
	Descriptor fsmodel.Descriptor
	DeviceID   uint64
	Files      []RawFile
}

// Root describes one input root to scan.
type Root struct {
	Path       string
	Scratchpad bool
}

// Scan walks every root concurrently (bounded by maxWorkers) and returns one
// RootScan per root, in the same order as roots. Duplicate root paths
// (after canonicalization) are rejected.
func Scan(ctx context.Context, roots []Root, maxWorkers int) ([]RootScan, error) {
	canonical := make([]string, len(roots))
	seen := make(map[string]bool, len(roots))
	for i, r := range roots {
		abs, err := filepath.Abs(r.Path)
		if err != nil {
			return nil, fmt.Errorf("scanner: resolve %q: %w", r.Path, err)
		}
		abs = filepath.Clean(abs)
		if seen[abs] {
			return nil, apperrors.New(apperrors.CodeDuplicateRoot, fmt.Sprintf("duplicate root %q", abs))
		}
		seen[abs] = true
		canonical[i] = abs
	}

	if maxWorkers < 1 {
		maxWorkers = 1
	}
	pool := parallel.NewWorkerPool[int, RootScan](parallel.PoolConfig{}.WithWorkers(maxWorkers))

	indices := make([]int, len(roots))
	for i := range indices {
		indices[i] = i
	}

	results := pool.ExecuteFunc(ctx, indices, func(ctx context.Context, i int) (RootScan, error) {
		return scanOneRoot(ctx, canonical[i], roots[i].Scratchpad)
	})

	out := make([]RootScan, len(results))
	for i, r := range results {
		if r.Error != nil {
			return nil, apperrors.Wrap(apperrors.CodeScanError, fmt.Sprintf("scan %q", canonical[i]), r.Error)
		}
		out[i] = r.Result
	}
	return out, nil
}

// Build interns the roots/subdirs/subpaths discovered across scans and
// assembles the immutable inventory plus one descriptor per root, in the
// same order the scans were supplied.
func Build(scans []RootScan, names *intern.Names) (*inventory.Inventory, []fsmodel.Descriptor) {
	descriptors := make([]fsmodel.Descriptor, len(scans))
	var records []inventory.Record

	for _, s := range scans {
		rootID := names.Roots.Intern(s.Path)
		descriptors[rootID] = s.Descriptor

		for _, f := range s.Files {
			records = append(records, inventory.Record{
				Size:       f.Size,
				OriginRoot: rootID,
				SubdirID:   names.Subdirs.Intern(f.Subdir),
				SubpathID:  names.Subpaths.Intern(f.Subpath),
			})
		}
	}

	return inventory.New(records), descriptors
}
