package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relocator/relocator/internal/fsmodel"
	"github.com/relocator/relocator/internal/intern"
	"github.com/relocator/relocator/internal/inventory"
)

func buildNamedInventory(t *testing.T, rootPaths []string, files []struct {
	root, subdir, subpath string
	size                  uint64
}) (*inventory.Inventory, *intern.Names, []int) {
	t.Helper()
	names := intern.NewNames()
	rootIDs := make([]int, len(rootPaths))
	for i, p := range rootPaths {
		rootIDs[i] = names.Roots.Intern(p)
	}

	records := make([]inventory.Record, 0, len(files))
	for _, f := range files {
		var rootID int
		for i, p := range rootPaths {
			if p == f.root {
				rootID = rootIDs[i]
			}
		}
		records = append(records, inventory.Record{
			Size:       f.size,
			OriginRoot: rootID,
			SubdirID:   names.Subdirs.Intern(f.subdir),
			SubpathID:  names.Subpaths.Intern(f.subpath),
		})
	}
	return inventory.New(records), names, rootIDs
}

func TestSearch_S1_OneDirAlreadyRelocated(t *testing.T) {
	inv, names, rootIDs := buildNamedInventory(t, []string{"/b"}, []struct {
		root, subdir, subpath string
		size                  uint64
	}{
		{"/b", "c", "3.txt", 1},
		{"/b", "c", "2.txt", 5},
		{"/b", "c", "4.txt", 10},
	})
	descriptors := []fsmodel.Descriptor{fsmodel.New(uint64(rootIDs[0]), 1, 1000, false)}

	result := Search(context.Background(), NewInitial(inv, descriptors), names, Config{})

	assert.Equal(t, OutcomeAlreadyRelocated, result.Outcome)
	assert.Empty(t, result.Moves)
}

func TestSearch_S2_TwoDirsExactlyTwoMoves(t *testing.T) {
	inv, names, rootIDs := buildNamedInventory(t, []string{"/a", "/b"}, []struct {
		root, subdir, subpath string
		size                  uint64
	}{
		{"/a", "c", "1.txt", 11},
		{"/a", "c", "5.txt", 3},
		{"/b", "c", "3.txt", 1},
		{"/b", "c", "2.txt", 5},
		{"/b", "c", "4.txt", 10},
	})
	descriptors := []fsmodel.Descriptor{
		fsmodel.New(uint64(rootIDs[0]), 1, 1000, false),
		fsmodel.New(uint64(rootIDs[1]), 1, 1000, false),
	}

	result := Search(context.Background(), NewInitial(inv, descriptors), names, Config{})

	require.Equal(t, OutcomePlanned, result.Outcome)
	require.Len(t, result.Moves, 2)
	assert.Equal(t, uint64(14), result.TotalCost)

	sources := map[string]string{}
	for _, m := range result.Moves {
		sources[m.Source] = m.Target
	}
	assert.Equal(t, "/b/c/1.txt", sources["/a/c/1.txt"])
	assert.Equal(t, "/b/c/5.txt", sources["/a/c/5.txt"])
}

func TestSearch_S7_SpaceBoundBlocksExpansion(t *testing.T) {
	// subdir "c" is split across both roots, so the initial state is not a
	// goal, but with zero free blocks at every root no move is ever
	// admissible: the search must report NoSolution rather than stalling.
	inv, names, rootIDs := buildNamedInventory(t, []string{"/a", "/b"}, []struct {
		root, subdir, subpath string
		size                  uint64
	}{
		{"/a", "c", "1.txt", 5},
		{"/b", "c", "2.txt", 5},
	})
	descriptors := []fsmodel.Descriptor{
		fsmodel.New(uint64(rootIDs[0]), 1, 0, false),
		fsmodel.New(uint64(rootIDs[1]), 1, 0, false),
	}

	result := Search(context.Background(), NewInitial(inv, descriptors), names, Config{})
	assert.Equal(t, OutcomeNoSolution, result.Outcome)
}

func TestSearch_ParallelModeAgreesWithSingleThreaded(t *testing.T) {
	inv, names, rootIDs := buildNamedInventory(t, []string{"/a", "/b"}, []struct {
		root, subdir, subpath string
		size                  uint64
	}{
		{"/a", "c", "1.txt", 11},
		{"/a", "c", "5.txt", 3},
		{"/b", "c", "3.txt", 1},
		{"/b", "c", "2.txt", 5},
		{"/b", "c", "4.txt", 10},
	})
	descriptors := []fsmodel.Descriptor{
		fsmodel.New(uint64(rootIDs[0]), 1, 1000, false),
		fsmodel.New(uint64(rootIDs[1]), 1, 1000, false),
	}

	serial := Search(context.Background(), NewInitial(inv, descriptors), names, Config{})
	parallelResult := Search(context.Background(), NewInitial(inv, descriptors), names, Config{MaxWorkers: 4})

	assert.Equal(t, serial.Outcome, parallelResult.Outcome)
	assert.Equal(t, serial.TotalCost, parallelResult.TotalCost)
	assert.Len(t, parallelResult.Moves, len(serial.Moves))
}
