package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relocator/relocator/internal/fsmodel"
	"github.com/relocator/relocator/internal/inventory"
)

func TestSuccessors_SkipsCurrentRootAndInsufficientSpace(t *testing.T) {
	inv := inventory.New([]inventory.Record{
		{Size: 50, OriginRoot: 0, SubdirID: 0, SubpathID: 0},
	})
	descriptors := []fsmodel.Descriptor{
		fsmodel.New(0, 10, 1000, false),
		fsmodel.New(1, 10, 1, false), // too small to hold 50 bytes
		fsmodel.New(2, 10, 1000, false),
	}
	s := NewInitial(inv, descriptors)

	succ := Successors(s)

	assert.Len(t, succ, 1)
	assert.Equal(t, 2, succ[0].Destination)
	assert.Equal(t, uint64(50), succ[0].Cost)
}

func TestSuccessors_SpaceBoundBlocksExpansion(t *testing.T) {
	// S7: the only other root has zero blocks available, so a non-empty file
	// yields no candidates until a third root with ample space exists.
	inv := inventory.New([]inventory.Record{
		{Size: 10, OriginRoot: 0, SubdirID: 0, SubpathID: 0},
	})
	descriptors := []fsmodel.Descriptor{
		fsmodel.New(0, 10, 1000, false),
		fsmodel.New(1, 10, 0, false),
	}
	s := NewInitial(inv, descriptors)
	assert.Empty(t, Successors(s))

	descriptors = append(descriptors, fsmodel.New(2, 10, 1000, false))
	s = NewInitial(inv, descriptors)
	succ := Successors(s)
	assert.Len(t, succ, 1)
}
