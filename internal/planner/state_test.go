package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relocator/relocator/internal/fsmodel"
	"github.com/relocator/relocator/internal/inventory"
)

func twoRootInventory() (*inventory.Inventory, []fsmodel.Descriptor) {
	inv := inventory.New([]inventory.Record{
		{Size: 100, OriginRoot: 0, SubdirID: 0, SubpathID: 0},
		{Size: 200, OriginRoot: 1, SubdirID: 0, SubpathID: 1},
	})
	descriptors := []fsmodel.Descriptor{
		fsmodel.New(0, 10, 1000, false),
		fsmodel.New(1, 10, 1000, false),
	}
	return inv, descriptors
}

func TestState_CurrentRootDefaultsToOrigin(t *testing.T) {
	inv, descriptors := twoRootInventory()
	s := NewInitial(inv, descriptors)
	assert.Equal(t, 0, s.CurrentRoot(0))
	assert.Equal(t, 1, s.CurrentRoot(1))
}

func TestState_ApplyMoveUpdatesOverlayUsageAndDescriptors(t *testing.T) {
	inv, descriptors := twoRootInventory()
	s := NewInitial(inv, descriptors)

	ns := s.ApplyMove(0, 1)

	assert.Equal(t, 1, ns.CurrentRoot(0))
	assert.Equal(t, uint64(0), ns.Usage[UsageKey{0, 0}])
	assert.Equal(t, uint64(2), ns.Usage[UsageKey{0, 1}])

	// original state is untouched
	assert.Equal(t, 0, s.CurrentRoot(0))
	assert.Equal(t, uint64(1), s.Usage[UsageKey{0, 0}])
}

func TestState_ApplyMoveBackToOriginDeletesOverlayEntry(t *testing.T) {
	inv, descriptors := twoRootInventory()
	s := NewInitial(inv, descriptors)

	moved := s.ApplyMove(0, 1)
	back := moved.ApplyMove(0, 0)

	_, present := back.Overlay[0]
	assert.False(t, present)
	assert.Equal(t, 0, back.CurrentRoot(0))
}

func TestState_ApplyMovePanicsOnSameRoot(t *testing.T) {
	inv, descriptors := twoRootInventory()
	s := NewInitial(inv, descriptors)
	assert.Panics(t, func() { s.ApplyMove(0, 0) })
}

func TestState_ApplyMovePanicsWhenDestinationCannotFit(t *testing.T) {
	inv := inventory.New([]inventory.Record{
		{Size: 1000, OriginRoot: 0, SubdirID: 0, SubpathID: 0},
	})
	descriptors := []fsmodel.Descriptor{
		fsmodel.New(0, 10, 1000, false),
		fsmodel.New(1, 10, 1, false),
	}
	s := NewInitial(inv, descriptors)
	assert.Panics(t, func() { s.ApplyMove(0, 1) })
}

func TestState_KeyIsStableAndDistinguishesOverlays(t *testing.T) {
	inv, descriptors := twoRootInventory()
	s := NewInitial(inv, descriptors)
	moved := s.ApplyMove(0, 1)

	require.NotEqual(t, s.Key(), moved.Key())
	assert.Equal(t, moved.Key(), moved.clone().Key())
}
