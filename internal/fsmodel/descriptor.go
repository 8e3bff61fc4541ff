// Package fsmodel describes the per-root block accounting the planner uses
// to decide whether a move is admissible.
package fsmodel

import "fmt"

// Descriptor is a per-root filesystem record: block size, free blocks, and
// whether the root is a scratchpad that must end up empty.
//
// blocks_available must never underflow; callers are responsible for
// checking FreeBytes before calling Consume.
type Descriptor struct {
	FilesystemID    uint64
	BlockSize       uint64
	BlocksAvailable uint64
	Scratchpad      bool
}

// New builds a Descriptor. BlockSize must be > 0.
func New(filesystemID, blockSize, blocksAvailable uint64, scratchpad bool) Descriptor {
	if blockSize == 0 {
		panic("fsmodel: block size must be > 0")
	}
	return Descriptor{
		FilesystemID:    filesystemID,
		BlockSize:       blockSize,
		BlocksAvailable: blocksAvailable,
		Scratchpad:      scratchpad,
	}
}

// Blocks returns the ceiling block count for size, deliberately over-counting
// by one block on exact multiples of BlockSize.
func (d Descriptor) Blocks(size uint64) uint64 {
	return 1 + size/d.BlockSize
}

// EffectiveSize returns the on-disk footprint of a file of the given size.
func (d Descriptor) EffectiveSize(size uint64) uint64 {
	return d.BlockSize * d.Blocks(size)
}

// FreeBytes returns the number of free bytes currently reported by this
// descriptor.
func (d Descriptor) FreeBytes() uint64 {
	return d.BlockSize * d.BlocksAvailable
}

// CanFit reports whether FreeBytes covers size. It does not compare
// Blocks(size) with BlocksAvailable, so Consume(size) can still panic when
// size is within one block of FreeBytes.
func (d Descriptor) CanFit(size uint64) bool {
	return d.FreeBytes() >= size
}

// Consume returns a new Descriptor with size's blocks removed from
// BlocksAvailable. Panics if the removal would underflow — that is a
// programming error in the caller (the successor generator must only call
// Consume after CanFit has been checked).
func (d Descriptor) Consume(size uint64) Descriptor {
	b := d.Blocks(size)
	if b > d.BlocksAvailable {
		panic(fmt.Sprintf("fsmodel: consume would underflow blocks_available (have %d, need %d)", d.BlocksAvailable, b))
	}
	d.BlocksAvailable -= b
	return d
}

// Release returns a new Descriptor with size's blocks returned to
// BlocksAvailable.
func (d Descriptor) Release(size uint64) Descriptor {
	d.BlocksAvailable += d.Blocks(size)
	return d
}
