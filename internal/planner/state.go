// Package planner implements the relocation search: the state model,
// successor generation, heuristic, goal test, A* driver, and move
// extraction described by the relocation specification.
package planner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/relocator/relocator/internal/fsmodel"
	"github.com/relocator/relocator/internal/inventory"
)

// UsageKey identifies a (subdir, root) usage cell.
type UsageKey = [2]int

// State is the mutable value carrying the current placement overlay over a
// shared inventory, the current per-root free-block counts, and the current
// per-(subdir,root) usage counts.
//
// Inv is shared by reference across every state reached in a single search;
// Descriptors, Overlay, and Usage are independent per-state values.
type State struct {
	Inv         *inventory.Inventory
	Descriptors []fsmodel.Descriptor
	Overlay     map[int]int
	Usage       map[UsageKey]uint64

	// subdirTotals is T(s) from the heuristic definition — invariant across
	// every state in a run, so it is computed once and shared.
	subdirTotals map[int]uint64
}

// NewInitial builds the initial (no moves yet) state for a scan.
func NewInitial(inv *inventory.Inventory, descriptors []fsmodel.Descriptor) *State {
	return &State{
		Inv:          inv,
		Descriptors:  append([]fsmodel.Descriptor(nil), descriptors...),
		Overlay:      make(map[int]int),
		Usage:        inv.CountBySubdirRoot(),
		subdirTotals: inv.TotalsBySubdir(),
	}
}

// CurrentRoot returns the root a record currently resides at: the overlay
// destination if present, else the record's origin.
func (s *State) CurrentRoot(recordIndex int) int {
	if r, ok := s.Overlay[recordIndex]; ok {
		return r
	}
	return s.Inv.Records[recordIndex].OriginRoot
}

// clone copies the per-state mutable fields, sharing Inv and subdirTotals.
func (s *State) clone() *State {
	descriptors := append([]fsmodel.Descriptor(nil), s.Descriptors...)
	overlay := make(map[int]int, len(s.Overlay))
	for k, v := range s.Overlay {
		overlay[k] = v
	}
	usage := make(map[UsageKey]uint64, len(s.Usage))
	for k, v := range s.Usage {
		usage[k] = v
	}
	return &State{
		Inv:          s.Inv,
		Descriptors:  descriptors,
		Overlay:      overlay,
		Usage:        usage,
		subdirTotals: s.subdirTotals,
	}
}

// ApplyMove yields a new state with record recordIndex relocated to
// destination. Both preconditions below are programming errors, not user
// errors: a caller (the successor generator) must never invoke ApplyMove
// with a destination that lacks space or that equals the record's current
// root.
func (s *State) ApplyMove(recordIndex, destination int) *State {
	rec := s.Inv.Records[recordIndex]
	current := s.CurrentRoot(recordIndex)
	if current == destination {
		panic(fmt.Sprintf("planner: record %d is already at root %d", recordIndex, destination))
	}
	if !s.Descriptors[destination].CanFit(rec.Size) {
		panic(fmt.Sprintf("planner: root %d cannot fit %d bytes for record %d", destination, rec.Size, recordIndex))
	}

	ns := s.clone()
	if destination == rec.OriginRoot {
		delete(ns.Overlay, recordIndex)
	} else {
		ns.Overlay[recordIndex] = destination
	}

	ns.Descriptors[current] = ns.Descriptors[current].Release(rec.Size)
	ns.Descriptors[destination] = ns.Descriptors[destination].Consume(rec.Size)

	fromKey := UsageKey{rec.SubdirID, current}
	toKey := UsageKey{rec.SubdirID, destination}
	ns.Usage[fromKey]--
	ns.Usage[toKey]++

	return ns
}

// Key returns a canonical string uniquely identifying this state's
// placement and block accounting, so that two states reached by different
// move orders but identical overlays collapse to the same search node.
func (s *State) Key() string {
	type entry struct {
		record, root int
	}
	entries := make([]entry, 0, len(s.Overlay))
	for record, root := range s.Overlay {
		entries = append(entries, entry{record, root})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].record < entries[j].record })

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%d:%d;", e.record, e.root)
	}
	b.WriteByte('|')
	for _, d := range s.Descriptors {
		fmt.Fprintf(&b, "%d,", d.BlocksAvailable)
	}
	return b.String()
}
