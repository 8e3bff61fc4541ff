// Package inventory holds the immutable-after-scan list of file records the
// planner reasons about, plus the per-(subdir, root) counts derived from it.
package inventory

// Record is a single scanned file. It is immutable after the scan completes.
// (root-id, subdir-id, subpath-id) need not be unique across records — two
// distinct files on different roots may share a relative path, and the
// planner treats each record independently.
type Record struct {
	Size       uint64
	OriginRoot int
	SubdirID   int
	SubpathID  int
}

// Inventory is the read-only, shared-by-reference set of file records
// discovered by the scanner. It never changes during search.
type Inventory struct {
	Records []Record
}

// New builds an Inventory from the given records.
func New(records []Record) *Inventory {
	return &Inventory{Records: records}
}

// Len returns the number of records in the inventory.
func (inv *Inventory) Len() int {
	return len(inv.Records)
}

// CountBySubdirRoot returns the initial usage table: for every (subdir,
// root) pair, the number of records whose origin lies there. This seeds
// State.Usage before any moves are planned.
func (inv *Inventory) CountBySubdirRoot() map[[2]int]uint64 {
	counts := make(map[[2]int]uint64)
	for _, r := range inv.Records {
		key := [2]int{r.SubdirID, r.OriginRoot}
		counts[key]++
	}
	return counts
}

// TotalsBySubdir returns, for every subdir-id that appears in the
// inventory, the total size of all records bearing that id — T(s) in the
// heuristic's per-subdir gap computation. It is invariant across the whole
// search, so callers should compute it once per run and reuse the result.
func (inv *Inventory) TotalsBySubdir() map[int]uint64 {
	totals := make(map[int]uint64)
	for _, r := range inv.Records {
		totals[r.SubdirID] += r.Size
	}
	return totals
}
