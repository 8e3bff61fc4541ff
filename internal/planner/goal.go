package planner

import "github.com/relocator/relocator/pkg/collections"

// IsGoal reports whether s satisfies both goal constraints: every
// scratchpad root is empty, and no subdir's files are split across two or
// more roots with positive usage.
func IsGoal(s *State) bool {
	numRoots := len(s.Descriptors)
	// bySubdir tracks, per subdir, which roots currently hold a nonzero
	// amount of that subdir's data. A Bitset keyed by root index is a
	// direct fit: root ids are small and dense, and all this needs is
	// membership plus a cardinality check.
	bySubdir := make(map[int]*collections.Bitset)

	for key, count := range s.Usage {
		if count == 0 {
			continue
		}
		subdir, root := key[0], key[1]
		if s.Descriptors[root].Scratchpad {
			return false
		}
		roots, ok := bySubdir[subdir]
		if !ok {
			roots = collections.NewBitset(numRoots)
			bySubdir[subdir] = roots
		}
		roots.Set(root)
		if roots.Count() > 1 {
			return false
		}
	}
	return true
}
