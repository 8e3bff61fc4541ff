package planner

// Heuristic computes a lower bound on the remaining cost to reach any goal
// state from s: for every subdir, the smallest byte gap between its total
// size and the size already concentrated at a single non-scratchpad root,
// summed across subdirs. It is admissible and consistent against a
// per-move cost of record size, which is the cost Successors assigns.
func Heuristic(s *State) uint64 {
	bySubdirRoot := make(map[UsageKey]uint64)
	for i, rec := range s.Inv.Records {
		key := UsageKey{rec.SubdirID, s.CurrentRoot(i)}
		bySubdirRoot[key] += rec.Size
	}

	nonScratch := make([]int, 0, len(s.Descriptors))
	for root, d := range s.Descriptors {
		if !d.Scratchpad {
			nonScratch = append(nonScratch, root)
		}
	}

	var total uint64
	for subdir, t := range s.subdirTotals {
		if len(nonScratch) == 0 {
			continue
		}
		var best uint64
		for i, root := range nonScratch {
			placed := bySubdirRoot[UsageKey{subdir, root}]
			gap := t - placed // placed can never exceed t
			if i == 0 || gap < best {
				best = gap
			}
		}
		total += best
	}
	return total
}
