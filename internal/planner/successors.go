package planner

// Successor is one neighbouring state reachable from a given state by
// relocating exactly one record to one other root.
type Successor struct {
	State       *State
	RecordIndex int
	Destination int
	Cost        uint64
}

// Successors enumerates every (record, destination) pair whose destination
// differs from the record's current root and that has sufficient free
// space, and returns the resulting state for each. Emission order is
// deterministic (ascending record index, then ascending root index) but
// callers must not depend on any particular order surviving the search.
func Successors(s *State) []Successor {
	out := make([]Successor, 0)
	for recordIndex, rec := range s.Inv.Records {
		current := s.CurrentRoot(recordIndex)
		for destination := range s.Descriptors {
			if destination == current {
				continue
			}
			if !s.Descriptors[destination].CanFit(rec.Size) {
				continue
			}
			out = append(out, Successor{
				State:       s.ApplyMove(recordIndex, destination),
				RecordIndex: recordIndex,
				Destination: destination,
				Cost:        rec.Size,
			})
		}
	}
	return out
}
