package planner

import "github.com/relocator/relocator/internal/intern"

// Move is a single fully-materialized relocation: a source path and a
// target path differing only in their root prefix.
type Move struct {
	RecordIndex int
	SourceRoot  int
	TargetRoot  int
	Source      string
	Target      string
}

// ExtractMoves diffs each adjacent pair of states in chain and emits one
// Move per transition, in chain order. chain must have length >= 2; a
// length-1 chain (already at goal) has no moves and callers should not
// call ExtractMoves for it.
func ExtractMoves(chain []*State, names *intern.Names) []Move {
	moves := make([]Move, 0, len(chain)-1)
	for k := 1; k < len(chain); k++ {
		moves = append(moves, diffStates(chain[k-1], chain[k], names))
	}
	return moves
}

// diffStates finds the single record whose current root differs between
// prev and cur and builds the Move describing that relocation.
func diffStates(prev, cur *State, names *intern.Names) Move {
	for i, rec := range prev.Inv.Records {
		from := prev.CurrentRoot(i)
		to := cur.CurrentRoot(i)
		if from == to {
			continue
		}
		return Move{
			RecordIndex: i,
			SourceRoot:  from,
			TargetRoot:  to,
			Source:      joinPath(names, from, rec.SubdirID, rec.SubpathID),
			Target:      joinPath(names, to, rec.SubdirID, rec.SubpathID),
		}
	}
	panic("planner: adjacent states in chain have no differing record")
}

func joinPath(names *intern.Names, root, subdir, subpath int) string {
	r := names.Roots.Resolve(root)
	s := names.Subdirs.Resolve(subdir)
	p := names.Subpaths.Resolve(subpath)
	if s == "" {
		return r + "/" + p
	}
	return r + "/" + s + "/" + p
}
