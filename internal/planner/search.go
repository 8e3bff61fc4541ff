package planner

import (
	"container/heap"
	"context"

	"github.com/relocator/relocator/internal/intern"
	"github.com/relocator/relocator/pkg/collections"
	"github.com/relocator/relocator/pkg/parallel"
)

// Outcome classifies how a search terminated.
type Outcome int

const (
	// OutcomePlanned means a non-empty move list was found.
	OutcomePlanned Outcome = iota
	// OutcomeAlreadyRelocated means the initial state was already a goal.
	OutcomeAlreadyRelocated
	// OutcomeNoSolution means no goal was found: either the search
	// exhausted every reachable state, or its context was done first.
	OutcomeNoSolution
)

// Result is the outcome of a single search run.
type Result struct {
	Outcome   Outcome
	Moves     []Move
	TotalCost uint64
}

// Config bounds the optional concurrent successor expansion. A MaxWorkers
// of 0 or 1 runs the search single-threaded; the algorithm's result is
// identical either way.
type Config struct {
	MaxWorkers int
}

// node is one entry in the A* open set.
type node struct {
	state *State
	key   string
	g     uint64
	f     uint64
	index int
}

type openSet []*node

func (o openSet) Len() int            { return len(o) }
func (o openSet) Less(i, j int) bool  { return o[i].f < o[j].f }
func (o openSet) Swap(i, j int)       { o[i], o[j] = o[j], o[i]; o[i].index = i; o[j].index = j }
func (o *openSet) Push(x interface{}) {
	n := x.(*node)
	n.index = len(*o)
	*o = append(*o, n)
}
func (o *openSet) Pop() interface{} {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*o = old[:n-1]
	return item
}

// cameFrom links a state key to the predecessor state that reached it, so
// the winning chain can be reconstructed.
type cameFrom struct {
	prev *State
}

// Search runs A* from initial to the first state satisfying IsGoal, using
// Successors for expansion and Heuristic for the priority function. names
// is required only to materialize the final move list's paths.
func Search(ctx context.Context, initial *State, names *intern.Names, cfg Config) Result {
	if IsGoal(initial) {
		return Result{Outcome: OutcomeAlreadyRelocated}
	}

	startKey := initial.Key()
	best := map[string]uint64{startKey: 0}
	predecessors := map[string]cameFrom{}
	statesByKey := map[string]*State{startKey: initial}

	open := &openSet{}
	heap.Init(open)
	heap.Push(open, &node{state: initial, key: startKey, g: 0, f: Heuristic(initial)})

	// closed tracks visited state keys as bit positions in a VersionedBitset
	// rather than a map[string]bool: membership is checked once per pop and
	// once per successor, and the closed set only ever grows within a
	// single Search call. Each Search call allocates its own bitset; it is
	// not shared or reused across calls.
	closed := collections.NewVersionedBitset(64)
	closed.Reset()
	closedIDs := map[string]int{}
	closedID := func(key string) int {
		if id, ok := closedIDs[key]; ok {
			return id
		}
		id := len(closedIDs)
		closedIDs[key] = id
		return id
	}

	expand := successorFunc(cfg)

	for open.Len() > 0 {
		select {
		case <-ctx.Done():
			return Result{Outcome: OutcomeNoSolution}
		default:
		}

		current := heap.Pop(open).(*node)
		currentID := closedID(current.key)
		if closed.Test(currentID) {
			continue
		}
		closed.Set(currentID)

		if IsGoal(current.state) {
			chain := reconstructChain(current.state, current.key, predecessors, statesByKey)
			moves := ExtractMoves(chain, names)
			return Result{Outcome: OutcomePlanned, Moves: moves, TotalCost: current.g}
		}

		for _, succ := range expand(current.state) {
			key := succ.State.Key()
			if closed.Test(closedID(key)) {
				continue
			}
			g := current.g + succ.Cost
			if existing, ok := best[key]; ok && g >= existing {
				continue
			}
			best[key] = g
			predecessors[key] = cameFrom{prev: current.state}
			statesByKey[key] = succ.State
			heap.Push(open, &node{state: succ.State, key: key, g: g, f: g + Heuristic(succ.State)})
		}
	}

	return Result{Outcome: OutcomeNoSolution}
}

// successorFunc returns the expansion function to use: the plain
// single-threaded Successors, or a parallel variant bounded by
// cfg.MaxWorkers. Either must return the same set of successors; only the
// order and wall-clock cost may differ.
func successorFunc(cfg Config) func(*State) []Successor {
	if cfg.MaxWorkers <= 1 {
		return Successors
	}
	return func(s *State) []Successor {
		return parallelSuccessors(s, cfg.MaxWorkers)
	}
}

// parallelSuccessors expands a state's candidate moves concurrently, one
// task per record, using a bounded worker pool. The pool's Execute call is
// a synchronization barrier and returns results in input order, so the
// combined slice is deterministic regardless of scheduling.
func parallelSuccessors(s *State, maxWorkers int) []Successor {
	n := len(s.Inv.Records)
	if n == 0 {
		return nil
	}

	pool := parallel.NewWorkerPool[int, []Successor](parallel.PoolConfig{}.WithWorkers(maxWorkers))
	inputs := make([]int, n)
	for i := range inputs {
		inputs[i] = i
	}

	results := pool.ExecuteFunc(context.Background(), inputs, func(_ context.Context, recordIndex int) ([]Successor, error) {
		rec := s.Inv.Records[recordIndex]
		current := s.CurrentRoot(recordIndex)
		local := make([]Successor, 0)
		for destination := range s.Descriptors {
			if destination == current {
				continue
			}
			if !s.Descriptors[destination].CanFit(rec.Size) {
				continue
			}
			local = append(local, Successor{
				State:       s.ApplyMove(recordIndex, destination),
				RecordIndex: recordIndex,
				Destination: destination,
				Cost:        rec.Size,
			})
		}
		return local, nil
	})

	out := make([]Successor, 0, n)
	for _, r := range results {
		out = append(out, r.Result...)
	}
	return out
}

// reconstructChain walks predecessors backward from goal to the initial
// state and reverses the result.
func reconstructChain(goal *State, goalKey string, predecessors map[string]cameFrom, statesByKey map[string]*State) []*State {
	chain := []*State{goal}
	key := goalKey
	for {
		from, ok := predecessors[key]
		if !ok {
			break
		}
		chain = append(chain, from.prev)
		key = from.prev.Key()
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
