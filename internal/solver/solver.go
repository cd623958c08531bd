// Package solver implements the serial MRV backtracking search:
// repeatedly pick the unassigned cell with the fewest remaining values and
// recurse, using the incremental assign/unassign primitives internal/grid
// already maintains.
package solver

import (
	"sync/atomic"
	"time"

	"github.com/bparr/kenken-solver/internal/grid"
)

// Stats is the optional node-count/timing line printed after a solved grid
// when the CLI's --stats flag is set.
type Stats struct {
	Nodes   int64
	Elapsed time.Duration
}

// Solve runs the serial backtracking search to completion on g, mutating it
// in place. It returns true and leaves every cell assigned on success, or
// false with g restored to its pre-call state on failure.
func Solve(g *grid.Grid) (bool, Stats) {
	return SolveWithStop(g, nil)
}

// SolveWithStop is Solve with cooperative early exit: if stop is non-nil and
// flips to true mid-search (another worker already found a solution), the
// search unwinds as if every remaining branch failed, restoring g exactly as
// a normal failed search would. Used by internal/parallel so a worker
// running the serial search locally notices a sibling's win promptly.
func SolveWithStop(g *grid.Grid, stop *atomic.Bool) (bool, Stats) {
	start := time.Now()
	var nodes int64
	ok := search(g, stop, &nodes)
	return ok, Stats{Nodes: nodes, Elapsed: time.Since(start)}
}

func search(g *grid.Grid, stop *atomic.Bool, nodes *int64) bool {
	if stop != nil && stop.Load() {
		return false
	}
	i, ok := g.SelectCell()
	if !ok {
		return true
	}
	*nodes++
	if g.Cells[i].NumPossibles == 0 {
		return false
	}

	g.Enter(i)
	old := grid.Unassigned
	for v := g.N; v >= 1; v-- {
		if !g.CanTry(i, v) {
			continue
		}
		g.TryValue(i, old, v)
		old = v
		if search(g, stop, nodes) {
			return true
		}
	}
	g.TryValue(i, old, grid.Unassigned)
	g.Leave(i)
	return false
}
