package grid

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
)

// CageSpec describes one cage of the puzzle as parsed from input, before it
// has been wired into a Grid's constraint list.
type CageSpec struct {
	Kind   Kind
	Target int64
	Cells  []int // flat N*row+col indices, in any order.
}

// Grid is the full mutable constraint-propagation state for one puzzle: the
// cell array, the row/column/cage constraints, and the possibility ledger
// tying them together.
type Grid struct {
	N int

	Cells       []Cell
	Constraints []Constraint

	numAssigned int
	assigned    *bitset.BitSet
}

// NewGrid builds a Grid for an N x N puzzle from its cages. Every cell must
// appear in at most one cage; cells covered by none are given a synthetic
// single-cell Line constraint so the "exactly three constraints per cell"
// invariant holds uniformly even for puzzles specifying zero cages (a bare
// Latin square).
func NewGrid(n int, cages []CageSpec) (*Grid, error) {
	if n < 1 || n > MaxProblemSize {
		return nil, errors.Errorf("grid size %d out of range [1,%d]", n, MaxProblemSize)
	}
	total := n * n
	g := &Grid{
		N:        n,
		Cells:    make([]Cell, total),
		assigned: bitset.New(uint(total)),
	}
	for i := range g.Cells {
		g.Cells[i] = newCell(n)
	}

	for r := 0; r < n; r++ {
		members := make([]int, n)
		for c := 0; c < n; c++ {
			members[c] = r*n + c
		}
		g.addConstraint(Line, 0, members, RowSlot)
	}
	for c := 0; c < n; c++ {
		members := make([]int, n)
		for r := 0; r < n; r++ {
			members[r] = r*n + c
		}
		g.addConstraint(Line, 0, members, ColSlot)
	}

	covered := make([]bool, total)
	for _, cage := range cages {
		if err := validateCage(cage, n); err != nil {
			return nil, err
		}
		for _, i := range cage.Cells {
			if covered[i] {
				return nil, errors.Errorf("cell %d belongs to more than one cage", i)
			}
			covered[i] = true
		}
		g.addConstraint(cage.Kind, cage.Target, cage.Cells, CageSlot)
	}
	for i, ok := range covered {
		if !ok {
			g.addConstraint(Line, 0, []int{i}, CageSlot)
		}
	}

	for idx := range g.Constraints {
		g.initConstraint(idx)
	}
	return g, nil
}

func validateCage(cage CageSpec, n int) error {
	switch cage.Kind {
	case Single:
		if len(cage.Cells) < 1 {
			return errors.New("single cage must have at least one cell")
		}
		if cage.Target < 1 || cage.Target > int64(n) {
			return errors.Errorf("single cage target %d out of range [1,%d]", cage.Target, n)
		}
	case Minus, Divide:
		if len(cage.Cells) != 2 {
			return errors.Errorf("%s cage must have exactly two cells, got %d", cage.Kind, len(cage.Cells))
		}
	case Plus, Multiply:
		if len(cage.Cells) < 1 {
			return errors.Errorf("%s cage must have at least one cell", cage.Kind)
		}
	case Line:
		return errors.New("line is not a valid cage kind in input")
	default:
		return errors.Errorf("unrecognized cage kind %v", cage.Kind)
	}
	return nil
}

// addConstraint appends a new constraint and wires it into slot of every
// member cell's ConstraintIdx.
func (g *Grid) addConstraint(kind Kind, target int64, members []int, slot int) {
	idx := len(g.Constraints)
	g.Constraints = append(g.Constraints, newConstraint(kind, target, len(g.Cells), members))
	for _, i := range members {
		g.Cells[i].ConstraintIdx[slot] = idx
	}
}

// NumAssigned returns how many cells currently carry a value.
func (g *Grid) NumAssigned() int { return g.numAssigned }

// Solved reports whether every cell carries a value.
func (g *Grid) Solved() bool { return g.numAssigned == len(g.Cells) }

// SelectCell applies the MRV heuristic: the unassigned cell with the fewest
// possible values, breaking ties by the lowest flat index. Returns false if
// every cell is already assigned.
func (g *Grid) SelectCell() (int, bool) {
	best := -1
	for i := range g.Cells {
		if g.Cells[i].Value != Unassigned {
			continue
		}
		if best == -1 || g.Cells[i].NumPossibles < g.Cells[best].NumPossibles {
			best = i
		}
	}
	return best, best != -1
}

// Enter removes cell i from its row, column, and cage constraint lists. Call
// once, when a cell is selected for branching, before any TryValue calls.
func (g *Grid) Enter(i int) {
	for _, idx := range g.Cells[i].ConstraintIdx {
		g.Constraints[idx].Cells.remove(i)
	}
}

// Leave re-adds cell i to its row, column, and cage constraint lists. Call
// once, after the final TryValue(i, _, Unassigned) undoing cell i's last
// trial, to undo the Enter that started branching on it.
func (g *Grid) Leave(i int) {
	for _, idx := range g.Cells[i].ConstraintIdx {
		g.Constraints[idx].Cells.add(i)
	}
}

// TryValue moves cell i's trial value from old to new, updating every
// constraint's ledger contribution and i's own recorded Value. old must be
// the value most recently passed as new (or Unassigned, on the first call
// after Enter); new is Unassigned to undo the last trial before Leave.
func (g *Grid) TryValue(i, old, new int) {
	g.Cells[i].Value = new
	for _, idx := range g.Cells[i].ConstraintIdx {
		g.UpdateConstraint(idx, old, new)
	}
	if old == Unassigned && new != Unassigned {
		g.numAssigned++
		g.assigned.Set(uint(i))
	} else if old != Unassigned && new == Unassigned {
		g.numAssigned--
		g.assigned.Clear(uint(i))
	}
}

// CanTry reports whether v is currently permitted for cell i by all three of
// its constraints (i.e. would be a legal next TryValue target).
func (g *Grid) CanTry(i, v int) bool {
	return g.Cells[i].Possibles[v] == 3
}

// Clone returns an independent deep copy of g. Mutating the clone never
// affects g, and vice versa; used to hand each parallel worker its own
// grid to replay a stolen job's assignment sequence against.
func (g *Grid) Clone() *Grid {
	ng := &Grid{
		N:           g.N,
		numAssigned: g.numAssigned,
		assigned:    g.assigned.Clone(),
	}
	ng.Cells = make([]Cell, len(g.Cells))
	for i, c := range g.Cells {
		nc := c
		nc.Possibles = append([]int8(nil), c.Possibles...)
		ng.Cells[i] = nc
	}
	ng.Constraints = make([]Constraint, len(g.Constraints))
	for i, c := range g.Constraints {
		nc := c
		nc.Cells = c.Cells.clone()
		ng.Constraints[i] = nc
	}
	return ng
}
