package grid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// bruteSolve exercises the exact Enter/TryValue/Leave/CanTry protocol the
// solver package uses, so these tests double as a protocol-correctness
// check independent of any particular search strategy.
func bruteSolve(g *Grid) bool {
	i, ok := g.SelectCell()
	if !ok {
		return true
	}
	g.Enter(i)
	old := Unassigned
	for v := g.N; v >= 1; v-- {
		if !g.CanTry(i, v) {
			continue
		}
		g.TryValue(i, old, v)
		old = v
		if bruteSolve(g) {
			return true
		}
	}
	g.TryValue(i, old, Unassigned)
	g.Leave(i)
	return false
}

func TestNewGridSingleCellSingleCage(t *testing.T) {
	g, err := NewGrid(1, []CageSpec{{Kind: Single, Target: 1, Cells: []int{0}}})
	require.NoError(t, err)
	require.Equal(t, 1, g.Cells[0].NumPossibles)
	require.EqualValues(t, 3, g.Cells[0].Possibles[1])
}

func TestNewGridRejectsOverlappingCages(t *testing.T) {
	_, err := NewGrid(2, []CageSpec{
		{Kind: Plus, Target: 3, Cells: []int{0, 1}},
		{Kind: Plus, Target: 3, Cells: []int{1, 2}},
	})
	require.Error(t, err)
}

func TestNewGridRejectsBadMinusCageSize(t *testing.T) {
	_, err := NewGrid(3, []CageSpec{
		{Kind: Minus, Target: 1, Cells: []int{0, 1, 2}},
	})
	require.Error(t, err)
}

func TestUncagedCellsGetSyntheticLine(t *testing.T) {
	g, err := NewGrid(2, nil)
	require.NoError(t, err)
	for i := range g.Cells {
		// row + col + synthetic cage line, all three voting "1..N possible".
		require.Equal(t, 2, g.Cells[i].NumPossibles)
	}
}

func TestBruteSolveBareLatinSquare(t *testing.T) {
	g, err := NewGrid(2, nil)
	require.NoError(t, err)
	require.True(t, bruteSolve(g))
	require.True(t, g.Solved())

	seen := map[int]bool{}
	for c := 0; c < 2; c++ {
		seen = map[int]bool{}
		for r := 0; r < 2; r++ {
			v := g.Cells[r*2+c].Value
			require.False(t, seen[v])
			seen[v] = true
		}
	}
}

func TestEnterLeaveRoundTripRestoresPossibles(t *testing.T) {
	g, err := NewGrid(3, nil)
	require.NoError(t, err)
	before := append([]int8(nil), g.Cells[4].Possibles...)

	g.Enter(0)
	g.TryValue(0, Unassigned, 1)
	g.TryValue(0, 1, Unassigned)
	g.Leave(0)

	require.Equal(t, before, g.Cells[4].Possibles)
	require.Equal(t, 0, g.NumAssigned())
}

func TestCloneIsIndependent(t *testing.T) {
	g, err := NewGrid(2, nil)
	require.NoError(t, err)
	clone := g.Clone()

	clone.Enter(0)
	clone.TryValue(0, Unassigned, 1)

	require.Equal(t, 0, g.NumAssigned())
	require.Equal(t, 1, clone.NumAssigned())
}

func TestPlusCageSolves(t *testing.T) {
	// 2x2 grid, one Plus cage target 3 over the whole top row, forcing
	// {1,2} in some order; the rest follows from the Latin constraint.
	g, err := NewGrid(2, []CageSpec{
		{Kind: Plus, Target: 3, Cells: []int{0, 1}},
	})
	require.NoError(t, err)
	require.True(t, bruteSolve(g))

	sum := g.Cells[0].Value + g.Cells[1].Value
	require.Equal(t, 3, sum)
	require.NotEqual(t, g.Cells[0].Value, g.Cells[1].Value)
}

func TestMultiplyCageSolves(t *testing.T) {
	g, err := NewGrid(2, []CageSpec{
		{Kind: Multiply, Target: 2, Cells: []int{0, 1}},
	})
	require.NoError(t, err)
	require.True(t, bruteSolve(g))
	require.Equal(t, 2, g.Cells[0].Value*g.Cells[1].Value)
}

func TestMinusCageSolves(t *testing.T) {
	g, err := NewGrid(2, []CageSpec{
		{Kind: Minus, Target: 1, Cells: []int{0, 1}},
	})
	require.NoError(t, err)
	require.True(t, bruteSolve(g))
	diff := g.Cells[0].Value - g.Cells[1].Value
	if diff < 0 {
		diff = -diff
	}
	require.Equal(t, 1, diff)
}

func TestDivideCageSolves(t *testing.T) {
	g, err := NewGrid(2, []CageSpec{
		{Kind: Divide, Target: 2, Cells: []int{0, 1}},
	})
	require.NoError(t, err)
	require.True(t, bruteSolve(g))
	a, b := g.Cells[0].Value, g.Cells[1].Value
	if a < b {
		a, b = b, a
	}
	require.Equal(t, 0, a%b)
	require.Equal(t, 2, a/b)
}

func TestUnsolvablePuzzleFails(t *testing.T) {
	// A 2-cell Minus cage with target 0 is not a legal shape in a real
	// input, but a same-cage Single forcing a contradictory row/col value
	// is: two Single cages in the same row both demanding value 1.
	g, err := NewGrid(2, []CageSpec{
		{Kind: Single, Target: 1, Cells: []int{0}},
		{Kind: Single, Target: 1, Cells: []int{1}},
	})
	require.NoError(t, err)
	require.False(t, bruteSolve(g))
}
