package parallel

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/bparr/kenken-solver/internal/grid"
)

func cell(n, row, col int) int { return row*n + col }

func fourByFourFixture(t *testing.T) *grid.Grid {
	t.Helper()
	n := 4
	g, err := grid.NewGrid(n, []grid.CageSpec{
		{Kind: grid.Plus, Target: 5, Cells: []int{cell(n, 0, 0), cell(n, 0, 1), cell(n, 1, 0)}},
		{Kind: grid.Minus, Target: 1, Cells: []int{cell(n, 2, 3), cell(n, 3, 3)}},
		{Kind: grid.Multiply, Target: 36, Cells: []int{cell(n, 0, 2), cell(n, 0, 3), cell(n, 1, 3)}},
		{Kind: grid.Divide, Target: 4, Cells: []int{cell(n, 1, 1), cell(n, 1, 2)}},
		{Kind: grid.Single, Target: 3, Cells: []int{cell(n, 2, 0)}},
		{Kind: grid.Single, Target: 4, Cells: []int{cell(n, 2, 1)}},
		{Kind: grid.Single, Target: 1, Cells: []int{cell(n, 2, 2)}},
		{Kind: grid.Single, Target: 4, Cells: []int{cell(n, 3, 0)}},
		{Kind: grid.Single, Target: 3, Cells: []int{cell(n, 3, 1)}},
		{Kind: grid.Single, Target: 2, Cells: []int{cell(n, 3, 2)}},
	})
	require.NoError(t, err)
	return g
}

func assertValidSolution(t *testing.T, g *grid.Grid) {
	t.Helper()
	n := g.N
	for r := 0; r < n; r++ {
		seen := map[int]bool{}
		for c := 0; c < n; c++ {
			v := g.Cells[cell(n, r, c)].Value
			require.NotEqual(t, 0, v)
			require.False(t, seen[v])
			seen[v] = true
		}
	}
	for c := 0; c < n; c++ {
		seen := map[int]bool{}
		for r := 0; r < n; r++ {
			v := g.Cells[cell(n, r, c)].Value
			require.False(t, seen[v])
			seen[v] = true
		}
	}
	require.Equal(t, 5, g.Cells[cell(n, 0, 0)].Value+g.Cells[cell(n, 0, 1)].Value+g.Cells[cell(n, 1, 0)].Value)
}

func TestS5ParallelDeterminismOfCorrectness(t *testing.T) {
	for _, workers := range []int{1, 2, 8} {
		workers := workers
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			g := fourByFourFixture(t)
			d := NewDriver(g, workers, zerolog.Nop())
			solution, stats, ok := d.Run(context.Background())
			require.True(t, ok, "workers=%d", workers)
			require.NotNil(t, solution)
			require.Greater(t, stats.Nodes, int64(0))
			assertValidSolution(t, solution)
		})
	}
}

func TestQueuePushPopFIFO(t *testing.T) {
	q := NewQueue(3)
	require.True(t, q.Push(Job{Assignments: []Assignment{{Cell: 0, Value: 1}}}))
	require.True(t, q.Push(Job{Assignments: []Assignment{{Cell: 1, Value: 2}}}))
	require.Equal(t, 1, q.Free())

	j, ok := q.Pop()
	require.True(t, ok)
	require.Equal(t, 0, j.Assignments[0].Cell)

	j, ok = q.Pop()
	require.True(t, ok)
	require.Equal(t, 1, j.Assignments[0].Cell)

	_, ok = q.Pop()
	require.False(t, ok)
}

func TestQueueRejectsPushPastCapacity(t *testing.T) {
	q := NewQueue(1)
	require.True(t, q.Push(Job{}))
	require.False(t, q.Push(Job{}))
}
