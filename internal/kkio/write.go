package kkio

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bparr/kenken-solver/internal/grid"
	"github.com/bparr/kenken-solver/internal/solver"
)

// WriteSolution writes g as N lines of N space-separated integers. g must
// be fully assigned.
func WriteSolution(w io.Writer, g *grid.Grid) error {
	n := g.N
	var line strings.Builder
	for r := 0; r < n; r++ {
		line.Reset()
		for c := 0; c < n; c++ {
			if c > 0 {
				line.WriteByte(' ')
			}
			line.WriteString(strconv.Itoa(g.Cells[r*n+c].Value))
		}
		line.WriteByte('\n')
		if _, err := io.WriteString(w, line.String()); err != nil {
			return &SystemError{Op: "write solution", Err: err}
		}
	}
	return nil
}

// WriteStats prints the optional node-count/elapsed-time line the CLI's
// --stats flag enables, after the solution grid.
func WriteStats(w io.Writer, stats solver.Stats) error {
	_, err := fmt.Fprintf(w, "nodes=%d elapsed=%s\n", stats.Nodes, stats.Elapsed)
	if err != nil {
		return &SystemError{Op: "write stats", Err: err}
	}
	return nil
}
