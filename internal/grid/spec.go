package grid

// Spec is the parsed, not-yet-built description of a puzzle: the size and
// its cages, exactly as internal/kkio reads them off disk. Kept separate
// from Grid so a parse error never needs a half-built Grid to report.
type Spec struct {
	N     int
	Cages []CageSpec
}

// Build constructs the Grid this Spec describes.
func (s Spec) Build() (*Grid, error) {
	return NewGrid(s.N, s.Cages)
}
