package grid

// Kind tags the arithmetic rule a Constraint enforces.
type Kind int

const (
	// Line is the row/column Latin-square constraint: all assigned values
	// on the line must be distinct.
	Line Kind = iota
	// Plus is a sum cage: the assigned cells must sum to the target.
	Plus
	// Minus is a two-cell difference cage: |a-b| must equal the target.
	Minus
	// Multiply is a product cage: the assigned cells must multiply to the
	// target.
	Multiply
	// Divide is a two-cell quotient cage: max(a,b)/min(a,b) must equal the
	// target, and the target must evenly divide the larger value.
	Divide
	// Single is a one-cell cage fixing its cell to a given value; a Single
	// cage over more than one cell permits no value.
	Single
)

func (k Kind) String() string {
	switch k {
	case Line:
		return "line"
	case Plus:
		return "plus"
	case Minus:
		return "minus"
	case Multiply:
		return "multiply"
	case Divide:
		return "divide"
	case Single:
		return "single"
	default:
		return "unknown"
	}
}

// Constraint is a tagged record for one row, one column, or one cage.
type Constraint struct {
	Kind Kind

	// Value is the constraint's mutable target bookkeeping field:
	//   - Line: unused (spec sets it to -1 conceptually; we leave it 0).
	//   - Plus/Multiply: the original cage target minus/divided-by the sum/
	//     product of every cage cell whose Value != 0, including a cell
	//     currently mid-trial (see constraint_update.go for the exact
	//     convention used while a trial is in progress).
	//   - Minus/Divide/Single: the original cage target, never mutated.
	Value int64

	// Target is the original, immutable cage target as parsed from input.
	// Minus, Divide and Single read their rule from it. Plus/Multiply
	// mutate Value during search; Value equals Target again whenever every
	// cell of the cage is unassigned.
	Target int64

	// Cells is the intrusive list of this constraint's currently-unassigned
	// cell indices.
	Cells CellList
}

// newConstraint builds a constraint of the given kind over the given cell
// indices, with its cell list pre-populated (every cell starts unassigned).
func newConstraint(kind Kind, target int64, totalNumCells int, cellIndexes []int) Constraint {
	return Constraint{
		Kind:   kind,
		Value:  target,
		Target: target,
		Cells:  newCellList(totalNumCells, cellIndexes),
	}
}
