package solver

import "github.com/pkg/errors"

// ErrNoSolution is the error the CLI returns when the root search fails,
// after printing "No solution found"; main turns it into exit code 1.
var ErrNoSolution = errors.New("no solution found")
