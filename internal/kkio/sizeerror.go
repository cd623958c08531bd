package kkio

import "github.com/pkg/errors"

// ErrProblemSizeTooLarge is returned by Parse when N exceeds
// grid.MaxProblemSize, kept distinct from a generic MalformedError so the
// CLI can report it with its own message.
var ErrProblemSizeTooLarge = errors.New("problem size too large")
