package kkio

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/bparr/kenken-solver/internal/grid"
)

// Parse reads a puzzle in the documented input format: a line holding N, a
// line holding the cage count K, then K cage lines of the form
// "<op> <target> <row,col> <row,col> ...". Returns a *grid.Spec ready to be
// built, a *MalformedError for any user-input problem, or a *SystemError if
// the reader itself fails.
func Parse(r io.Reader) (*grid.Spec, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineNum := 0

	nextLine := func() (string, bool, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", false, &SystemError{Op: "read line from input file", Err: err}
			}
			return "", false, nil
		}
		lineNum++
		return sc.Text(), true, nil
	}

	line, ok, err := nextLine()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &MalformedError{Msg: "missing grid size line"}
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 {
		return nil, &MalformedError{Line: lineNum, Msg: "invalid grid size: " + line}
	}
	if n > grid.MaxProblemSize {
		return nil, ErrProblemSizeTooLarge
	}

	line, ok, err = nextLine()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &MalformedError{Msg: "missing cage count line"}
	}
	k, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || k < 0 || k > n*n {
		return nil, &MalformedError{Line: lineNum, Msg: "invalid cage count: " + line}
	}

	cages := make([]grid.CageSpec, 0, k)
	for i := 0; i < k; i++ {
		line, ok, err = nextLine()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &MalformedError{Msg: "expected more cage lines than the file contains"}
		}
		cage, perr := parseCageLine(n, line)
		if perr != nil {
			return nil, &MalformedError{Line: lineNum, Msg: perr.Error()}
		}
		cages = append(cages, cage)
	}

	return &grid.Spec{N: n, Cages: cages}, nil
}

func parseCageLine(n int, line string) (grid.CageSpec, error) {
	fields := strings.FieldsFunc(line, unicode.IsSpace)
	if len(fields) < 3 {
		return grid.CageSpec{}, errors.Errorf("expected \"<op> <target> <cell>...\", got %q", line)
	}

	kind, err := kindFromOp(fields[0])
	if err != nil {
		return grid.CageSpec{}, err
	}

	target, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil || target < 1 {
		return grid.CageSpec{}, errors.Errorf("invalid cage target %q", fields[1])
	}

	cells := make([]int, 0, len(fields)-2)
	for _, tok := range fields[2:] {
		parts := strings.Split(tok, ",")
		if len(parts) != 2 {
			return grid.CageSpec{}, errors.Errorf("invalid cell coordinate %q", tok)
		}
		row, err1 := strconv.Atoi(parts[0])
		col, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil || row < 0 || row >= n || col < 0 || col >= n {
			return grid.CageSpec{}, errors.Errorf("invalid cell coordinate %q", tok)
		}
		cells = append(cells, row*n+col)
	}

	return grid.CageSpec{Kind: kind, Target: target, Cells: cells}, nil
}

func kindFromOp(op string) (grid.Kind, error) {
	switch op {
	case "+":
		return grid.Plus, nil
	case "-":
		return grid.Minus, nil
	case "x", "X":
		return grid.Multiply, nil
	case "/":
		return grid.Divide, nil
	case "!":
		return grid.Single, nil
	default:
		return 0, errors.Errorf("unrecognized cage operator %q", op)
	}
}
