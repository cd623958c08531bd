package grid

import "math"

// UpdateConstraint shifts constraint idx's ledger contribution from
// reflecting "old at the cell that was just removed from its list" to
// reflecting "new at that cell". old is Unassigned on a cell's first trial
// (or after its last trial's undo); new is Unassigned when undoing a cell's
// final assignment. The cell itself is never a member of its own
// constraints' lists while this runs — removal happens once, before the
// first call, in Grid.Enter.
func (g *Grid) UpdateConstraint(idx int, old, new int) {
	c := &g.Constraints[idx]
	switch c.Kind {
	case Line:
		g.updateLine(c, old, new)
	case Plus:
		g.updatePlus(c, old, new)
	case Multiply:
		g.updateMultiply(c, old, new)
	case Minus:
		g.updateMinus(c, old, new)
	case Divide:
		g.updateDivide(c, old, new)
	case Single:
		// A one-cell Single cage's only member is the cell currently
		// mid-trial, so by the time this runs the list is empty; a Single
		// cage over more cells permits no value, so none of its cells is
		// ever tried. Either way there is nothing to notify. The cage's
		// one-time vote was cast at initConstraint and never changes.
	}
}

// initConstraint casts constraint idx's initial vote on every cell in its
// (full, nothing-assigned-yet) cell list. Called once per constraint when a
// Grid is built.
func (g *Grid) initConstraint(idx int) {
	c := &g.Constraints[idx]
	n := g.N
	switch c.Kind {
	case Line:
		g.notifyChanges(&c.Cells, 1, n, true)
	case Plus:
		lo, hi := intervalPlus(c.Value, c.Cells.Size(), n)
		g.notifyChanges(&c.Cells, lo, hi, true)
	case Multiply:
		lo, hi, ok := rangeMultiply(c.Value, c.Cells.Size(), n)
		if ok {
			for v := lo; v <= hi; v++ {
				if c.Value%int64(v) == 0 {
					g.notifyChange(&c.Cells, v, true)
				}
			}
		}
	case Minus:
		g.flipByMembership(&c.Cells, n,
			func(int) bool { return false },
			func(v int) bool { return minusMember(false, 0, c.Target, n, v) })
	case Divide:
		g.flipByMembership(&c.Cells, n,
			func(int) bool { return false },
			func(v int) bool { return divideMember(false, 0, c.Target, n, v) })
	case Single:
		// Only a one-cell Single cage permits its target; a Single cage over
		// more cells permits no value at all.
		if c.Cells.Size() == 1 {
			g.notifyChange(&c.Cells, int(c.Target), true)
		}
	}
}

// --- Line ---

func (g *Grid) updateLine(c *Constraint, old, new int) {
	if old != Unassigned {
		g.notifyChange(&c.Cells, old, true)
	}
	if new != Unassigned {
		g.notifyChange(&c.Cells, new, false)
	}
}

// --- Plus ---

// intervalPlus computes the closed interval of values the constraint
// currently permits for every cell in its list: with m cells still needing
// to collectively sum to r, each individually must fall in
// [max(1, r-N*(m-1)), min(N, r-(m-1))]. Returns an empty interval (lo=1,
// hi=0) when no value works.
func intervalPlus(r int64, m, n int) (int, int) {
	if m <= 0 {
		return 1, 0
	}
	lo := r - int64(n)*int64(m-1)
	hi := r - int64(m-1)
	if lo < 1 {
		lo = 1
	}
	if hi > int64(n) {
		hi = int64(n)
	}
	if lo > hi {
		return 1, 0
	}
	return int(lo), int(hi)
}

// plusTrialCells returns the m to use in intervalPlus for a given trial
// value: the cage's other (still-listed) cells, plus one more when trial is
// Unassigned to account for the cell currently being decided (which has not
// rejoined the list yet, but still needs to be counted as "remaining").
func plusTrialCells(c *Constraint, trial int) int {
	k := c.Cells.Size()
	if trial == Unassigned {
		return k + 1
	}
	return k
}

func (g *Grid) updatePlus(c *Constraint, old, new int) {
	mOld := plusTrialCells(c, old)
	mNew := plusTrialCells(c, new)

	rOld := c.Value
	loOld, hiOld := intervalPlus(rOld, mOld, g.N)

	baseline := c.Value
	if old != Unassigned {
		baseline += int64(old)
	}
	rNew := baseline
	if new != Unassigned {
		rNew -= int64(new)
	}
	c.Value = rNew

	loNew, hiNew := intervalPlus(rNew, mNew, g.N)
	g.flipIntervals(&c.Cells, loOld, hiOld, loNew, hiNew)
}

// flipIntervals applies the symmetric difference between two closed
// intervals to a constraint's list: values solely in [oldLo,oldHi] become
// impossible, values solely in [newLo,newHi] become possible.
func (g *Grid) flipIntervals(list *CellList, oldLo, oldHi, newLo, newHi int) {
	overlapLo := maxInt(oldLo, newLo)
	overlapHi := minInt(oldHi, newHi)

	g.notifyChanges(list, oldLo, minInt(oldHi, overlapLo-1), false)
	g.notifyChanges(list, maxInt(oldLo, overlapHi+1), oldHi, false)
	g.notifyChanges(list, newLo, minInt(newHi, overlapLo-1), true)
	g.notifyChanges(list, maxInt(newLo, overlapHi+1), newHi, true)
}

// --- Multiply ---

// maxProductPow returns n^k clamped to math.MaxInt64, the largest product
// k cells drawn from [1,n] could possibly reach.
func maxProductPow(k, n int) int64 {
	if k <= 0 {
		return 1
	}
	result := int64(1)
	for i := 0; i < k; i++ {
		if n != 0 && result > math.MaxInt64/int64(n) {
			return math.MaxInt64
		}
		result *= int64(n)
	}
	return result
}

// rangeMultiply returns the candidate [lo,hi] range for Multiply before the
// r%v==0 divisibility filter is applied, and whether any candidate exists.
func rangeMultiply(r int64, m, n int) (int, int, bool) {
	if r <= 0 || m <= 0 {
		return 0, 0, false
	}
	mp := maxProductPow(m-1, n)
	var lo int64 = 1
	if mp > 0 {
		lo = (r + mp - 1) / mp
	}
	if lo < 1 {
		lo = 1
	}
	hi := r
	if hi > int64(n) {
		hi = int64(n)
	}
	if lo > hi {
		return 0, 0, false
	}
	return int(lo), int(hi), true
}

func (g *Grid) updateMultiply(c *Constraint, old, new int) {
	mOld := plusTrialCells(c, old)
	mNew := plusTrialCells(c, new)

	rOld := c.Value
	loOld, hiOld, okOld := rangeMultiply(rOld, mOld, g.N)

	baseline := c.Value
	if old != Unassigned {
		baseline *= int64(old)
	}
	rNew := baseline
	if new != Unassigned {
		if rNew%int64(new) == 0 {
			rNew /= int64(new)
		} else {
			// Caller already filtered new to divisors of the remaining
			// target via Possibles; defensively avoid a non-integral value.
			rNew = 0
		}
	}
	c.Value = rNew

	loNew, hiNew, okNew := rangeMultiply(rNew, mNew, g.N)

	lo, hi := unionRange(loOld, hiOld, okOld, loNew, hiNew, okNew)
	for v := lo; v <= hi; v++ {
		was := okOld && v >= loOld && v <= hiOld && rOld%int64(v) == 0
		now := okNew && v >= loNew && v <= hiNew && rNew%int64(v) == 0
		if was && !now {
			g.notifyChange(&c.Cells, v, false)
		} else if !was && now {
			g.notifyChange(&c.Cells, v, true)
		}
	}
}

func unionRange(loA, hiA int, okA bool, loB, hiB int, okB bool) (int, int) {
	if !okA && !okB {
		return 1, 0
	}
	lo, hi := math.MaxInt32, math.MinInt32
	if okA {
		lo, hi = loA, hiA
	}
	if okB {
		lo = minInt(lo, loB)
		hi = maxInt(hi, hiB)
	}
	return lo, hi
}

// --- Minus ---

// minusMember reports whether v is permitted by a two-cell Minus cage with
// target T, given whether the cage's other cell currently carries a value.
func minusMember(hasValue bool, value int, t int64, n int, v int) bool {
	vi := int64(v)
	if !hasValue {
		lo := int64(n) - t + 1
		return !(vi >= lo && vi <= t)
	}
	return vi == int64(value)+t || vi == int64(value)-t
}

func (g *Grid) updateMinus(c *Constraint, old, new int) {
	n := g.N
	g.flipByMembership(&c.Cells, n,
		func(v int) bool { return minusMember(old != Unassigned, old, c.Target, n, v) },
		func(v int) bool { return minusMember(new != Unassigned, new, c.Target, n, v) })
}

// --- Divide ---

func divideMember(hasValue bool, value int, t int64, n int, v int) bool {
	vi := int64(v)
	if !hasValue {
		if t <= 0 {
			return false
		}
		maxK := int64(n) / t
		for k := int64(1); k <= maxK; k++ {
			if vi == k || vi == k*t {
				return true
			}
		}
		return false
	}
	if vi == int64(value)*t {
		return true
	}
	if t != 0 && int64(value)%t == 0 && int64(value) >= t && vi == int64(value)/t {
		return true
	}
	return false
}

func (g *Grid) updateDivide(c *Constraint, old, new int) {
	n := g.N
	g.flipByMembership(&c.Cells, n,
		func(v int) bool { return divideMember(old != Unassigned, old, c.Target, n, v) },
		func(v int) bool { return divideMember(new != Unassigned, new, c.Target, n, v) })
}

// flipByMembership applies an O(N) symmetric-difference flip between two
// membership predicates. Used by the two-cell cages, whose permitted sets
// are not contiguous intervals; cheap because N <= MaxProblemSize.
func (g *Grid) flipByMembership(list *CellList, n int, oldMember, newMember func(v int) bool) {
	for v := 1; v <= n; v++ {
		was := oldMember(v)
		now := newMember(v)
		if was && !now {
			g.notifyChange(list, v, false)
		} else if !was && now {
			g.notifyChange(list, v, true)
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
