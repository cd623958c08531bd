package grid

// notifyChange updates every cell currently in list to reflect that value v
// has just become possible (markPossible) or impossible (!markPossible) as
// far as the constraint owning list is concerned. It is the sole place a
// constraint's opinion is folded into a cell's Possibles counter, which is
// why it is the only place NumPossibles can change.
//
// The counter encoding (0..3, one increment per constraint that currently
// agrees v is possible) is what makes this operation its own exact inverse:
// calling it once with markPossible=true and once with markPossible=false
// for the same (list, v) restores the prior state byte-for-byte.
func (g *Grid) notifyChange(list *CellList, v int, markPossible bool) {
	list.Each(func(i int) {
		c := &g.Cells[i]
		if markPossible {
			if c.Possibles[v] == 2 {
				c.NumPossibles++
			}
			c.Possibles[v]++
		} else {
			if c.Possibles[v] == 3 {
				c.NumPossibles--
			}
			c.Possibles[v]--
		}
	})
}

// notifyChanges applies notifyChange for every value in [lo,hi]. It is a
// no-op when hi < lo, which happens routinely at the edges of Plus/Multiply
// interval arithmetic.
func (g *Grid) notifyChanges(list *CellList, lo, hi int, markPossible bool) {
	for v := lo; v <= hi; v++ {
		g.notifyChange(list, v, markPossible)
	}
}
