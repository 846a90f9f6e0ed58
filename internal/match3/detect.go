package match3

// FindMatches returns every position that belongs to a run of three or more
// same-kind matchable tokens in a row or column. Positions are unique and
// ordered row-major. Intersecting row and column runs are unioned.
func FindMatches(b Board) []Pos {
	mask := matchMask(b)
	var out []Pos
	for r := range b.size {
		for c := range b.size {
			if mask[r*b.size+c] {
				out = append(out, Pos{Row: r, Col: c})
			}
		}
	}
	return out
}

// HasMatch reports whether any run of three exists.
func HasMatch(b Board) bool {
	for r := range b.size {
		for c := range b.size {
			p := Pos{Row: r, Col: c}
			if runAt(b, p, 0, 1) || runAt(b, p, 1, 0) {
				return true
			}
		}
	}
	return false
}

// matchMask marks run positions in a row-major bool slice.
func matchMask(b Board) []bool {
	mask := make([]bool, b.size*b.size)

	// Rows, left to right.
	for r := range b.size {
		c := 0
		for c < b.size-2 {
			if !runAt(b, Pos{Row: r, Col: c}, 0, 1) {
				c++
				continue
			}
			kind := b.Kind(Pos{Row: r, Col: c})
			end := c + 3
			for end < b.size && sameKind(b.At(Pos{Row: r, Col: end}), kind) {
				end++
			}
			for i := c; i < end; i++ {
				mask[r*b.size+i] = true
			}
			c = end
		}
	}

	// Columns, top to bottom.
	for c := range b.size {
		r := 0
		for r < b.size-2 {
			if !runAt(b, Pos{Row: r, Col: c}, 1, 0) {
				r++
				continue
			}
			kind := b.Kind(Pos{Row: r, Col: c})
			end := r + 3
			for end < b.size && sameKind(b.At(Pos{Row: end, Col: c}), kind) {
				end++
			}
			for i := r; i < end; i++ {
				mask[i*b.size+c] = true
			}
			r = end
		}
	}

	return mask
}

// runAt reports whether three matchable tokens of one kind start at p
// in direction (dr, dc).
func runAt(b Board, p Pos, dr, dc int) bool {
	first := b.At(p)
	if !first.Matchable() {
		return false
	}
	for i := 1; i < 3; i++ {
		q := Pos{Row: p.Row + dr*i, Col: p.Col + dc*i}
		if !b.InBounds(q) || !sameKind(b.At(q), first.Kind) {
			return false
		}
	}
	return true
}

func sameKind(t Token, k Kind) bool {
	return t.Matchable() && t.Kind == k
}
