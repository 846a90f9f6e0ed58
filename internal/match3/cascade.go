package match3

// StepOutcome is the result of one removal, gravity and refill pass.
type StepOutcome struct {
	AfterRemove Board // matched cells vacated
	AfterRefill Board // compacted and refilled
	Removed     Tally
	Any         bool // whether at least one token was removed
}

// Step is one resolved link of a cascade chain.
type Step struct {
	Combo   int   // chain level, starting at 1
	Matched []Pos // positions removed in this step
	Removed Tally
	Score   int
	Bonus   BonusGrant
	Events  []Event // filled by the engine's hook
	StepOutcome
}

// Resolver removes matches, applies gravity and refills from a Generator.
type Resolver struct {
	gen *Generator
}

// NewResolver creates a resolver that refills from gen.
func NewResolver(gen *Generator) *Resolver {
	return &Resolver{gen: gen}
}

// Step clears matches, compacts each column downward preserving order and
// fills the vacated top cells with fresh tokens. Only this step's refills
// stay Fresh. The input board is not modified.
func (r *Resolver) Step(b Board, matches []Pos) StepOutcome {
	out := StepOutcome{Removed: make(Tally)}

	removed := b.Clone()
	for row := range removed.size {
		for c := range removed.size {
			p := Pos{Row: row, Col: c}
			if t := removed.At(p); t.Fresh {
				t.Fresh = false
				removed.Set(p, t)
			}
		}
	}
	for _, p := range matches {
		t := removed.At(p)
		if t.Empty() {
			continue
		}
		out.Removed.Add(t.Kind, 1)
		removed.Clear(p)
		out.Any = true
	}
	out.AfterRemove = removed

	refilled := removed.Clone()
	for c := range refilled.size {
		Gravity(refilled, c)
		for row := 0; row < refilled.size; row++ {
			p := Pos{Row: row, Col: c}
			if !refilled.At(p).Empty() {
				break
			}
			refilled.Set(p, r.gen.Token(row, c, true))
		}
	}
	out.AfterRefill = refilled
	return out
}

// Gravity compacts column c of b in place: tokens slide down by the number
// of empty cells below them, keeping their relative order.
func Gravity(b Board, c int) {
	empty := 0
	for row := b.size - 1; row >= 0; row-- {
		p := Pos{Row: row, Col: c}
		t := b.At(p)
		if t.Empty() {
			empty++
			continue
		}
		if empty > 0 {
			b.Set(Pos{Row: row + empty, Col: c}, t)
			b.Clear(p)
		}
	}
}

// StepHook is called after each step is resolved, before the next match
// scan. Engines use it to apply scoring and the bonus meter.
type StepHook func(step *Step)

// Run resolves the whole cascade starting from matches. It loops until the
// detector finds nothing, incrementing the combo counter once per step.
// There is no depth cap. The returned board is the final stable board.
func (r *Resolver) Run(b Board, matches []Pos, combo *Combo, hook StepHook) (Board, []Step) {
	var steps []Step
	current := b
	for len(matches) > 0 {
		level := combo.Next()
		outcome := r.Step(current, matches)
		step := Step{
			Combo:       level,
			Matched:     matches,
			Removed:     outcome.Removed,
			StepOutcome: outcome,
		}
		if hook != nil {
			hook(&step)
		}
		steps = append(steps, step)
		current = outcome.AfterRefill
		matches = FindMatches(current)
	}
	combo.Reset()
	return current, steps
}
