package match3

// ScoreRules holds the constants of the per-step score formula.
type ScoreRules struct {
	PerToken      int // base points per removed token
	MaxMultiplier int // combo multiplier cap
	ChainBonus    int // flat bonus per chain level beyond the first
}

// DefaultScoreRules returns the standard scoring constants.
func DefaultScoreRules() ScoreRules {
	return ScoreRules{
		PerToken:      10,
		MaxMultiplier: 5,
		ChainBonus:    20,
	}
}

// StepScore computes the score of one cascade step:
//
//	matched*PerToken*min(combo, MaxMultiplier) + (combo-1)*ChainBonus for combo > 1
func StepScore(matched, combo int, rules ScoreRules) int {
	if matched <= 0 || combo <= 0 {
		return 0
	}
	mult := combo
	if rules.MaxMultiplier > 0 && mult > rules.MaxMultiplier {
		mult = rules.MaxMultiplier
	}
	score := matched * rules.PerToken * mult
	if combo > 1 {
		score += (combo - 1) * rules.ChainBonus
	}
	return score
}

// IsCombo reports whether a combo level warrants combo feedback.
// Level 1 is an ordinary match.
func IsCombo(level int) bool {
	return level > 1
}

// Combo is the cascade-chain counter for one swap.
type Combo struct {
	level int
}

// Level returns the current chain level.
func (c *Combo) Level() int {
	return c.level
}

// Next advances the chain by one step and returns the new level.
func (c *Combo) Next() int {
	c.level++
	return c.level
}

// Reset returns the counter to zero once the board is stable.
func (c *Combo) Reset() {
	c.level = 0
}
