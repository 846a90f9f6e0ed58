package match3

// Bonus meter defaults.
const (
	DefaultBonusThreshold = 10
	DefaultBonusUnits     = 2
)

// BonusGrant describes one threshold crossing.
type BonusGrant struct {
	Multiplier int   // floor(counter / threshold)
	PerKind    int   // units granted for each goal kind
	Total      int   // PerKind * number of goal kinds
	Tally      Tally // goal kind -> PerKind
}

// Granted reports whether the grant gives anything.
func (g BonusGrant) Granted() bool {
	return g.Total > 0
}

// BonusMeter converts off-goal collections into goal progress.
// The counter persists across swaps and only resets on Reset.
type BonusMeter struct {
	threshold int
	units     int
	counter   int
}

// NewBonusMeter creates a meter. Non-positive arguments fall back to
// DefaultBonusThreshold and DefaultBonusUnits.
func NewBonusMeter(threshold, units int) *BonusMeter {
	if threshold <= 0 {
		threshold = DefaultBonusThreshold
	}
	if units <= 0 {
		units = DefaultBonusUnits
	}
	return &BonusMeter{threshold: threshold, units: units}
}

// Counter returns the accumulated off-goal count.
func (m *BonusMeter) Counter() int {
	return m.counter
}

// Threshold returns the crossing threshold.
func (m *BonusMeter) Threshold() int {
	return m.threshold
}

// Reset clears the counter (level restart).
func (m *BonusMeter) Reset() {
	m.counter = 0
}

// Apply feeds one step's collected tally into the meter. Kinds outside goals
// count toward the threshold. On crossing, each goal kind receives
// units*multiplier bonus tokens and the counter keeps the remainder.
func (m *BonusMeter) Apply(collected Tally, goals []Kind) BonusGrant {
	onGoal := make(map[Kind]bool, len(goals))
	for _, k := range goals {
		onGoal[k] = true
	}

	offGoal := 0
	for k, n := range collected {
		if !onGoal[k] {
			offGoal += n
		}
	}
	m.counter += offGoal
	if m.counter < 0 {
		m.counter = 0
	}

	if m.counter < m.threshold {
		return BonusGrant{}
	}

	mult := m.counter / m.threshold
	m.counter %= m.threshold

	grant := BonusGrant{
		Multiplier: mult,
		PerKind:    m.units * mult,
		Tally:      make(Tally, len(onGoal)),
	}
	for k := range onGoal {
		grant.Tally.Add(k, grant.PerKind)
	}
	grant.Total = grant.Tally.Total()
	return grant
}
