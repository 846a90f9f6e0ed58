package match3

import (
	"testing"
)

func TestStepScore(t *testing.T) {
	rules := DefaultScoreRules()
	tests := []struct {
		name    string
		matched int
		combo   int
		want    int
	}{
		{"single run", 3, 1, 30},
		{"second step of four", 4, 2, 100},
		{"capped multiplier", 3, 5, 3*10*5 + 4*20},
		{"beyond cap", 3, 7, 3*10*5 + 6*20},
		{"nothing matched", 0, 1, 0},
		{"no combo", 3, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StepScore(tt.matched, tt.combo, rules); got != tt.want {
				t.Errorf("StepScore(%d, %d) = %d, want %d", tt.matched, tt.combo, got, tt.want)
			}
		})
	}
}

func TestIsCombo(t *testing.T) {
	if IsCombo(0) || IsCombo(1) {
		t.Error("levels 0 and 1 must not count as combos")
	}
	if !IsCombo(2) {
		t.Error("level 2 must count as a combo")
	}
}

func TestBonusMeterThreshold(t *testing.T) {
	m := NewBonusMeter(10, 2)
	goals := []Kind{KindRed, KindBlue}

	if g := m.Apply(Tally{KindGreen: 7}, goals); g.Granted() {
		t.Fatalf("unexpected grant below threshold: %+v", g)
	}
	if m.Counter() != 7 {
		t.Fatalf("Counter() = %d, want 7", m.Counter())
	}

	g := m.Apply(Tally{KindYellow: 6, KindRed: 3}, goals)
	if g.Multiplier != 1 {
		t.Errorf("Multiplier = %d, want 1", g.Multiplier)
	}
	if g.PerKind != 2 {
		t.Errorf("PerKind = %d, want 2", g.PerKind)
	}
	if g.Total != 4 {
		t.Errorf("Total = %d, want 4", g.Total)
	}
	if g.Tally[KindRed] != 2 || g.Tally[KindBlue] != 2 {
		t.Errorf("Tally = %v, want 2 red and 2 blue", g.Tally)
	}
	if m.Counter() != 3 {
		t.Errorf("Counter() = %d, want 3", m.Counter())
	}
}

func TestBonusMeterMultiplier(t *testing.T) {
	m := NewBonusMeter(10, 2)
	g := m.Apply(Tally{KindGreen: 25}, []Kind{KindRed})
	if g.Multiplier != 2 || g.PerKind != 4 || g.Total != 4 {
		t.Errorf("grant = %+v, want multiplier 2, 4 per kind", g)
	}
	if m.Counter() != 5 {
		t.Errorf("Counter() = %d, want 5", m.Counter())
	}
}

func TestBonusMeterOnGoalOnly(t *testing.T) {
	m := NewBonusMeter(10, 2)
	g := m.Apply(Tally{KindRed: 30}, []Kind{KindRed})
	if g.Granted() || m.Counter() != 0 {
		t.Errorf("on-goal collection fed the meter: grant %+v counter %d", g, m.Counter())
	}
}

func TestBonusMeterReset(t *testing.T) {
	m := NewBonusMeter(0, 0)
	if m.Threshold() != DefaultBonusThreshold {
		t.Errorf("Threshold() = %d, want default", m.Threshold())
	}
	m.Apply(Tally{KindGreen: 4}, nil)
	m.Reset()
	if m.Counter() != 0 {
		t.Errorf("Counter() after Reset = %d, want 0", m.Counter())
	}
}
