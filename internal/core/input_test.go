package core

import (
	"testing"
	"time"
)

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.Set(ActionSelect)

	if !f.Has(ActionLeft) || !f.Has(ActionSelect) {
		t.Fatal("Set actions not reported by Has")
	}
	if f.Has(ActionRight) {
		t.Error("Has(ActionRight) = true for unset action")
	}

	f.Click(12, 4)
	clone := f.Clone()
	f.Clear()

	if f.Has(ActionLeft) {
		t.Error("Clear kept actions")
	}
	if _, _, ok := f.Clicked(); ok {
		t.Error("Clear kept the click")
	}
	if !clone.Has(ActionLeft) {
		t.Error("Clone shares state with the original")
	}
	if x, y, ok := clone.Clicked(); !ok || x != 12 || y != 4 {
		t.Errorf("clone Clicked() = (%d, %d, %v), expected (12, 4, true)", x, y, ok)
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionUp) || !f.Empty() {
		t.Error("zero frame reports actions")
	}
	f.Set(ActionUp)
	if !f.Has(ActionUp) || f.Empty() {
		t.Error("Set on zero frame lost the action")
	}
	f.Set(Action(99))
	if f.Has(Action(99)) {
		t.Error("out of range action was recorded")
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionNone:    "None",
		ActionSelect:  "Select",
		ActionCancel:  "Cancel",
		ActionRestart: "Restart",
		Action(99):    "Unknown",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, expected %q", a, got, want)
		}
	}
}

func TestTickDuration(t *testing.T) {
	tests := []struct {
		rate int
		want time.Duration
	}{
		{30, time.Second / 30},
		{60, time.Second / 60},
		{0, time.Second / DefaultTickRate},
		{-5, time.Second / DefaultTickRate},
		{1000, time.Second / MaxTickRate},
	}
	for _, tt := range tests {
		cfg := RuntimeConfig{TickRate: tt.rate}
		if got := cfg.TickDuration(); got != tt.want {
			t.Errorf("TickDuration() at rate %d = %v, want %v", tt.rate, got, tt.want)
		}
	}
}
