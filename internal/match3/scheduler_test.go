package match3

import (
	"testing"
	"time"
)

func TestTickSchedulerOrder(t *testing.T) {
	s := NewTickScheduler()
	var got []string
	s.After(20*time.Millisecond, func() { got = append(got, "b") })
	s.After(10*time.Millisecond, func() { got = append(got, "a") })
	s.After(20*time.Millisecond, func() { got = append(got, "c") })

	s.Advance(5 * time.Millisecond)
	if len(got) != 0 {
		t.Fatalf("ran early: %v", got)
	}
	s.Advance(15 * time.Millisecond)
	if want := "abc"; join(got) != want {
		t.Errorf("order = %s, want %s", join(got), want)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", s.Pending())
	}
}

func TestTickSchedulerChained(t *testing.T) {
	s := NewTickScheduler()
	var got []string
	s.After(0, func() {
		got = append(got, "first")
		s.After(0, func() { got = append(got, "second") })
		s.After(time.Second, func() { got = append(got, "later") })
	})

	s.Advance(0)
	if len(got) != 2 {
		t.Fatalf("got %v, want first and second", got)
	}
	s.Flush()
	if len(got) != 3 || got[2] != "later" {
		t.Errorf("after Flush got %v", got)
	}
}

func TestTickSchedulerReset(t *testing.T) {
	s := NewTickScheduler()
	ran := false
	s.After(time.Millisecond, func() { ran = true })
	s.Reset()
	s.Advance(time.Second)
	if ran {
		t.Error("callback ran after Reset")
	}
}

func TestImmediate(t *testing.T) {
	ran := false
	Immediate{}.After(time.Hour, func() { ran = true })
	if !ran {
		t.Error("Immediate did not run the callback")
	}
}

func join(parts []string) string {
	out := ""
	for _, p := range parts {
		out += p
	}
	return out
}
