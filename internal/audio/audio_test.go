package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/gem-quest/internal/match3"
)

func TestCuesFor(t *testing.T) {
	tests := []struct {
		name  string
		event match3.Event
		want  []Cue
	}{
		{"swap", match3.SwapStarted{}, []Cue{CueSwap}},
		{"revert", match3.SwapReverted{}, []Cue{CueInvalid}},
		{"first step", match3.StepResolved{Combo: 1}, []Cue{CueMatch}},
		{"cascade step", match3.StepResolved{Combo: 3}, []Cue{CueCascade}},
		{"combo", match3.ComboReached{Level: 2}, []Cue{CueCombo}},
		{"bonus", match3.BonusGranted{Amount: 4}, []Cue{CueBonus}},
		{"reshuffle", match3.BoardReshuffled{Attempts: 1}, []Cue{CueShuffle}},
		{"score", match3.ScoreChanged{Delta: 30}, nil},
		{"move", match3.MoveUsed{}, nil},
		{"settled", match3.Settled{Matched: true}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CuesFor(tt.event)
			if len(got) != len(tt.want) {
				t.Fatalf("CuesFor() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("CuesFor()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEveryCueHasTone(t *testing.T) {
	for c := CueSwap; c <= CueShuffle; c++ {
		tone, ok := Tones[c]
		if !ok {
			t.Errorf("no tone for %v", c)
			continue
		}
		if len(tone.Notes) == 0 || tone.Duration <= 0 {
			t.Errorf("tone for %v is empty: %+v", c, tone)
		}
		if c.String() == "unknown" {
			t.Errorf("cue %d has no name", c)
		}
	}
}

// drain reads a stream to its end and returns the sample count and peak.
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = max(peak, buf[i][0], -buf[i][0])
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestToneStreamerLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	tone := Tone{Notes: []float64{440, 880}, Duration: 100 * time.Millisecond, Wave: WaveSine}

	n, peak := drain(tone.Streamer(rate, 1))
	want := 2 * rate.N(50*time.Millisecond)
	if n != want {
		t.Errorf("stream length = %d samples, want %d", n, want)
	}
	if peak <= 0 || peak > gain+1e-9 {
		t.Errorf("peak = %v, want in (0, %v]", peak, gain)
	}
}

func TestToneStreamerSilentAtZeroVolume(t *testing.T) {
	tone := Tones[CueMatch]
	_, peak := drain(tone.Streamer(beep.SampleRate(8000), 0))
	if peak != 0 {
		t.Errorf("peak at zero volume = %v, want 0", peak)
	}
}

func TestOscillatorWaves(t *testing.T) {
	rate := beep.SampleRate(1000)
	for _, w := range []Wave{WaveSine, WaveSquare, WaveTriangle} {
		n, peak := drain(newOscillator(100, 20*time.Millisecond, w, rate))
		if n != 20 {
			t.Errorf("wave %d: %d samples, want 20", w, n)
		}
		if peak > 1+1e-9 || peak == 0 {
			t.Errorf("wave %d: peak = %v", w, peak)
		}
	}
}

// TestPlayerGracefulDegradation checks that an uninitialized player accepts
// every call without an audio device.
func TestPlayerGracefulDegradation(t *testing.T) {
	p := NewPlayer(true, 0.5, nil)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("player panicked without initialization: %v", r)
		}
	}()

	p.Notify(match3.SwapStarted{})
	p.Notify(match3.StepResolved{Combo: 2})
	p.Play(CueBonus)
	p.Close()

	if p.Played(CueSwap) != 1 || p.Played(CueCascade) != 1 || p.Played(CueBonus) != 1 {
		t.Errorf("played counts = swap %d cascade %d bonus %d",
			p.Played(CueSwap), p.Played(CueCascade), p.Played(CueBonus))
	}
}

func TestPlayerToggle(t *testing.T) {
	p := NewPlayer(true, 1, nil)

	if p.Toggle() {
		t.Fatal("Toggle() = true, want muted")
	}
	p.Notify(match3.SwapStarted{})
	if p.Played(CueSwap) != 0 {
		t.Error("muted player counted a cue")
	}
	if !p.Toggle() || !p.Enabled() {
		t.Error("second Toggle() did not unmute")
	}
}

func TestPlayerInit(t *testing.T) {
	p := NewPlayer(true, 0.5, nil)
	if err := p.Init(); err != nil {
		t.Logf("audio init failed (expected without a device): %v", err)
		return
	}
	if err := p.Init(); err != nil {
		t.Errorf("second Init() = %v, want nil", err)
	}
	p.Play(CueSwap)
	p.Close()
}
