// Package audio plays short synthesized cues for engine events.
package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/gem-quest/internal/match3"
)

// Cue identifies a sound effect.
type Cue int

const (
	CueSwap Cue = iota
	CueMatch
	CueCascade
	CueCombo
	CueBonus
	CueInvalid
	CueShuffle
)

func (c Cue) String() string {
	switch c {
	case CueSwap:
		return "swap"
	case CueMatch:
		return "match"
	case CueCascade:
		return "cascade"
	case CueCombo:
		return "combo"
	case CueBonus:
		return "bonus"
	case CueInvalid:
		return "invalid"
	case CueShuffle:
		return "shuffle"
	default:
		return "unknown"
	}
}

// Tone is an arpeggio: the notes play one after another, splitting the
// duration evenly.
type Tone struct {
	Notes    []float64 // Hz
	Duration time.Duration
	Wave     Wave
}

// Tones maps every cue to its arpeggio.
var Tones = map[Cue]Tone{
	CueSwap:    {Notes: []float64{440}, Duration: 50 * time.Millisecond, Wave: WaveSquare},
	CueMatch:   {Notes: []float64{523.25, 659.25, 783.99}, Duration: 100 * time.Millisecond, Wave: WaveSine},
	CueCascade: {Notes: []float64{659.25, 783.99, 987.77}, Duration: 80 * time.Millisecond, Wave: WaveSine},
	CueCombo:   {Notes: []float64{523.25, 659.25, 783.99, 987.77}, Duration: 120 * time.Millisecond, Wave: WaveSine},
	CueBonus:   {Notes: []float64{440, 554.37, 659.25, 880}, Duration: 150 * time.Millisecond, Wave: WaveTriangle},
	CueInvalid: {Notes: []float64{220, 165}, Duration: 90 * time.Millisecond, Wave: WaveSquare},
	CueShuffle: {Notes: []float64{392, 523.25, 392, 523.25}, Duration: 160 * time.Millisecond, Wave: WaveTriangle},
}

// gain is the loudness of every cue at full volume.
const gain = 0.15

// CuesFor returns the cues an engine event should trigger.
func CuesFor(e match3.Event) []Cue {
	switch ev := e.(type) {
	case match3.SwapStarted:
		return []Cue{CueSwap}
	case match3.SwapReverted:
		return []Cue{CueInvalid}
	case match3.StepResolved:
		if ev.Combo > 1 {
			return []Cue{CueCascade}
		}
		return []Cue{CueMatch}
	case match3.ComboReached:
		return []Cue{CueCombo}
	case match3.BonusGranted:
		return []Cue{CueBonus}
	case match3.BoardReshuffled:
		return []Cue{CueShuffle}
	}
	return nil
}

// Streamer builds a one-shot stream for the tone at the given volume.
func (t Tone) Streamer(rate beep.SampleRate, volume float64) beep.Streamer {
	if len(t.Notes) == 0 {
		return beep.Silence(0)
	}
	step := t.Duration / time.Duration(len(t.Notes))
	attack := step / 10
	release := step / 2

	notes := make([]beep.Streamer, len(t.Notes))
	for i, freq := range t.Notes {
		osc := newOscillator(freq, step, t.Wave, rate)
		notes[i] = newEnvelope(osc, step, attack, release, rate)
	}
	return newVolume(beep.Seq(notes...), gain*volume)
}
