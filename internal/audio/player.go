package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/gem-quest/internal/match3"
)

const sampleRate = beep.SampleRate(44100)

// The speaker is process-wide and may only be initialized once.
var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond))
	})
	return speakerErr
}

// Player turns engine events into sound. It implements match3.Notifier and
// stays silent when no audio device could be opened.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	enabled     bool
	volume      float64
	logger      *log.Logger

	// played counts cues per kind, including ones that were not audible.
	played map[Cue]int
}

// NewPlayer creates a player. Nothing is audible until Init succeeds.
func NewPlayer(enabled bool, volume float64, logger *log.Logger) *Player {
	return &Player{
		mixer:   &beep.Mixer{},
		enabled: enabled,
		volume:  volume,
		logger:  logger,
		played:  make(map[Cue]int),
	}
}

// Init opens the audio device and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := initSpeaker(); err != nil {
		if p.logger != nil {
			p.logger.Warn("audio unavailable", "err", err)
		}
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops every playing cue.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Notify plays the cues for e.
func (p *Player) Notify(e match3.Event) {
	for _, c := range CuesFor(e) {
		p.Play(c)
	}
}

// Play plays one cue if audio is enabled.
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled {
		return
	}
	p.played[c]++
	if !p.initialized {
		return
	}
	tone, ok := Tones[c]
	if !ok {
		return
	}
	speaker.Lock()
	p.mixer.Add(tone.Streamer(sampleRate, p.volume))
	speaker.Unlock()
}

// Toggle flips sound on or off and returns the new state.
func (p *Player) Toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = !p.enabled
	return p.enabled
}

// Enabled reports whether cues are played.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Played returns how many times c was requested while enabled.
func (p *Player) Played(c Cue) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played[c]
}
