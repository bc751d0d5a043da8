// Package audio synthesizes the short cues games raise through core.SoundFunc.
package audio

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/pocket-arcade/internal/core"
)

// SampleRate is the output rate of every cue.
const SampleRate = beep.SampleRate(44100)

const (
	attack  = 5 * time.Millisecond
	release = 30 * time.Millisecond
)

type wave int

const (
	waveSquare wave = iota
	waveSine
	waveNoise
)

// tone is one note of a cue.
type tone struct {
	freq float64
	dur  time.Duration
	wave wave
}

var cues = map[core.Sound][]tone{
	core.SoundEat:    {{660, 40 * time.Millisecond, waveSquare}, {880, 60 * time.Millisecond, waveSquare}},
	core.SoundBounce: {{440, 40 * time.Millisecond, waveSine}},
	core.SoundHit:    {{660, 50 * time.Millisecond, waveSquare}},
	core.SoundScore:  {{523.25, 80 * time.Millisecond, waveSine}, {783.99, 120 * time.Millisecond, waveSine}},
	core.SoundShoot:  {{0, 60 * time.Millisecond, waveNoise}},
	core.SoundPlace:  {{329.63, 90 * time.Millisecond, waveSine}},
	core.SoundGameOver: {
		{392, 120 * time.Millisecond, waveSquare},
		{329.63, 120 * time.Millisecond, waveSquare},
		{261.63, 240 * time.Millisecond, waveSquare},
	},
}

// CueDuration returns the total length of the cue for s.
func CueDuration(s core.Sound) time.Duration {
	var d time.Duration
	for _, t := range cues[s] {
		d += t.dur
	}
	return d
}

// oscillator produces a single enveloped tone.
type oscillator struct {
	tone  tone
	phase float64
	pos   int
	total int
	att   int
	rel   int
	rng   *rand.Rand
}

func newOscillator(t tone, rng *rand.Rand) *oscillator {
	return &oscillator{
		tone:  t,
		total: SampleRate.N(t.dur),
		att:   SampleRate.N(attack),
		rel:   SampleRate.N(release),
		rng:   rng,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.pos >= o.total {
			return i, i > 0
		}

		var v float64
		switch o.tone.wave {
		case waveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case waveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case waveNoise:
			v = o.rng.Float64()*2 - 1
		}
		v *= o.gain()

		samples[i][0] = v
		samples[i][1] = v

		o.phase += o.tone.freq / float64(SampleRate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// gain is a linear attack and release envelope.
func (o *oscillator) gain() float64 {
	if o.att > 0 && o.pos < o.att {
		return float64(o.pos) / float64(o.att)
	}
	if left := o.total - o.pos; o.rel > 0 && left < o.rel {
		return float64(left) / float64(o.rel)
	}
	return 1
}

// Synth mixes cues onto the system speaker.
type Synth struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	rng         *rand.Rand
	initialized bool
}

// New creates a synth at the given linear volume (0 mutes, 1 is full scale).
func New(volume float64) *Synth {
	return &Synth{
		mixer:  &beep.Mixer{},
		volume: core.ClampF(volume, 0, 1),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Init opens the speaker. Calling it again is a no-op.
func (s *Synth) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Streamer builds the cue for snd, or nil when it has none.
func (s *Synth) Streamer(snd core.Sound) beep.Streamer {
	tones := cues[snd]
	if len(tones) == 0 {
		return nil
	}

	s.mu.Lock()
	parts := make([]beep.Streamer, len(tones))
	for i, t := range tones {
		parts[i] = newOscillator(t, s.rng)
	}
	s.mu.Unlock()

	seq := beep.Seq(parts...)
	if s.volume <= 0 {
		return &effects.Volume{Streamer: seq, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: seq, Base: 2, Volume: math.Log2(s.volume)}
}

// Play queues the cue for snd. It does nothing before Init.
func (s *Synth) Play(snd core.Sound) {
	st := s.Streamer(snd)
	if st == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Func adapts the synth to the callback games emit through.
func (s *Synth) Func() core.SoundFunc {
	return s.Play
}

// Playing returns the number of cues still sounding.
func (s *Synth) Playing() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	return s.mixer.Len()
}

// Close silences every queued cue.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}
