package audio

import (
	"math"
	"sync"

	"github.com/gopxl/beep"
)

// Engine tone shaping
const (
	idleFrequency     = 38.0 // Hz at standstill
	speedFrequency    = 4.0  // Hz per unit of speed
	tractionFrequency = 9.0  // Hz per unit of traction
	maxFrequency      = 320.0

	idleVolume     = 0.05
	tractionVolume = 0.03
	maxVolume      = 0.25

	// glideRate is the fraction of the remaining pitch gap closed per second
	glideRate = 6.0
)

// ToneForLoad maps drivetrain state to an engine pitch and volume
func ToneForLoad(traction, speed float32) (freq, volume float64) {
	t := math.Abs(float64(traction))
	s := math.Abs(float64(speed))
	freq = math.Min(idleFrequency+speedFrequency*s+tractionFrequency*t, maxFrequency)
	volume = math.Min(idleVolume+tractionVolume*t, maxVolume)
	return freq, volume
}

// EngineTone is an endless engine hum gliding toward a target pitch
type EngineTone struct {
	sr beep.SampleRate

	mu           sync.Mutex
	targetFreq   float64
	targetVolume float64

	// Owned by the streaming goroutine
	freq   float64
	volume float64
	phase  float64
}

// NewEngineTone creates an idling tone
func NewEngineTone(sr beep.SampleRate) *EngineTone {
	f, v := ToneForLoad(0, 0)
	return &EngineTone{
		sr:           sr,
		targetFreq:   f,
		targetVolume: v,
		freq:         f,
		volume:       v,
	}
}

// SetTarget sets the pitch and volume the tone glides to
func (g *EngineTone) SetTarget(freq, volume float64) {
	g.mu.Lock()
	g.targetFreq = freq
	g.targetVolume = volume
	g.mu.Unlock()
}

// Frequency returns the pitch reached by the last streamed sample
func (g *EngineTone) Frequency() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.freq
}

func (g *EngineTone) Stream(samples [][2]float64) (n int, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	k := 1 - math.Exp(-glideRate/float64(g.sr))
	for i := range samples {
		g.freq += (g.targetFreq - g.freq) * k
		g.volume += (g.targetVolume - g.volume) * k

		// Fundamental with two odd harmonics for a rough exhaust note
		p := 2 * math.Pi * g.phase
		sample := 0.6*math.Sin(p) + 0.25*math.Sin(3*p) + 0.15*math.Sin(5*p)
		sample *= g.volume

		samples[i][0] = sample
		samples[i][1] = sample

		g.phase += g.freq / float64(g.sr)
		if g.phase >= 1.0 {
			g.phase -= 1.0
		}
	}
	return len(samples), true
}

func (g *EngineTone) Err() error {
	return nil
}
