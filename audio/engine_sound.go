package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// EngineSound manages the speaker and the engine tone of the driven vehicle
type EngineSound struct {
	mu          sync.Mutex
	tone        *EngineTone
	ctrl        *beep.Ctrl
	mixer       *beep.Mixer
	initialized bool
}

// NewEngineSound creates a new engine sound manager
func NewEngineSound() *EngineSound {
	tone := NewEngineTone(sampleRate)
	return &EngineSound{
		tone:  tone,
		ctrl:  &beep.Ctrl{Streamer: tone},
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the audio system
func (es *EngineSound) Initialize() error {
	es.mu.Lock()
	defer es.mu.Unlock()

	if es.initialized {
		return nil
	}

	// Initialize speaker with sample rate and buffer size
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	es.mixer.Add(es.ctrl)
	speaker.Play(es.mixer)
	es.initialized = true
	return nil
}

// SetLoad retunes the engine from the drivetrain state
func (es *EngineSound) SetLoad(traction, speed float32) {
	freq, volume := ToneForLoad(traction, speed)
	es.tone.SetTarget(freq, volume)
}

// Pause silences or resumes the engine
func (es *EngineSound) Pause(paused bool) {
	es.mu.Lock()
	defer es.mu.Unlock()

	if !es.initialized {
		return
	}
	speaker.Lock()
	es.ctrl.Paused = paused
	speaker.Unlock()
}

// Tone exposes the streamer for inspection
func (es *EngineSound) Tone() *EngineTone {
	return es.tone
}

// Cleanup stops the engine and closes the audio system
func (es *EngineSound) Cleanup() {
	es.mu.Lock()
	defer es.mu.Unlock()

	if !es.initialized {
		return
	}

	speaker.Lock()
	es.ctrl.Paused = true
	es.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	es.initialized = false
}
