// Package audio plays the page-turn and cover sounds.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/Faultbox/flipbook/internal/logger"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned by Play before Init succeeded.
var ErrNotInitialized = errors.New("audio not initialized")

// Sound identifies one of the book's sound effects.
type Sound int

const (
	SoundFlip Sound = iota
	SoundCover
)

func (s Sound) String() string {
	switch s {
	case SoundFlip:
		return "flip"
	case SoundCover:
		return "cover"
	default:
		return fmt.Sprintf("Sound(%d)", int(s))
	}
}

// Manager owns the speaker and the decoded sound buffers.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	sfxVolLevel  float64

	sounds map[Sound]*beep.Buffer

	// mixer lets overlapping effects play at once; guarded by speaker.Lock.
	mixer *beep.Mixer
}

// New creates a manager preloaded with synthesized sounds.
func New() *Manager {
	m := &Manager{
		sampleRate:   DefaultSampleRate,
		masterVolume: 1.0,
		sfxVolLevel:  1.0,
		sounds:       make(map[Sound]*beep.Buffer),
		mixer:        &beep.Mixer{},
	}
	m.sounds[SoundFlip] = m.synthesize(rustleSamples(m.sampleRate.N(350*time.Millisecond), 0.45, 1))
	m.sounds[SoundCover] = m.synthesize(rustleSamples(m.sampleRate.N(600*time.Millisecond), 0.6, 2))
	return m
}

// Init opens the speaker.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)

	m.initialized = true
	logger.Info("audio initialized", zap.Int("sample_rate", int(m.sampleRate)))
	return nil
}

// Close stops all playback.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		speaker.Clear()
	}
	m.initialized = false
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// SetSFXVolume sets the SFX volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// GetMasterVolume returns the master volume.
func (m *Manager) GetMasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// GetSFXVolume returns the SFX volume.
func (m *Manager) GetSFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolLevel
}

// LoadWAV replaces a sound with decoded WAV data.
func (m *Manager) LoadWAV(s Sound, data []byte) error {
	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	buf := m.buffer(streamer, format)

	m.mu.Lock()
	m.sounds[s] = buf
	m.mu.Unlock()

	logger.Debug("sound loaded", zap.Stringer("sound", s), zap.Int("samples", buf.Len()))
	return nil
}

// LoadFile replaces a sound with a WAV file from disk.
func (m *Manager) LoadFile(s Sound, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return m.LoadWAV(s, data)
}

// Len returns the length of a sound in samples, 0 if unknown.
func (m *Manager) Len(s Sound) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if buf, ok := m.sounds[s]; ok {
		return buf.Len()
	}
	return 0
}

// Play starts a sound on the mixer. Overlapping calls mix.
func (m *Manager) Play(s Sound) error {
	m.mu.RLock()
	initialized := m.initialized
	vol := m.masterVolume * m.sfxVolLevel
	buf := m.sounds[s]
	m.mu.RUnlock()

	if !initialized {
		return ErrNotInitialized
	}
	if buf == nil {
		return fmt.Errorf("no %s sound loaded", s)
	}

	volStreamer := &effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     2,
		Volume:   volumeExponent(vol),
		Silent:   vol <= 0,
	}

	speaker.Lock()
	m.mixer.Add(volStreamer)
	speaker.Unlock()
	return nil
}

// PlayFlip plays the page-turn rustle.
func (m *Manager) PlayFlip() error {
	return m.Play(SoundFlip)
}

// PlayCover plays the cover-open sound.
func (m *Manager) PlayCover() error {
	return m.Play(SoundCover)
}

func (m *Manager) buffer(streamer beep.Streamer, format beep.Format) *beep.Buffer {
	if format.SampleRate != m.sampleRate {
		streamer = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
		format.SampleRate = m.sampleRate
	}
	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	return buf
}

func (m *Manager) synthesize(samples [][2]float64) *beep.Buffer {
	format := beep.Format{SampleRate: m.sampleRate, NumChannels: 2, Precision: 2}
	return m.buffer(sliceStreamer(samples), format)
}

// volumeExponent maps a linear 0-1 volume to a base-2 exponent for
// effects.Volume, so the resulting gain equals vol.
func volumeExponent(vol float64) float64 {
	if vol <= 0 {
		return -100 // Effectively silent
	}
	return math.Log2(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
