package window

import (
	"bytes"
	"errors"
	"math"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/vovakirdan/tilejump/internal/core"
)

// SampleRate of the audio context.
const SampleRate = 44100

// beep describes the tone generated when a sound file is missing.
type beep struct {
	freq     float64
	duration float64 // seconds
}

// eventSounds maps events to sound names and their fallback tones.
var eventSounds = map[core.Event]struct {
	name string
	beep beep
}{
	core.EventJump:         {"jump", beep{660, 0.08}},
	core.EventLand:         {"land", beep{180, 0.05}},
	core.EventShoot:        {"shoot", beep{950, 0.06}},
	core.EventEnemyKilled:  {"enemy_killed", beep{320, 0.10}},
	core.EventPlayerDied:   {"player_died", beep{140, 0.35}},
	core.EventPlayerFell:   {"player_died", beep{140, 0.35}},
	core.EventLevelCleared: {"level_cleared", beep{880, 0.30}},
}

// SoundBank plays the sound of each game event.
type SoundBank struct {
	ctx     *audio.Context
	players map[string]*audio.Player
	muted   bool
}

// NewSoundBank loads <name>.wav for every event sound from dir. Missing
// files become generated beeps.
func NewSoundBank(ctx *audio.Context, dir string, logger *log.Logger) *SoundBank {
	sb := &SoundBank{ctx: ctx, players: make(map[string]*audio.Player)}
	for _, s := range eventSounds {
		if _, ok := sb.players[s.name]; ok {
			continue
		}
		p, err := loadWav(ctx, dir, s.name)
		if err != nil {
			if !errors.Is(err, errNoAssetDir) {
				logger.Warn("using generated sound", "sound", s.name, "error", err)
			}
			p = ctx.NewPlayerFromBytes(beepPCM(s.beep.freq, s.beep.duration, SampleRate))
		}
		sb.players[s.name] = p
	}
	return sb
}

func loadWav(ctx *audio.Context, dir, name string) (*audio.Player, error) {
	if dir == "" {
		return nil, errNoAssetDir
	}
	data, err := os.ReadFile(assetPath(dir, name, ".wav"))
	if err != nil {
		return nil, err
	}
	stream, err := wav.DecodeWithSampleRate(SampleRate, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return ctx.NewPlayer(stream)
}

// SetMuted turns playback off or on.
func (sb *SoundBank) SetMuted(muted bool) {
	sb.muted = muted
}

// Play plays the sound of every event, restarting sounds already playing.
func (sb *SoundBank) Play(events []core.Event) {
	if sb == nil || sb.muted {
		return
	}
	for _, e := range events {
		s, ok := eventSounds[e]
		if !ok {
			continue
		}
		p := sb.players[s.name]
		if p == nil {
			continue
		}
		_ = p.Rewind()
		p.Play()
	}
}

// beepPCM synthesizes a sine tone as 16-bit little-endian stereo PCM with a
// short linear fade out.
func beepPCM(freq, duration float64, sampleRate int) []byte {
	n := int(float64(sampleRate) * duration)
	fade := n / 8
	pcm := make([]byte, n*4)
	const amp = 0.3
	for i := 0; i < n; i++ {
		v := math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
		if left := n - i; fade > 0 && left < fade {
			v *= float64(left) / float64(fade)
		}
		s := int16(v * amp * math.MaxInt16)
		pcm[4*i] = byte(s)
		pcm[4*i+1] = byte(s >> 8)
		pcm[4*i+2] = byte(s)
		pcm[4*i+3] = byte(s >> 8)
	}
	return pcm
}
