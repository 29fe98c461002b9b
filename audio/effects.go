package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/lixenwraith/termcalc/constant"
)

// WaveType selects a tone shape
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// shape maps a phase in [0,1) to a sample in [-1,1]
func (w WaveType) shape(phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2*phase - 1
	case WaveNoise:
		return rand.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// NewOscillator returns a mono tone copied to both channels that ends after duration
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	remaining := rate.N(duration)
	step := freq / float64(rate)
	phase := 0.0

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if remaining <= 0 {
			return 0, false
		}
		n := min(len(samples), remaining)
		for i := range samples[:n] {
			v := wave.shape(phase)
			samples[i] = [2]float64{v, v}
			_, phase = math.Modf(phase + step)
		}
		remaining -= n
		return n, true
	})
}

// NewEnvelope cuts s at duration and applies linear attack and release ramps
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	attackN := rate.N(attack)
	releaseN := rate.N(release)
	releaseStart := max(total-releaseN, attackN)
	pos := 0

	gain := func(p int) float64 {
		switch {
		case p < attackN:
			return float64(p) / float64(attackN)
		case releaseN > 0 && p >= releaseStart:
			return float64(total-p) / float64(releaseN)
		}
		return 1
	}

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		if rest := total - pos; len(samples) > rest {
			samples = samples[:rest]
		}
		n, ok := s.Stream(samples)
		for i := range samples[:n] {
			g := gain(pos)
			samples[i][0] *= g
			samples[i][1] *= g
			pos++
		}
		return n, ok
	})
}

// newVolume scales s linearly; zero or negative volume is silent
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// CreateClickSound generates a short tick for accepted keys
func CreateClickSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	var tone beep.Streamer
	if sine, err := generators.SineTone(rate, constant.ClickSoundFreq); err == nil {
		tone = beep.Take(rate.N(constant.ClickSoundDuration), sine)
	} else {
		// Frequency above Nyquist for low sample rates
		tone = NewOscillator(constant.ClickSoundFreq, constant.ClickSoundDuration, WaveSine, rate)
	}
	shaped := NewEnvelope(tone, constant.ClickSoundDuration, constant.ClickSoundAttack, constant.ClickSoundRelease, rate)

	return newVolume(shaped, cfg.EffectVolume(SoundClick))
}

// CreateResultSound generates a soft two-partial ding for equals
func CreateResultSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := constant.ResultSoundDuration

	fund := NewOscillator(constant.ResultSoundFreq, d, WaveSine, rate)
	fundShaped := NewEnvelope(fund, d, constant.ResultSoundAttack, constant.ResultSoundFundamentalRelease, rate)

	over := NewOscillator(constant.ResultSoundFreq*2, d, WaveSine, rate)
	overShaped := NewEnvelope(over, d, constant.ResultSoundAttack, constant.ResultSoundOvertoneRelease, rate)

	// Take ends the mix at d so the speaker mixer drops it
	mixed := beep.Take(rate.N(d), beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	))
	return newVolume(mixed, cfg.EffectVolume(SoundResult))
}

// CreateErrorSound generates a low saw buzz for the error display
func CreateErrorSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewOscillator(constant.ErrorSoundFreq, constant.ErrorSoundDuration, WaveSaw, rate)
	shaped := NewEnvelope(osc, constant.ErrorSoundDuration, constant.ErrorSoundAttack, constant.ErrorSoundRelease, rate)

	return newVolume(shaped, cfg.EffectVolume(SoundError))
}

// GetSoundEffect returns a fresh streamer for the sound type, nil if unknown
func GetSoundEffect(soundType SoundType, cfg *AudioConfig) beep.Streamer {
	switch soundType {
	case SoundClick:
		return CreateClickSound(cfg)
	case SoundResult:
		return CreateResultSound(cfg)
	case SoundError:
		return CreateErrorSound(cfg)
	default:
		return nil
	}
}
