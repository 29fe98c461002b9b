package audio

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/lixenwraith/termcalc/constant"
)

// Environment overrides
const (
	EnvAudioEnabled = "TERMCALC_AUDIO_ENABLED"
	EnvMasterVolume = "TERMCALC_MASTER_VOLUME"
	EnvSFXVolumes   = "TERMCALC_SFX_VOLUMES"
	EnvSampleRate   = "TERMCALC_SAMPLE_RATE"
)

// AudioConfig holds audio settings, decodable from the [audio] config section
type AudioConfig struct {
	Enabled      bool    `toml:"enabled"`
	MasterVolume float64 `toml:"master_volume"`
	SampleRate   int     `toml:"sample_rate"`

	// Per-effect volume by sound name, 0.0-1.0
	Volumes map[string]float64 `toml:"volumes"`
}

// DefaultAudioConfig returns the built-in settings
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   constant.AudioSampleRate,
		Volumes: map[string]float64{
			SoundClick.String():  0.4,
			SoundResult.String(): 0.8,
			SoundError.String():  0.8,
		},
	}
}

// EffectVolume returns the volume for one sound, 1.0 when not configured
func (c *AudioConfig) EffectVolume(st SoundType) float64 {
	if v, ok := c.Volumes[st.String()]; ok {
		return clampUnit(v)
	}
	return 1.0
}

// LoadAudioConfig loads audio configuration from environment variables
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()
	ApplyEnv(cfg)
	return cfg
}

// ApplyEnv overrides cfg with any TERMCALC_* audio variables that parse
func ApplyEnv(cfg *AudioConfig) {
	if enabled := os.Getenv(EnvAudioEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume is 0-100 in the environment
	if volume := os.Getenv(EnvMasterVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clampUnit(float64(val) / 100.0)
		}
	}

	if effectVols := os.Getenv(EnvSFXVolumes); effectVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(effectVols), &volumes); err == nil {
			if cfg.Volumes == nil {
				cfg.Volumes = make(map[string]float64, len(volumes))
			}
			for name, v := range volumes {
				if _, ok := ParseSoundType(name); ok {
					cfg.Volumes[name] = v
				}
			}
		}
	}

	if sampleRate := os.Getenv(EnvSampleRate); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
