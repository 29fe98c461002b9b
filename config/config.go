// Package config loads termcalc settings from a TOML file and TERMCALC_*
// environment variables. Flags are applied by the binary on top.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lixenwraith/termcalc/audio"
	"github.com/lixenwraith/termcalc/clipboard"
	"github.com/lixenwraith/termcalc/input"
	"github.com/lixenwraith/termcalc/toml"
)

// Environment overrides not owned by the audio package
const (
	EnvClipboard = "TERMCALC_CLIPBOARD"
	EnvListen    = "TERMCALC_LISTEN"
	EnvKeymap    = "TERMCALC_KEYMAP"
)

// Config is the full application configuration
type Config struct {
	Audio     audio.AudioConfig `toml:"audio"`
	Display   DisplayConfig     `toml:"display"`
	Clipboard ClipboardConfig   `toml:"clipboard"`
	Remote    RemoteConfig      `toml:"remote"`

	// Keymap is a path to a TOML keymap override file
	Keymap string `toml:"keymap"`
}

// DisplayConfig controls the terminal view
type DisplayConfig struct {
	ShowClock  bool   `toml:"clock"`
	ShowLegend bool   `toml:"legend"`
	TimeLayout string `toml:"time_layout"` // Go time layout
	DateLayout string `toml:"date_layout"`
}

// ClipboardConfig selects the clipboard backend
// Copy and Paste override the detected programs when Backend is "command"
type ClipboardConfig struct {
	Backend string   `toml:"backend"`
	Copy    []string `toml:"copy"`
	Paste   []string `toml:"paste"`
}

// RemoteConfig controls the websocket keypad server
// An empty Listen disables the server
type RemoteConfig struct {
	Listen string `toml:"listen"`
	Path   string `toml:"path"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Audio: *audio.DefaultAudioConfig(),
		Display: DisplayConfig{
			ShowClock:  true,
			ShowLegend: true,
			TimeLayout: "15:04:05",
			DateLayout: "02/01/2006",
		},
		Clipboard: ClipboardConfig{
			Backend: clipboard.BackendAuto,
		},
		Remote: RemoteConfig{
			Path: "/ws",
		},
	}
}

// Load reads path over the defaults, then applies environment overrides
// An empty path skips the file
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from TERMCALC_* variables
func (c *Config) ApplyEnv() {
	audio.ApplyEnv(&c.Audio)

	if v := os.Getenv(EnvClipboard); v != "" {
		c.Clipboard.Backend = v
	}
	if v := os.Getenv(EnvListen); v != "" {
		c.Remote.Listen = v
	}
	if v := os.Getenv(EnvKeymap); v != "" {
		c.Keymap = v
	}
}

// Validate checks values that cannot be repaired silently
func (c *Config) Validate() error {
	var errs []error

	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 {
		errs = append(errs, fmt.Errorf("audio.master_volume %v out of range 0-1", c.Audio.MasterVolume))
	}
	if c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("audio.sample_rate must be positive, got %d", c.Audio.SampleRate))
	}
	for name := range c.Audio.Volumes {
		if _, ok := audio.ParseSoundType(name); !ok {
			errs = append(errs, fmt.Errorf("audio.volumes: unknown sound %q", name))
		}
	}

	switch strings.ToLower(c.Clipboard.Backend) {
	case "", clipboard.BackendAuto, clipboard.BackendOSC52, clipboard.BackendMemory, clipboard.BackendNone:
	case clipboard.BackendCommand:
		if len(c.Clipboard.Paste) > 0 && len(c.Clipboard.Copy) == 0 {
			errs = append(errs, errors.New("clipboard.paste set without clipboard.copy"))
		}
	default:
		errs = append(errs, fmt.Errorf("clipboard.backend: unknown backend %q", c.Clipboard.Backend))
	}

	if c.Remote.Listen != "" && !strings.HasPrefix(c.Remote.Path, "/") {
		errs = append(errs, fmt.Errorf("remote.path must start with /, got %q", c.Remote.Path))
	}

	return errors.Join(errs...)
}

// OpenClipboard builds the configured clipboard backend
// w receives OSC 52 sequences, usually the terminal
func (c *Config) OpenClipboard(w io.Writer) (clipboard.Clipboard, error) {
	if strings.EqualFold(c.Clipboard.Backend, clipboard.BackendCommand) && len(c.Clipboard.Copy) > 0 {
		return &clipboard.Command{CopyArgs: c.Clipboard.Copy, PasteArgs: c.Clipboard.Paste}, nil
	}
	return clipboard.New(c.Clipboard.Backend, w)
}

// KeyTable returns the default bindings merged with the keymap file, if any
func (c *Config) KeyTable() (*input.KeyTable, error) {
	base := input.DefaultKeyTable()
	if c.Keymap == "" {
		return base, nil
	}

	data, err := os.ReadFile(c.Keymap)
	if err != nil {
		return nil, fmt.Errorf("keymap: %w", err)
	}
	override, err := input.LoadKeyConfig(data)
	if err != nil {
		return nil, fmt.Errorf("keymap %s: %w", c.Keymap, err)
	}
	return input.MergeKeyTable(base, override), nil
}
