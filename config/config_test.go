package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/termcalc/audio"
	"github.com/lixenwraith/termcalc/calc"
	"github.com/lixenwraith/termcalc/clipboard"
	"github.com/lixenwraith/termcalc/input"
)

// clearEnv blanks every TERMCALC_* variable for the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		audio.EnvAudioEnabled, audio.EnvMasterVolume, audio.EnvSFXVolumes, audio.EnvSampleRate,
		EnvClipboard, EnvListen, EnvKeymap,
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Display.ShowClock || cfg.Display.TimeLayout != "15:04:05" {
		t.Errorf("display defaults = %+v", cfg.Display)
	}
	if cfg.Clipboard.Backend != clipboard.BackendAuto {
		t.Errorf("clipboard backend = %q", cfg.Clipboard.Backend)
	}
	if cfg.Remote.Listen != "" || cfg.Remote.Path != "/ws" {
		t.Errorf("remote defaults = %+v", cfg.Remote)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "termcalc.toml", `
keymap = "/tmp/keys.toml"

[audio]
enabled = false
master_volume = 0.2

[audio.volumes]
click = 0.1

[display]
legend = false
date_layout = "2006-01-02"

[clipboard]
backend = "command"
copy = ["sh", "-c", "cat > /dev/null"]

[remote]
listen = "127.0.0.1:7070"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Audio.Enabled || cfg.Audio.MasterVolume != 0.2 {
		t.Errorf("audio = %+v", cfg.Audio)
	}
	if v := cfg.Audio.EffectVolume(audio.SoundClick); v != 0.1 {
		t.Errorf("click volume = %v", v)
	}
	if v := cfg.Audio.EffectVolume(audio.SoundError); v != 0.8 {
		t.Errorf("error volume default lost: %v", v)
	}
	if cfg.Display.ShowLegend || !cfg.Display.ShowClock || cfg.Display.DateLayout != "2006-01-02" {
		t.Errorf("display = %+v", cfg.Display)
	}
	if cfg.Remote.Listen != "127.0.0.1:7070" || cfg.Remote.Path != "/ws" {
		t.Errorf("remote = %+v", cfg.Remote)
	}
	if cfg.Keymap != "/tmp/keys.toml" {
		t.Errorf("keymap = %q", cfg.Keymap)
	}

	clip, err := cfg.OpenClipboard(nil)
	if err != nil {
		t.Fatalf("OpenClipboard: %v", err)
	}
	if clip.Name() != "command:sh" {
		t.Errorf("clipboard = %s", clip.Name())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvClipboard, "memory")
	t.Setenv(EnvListen, ":9000")
	t.Setenv(audio.EnvMasterVolume, "30")

	path := writeFile(t, "termcalc.toml", "[clipboard]\nbackend = \"none\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Clipboard.Backend != "memory" {
		t.Errorf("env did not override file: %q", cfg.Clipboard.Backend)
	}
	if cfg.Remote.Listen != ":9000" {
		t.Errorf("listen = %q", cfg.Remote.Listen)
	}
	if cfg.Audio.MasterVolume != 0.3 {
		t.Errorf("master volume = %v", cfg.Audio.MasterVolume)
	}

	clip, err := cfg.OpenClipboard(&bytes.Buffer{})
	if err != nil || clip.Name() != clipboard.BackendMemory {
		t.Errorf("OpenClipboard = %v, %v", clip, err)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file: err = %v", err)
	}

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[audio\n", "expected ]"},
		{"type", "[audio]\nenabled = \"yes\"", "enabled"},
		{"volume range", "[audio]\nmaster_volume = 2.5", "master_volume"},
		{"sample rate", "[audio]\nsample_rate = 0", "sample_rate"},
		{"unknown sound", "[audio.volumes]\ncoin = 0.5", "unknown sound"},
		{"backend", "[clipboard]\nbackend = \"carrier-pigeon\"", "unknown backend"},
		{"paste without copy", "[clipboard]\nbackend = \"command\"\npaste = [\"xclip\", \"-o\"]", "without clipboard.copy"},
		{"remote path", "[remote]\nlisten = \":1\"\npath = \"ws\"", "remote.path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "bad.toml", tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestKeyTable(t *testing.T) {
	clearEnv(t)

	cfg := Default()
	kt, err := cfg.KeyTable()
	if err != nil {
		t.Fatalf("default KeyTable: %v", err)
	}
	if cmd, _ := kt.Lookup("+"); cmd != input.Operator(calc.OpAdd) {
		t.Errorf("default + = %v", cmd)
	}

	cfg.Keymap = writeFile(t, "keys.toml", "[symbols]\nx = \"multiplication\"\n[keys]\nctrl-q = \"none\"\n")
	kt, err = cfg.KeyTable()
	if err != nil {
		t.Fatalf("KeyTable: %v", err)
	}
	if cmd, _ := kt.Lookup("x"); cmd != input.Operator(calc.OpMul) {
		t.Errorf("x = %v", cmd)
	}
	if _, ok := kt.LookupKey(tcell.KeyCtrlQ); ok {
		t.Error("ctrl-q still bound")
	}

	cfg.Keymap = writeFile(t, "bad.toml", "[symbols]\nx = \"explode\"\n")
	if _, err := cfg.KeyTable(); err == nil {
		t.Error("bad keymap accepted")
	}
}
