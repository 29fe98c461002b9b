package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain streams s to completion and returns the total sample count and peak
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			peak = math.Max(peak, math.Abs(buf[j][0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("stream never drained")
	return 0, 0
}

// TestOscillatorLength verifies oscillators stop after their duration
func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		osc := NewOscillator(440, 100*time.Millisecond, wave, rate)
		n, peak := drain(t, osc)
		if n != rate.N(100*time.Millisecond) {
			t.Errorf("wave %d streamed %d samples, want %d", wave, n, rate.N(100*time.Millisecond))
		}
		if peak > 1.0 {
			t.Errorf("wave %d peak %f out of range", wave, peak)
		}
		if osc.Err() != nil {
			t.Errorf("wave %d error: %v", wave, osc.Err())
		}
	}
}

// TestEnvelopeRamps verifies attack starts silent and release ends near silent
func TestEnvelopeRamps(t *testing.T) {
	rate := beep.SampleRate(44100)
	d := 50 * time.Millisecond
	osc := NewOscillator(0, d, WaveSquare, rate) // constant +1
	env := NewEnvelope(osc, d, 10*time.Millisecond, 10*time.Millisecond, rate)

	total := rate.N(d)
	buf := make([][2]float64, total)
	n, _ := env.Stream(buf)
	if n != total {
		t.Fatalf("streamed %d, want %d", n, total)
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample %f, want 0", buf[0][0])
	}
	if mid := buf[total/2][0]; mid != 1 {
		t.Errorf("sustain sample %f, want 1", mid)
	}
	if last := buf[total-1][0]; last <= 0 || last > 0.01 {
		t.Errorf("last sample %f, want small positive", last)
	}
}

// TestSoundEffects verifies every sound type produces a finite audible stream
func TestSoundEffects(t *testing.T) {
	cfg := DefaultAudioConfig()
	for st := SoundType(0); st < soundTypeCount; st++ {
		s := GetSoundEffect(st, cfg)
		if s == nil {
			t.Fatalf("no effect for %s", st)
		}
		n, peak := drain(t, s)
		if n == 0 {
			t.Errorf("%s produced no samples", st)
		}
		if peak <= 0 || peak > 1.0 {
			t.Errorf("%s peak %f out of range", st, peak)
		}
	}
	if GetSoundEffect(soundTypeCount, cfg) != nil {
		t.Error("unknown sound type returned a streamer")
	}
}

// TestSilentVolume verifies zero volume mutes the effect
func TestSilentVolume(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.Volumes[SoundClick.String()] = 0
	_, peak := drain(t, CreateClickSound(cfg))
	if peak != 0 {
		t.Errorf("silent click peak %f", peak)
	}
}
