package audio

import "testing"

func TestSoundTypeNames(t *testing.T) {
	for st := SoundType(0); st < soundTypeCount; st++ {
		got, ok := ParseSoundType(st.String())
		if !ok || got != st {
			t.Errorf("ParseSoundType(%q) = %v, %v", st.String(), got, ok)
		}
	}
	if _, ok := ParseSoundType("coin"); ok {
		t.Error("unknown sound name parsed")
	}
	if SoundType(99).String() != "unknown" {
		t.Errorf("out of range String = %q", SoundType(99).String())
	}
}
