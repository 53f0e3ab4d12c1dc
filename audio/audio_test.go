package audio

import (
	"testing"

	"bossarena/game"
)

func TestEveryCueHasATone(t *testing.T) {
	buf := make([][2]float64, 512)
	for _, c := range game.AllCues {
		st, err := Tone(c)
		if err != nil {
			t.Fatalf("%s: %v", c, err)
		}
		total := 0
		for {
			n, ok := st.Stream(buf)
			total += n
			if !ok {
				break
			}
		}
		if want := sampleRate.N(tones[c].length); total != want {
			t.Errorf("%s: %d samples, want %d", c, total, want)
		}
	}
}

func TestUnknownCue(t *testing.T) {
	if _, err := Tone(game.Cue("nope")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSpeakerWithoutDeviceDropsCues(t *testing.T) {
	s := NewSpeaker(nil)
	s.Cue(game.CueHit)
	s.Close()
}
