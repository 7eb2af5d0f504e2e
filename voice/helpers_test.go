package voice

import (
	"math/rand"
	"testing"
)

func newTestEngine(t *testing.T, mode Mode, voices int) *Engine {
	t.Helper()
	s := DefaultSettings()
	s.Mode = mode
	s.Voices = voices
	s.DriftCents = 0
	return New(s, rand.New(rand.NewSource(1)))
}

func press(e *Engine, ch uint8, notes ...uint8) {
	for _, n := range notes {
		e.NoteOn(ch, n, 100)
	}
}

func release(e *Engine, ch uint8, notes ...uint8) {
	for _, n := range notes {
		e.NoteOff(ch, n, 64)
	}
}

// voiceNotes returns the note of every gated voice, -1 for closed gates
func voiceNotes(e *Engine) []int {
	out := make([]int, 0, MaxVoices)
	for _, v := range e.Voices() {
		if v.Gate {
			out = append(out, int(v.Note))
		} else {
			out = append(out, -1)
		}
	}
	return out
}

func expectNotes(t *testing.T, e *Engine, want ...int) {
	t.Helper()
	got := voiceNotes(e)
	if len(got) != len(want) {
		t.Fatalf("voice count: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("voices: got %v, want %v", got, want)
			return
		}
	}
}

func expectStack(t *testing.T, name string, got []uint8, want ...uint8) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s: got %v, want %v", name, got, want)
		return
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s: got %v, want %v", name, got, want)
			return
		}
	}
}
