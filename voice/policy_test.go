package voice

import (
	"math/rand"
	"testing"

	"go-polycv/midi"
)

func TestReassignCompacts(t *testing.T) {
	e := newTestEngine(t, ModeReassign, 4)
	press(e, 1, 60, 64, 67)
	expectNotes(t, e, 60, 64, 67, -1)

	release(e, 1, 64)
	expectNotes(t, e, 60, 67, -1, -1)
	expectStack(t, "cached", e.Cached(), 60, 67)

	release(e, 1, 60)
	expectNotes(t, e, 67, -1, -1, -1)

	release(e, 1, 67)
	expectNotes(t, e, -1, -1, -1, -1)
	expectStack(t, "cached", e.Cached())
}

func TestReassignFillsFromFront(t *testing.T) {
	e := newTestEngine(t, ModeReassign, 4)
	press(e, 1, 60, 64, 67)
	release(e, 1, 60)
	press(e, 1, 72)
	expectNotes(t, e, 64, 67, 72, -1)
	expectStack(t, "cached", e.Cached(), 64, 67, 72)
}

func TestRepeatedNoteOnStacksOnce(t *testing.T) {
	for _, mode := range []Mode{ModeReassign, ModeUnison, ModeUnisonLower, ModeUnisonUpper} {
		t.Run(mode.String(), func(t *testing.T) {
			e := newTestEngine(t, mode, 2)
			press(e, 1, 60, 60)
			expectStack(t, "cached", e.Cached(), 60)

			release(e, 1, 60)
			expectNotes(t, e, -1, -1)
			expectStack(t, "cached", e.Cached())
		})
	}
}

func TestUnisonRestrikeMovesToTop(t *testing.T) {
	e := newTestEngine(t, ModeUnison, 2)
	press(e, 1, 60, 64, 60)
	expectStack(t, "cached", e.Cached(), 64, 60)
	expectNotes(t, e, 60, 60)

	release(e, 1, 60)
	expectNotes(t, e, 64, 64)
}

func TestUnisonLastNote(t *testing.T) {
	e := newTestEngine(t, ModeUnison, 4)
	press(e, 1, 60, 64)
	expectNotes(t, e, 64, 64, 64, 64)

	release(e, 1, 64)
	expectNotes(t, e, 60, 60, 60, 60)

	release(e, 1, 60)
	expectNotes(t, e, -1, -1, -1, -1)
}

func TestUnisonLowerUpper(t *testing.T) {
	tests := []struct {
		mode      Mode
		first     int
		afterDrop int
		drop      uint8
	}{
		{ModeUnisonLower, 60, 64, 60},
		{ModeUnisonUpper, 67, 64, 67},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			e := newTestEngine(t, tt.mode, 3)
			press(e, 1, 64, 60, 67)
			expectNotes(t, e, tt.first, tt.first, tt.first)

			release(e, 1, tt.drop)
			expectNotes(t, e, tt.afterDrop, tt.afterDrop, tt.afterDrop)

			release(e, 1, 60, 64, 67)
			expectNotes(t, e, -1, -1, -1)
		})
	}
}

func TestUnisonRetriggerOnlyOnChange(t *testing.T) {
	e := newTestEngine(t, ModeUnisonLower, 2)
	press(e, 1, 60)
	e.Process(0.01)

	// a higher note leaves the lowest note in place: no articulation
	press(e, 1, 64)
	if f := e.Process(0.0001); f.Voices[0].Gate != GateHigh {
		t.Errorf("gate dropped although the common note did not change")
	}

	press(e, 1, 55)
	if f := e.Process(0.0001); f.Voices[0].Gate != 0 {
		t.Errorf("expected retrigger pulse when the common note changed")
	}
}

func TestUnisonDriftBounded(t *testing.T) {
	e := newTestEngine(t, ModeUnison, 16)
	s := e.Settings()
	s.DriftCents = 50
	e.Configure(s)

	limit := float32(50) / 1200
	press(e, 1, 60)
	for i, v := range e.Voices() {
		if v.Drift > limit || v.Drift < -limit {
			t.Errorf("voice %d drift %f outside ±%f", i, v.Drift, limit)
		}
	}
}

func TestMPELegatoRestack(t *testing.T) {
	e := newTestEngine(t, ModeMPE, 8)
	press(e, 1, 60, 64)
	if v := e.Voice(1); !v.Gate || v.Note != 64 {
		t.Fatalf("voice 1: %+v", v)
	}
	expectStack(t, "channel 1", e.ChannelCached(1), 60)

	release(e, 1, 64)
	if v := e.Voice(1); !v.Gate || v.Note != 60 {
		t.Errorf("voice 1 after release: %+v, want 60 gated", v)
	}

	release(e, 1, 60)
	if e.Voice(1).Gate {
		t.Error("voice 1 still gated")
	}
}

func TestMPEChannelIsolation(t *testing.T) {
	e := newTestEngine(t, ModeMPE, 4)
	press(e, 1, 60)
	press(e, 2, 62)
	release(e, 2, 60) // note 60 is not on channel 2

	expectNotes(t, e, -1, 60, 62, -1)

	// master channel and channels beyond the pool are ignored
	press(e, 0, 70)
	press(e, 5, 71)
	expectNotes(t, e, -1, 60, 62, -1)
	for i := 4; i < MaxVoices; i++ {
		if e.Voice(i).Gate {
			t.Errorf("voice %d gated outside the pool", i)
		}
	}
}

func TestMPEPlusHighResolution(t *testing.T) {
	e := newTestEngine(t, ModeMPEPlus, 4)
	e.Handle(midi.NewCC(1, midi.CCPlusLSB, 5))
	e.Handle(midi.NewCC(1, midi.CCTimbre, 10))
	if y := e.Voice(1).Y; y != 10<<7|5 {
		t.Errorf("Y: got %d, want %d", y, 10<<7|5)
	}

	e.Handle(midi.NewCC(2, midi.CCPlusLSB, 3))
	e.Handle(midi.NewChannelAftertouch(2, 100))
	if z := e.Voice(2).Z; z != 100<<7|3 {
		t.Errorf("Z: got %d, want %d", z, 100<<7|3)
	}
}

func TestMPEDimensions(t *testing.T) {
	e := newTestEngine(t, ModeMPE, 4)
	e.Handle(midi.NewCC(1, 74, 20))
	e.Handle(midi.NewChannelAftertouch(1, 100))
	e.Handle(midi.NewPitchBend(1, 4096))

	v := e.Voice(1)
	if v.Y != 20<<7 || v.Z != 100<<7 || v.XBend != 4096 {
		t.Errorf("dimensions: %+v", v)
	}

	// master channel bend is global
	e.Handle(midi.NewPitchBend(0, -8192))
	if e.Voice(0).XBend != 0 {
		t.Error("master bend written to voice 0")
	}
}

func TestGateCountNeverExceedsPool(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for m := ModeMPE; m < NumModes; m++ {
		t.Run(m.String(), func(t *testing.T) {
			e := newTestEngine(t, m, 5)
			for i := 0; i < 2000; i++ {
				ch := uint8(rng.Intn(8))
				note := uint8(48 + rng.Intn(24))
				switch rng.Intn(10) {
				case 0:
					e.Handle(midi.NewCC(0, midi.CCSustain, uint8(rng.Intn(2)*127)))
				case 1, 2, 3, 4:
					e.NoteOff(ch, note, 64)
				default:
					e.NoteOn(ch, note, 100)
				}
				if g := e.pool.Gated(); g > 5 {
					t.Fatalf("step %d: %d gated voices in a pool of 5", i, g)
				}
				for j := 5; j < MaxVoices; j++ {
					if e.Voice(j).Gate {
						t.Fatalf("step %d: voice %d gated outside the pool", i, j)
					}
				}
			}
		})
	}
}
