package voice

import (
	"math"
	"testing"

	"go-polycv/midi"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func TestPitchAndGate(t *testing.T) {
	tests := []struct {
		note      uint8
		transpose int
		want      float32
	}{
		{60, 0, 0},
		{72, 0, 1},
		{48, 0, -1},
		{72, 12, 2},
		{66, -6, 0},
	}
	for _, tt := range tests {
		e := newTestEngine(t, ModeRotate, 4)
		s := e.Settings()
		s.Transpose = tt.transpose
		e.Configure(s)
		e.NoteOn(1, tt.note, 127)

		out := e.Process(0.01).Voices[0]
		if out.Gate != GateHigh {
			t.Errorf("note %d: gate = %v", tt.note, out.Gate)
		}
		if !approx(out.Pitch, tt.want) {
			t.Errorf("note %d transpose %d: pitch = %v, want %v", tt.note, tt.transpose, out.Pitch, tt.want)
		}
		if out.Detuned != out.Pitch {
			t.Errorf("note %d: detuned %v differs from pitch with no drift", tt.note, out.Detuned)
		}
		if out.Velocity != 10 {
			t.Errorf("note %d: velocity = %v, want 10", tt.note, out.Velocity)
		}
	}
}

func TestMasterBend(t *testing.T) {
	tests := []struct {
		bend int16
		want float32
	}{
		{8191, 1},
		{-8192, -1},
		{0, 0},
	}
	for _, tt := range tests {
		e := newTestEngine(t, ModeRotate, 4)
		press(e, 1, 60)
		e.Handle(midi.NewPitchBend(0, tt.bend))

		f := e.Process(1)
		if !approx(f.Voices[0].Pitch, tt.want) {
			t.Errorf("bend %d: pitch = %v, want %v", tt.bend, f.Voices[0].Pitch, tt.want)
		}
		if !approx(f.MasterBend, 5*tt.want) {
			t.Errorf("bend %d: master bend out = %v", tt.bend, f.MasterBend)
		}
	}
}

func TestBendIsSmoothed(t *testing.T) {
	e := newTestEngine(t, ModeRotate, 4)
	e.Handle(midi.NewPitchBend(0, 8191))

	first := e.Process(0.001).MasterBend
	if first <= 0 || first >= 5 {
		t.Fatalf("first step = %v, want between 0 and 5", first)
	}
	second := e.Process(0.001).MasterBend
	if second <= first {
		t.Errorf("smoother not converging: %v then %v", first, second)
	}
}

func TestRetriggerPulse(t *testing.T) {
	e := newTestEngine(t, ModeRotate, 2)
	press(e, 1, 60, 61)
	if g := e.Process(0.01).Voices[0].Gate; g != GateHigh {
		t.Fatalf("gate = %v before steal", g)
	}

	press(e, 1, 62) // steals voice 0
	if g := e.Process(0.01).Voices[0].Gate; g != 0 {
		t.Errorf("gate = %v during retrigger, want 0", g)
	}
	if g := e.Process(0.01).Voices[0].Gate; g != GateHigh {
		t.Errorf("gate = %v after retrigger, want %v", g, GateHigh)
	}
}

func TestRetriggerDisabled(t *testing.T) {
	e := newTestEngine(t, ModeRotate, 2)
	s := e.Settings()
	s.Retrigger = false
	e.Configure(s)

	press(e, 1, 60, 61, 62)
	if g := e.Process(0.01).Voices[0].Gate; g != GateHigh {
		t.Errorf("gate = %v, want %v", g, GateHigh)
	}
}

func TestMPEOutputs(t *testing.T) {
	e := newTestEngine(t, ModeMPE, 4)
	press(e, 1, 60)
	e.Handle(midi.NewCC(1, midi.CCTimbre, 127))
	e.Handle(midi.NewChannelAftertouch(1, 127))
	e.Handle(midi.NewPitchBend(1, 8191))

	f := e.Process(1)
	out := f.Voices[1]
	if !approx(out.Bend, 5) {
		t.Errorf("bend = %v, want 5", out.Bend)
	}
	// full bend at a 96 semitone range is 8 octaves
	if !approx(out.Pitch, 8) {
		t.Errorf("pitch = %v, want 8", out.Pitch)
	}
	if !approx(out.ReleaseVelocity, out.Bend) {
		t.Errorf("release velocity = %v, want the bend", out.ReleaseVelocity)
	}
	if out.Timbre < 9.9 || out.Timbre > 10 {
		t.Errorf("timbre = %v", out.Timbre)
	}
	if out.Pressure < 9.9 || out.Pressure > 10 {
		t.Errorf("pressure = %v", out.Pressure)
	}
	if f.MasterBend != 0 {
		t.Errorf("member channel bend leaked to master: %v", f.MasterBend)
	}
}

func TestAuxOutputs(t *testing.T) {
	e := newTestEngine(t, ModeRotate, 4)
	e.Handle(midi.NewChannelAftertouch(0, 127)) // slot 0 follows pressure
	e.Handle(midi.NewCC(0, 7, 127))             // slot 3 is CC7

	f := e.Process(1)
	if f.Aux[0] != 10 {
		t.Errorf("aux 0 = %v, want 10", f.Aux[0])
	}
	if f.Aux[3] != 10 {
		t.Errorf("aux 3 = %v, want 10", f.Aux[3])
	}
	if f.Aux[1] != 0 {
		t.Errorf("aux 1 = %v, want 0", f.Aux[1])
	}
}

func TestFrameState(t *testing.T) {
	e := newTestEngine(t, ModeReuse, 4)
	press(e, 1, 60, 62)
	e.PedalDown()

	f := e.Process(0.01)
	if f.Mode != ModeReuse {
		t.Errorf("mode = %s", f.Mode)
	}
	if !f.Pedal {
		t.Error("pedal not reported")
	}
	if f.Rotate != 1 {
		t.Errorf("rotate = %d, want 1", f.Rotate)
	}
	if len(f.Voices) != 4 {
		t.Errorf("%d voice outputs, want 4", len(f.Voices))
	}
	if f.Activity != 100 {
		t.Errorf("activity = %d, want 100", f.Activity)
	}
}

func TestPulse(t *testing.T) {
	var p Pulse
	if p.Process(0.1) {
		t.Error("idle pulse high")
	}
	p.Trigger(0.002)
	p.Trigger(0.001)
	if !p.Process(0.001) || !p.Active() {
		t.Error("pulse low too early")
	}
	if !p.Process(0.001) {
		t.Error("shorter trigger cut the pulse")
	}
	if p.Process(0.001) {
		t.Error("pulse still high")
	}
}
