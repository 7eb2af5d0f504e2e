package voice

import (
	"go-polycv/debug"
	"go-polycv/midi"
)

// DualSettings configures the two-voice lower/upper converter
type DualSettings struct {
	// semitones at full bend, per side
	LowerBendDown int `json:"lowerBendDown"`
	LowerBendUp   int `json:"lowerBendUp"`
	UpperBendDown int `json:"upperBendDown"`
	UpperBendUp   int `json:"upperBendUp"`

	// retrigger on every note change; otherwise only when the lower voice
	// moves down or the upper voice moves up
	LowerRetrigAll bool `json:"lowerRetrigAll"`
	UpperRetrigAll bool `json:"upperRetrigAll"`

	// glide time in seconds per volt, 0 = off
	LowerGlide float32 `json:"lowerGlide"`
	UpperGlide float32 `json:"upperGlide"`

	// legato glide: the first note after silence jumps
	LowerLegato bool `json:"lowerLegato"`
	UpperLegato bool `json:"upperLegato"`

	SustainHold bool `json:"sustainHold"`
}

func DefaultDualSettings() DualSettings {
	return DualSettings{
		LowerBendDown: -12,
		LowerBendUp:   12,
		UpperBendDown: -12,
		UpperBendUp:   12,
		SustainHold:   true,
	}
}

// Clamp forces every field into its legal range
func (s *DualSettings) Clamp() {
	s.LowerBendDown = clampInt(s.LowerBendDown, -24, 24)
	s.LowerBendUp = clampInt(s.LowerBendUp, -24, 24)
	s.UpperBendDown = clampInt(s.UpperBendDown, -24, 24)
	s.UpperBendUp = clampInt(s.UpperBendUp, -24, 24)
	s.LowerGlide = min(max(s.LowerGlide, 0), 1)
	s.UpperGlide = min(max(s.UpperGlide, 0), 1)
}

// DualOut is one side of the dual converter
type DualOut struct {
	Note     uint8
	Pitch    float32 // volts, glide and bend applied
	Velocity float32 // 0..10
	Gate     float32 // the shared gate, dropped briefly on retrigger
}

// DualFrame is the per-cycle output of Dual
type DualFrame struct {
	Lower, Upper DualOut
	Gate         float32 // any key down, or held by the pedal

	Bend     float32 // -5..5
	BendUp   float32 // 0..10
	BendDown float32 // -10..0

	Mod        float32 // 0..10
	Breath     float32
	Expression float32
	Sustain    float32
	Pressure   float32

	Pedal    bool
	Activity int
}

type dualSide struct {
	note     uint8
	velocity uint8
	last     int // note last projected, outside 0..127 when idle
	volt     float32
	velOut   float32
	glide    slew
	jump     bool
	pulse    Pulse
}

// slew moves toward its input at a fixed rate
type slew struct {
	out float32
}

func (s *slew) Process(dt, in, secPerVolt float32) float32 {
	if secPerVolt <= 0 {
		s.out = in
		return s.out
	}
	step := dt / secPerVolt
	switch {
	case in > s.out+step:
		s.out += step
	case in < s.out-step:
		s.out -= step
	default:
		s.out = in
	}
	return s.out
}

// Dual converts the lowest and highest held keys into two monophonic
// voices sharing one gate. Like Engine it is driven from a single goroutine.
type Dual struct {
	settings DualSettings

	notes NoteTable
	keys  NoteStack

	lower, upper dualSide
	anyGate      bool
	pedal        bool
	pedalGate    bool

	bend                                   int16
	mod, breath, expression, sustain, pres uint8

	bendSmooth Smoother
	ccSmooth   [5]Smoother

	activity int
}

func NewDual(s DualSettings) *Dual {
	s.Clamp()
	d := &Dual{settings: s}
	d.bendSmooth.Rate = SmoothingRate
	for i := range d.ccSmooth {
		d.ccSmooth[i].Rate = SmoothingRate
	}
	d.Reset()
	return d
}

// Reset releases every key, the pedal and the controllers
func (d *Dual) Reset() {
	d.notes.Clear()
	d.keys.Clear()
	d.lower = dualSide{note: DefaultNote, last: 128}
	d.upper = dualSide{note: DefaultNote, last: -1}
	d.anyGate = false
	d.pedal = false
	d.pedalGate = false
	d.bend = 0
	d.mod, d.breath, d.expression, d.sustain, d.pres = 0, 0, 0, 0, 0
	d.bendSmooth.Reset()
	for i := range d.ccSmooth {
		d.ccSmooth[i].Reset()
	}
	debug.Log("dual", "reset")
}

func (d *Dual) Settings() DualSettings {
	return d.settings
}

// Configure replaces the settings; held keys are kept
func (d *Dual) Configure(s DualSettings) {
	s.Clamp()
	d.settings = s
	if !s.SustainHold {
		d.pedal = false
		d.pedalGate = false
	}
}

// Held returns the keys down, oldest first
func (d *Dual) Held() []uint8 {
	return d.keys.Notes()
}

// Handle applies one inbound message. Every channel is accepted.
func (d *Dual) Handle(msg midi.Message) {
	switch msg.Status {
	case midi.NoteOn:
		if msg.Data2 == 0 {
			d.noteOff(msg.Data1, midi.DefaultReleaseVelocity)
			break
		}
		d.noteOn(msg.Data1, msg.Data2)
	case midi.NoteOff:
		d.noteOff(msg.Data1, msg.Data2)
	case midi.ControlChange:
		d.controlChange(msg.Data1, msg.Data2)
		d.activity = int(msg.Data2)
	case midi.PitchBend:
		d.bend = msg.Bend()
		d.activity = int(msg.Data2)
	case midi.ChannelAftertouch:
		d.pres = msg.Data1
		d.activity = int(msg.Data1)
	}
}

func (d *Dual) noteOn(note, vel uint8) {
	d.notes.NoteOn(note, vel)
	d.lower.jump = !d.anyGate && d.settings.LowerLegato
	d.upper.jump = !d.anyGate && d.settings.UpperLegato
	d.pedalGate = d.pedal
	d.keys.Remove(note)
	d.keys.Push(note)
	d.updateHiLo()
	d.activity = int(vel)
}

func (d *Dual) noteOff(note, vel uint8) {
	d.notes.NoteOff(note, vel)
	d.keys.Remove(note)
	d.updateHiLo()
	d.activity = int(vel)
}

func (d *Dual) controlChange(cc, value uint8) {
	switch cc {
	case midi.CCModulation:
		d.mod = value
	case midi.CCBreath:
		d.breath = value
	case midi.CCExpression:
		d.expression = value
	case midi.CCSustain:
		d.sustain = value
		d.pedal = d.settings.SustainHold && value >= 64
		d.pedalGate = d.anyGate && d.pedal
	}
}

// updateHiLo picks the sides from the held keys. With nothing held the
// sides keep their last note.
func (d *Dual) updateHiLo() {
	low, ok := d.keys.Lowest()
	d.anyGate = ok
	if !ok {
		return
	}
	high, _ := d.keys.Highest()
	d.lower.note, d.lower.velocity = low, d.notes.Entry(low).Velocity
	d.upper.note, d.upper.velocity = high, d.notes.Entry(high).Velocity
}

// Process advances glide, smoothing and retrigger pulses by dt seconds and
// projects both voices
func (d *Dual) Process(dt float32) DualFrame {
	s := &d.settings
	f := DualFrame{Pedal: d.pedal, Activity: d.activity}

	var lowerBend, upperBend float32
	if d.bend < 0 {
		f.Bend = d.bendSmooth.Process(dt, rescale(float32(d.bend), -8192, 0, -5, 0))
		f.BendDown = f.Bend * 2
		lowerBend = -f.Bend * float32(s.LowerBendDown) / 60
		upperBend = -f.Bend * float32(s.UpperBendDown) / 60
	} else {
		f.Bend = d.bendSmooth.Process(dt, rescale(float32(d.bend), 0, 8191, 0, 5))
		f.BendUp = f.Bend * 2
		lowerBend = f.Bend * float32(s.LowerBendUp) / 60
		upperBend = f.Bend * float32(s.UpperBendUp) / 60
	}

	if d.anyGate {
		d.lower.follow(s.LowerRetrigAll || int(d.lower.note) < d.lower.last)
		d.upper.follow(s.UpperRetrigAll || int(d.upper.note) > d.upper.last)
	} else {
		d.lower.last = 128
		d.upper.last = -1
	}

	gate := d.anyGate || d.pedalGate
	if gate {
		f.Gate = GateHigh
	}
	f.Lower = d.lower.project(dt, s.LowerGlide, lowerBend, gate)
	f.Upper = d.upper.project(dt, s.UpperGlide, upperBend, gate)

	f.Mod = d.ccSmooth[0].Process(dt, rescale(float32(d.mod), 0, 127, 0, 10))
	f.Breath = d.ccSmooth[1].Process(dt, rescale(float32(d.breath), 0, 127, 0, 10))
	f.Expression = d.ccSmooth[2].Process(dt, rescale(float32(d.expression), 0, 127, 0, 10))
	f.Sustain = d.ccSmooth[3].Process(dt, rescale(float32(d.sustain), 0, 127, 0, 10))
	f.Pressure = d.ccSmooth[4].Process(dt, rescale(float32(d.pres), 0, 127, 0, 10))
	return f
}

// follow latches a new note, retriggering if asked
func (v *dualSide) follow(retrig bool) {
	if int(v.note) == v.last {
		return
	}
	if retrig {
		v.pulse.Trigger(RetriggerTime)
	}
	v.last = int(v.note)
	v.volt = float32(int(v.note)-DefaultNote) / 12
	v.velOut = rescale(float32(v.velocity), 0, 127, 0, 10)
}

func (v *dualSide) project(dt, glide, bend float32, gate bool) DualOut {
	if v.jump {
		glide = 0
		v.jump = false
	}
	out := DualOut{
		Note:     v.note,
		Pitch:    v.glide.Process(dt, v.volt, glide) + bend,
		Velocity: v.velOut,
	}
	if pulsing := v.pulse.Process(dt); gate && !pulsing {
		out.Gate = GateHigh
	}
	return out
}
