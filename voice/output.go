package voice

// GateHigh is the gate level of a sounding voice
const GateHigh = 10

// VoiceOut is the per-cycle output of one voice. Pitch is in volts per
// octave relative to C4.
type VoiceOut struct {
	Note            uint8
	Gate            float32
	Pitch           float32
	Detuned         float32 // Pitch plus the voice drift
	Velocity        float32 // 0..10
	ReleaseVelocity float32 // 0..10, or the X bend in MPE when enabled
	Pressure        float32 // 0..10: poly aftertouch, or MPE Z
	Timbre          float32 // 0..10: MPE Y
	Bend            float32 // -5..5: MPE X after smoothing
}

// Frame is everything the rendering stage needs for one control cycle
type Frame struct {
	Mode       Mode
	Voices     []VoiceOut
	MasterBend float32 // -5..5
	Aux        [NumAux]float32
	Pedal      bool
	Rotate     int
	Activity   int
}

// Process advances smoothers and retrigger pulses by dt seconds and projects
// the current state. It must run after every pending message of the cycle
// has been handled.
func (e *Engine) Process(dt float32) Frame {
	s := &e.settings
	f := Frame{
		Mode:     s.Mode,
		Voices:   make([]VoiceOut, e.pool.Size()),
		Pedal:    e.pedal,
		Rotate:   e.pool.Rotate,
		Activity: e.activity,
	}

	var bendVoice float32
	if e.masterBend < 0 {
		f.MasterBend = e.bendSmooth.Process(dt, rescale(float32(e.masterBend), -8192, 0, -5, 0))
		bendVoice = -f.MasterBend * float32(s.BendDown) / 60
	} else {
		f.MasterBend = e.bendSmooth.Process(dt, rescale(float32(e.masterBend), 0, 8191, 0, 5))
		bendVoice = f.MasterBend * float32(s.BendUp) / 60
	}

	mpe := s.Mode.IsMPE()
	for i := range f.Voices {
		v := e.pool.Voice(i)
		out := &f.Voices[i]
		out.Note = v.Note

		held := v.Gate || (s.SustainHold && v.PedalHeld)
		if pulsing := e.retrig[i].Process(dt); held && !pulsing {
			out.Gate = GateHigh
		}

		out.Pitch = float32(int(v.Note)-DefaultNote+s.Transpose)/12 + bendVoice
		out.Velocity = rescale(float32(v.Velocity), 0, 127, 0, 10)
		out.ReleaseVelocity = rescale(float32(v.ReleaseVelocity), 0, 127, 0, 10)

		if !mpe {
			out.Detuned = out.Pitch + v.Drift
			out.Pressure = rescale(float32(e.notes.Entry(v.Note).Aftertouch), 0, 127, 0, 10)
			continue
		}

		if v.XBend < 0 {
			out.Bend = e.xSmooth[i].Process(dt, rescale(float32(v.XBend), -8192, 0, -5, 0))
		} else {
			out.Bend = e.xSmooth[i].Process(dt, rescale(float32(v.XBend), 0, 8191, 0, 5))
		}
		out.Pitch += out.Bend * float32(s.MPEBendRange) / 60
		out.Detuned = out.Pitch + v.Drift
		out.Timbre = e.ySmooth[i].Process(dt, rescale(float32(v.Y), 0, 16383, 0, 10))
		out.Pressure = e.zSmooth[i].Process(dt, rescale(float32(v.Z), 0, 16383, 0, 10))
		if s.MPEBendOut || s.Mode == ModeMPEPlus {
			out.ReleaseVelocity = out.Bend
		}
	}

	for i, bound := range s.AuxCCs {
		var raw float32
		switch bound {
		case BindPressure:
			raw = rescale(float32(e.masterPressure), 0, 127, 0, 10)
		case BindBend:
			raw = rescale(float32(e.masterBend), -8192, 8191, 0, 10)
		default:
			raw = rescale(float32(e.aux[i]), 0, 127, 0, 10)
		}
		f.Aux[i] = e.auxSmooth[i].Process(dt, raw)
	}
	return f
}
