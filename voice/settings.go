package voice

// NumAux is the number of auxiliary controller outputs
const NumAux = 8

// Aux binding tokens beyond the 0-127 controller numbers
const (
	BindPressure = 128 // channel aftertouch
	BindBend     = 129 // pitch bend
)

// Settings is the configuration surface of the engine. It is persisted
// as-is; runtime voice state never is.
type Settings struct {
	Mode   Mode `json:"mode"`
	Voices int  `json:"voices"`

	NoteMin int `json:"noteMin"`
	NoteMax int `json:"noteMax"`
	VelMin  int `json:"velMin"`
	VelMax  int `json:"velMax"`

	BendDown     int  `json:"bendDown"` // semitones at full downward bend, usually negative
	BendUp       int  `json:"bendUp"`
	MPEBendRange int  `json:"mpeBendRange"`
	MPEBendOut   bool `json:"mpeBendOut"` // MPE: per-channel bend on the release velocity output

	Transpose  int `json:"transpose"`
	DriftCents int `json:"driftCents"`

	MPEYCC int         `json:"mpeYcc"`
	MPEZCC int         `json:"mpeZcc"`
	AuxCCs [NumAux]int `json:"auxCcs"`

	MasterChannel int `json:"masterChannel"`

	SustainHold bool `json:"sustainHold"`
	Retrigger   bool `json:"retrigger"`
}

// DefaultSettings returns the power-on configuration
func DefaultSettings() Settings {
	return Settings{
		Mode:          ModeRotate,
		Voices:        8,
		NoteMin:       0,
		NoteMax:       127,
		VelMin:        1,
		VelMax:        127,
		BendDown:      -12,
		BendUp:        12,
		MPEBendRange:  96,
		MPEBendOut:    true,
		Transpose:     0,
		DriftCents:    10,
		MPEYCC:        74,
		MPEZCC:        BindPressure,
		AuxCCs:        [NumAux]int{BindPressure, 1, 2, 7, 10, 11, 12, 64},
		MasterChannel: 0,
		SustainHold:   true,
		Retrigger:     true,
	}
}

// Clamp forces every field into its legal range. A one-voice pool in a
// rotating mode becomes Unison.
func (s *Settings) Clamp() {
	if s.Mode < 0 || s.Mode >= NumModes {
		s.Mode = ModeRotate
	}
	s.Voices = clampInt(s.Voices, 1, MaxVoices)
	// a single voice has nothing to rotate
	if s.Voices == 1 && !s.Mode.IsMPE() && !s.Mode.IsUnison() {
		s.Mode = ModeUnison
	}
	s.NoteMin = clampInt(s.NoteMin, 0, 127)
	s.NoteMax = clampInt(s.NoteMax, s.NoteMin, 127)
	s.VelMin = clampInt(s.VelMin, 1, 127)
	s.VelMax = clampInt(s.VelMax, s.VelMin, 127)
	s.BendDown = clampInt(s.BendDown, -96, 96)
	s.BendUp = clampInt(s.BendUp, -96, 96)
	s.MPEBendRange = clampInt(s.MPEBendRange, 0, 96)
	s.Transpose = clampInt(s.Transpose, -48, 48)
	s.DriftCents = clampInt(s.DriftCents, 0, 99)
	s.MPEYCC = clampInt(s.MPEYCC, 0, BindPressure)
	s.MPEZCC = clampInt(s.MPEZCC, 0, BindPressure)
	for i := range s.AuxCCs {
		s.AuxCCs[i] = clampInt(s.AuxCCs[i], 0, BindBend)
	}
	s.MasterChannel = clampInt(s.MasterChannel, 0, 15)
}

// LearnTarget names a range bound that the next note-on will set
type LearnTarget int

const (
	LearnNone LearnTarget = iota
	LearnNoteMin
	LearnNoteMax
	LearnVelMin
	LearnVelMax
)

func (t LearnTarget) String() string {
	switch t {
	case LearnNoteMin:
		return "note min"
	case LearnNoteMax:
		return "note max"
	case LearnVelMin:
		return "vel min"
	case LearnVelMax:
		return "vel max"
	}
	return "none"
}

// learn applies a captured note-on to the pending bound
func (s *Settings) learn(t LearnTarget, note, vel uint8) {
	n, v := int(note), int(vel)
	switch t {
	case LearnNoteMin:
		s.NoteMin = n
		if s.NoteMax < n {
			s.NoteMax = n
		}
	case LearnNoteMax:
		s.NoteMax = n
		if s.NoteMin > n {
			s.NoteMin = n
		}
	case LearnVelMin:
		s.VelMin = v
		if s.VelMax < v {
			s.VelMax = v
		}
	case LearnVelMax:
		s.VelMax = v
		if s.VelMin > v {
			s.VelMin = v
		}
	}
}

// accepts reports whether a note-on passes the range filter
func (s *Settings) accepts(note, vel uint8) bool {
	n, v := int(note), int(vel)
	return n >= s.NoteMin && n <= s.NoteMax && v >= s.VelMin && v <= s.VelMax
}
