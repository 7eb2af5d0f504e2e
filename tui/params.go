package tui

import (
	"fmt"
	"strconv"

	"go-polycv/voice"
	"go-polycv/widgets"
)

// param is one editable row of the settings table
type param struct {
	name  string
	value func(s voice.Settings) string
	apply func(e *voice.Engine, dir int)
	learn func(e *voice.Engine) // nil when the row can't be learned
}

// setting wraps a plain Settings edit into an engine change
func setting(edit func(s *voice.Settings, dir int)) func(e *voice.Engine, dir int) {
	return func(e *voice.Engine, dir int) {
		s := e.Settings()
		edit(&s, dir)
		e.Configure(s)
	}
}

func intValue(get func(s voice.Settings) int) func(s voice.Settings) string {
	return func(s voice.Settings) string { return strconv.Itoa(get(s)) }
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func ccName(cc int) string {
	if cc == voice.BindPressure {
		return "AT"
	}
	return "cc" + strconv.Itoa(cc)
}

func newParams() []param {
	ps := []param{
		{
			name:  "mode",
			value: func(s voice.Settings) string { return s.Mode.Label() },
			apply: func(e *voice.Engine, dir int) { e.StepMode(dir) },
		},
		{
			name:  "voices",
			value: intValue(func(s voice.Settings) int { return s.Voices }),
			apply: func(e *voice.Engine, dir int) { e.SetVoices(e.Settings().Voices + dir) },
		},
		{
			name:  "note min",
			value: func(s voice.Settings) string { return widgets.NoteName(uint8(s.NoteMin)) },
			apply: setting(func(s *voice.Settings, d int) {
				s.NoteMin += d
				s.NoteMax = max(s.NoteMax, s.NoteMin)
			}),
			learn: func(e *voice.Engine) { e.Learn(voice.LearnNoteMin) },
		},
		{
			name:  "note max",
			value: func(s voice.Settings) string { return widgets.NoteName(uint8(s.NoteMax)) },
			apply: setting(func(s *voice.Settings, d int) {
				s.NoteMax += d
				s.NoteMin = min(s.NoteMin, s.NoteMax)
			}),
			learn: func(e *voice.Engine) { e.Learn(voice.LearnNoteMax) },
		},
		{
			name:  "vel min",
			value: intValue(func(s voice.Settings) int { return s.VelMin }),
			apply: setting(func(s *voice.Settings, d int) {
				s.VelMin += d
				s.VelMax = max(s.VelMax, s.VelMin)
			}),
			learn: func(e *voice.Engine) { e.Learn(voice.LearnVelMin) },
		},
		{
			name:  "vel max",
			value: intValue(func(s voice.Settings) int { return s.VelMax }),
			apply: setting(func(s *voice.Settings, d int) {
				s.VelMax += d
				s.VelMin = min(s.VelMin, s.VelMax)
			}),
			learn: func(e *voice.Engine) { e.Learn(voice.LearnVelMax) },
		},
		{
			name:  "bend down",
			value: intValue(func(s voice.Settings) int { return s.BendDown }),
			apply: setting(func(s *voice.Settings, d int) { s.BendDown += d }),
		},
		{
			name:  "bend up",
			value: intValue(func(s voice.Settings) int { return s.BendUp }),
			apply: setting(func(s *voice.Settings, d int) { s.BendUp += d }),
		},
		{
			name:  "mpe bend",
			value: intValue(func(s voice.Settings) int { return s.MPEBendRange }),
			apply: setting(func(s *voice.Settings, d int) { s.MPEBendRange += d }),
		},
		{
			name:  "bend out",
			value: func(s voice.Settings) string { return onOff(s.MPEBendOut) },
			apply: setting(func(s *voice.Settings, _ int) { s.MPEBendOut = !s.MPEBendOut }),
		},
		{
			name:  "transpose",
			value: intValue(func(s voice.Settings) int { return s.Transpose }),
			apply: setting(func(s *voice.Settings, d int) { s.Transpose += d }),
		},
		{
			name:  "drift",
			value: func(s voice.Settings) string { return fmt.Sprintf("%d ct", s.DriftCents) },
			apply: setting(func(s *voice.Settings, d int) { s.DriftCents += d }),
		},
		{
			name:  "mpe y",
			value: func(s voice.Settings) string { return ccName(s.MPEYCC) },
			apply: setting(func(s *voice.Settings, d int) { s.MPEYCC += d }),
		},
		{
			name:  "mpe z",
			value: func(s voice.Settings) string { return ccName(s.MPEZCC) },
			apply: setting(func(s *voice.Settings, d int) { s.MPEZCC += d }),
		},
	}

	for i := 0; i < voice.NumAux; i++ {
		slot := i
		ps = append(ps, param{
			name:  fmt.Sprintf("aux %d", slot+1),
			value: func(s voice.Settings) string { return widgets.BindingName(s.AuxCCs[slot]) },
			apply: setting(func(s *voice.Settings, d int) { s.AuxCCs[slot] += d }),
			learn: func(e *voice.Engine) { e.LearnAux(slot) },
		})
	}

	return append(ps,
		param{
			name:  "master ch",
			value: func(s voice.Settings) string { return strconv.Itoa(s.MasterChannel + 1) },
			apply: setting(func(s *voice.Settings, d int) { s.MasterChannel += d }),
		},
		param{
			name:  "sustain",
			value: func(s voice.Settings) string { return onOff(s.SustainHold) },
			apply: setting(func(s *voice.Settings, _ int) { s.SustainHold = !s.SustainHold }),
		},
		param{
			name:  "retrigger",
			value: func(s voice.Settings) string { return onOff(s.Retrigger) },
			apply: setting(func(s *voice.Settings, _ int) { s.Retrigger = !s.Retrigger }),
		},
	)
}
