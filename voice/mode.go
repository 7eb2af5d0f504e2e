package voice

import "fmt"

// Mode selects the allocation policy
type Mode int

const (
	ModeMPE Mode = iota
	ModeMPEPlus
	ModeRotate
	ModeReuse
	ModeReset
	ModeReassign
	ModeUnison
	ModeUnisonLower
	ModeUnisonUpper
	NumModes
)

var modeNames = [NumModes]string{
	"mpe",
	"mpe-plus",
	"rotate",
	"reuse",
	"reset",
	"reassign",
	"unison",
	"unison-lower",
	"unison-upper",
}

var modeLabels = [NumModes]string{
	"M.P.E.",
	"M.P.E. Plus",
	"ROTATE",
	"REUSE",
	"RESET",
	"REASSIGN",
	"UNISON Last",
	"UNISON Lower",
	"UNISON Upper",
}

func (m Mode) String() string {
	if m < 0 || m >= NumModes {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// Label is the display name
func (m Mode) Label() string {
	if m < 0 || m >= NumModes {
		return m.String()
	}
	return modeLabels[m]
}

// IsMPE reports whether voices are addressed by channel
func (m Mode) IsMPE() bool {
	return m == ModeMPE || m == ModeMPEPlus
}

// IsUnison reports whether all voices share one note
func (m Mode) IsUnison() bool {
	return m >= ModeUnison && m <= ModeUnisonUpper
}

// ParseMode looks a mode up by its String name
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

func (m Mode) MarshalText() ([]byte, error) {
	if m < 0 || m >= NumModes {
		return nil, fmt.Errorf("invalid mode %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Step moves dir modes forward or back with wrap-around. A single-voice
// pool has nothing to rotate, so Rotate..Reassign are skipped there.
func (m Mode) Step(dir int, voices int) Mode {
	if dir == 0 {
		return m
	}
	next := m
	for {
		if dir > 0 {
			next++
			if next >= NumModes {
				next = ModeMPE
			}
		} else {
			next--
			if next < 0 {
				next = ModeUnisonUpper
			}
		}
		if voices > 1 || next.IsMPE() || next.IsUnison() {
			return next
		}
	}
}
