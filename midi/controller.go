package midi

import "strings"

// InputKind identifies how an input port is used
type InputKind int

const (
	InputUnknown InputKind = iota
	InputKeyboard
	InputMPE
)

func (k InputKind) String() string {
	switch k {
	case InputKeyboard:
		return "keyboard"
	case InputMPE:
		return "mpe"
	}
	return "unknown"
}

// Controller is an open MIDI input feeding converted messages into a sink
type Controller interface {
	ID() string
	Kind() InputKind

	// Dropped reports how many messages were lost because the sink was full
	Dropped() int

	Close() error
}

// KindForPort guesses the input kind from the port name. MPE controllers
// usually say so; the rest are treated as plain keyboards.
func KindForPort(name string) InputKind {
	n := strings.ToLower(name)
	for _, hint := range []string{"mpe", "seaboard", "linnstrument", "osmose", "continuum", "sensel"} {
		if strings.Contains(n, hint) {
			return InputMPE
		}
	}
	return InputKeyboard
}
