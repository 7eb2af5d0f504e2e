package midi

import "fmt"

// MIDI status nibbles
const (
	NoteOff           uint8 = 0x8
	NoteOn            uint8 = 0x9
	PolyAftertouch    uint8 = 0xA
	ControlChange     uint8 = 0xB
	ChannelAftertouch uint8 = 0xD
	PitchBend         uint8 = 0xE
)

// Controller numbers with fixed meaning in the converter
const (
	CCModulation uint8 = 1
	CCBreath     uint8 = 2
	CCExpression uint8 = 11
	CCSustain    uint8 = 64
	CCTimbre     uint8 = 74 // MPE Y
	CCPlusLSB    uint8 = 87 // MPE+ low byte for the next Y/Z value
)

// DefaultReleaseVelocity is reported when a zero-velocity note-on ends a note
const DefaultReleaseVelocity uint8 = 64

// Message is a parsed channel voice message
type Message struct {
	Status  uint8 // high nibble: NoteOn, NoteOff, CC...
	Channel uint8 // 0-15
	Data1   uint8 // note, controller, pressure, bend LSB
	Data2   uint8 // velocity, value, bend MSB
}

// Bend returns the 14-bit pitch bend centred on zero (-8192..8191)
func (m Message) Bend() int16 {
	return (int16(m.Data2)<<7 | int16(m.Data1)) - 8192
}

func NewNoteOn(ch, note, vel uint8) Message {
	return Message{Status: NoteOn, Channel: ch & 0x0f, Data1: note & 0x7f, Data2: vel & 0x7f}
}

func NewNoteOff(ch, note, vel uint8) Message {
	return Message{Status: NoteOff, Channel: ch & 0x0f, Data1: note & 0x7f, Data2: vel & 0x7f}
}

func NewCC(ch, cc, val uint8) Message {
	return Message{Status: ControlChange, Channel: ch & 0x0f, Data1: cc & 0x7f, Data2: val & 0x7f}
}

func NewPolyAftertouch(ch, note, pressure uint8) Message {
	return Message{Status: PolyAftertouch, Channel: ch & 0x0f, Data1: note & 0x7f, Data2: pressure & 0x7f}
}

func NewChannelAftertouch(ch, pressure uint8) Message {
	return Message{Status: ChannelAftertouch, Channel: ch & 0x0f, Data1: pressure & 0x7f}
}

// NewPitchBend builds a bend message from a centred value (-8192..8191)
func NewPitchBend(ch uint8, bend int16) Message {
	if bend < -8192 {
		bend = -8192
	}
	if bend > 8191 {
		bend = 8191
	}
	abs := uint16(int32(bend) + 8192)
	return Message{Status: PitchBend, Channel: ch & 0x0f, Data1: uint8(abs & 0x7f), Data2: uint8(abs >> 7)}
}

func (m Message) String() string {
	switch m.Status {
	case NoteOn:
		return fmt.Sprintf("ch%-2d note-on  %3d vel %3d", m.Channel+1, m.Data1, m.Data2)
	case NoteOff:
		return fmt.Sprintf("ch%-2d note-off %3d vel %3d", m.Channel+1, m.Data1, m.Data2)
	case ControlChange:
		return fmt.Sprintf("ch%-2d cc %3d = %3d", m.Channel+1, m.Data1, m.Data2)
	case PolyAftertouch:
		return fmt.Sprintf("ch%-2d poly-at %3d = %3d", m.Channel+1, m.Data1, m.Data2)
	case ChannelAftertouch:
		return fmt.Sprintf("ch%-2d pressure %3d", m.Channel+1, m.Data1)
	case PitchBend:
		return fmt.Sprintf("ch%-2d bend %+5d", m.Channel+1, m.Bend())
	}
	return fmt.Sprintf("status %#x ch%d %d %d", m.Status, m.Channel+1, m.Data1, m.Data2)
}
