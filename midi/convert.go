package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"
)

// FromGomidi converts a channel voice message from the driver layer.
// Anything the engine has no use for (sysex, realtime, program change)
// reports false.
func FromGomidi(msg gomidi.Message) (Message, bool) {
	var channel, a, b uint8
	switch {
	case msg.GetNoteOn(&channel, &a, &b):
		return NewNoteOn(channel, a, b), true
	case msg.GetNoteOff(&channel, &a, &b):
		return NewNoteOff(channel, a, b), true
	case msg.GetControlChange(&channel, &a, &b):
		return NewCC(channel, a, b), true
	case msg.GetPolyAfterTouch(&channel, &a, &b):
		return NewPolyAftertouch(channel, a, b), true
	case msg.GetAfterTouch(&channel, &a):
		return NewChannelAftertouch(channel, a), true
	}

	var rel int16
	var abs uint16
	if msg.GetPitchBend(&channel, &rel, &abs) {
		return NewPitchBend(channel, rel), true
	}
	return Message{}, false
}

// ToGomidi converts back to the driver representation, for forwarding and
// for the monitor command. Unknown statuses give nil.
func ToGomidi(m Message) gomidi.Message {
	switch m.Status {
	case NoteOn:
		return gomidi.NoteOn(m.Channel, m.Data1, m.Data2)
	case NoteOff:
		return gomidi.NoteOffVelocity(m.Channel, m.Data1, m.Data2)
	case ControlChange:
		return gomidi.ControlChange(m.Channel, m.Data1, m.Data2)
	case PolyAftertouch:
		return gomidi.PolyAfterTouch(m.Channel, m.Data1, m.Data2)
	case ChannelAftertouch:
		return gomidi.AfterTouch(m.Channel, m.Data1)
	case PitchBend:
		return gomidi.Pitchbend(m.Channel, m.Bend())
	}
	return nil
}
