package voice

// NoteEntry caches the last known state of one MIDI note number
type NoteEntry struct {
	Velocity   uint8
	Aftertouch uint8
	Release    uint8
}

// NoteTable is indexed by note number and knows nothing about voices
type NoteTable [128]NoteEntry

// NoteOn records the strike velocity for a note
func (t *NoteTable) NoteOn(note, velocity uint8) {
	e := &t[note&0x7f]
	e.Velocity = velocity
	e.Aftertouch = 0
}

// NoteOff records the release velocity and clears the held values
func (t *NoteTable) NoteOff(note, releaseVelocity uint8) {
	e := &t[note&0x7f]
	e.Velocity = 0
	e.Aftertouch = 0
	e.Release = releaseVelocity
}

// Aftertouch records polyphonic key pressure
func (t *NoteTable) Aftertouch(note, value uint8) {
	t[note&0x7f].Aftertouch = value
}

// Entry returns a copy of the entry for a note
func (t *NoteTable) Entry(note uint8) NoteEntry {
	return t[note&0x7f]
}

// Clear zeroes every entry
func (t *NoteTable) Clear() {
	*t = NoteTable{}
}
