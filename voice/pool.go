package voice

const (
	// MaxVoices is the number of voice slots, one per MIDI channel
	MaxVoices = 16

	// DefaultNote is the note every voice falls back to on reset (C4)
	DefaultNote = 60
)

// Voice is one output slot
type Voice struct {
	Note            uint8
	Velocity        uint8
	ReleaseVelocity uint8
	Gate            bool
	PedalHeld       bool
	Drift           float32 // volts, rolled on every assignment

	// MPE dimensions, addressed by channel
	XBend int16  // -8192..8191
	Y     uint16 // 0..16383
	Z     uint16 // 0..16383
}

// Sounding reports whether the voice is gated or kept alive by the pedal
func (v *Voice) Sounding() bool {
	return v.Gate || v.PedalHeld
}

func (v *Voice) reset() {
	*v = Voice{Note: DefaultNote}
}

// Pool holds the voice slots plus the rotation and steal cursors.
// Only the first Size() voices take part in allocation.
type Pool struct {
	voices [MaxVoices]Voice
	size   int

	Rotate int // last voice chosen by allocation, -1 after reset
	Steal  int // last voice filled or stolen, -1 after reset
}

// NewPool creates a pool with n active voices
func NewPool(n int) *Pool {
	p := &Pool{}
	p.Resize(n)
	return p
}

// Resize changes the active voice count (clamped to 1..MaxVoices) and
// resets every voice and both cursors. Allocation state is only meaningful
// for a fixed size, so nothing survives a resize.
func (p *Pool) Resize(n int) {
	p.size = clampInt(n, 1, MaxVoices)
	p.Reset()
}

// Reset returns every voice to its default and rewinds the cursors
func (p *Pool) Reset() {
	for i := range p.voices {
		p.voices[i].reset()
	}
	p.Rotate = -1
	p.Steal = -1
}

// Size returns the number of active voices
func (p *Pool) Size() int {
	return p.size
}

// Voice returns the slot at index i
func (p *Pool) Voice(i int) *Voice {
	return &p.voices[i]
}

// Assign puts a note on voice i and opens its gate
func (p *Pool) Assign(i int, note, velocity uint8, drift float32, pedal bool) {
	v := &p.voices[i]
	v.Note = note
	v.Velocity = velocity
	v.Gate = true
	v.PedalHeld = pedal
	v.Drift = drift
}

// Release closes the gate of voice i. The note is kept.
func (p *Pool) Release(i int, releaseVelocity uint8) {
	v := &p.voices[i]
	v.Gate = false
	v.ReleaseVelocity = releaseVelocity
}

// Gated counts active voices with an open gate
func (p *Pool) Gated() int {
	n := 0
	for i := 0; i < p.size; i++ {
		if p.voices[i].Gate {
			n++
		}
	}
	return n
}

// Voices returns a copy of the active voices
func (p *Pool) Voices() []Voice {
	out := make([]Voice, p.size)
	copy(out, p.voices[:p.size])
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
