package voice

import (
	"go-polycv/debug"
	"go-polycv/midi"
)

// Engine owns all allocation state: note table, cache stacks, voice pool,
// pedal, learn flags and continuous controller values. It is driven from a
// single goroutine (see package host); nothing here is safe for concurrent
// use.
type Engine struct {
	settings Settings
	policy   Policy
	rng      Rand

	notes     NoteTable
	pool      Pool
	cached    NoteStack
	cachedMPE [16]NoteStack
	pedal     bool
	rewalk    bool // Reassign: keys released under the pedal

	learnNote LearnTarget
	learnAux  int // 1..NumAux, 0 = off

	// master channel controllers
	masterBend     int16
	masterPressure uint8
	aux            [NumAux]uint8
	plusLSB        [16]uint8

	retrig     [MaxVoices]Pulse
	xSmooth    [MaxVoices]Smoother
	ySmooth    [MaxVoices]Smoother
	zSmooth    [MaxVoices]Smoother
	auxSmooth  [NumAux]Smoother
	bendSmooth Smoother

	activity int
}

// New creates an engine with the given settings. rng drives voice drift;
// nil gives zero drift offsets.
func New(s Settings, rng Rand) *Engine {
	if rng == nil {
		rng = fixedRand(500)
	}
	s.Clamp()
	e := &Engine{
		settings: s,
		policy:   PolicyFor(s.Mode),
		rng:      rng,
	}
	e.bendSmooth.Rate = SmoothingRate
	for i := range e.xSmooth {
		e.xSmooth[i].Rate = SmoothingRate
		e.ySmooth[i].Rate = SmoothingRate
		e.zSmooth[i].Rate = SmoothingRate
	}
	for i := range e.auxSmooth {
		e.auxSmooth[i].Rate = SmoothingRate
	}
	e.Reset()
	return e
}

// Reset clears every gate, both caches, the cursors, the pedal and pending
// learn requests. Configuration is kept.
func (e *Engine) Reset() {
	e.pool.Resize(e.settings.Voices)
	e.cached.Clear()
	for i := range e.cachedMPE {
		e.cachedMPE[i].Clear()
	}
	e.pedal = false
	e.rewalk = false
	e.learnNote = LearnNone
	e.learnAux = 0
	e.aux = [NumAux]uint8{}
	e.plusLSB = [16]uint8{}
	for i := range e.retrig {
		e.retrig[i].Reset()
		e.xSmooth[i].Reset()
		e.ySmooth[i].Reset()
		e.zSmooth[i].Reset()
	}
	debug.Log("engine", "reset mode=%s voices=%d", e.settings.Mode, e.settings.Voices)
}

// Settings returns a copy of the current configuration
func (e *Engine) Settings() Settings {
	return e.settings
}

// Configure replaces the configuration. A change of mode or voice count
// forces a full reset; everything else takes effect on the next event.
func (e *Engine) Configure(s Settings) {
	s.Clamp()
	reset := s.Mode != e.settings.Mode || s.Voices != e.settings.Voices
	e.settings = s
	e.policy = PolicyFor(s.Mode)
	if reset {
		e.Reset()
	}
}

// Mode returns the active allocation mode
func (e *Engine) Mode() Mode {
	return e.settings.Mode
}

// SetMode switches policy. Always resets, even for the same mode.
func (e *Engine) SetMode(m Mode) {
	if m < 0 || m >= NumModes {
		return
	}
	e.settings.Mode = m
	e.settings.Clamp()
	e.policy = PolicyFor(e.settings.Mode)
	e.Reset()
}

// StepMode moves to the next or previous mode, see Mode.Step
func (e *Engine) StepMode(dir int) {
	e.SetMode(e.settings.Mode.Step(dir, e.settings.Voices))
}

// SetVoices resizes the pool. Dropping to one voice leaves the rotating
// modes for Unison.
func (e *Engine) SetVoices(n int) {
	e.settings.Voices = n
	e.settings.Clamp()
	e.policy = PolicyFor(e.settings.Mode)
	e.Reset()
}

// Learn arms a range bound to be set by the next note-on
func (e *Engine) Learn(t LearnTarget) {
	e.learnNote = t
}

// LearnAux arms aux output slot (0-based) to bind the next controller,
// channel pressure or pitch bend message. A negative slot disarms.
func (e *Engine) LearnAux(slot int) {
	if slot < 0 || slot >= NumAux {
		e.learnAux = 0
		return
	}
	e.learnAux = slot + 1
}

// Learning returns the pending note learn target and aux slot (-1 if none)
func (e *Engine) Learning() (LearnTarget, int) {
	return e.learnNote, e.learnAux - 1
}

// Handle dispatches one inbound message
func (e *Engine) Handle(msg midi.Message) {
	switch msg.Status {
	case midi.NoteOn:
		e.NoteOn(msg.Channel, msg.Data1, msg.Data2)
	case midi.NoteOff:
		e.NoteOff(msg.Channel, msg.Data1, msg.Data2)
	case midi.PolyAftertouch:
		if e.settings.Mode.IsMPE() {
			return
		}
		e.notes.Aftertouch(msg.Data1, msg.Data2)
		e.activity = int(msg.Data2)
	case midi.ChannelAftertouch:
		e.channelPressure(msg.Channel, msg.Data1)
	case midi.PitchBend:
		e.pitchBend(msg.Channel, msg.Bend())
	case midi.ControlChange:
		e.controlChange(msg.Channel, msg.Data1, msg.Data2)
	}
}

// NoteOn runs the learn capture and range filter, then hands the note to the
// policy. Velocity 0 is a note-off.
func (e *Engine) NoteOn(ch, note, vel uint8) {
	if vel == 0 {
		e.NoteOff(ch, note, midi.DefaultReleaseVelocity)
		return
	}
	if e.settings.Mode.IsMPE() && int(ch) == e.settings.MasterChannel {
		return
	}
	if e.learnNote != LearnNone {
		e.settings.learn(e.learnNote, note, vel)
		debug.Log("learn", "%s <- note=%d vel=%d", e.learnNote, note, vel)
		e.learnNote = LearnNone
		return
	}
	if !e.settings.accepts(note, vel) {
		return
	}
	e.notes.NoteOn(note, vel)
	e.policy.NoteOn(e, ch&0x0f, note&0x7f, vel)
	e.activity = int(vel)
}

// NoteOff hands a release to the policy
func (e *Engine) NoteOff(ch, note, vel uint8) {
	if e.settings.Mode.IsMPE() && int(ch) == e.settings.MasterChannel {
		return
	}
	e.notes.NoteOff(note, vel)
	e.policy.NoteOff(e, ch&0x0f, note&0x7f, vel)
	e.activity = int(vel)
}

func (e *Engine) channelPressure(ch, value uint8) {
	if e.learnAux > 0 {
		e.bindAux(BindPressure)
		return
	}
	e.activity = int(value)
	if !e.settings.Mode.IsMPE() || int(ch) == e.settings.MasterChannel {
		e.masterPressure = value
		return
	}
	if int(ch) >= e.pool.Size() {
		return
	}
	v := e.pool.Voice(int(ch))
	if e.settings.Mode == ModeMPEPlus {
		v.Z = uint16(value)<<7 | uint16(e.plusLSB[ch])
		e.plusLSB[ch] = 0
		return
	}
	if e.settings.MPEZCC == BindPressure {
		v.Z = uint16(value) << 7
	}
	if e.settings.MPEYCC == BindPressure {
		v.Y = uint16(value) << 7
	}
}

func (e *Engine) pitchBend(ch uint8, bend int16) {
	if e.learnAux > 0 {
		e.bindAux(BindBend)
		return
	}
	e.activity = int(bend>>7) + 64
	if !e.settings.Mode.IsMPE() || int(ch) == e.settings.MasterChannel {
		e.masterBend = bend
		return
	}
	if int(ch) < e.pool.Size() {
		e.pool.Voice(int(ch)).XBend = bend
	}
}

func (e *Engine) controlChange(ch, cc, value uint8) {
	if e.learnAux > 0 {
		e.bindAux(int(cc))
		return
	}
	e.activity = int(value)
	if !e.settings.Mode.IsMPE() || int(ch) == e.settings.MasterChannel {
		e.masterCC(cc, value)
		return
	}
	if int(ch) >= e.pool.Size() {
		return
	}
	v := e.pool.Voice(int(ch))
	if e.settings.Mode == ModeMPEPlus {
		switch cc {
		case midi.CCPlusLSB:
			e.plusLSB[ch] = value
		case midi.CCTimbre:
			v.Y = uint16(value)<<7 | uint16(e.plusLSB[ch])
			e.plusLSB[ch] = 0
		}
		return
	}
	switch int(cc) {
	case e.settings.MPEYCC:
		v.Y = uint16(value) << 7
	case e.settings.MPEZCC:
		v.Z = uint16(value) << 7
	}
}

// masterCC handles sustain and the aux bindings
func (e *Engine) masterCC(cc, value uint8) {
	if cc == midi.CCSustain {
		if value >= 64 {
			e.PedalDown()
		} else {
			e.PedalUp()
		}
	}
	for i, bound := range e.settings.AuxCCs {
		if bound == int(cc) {
			e.aux[i] = value
			return
		}
	}
}

func (e *Engine) bindAux(binding int) {
	slot := e.learnAux - 1
	e.settings.AuxCCs[slot] = binding
	e.learnAux = 0
	debug.Log("learn", "aux %d <- %d", slot, binding)
}

// Voice returns a copy of voice i
func (e *Engine) Voice(i int) Voice {
	return *e.pool.Voice(i)
}

// Voices returns a copy of the active voices
func (e *Engine) Voices() []Voice {
	return e.pool.Voices()
}

// Cursors returns the rotation and steal cursors
func (e *Engine) Cursors() (rotate, steal int) {
	return e.pool.Rotate, e.pool.Steal
}

// Cached returns the shared stack, oldest first
func (e *Engine) Cached() []uint8 {
	return e.cached.Notes()
}

// ChannelCached returns the MPE stack of one channel, oldest first
func (e *Engine) ChannelCached(ch int) []uint8 {
	return e.cachedMPE[ch&0x0f].Notes()
}

// Note returns the note table entry for a note number
func (e *Engine) Note(note uint8) NoteEntry {
	return e.notes.Entry(note)
}

// Activity returns the data value of the last handled message
func (e *Engine) Activity() int {
	return e.activity
}
