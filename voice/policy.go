package voice

// Policy decides which voice takes a note and how voices are released or
// refilled. There is one implementation per Mode; all state lives on the
// Engine so a policy can be swapped by a mode change followed by a reset.
type Policy interface {
	Mode() Mode
	NoteOn(e *Engine, channel, note, velocity uint8)
	NoteOff(e *Engine, channel, note, releaseVelocity uint8)
	PedalDown(e *Engine)
	PedalUp(e *Engine)
}

// PolicyFor returns the policy implementing m
func PolicyFor(m Mode) Policy {
	switch m {
	case ModeMPE:
		return mpePolicy{}
	case ModeMPEPlus:
		return mpePolicy{plus: true}
	case ModeRotate:
		return rotatePolicy{}
	case ModeReuse:
		return reusePolicy{}
	case ModeReset:
		return resetPolicy{}
	case ModeReassign:
		return reassignPolicy{}
	case ModeUnison:
		return unisonPolicy{mode: ModeUnison, pick: (*NoteStack).Top}
	case ModeUnisonLower:
		return unisonPolicy{mode: ModeUnisonLower, pick: (*NoteStack).Lowest}
	case ModeUnisonUpper:
		return unisonPolicy{mode: ModeUnisonUpper, pick: (*NoteStack).Highest}
	}
	return rotatePolicy{}
}

// snapshotPedal marks the first n voices as pedal-held if they are gated
func snapshotPedal(e *Engine, n int) {
	for i := 0; i < n; i++ {
		v := e.pool.Voice(i)
		v.PedalHeld = v.Gate
	}
}

// clearPedal drops the pedal hold on every active voice
func clearPedal(e *Engine) {
	for i := 0; i < e.pool.Size(); i++ {
		e.pool.Voice(i).PedalHeld = false
	}
}
