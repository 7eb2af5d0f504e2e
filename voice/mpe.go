package voice

// mpePedalChannels is how many channels the pedal snapshot covers in MPE
// modes. Only the lower zone is held.
const mpePedalChannels = 8

// mpePolicy maps each member channel straight onto the voice with the same
// index. MPE+ only changes how Y and Z are decoded, see Engine.controlChange.
type mpePolicy struct {
	plus bool
}

func (p mpePolicy) Mode() Mode {
	if p.plus {
		return ModeMPEPlus
	}
	return ModeMPE
}

func (mpePolicy) NoteOn(e *Engine, ch, note, vel uint8) {
	idx := int(ch)
	if !e.memberChannel(idx) {
		return
	}
	// legato on the same channel: keep the previous note for later
	if v := e.pool.Voice(idx); v.Gate {
		e.cachedMPE[idx].Push(v.Note)
	}
	e.pool.Rotate = idx
	e.assign(idx, note, vel)
}

func (mpePolicy) NoteOff(e *Engine, ch, note, vel uint8) {
	idx := int(ch)
	if !e.memberChannel(idx) {
		return
	}
	stack := &e.cachedMPE[idx]
	stack.Remove(note)

	v := e.pool.Voice(idx)
	if !v.Gate || v.Note != note {
		return
	}
	switch {
	case v.PedalHeld:
		v.Gate = false
	case !stack.Empty():
		v.Note, _ = stack.Pop()
	default:
		v.Gate = false
	}
	v.ReleaseVelocity = vel
}

func (mpePolicy) PedalDown(e *Engine) {
	snapshotPedal(e, min(mpePedalChannels, e.pool.Size()))
}

func (mpePolicy) PedalUp(e *Engine) {
	for i := 0; i < e.pool.Size(); i++ {
		v := e.pool.Voice(i)
		v.PedalHeld = false
		if v.Gate {
			continue
		}
		if note, ok := e.cachedMPE[i].Pop(); ok {
			v.Note = note
			v.Gate = true
		}
	}
}

// memberChannel reports whether a channel drives a voice in MPE modes
func (e *Engine) memberChannel(ch int) bool {
	return ch != e.settings.MasterChannel && ch < e.pool.Size()
}
