package voice

// reassignPolicy keeps every held note on the shared stack in press order.
// Voice i mirrors stack position i: a release re-walks the stack so later
// notes slide down into the freed slots.
type reassignPolicy struct{}

func (reassignPolicy) Mode() Mode { return ModeReassign }

// NoteOn appends a new key. A key struck again while still held keeps its
// stack position and voice, only the velocity is refreshed.
func (reassignPolicy) NoteOn(e *Engine, _, note, vel uint8) {
	if e.cached.Contains(note) {
		for i := 0; i < e.pool.Size(); i++ {
			if v := e.pool.Voice(i); v.Gate && v.Note == note {
				e.assign(i, note, vel)
				return
			}
		}
		return
	}
	e.cached.Push(note)
	idx := e.nextVoice(-1, false)
	e.pool.Rotate = idx
	e.assign(idx, note, vel)
}

func (reassignPolicy) NoteOff(e *Engine, _, note, vel uint8) {
	e.cached.Remove(note)
	if e.pedal {
		e.rewalk = true
	}
	held := e.cached.Len()
	for i := 0; i < e.pool.Size(); i++ {
		v := e.pool.Voice(i)
		if i < held {
			// a pedal-held voice keeps its sustained note
			if !v.PedalHeld {
				v.Note = e.cached.At(i)
				v.Gate = true
			}
			v.PedalHeld = e.pedal
			continue
		}
		v.Gate = false
		v.ReleaseVelocity = vel
	}
}

func (reassignPolicy) PedalDown(e *Engine) {
	snapshotPedal(e, e.pool.Size())
}

// PedalUp drops the holds. If keys were released under the pedal, the
// sustained voices are out of step with the stack, so every voice is
// rewritten from its stack position.
func (reassignPolicy) PedalUp(e *Engine) {
	clearPedal(e)
	if !e.rewalk {
		return
	}
	e.rewalk = false
	held := e.cached.Len()
	for i := 0; i < e.pool.Size(); i++ {
		v := e.pool.Voice(i)
		if i < held {
			v.Note = e.cached.At(i)
			v.Gate = true
			continue
		}
		v.Gate = false
	}
}
