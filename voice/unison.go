package voice

// unisonPolicy stacks every voice on one note: the last pressed, the lowest
// held or the highest held, depending on pick. The shared stack holds every
// key that is down.
type unisonPolicy struct {
	mode Mode
	pick func(*NoteStack) (uint8, bool)
}

func (u unisonPolicy) Mode() Mode { return u.mode }

// NoteOn moves a key struck again while held to the top of the stack, so it
// is never stacked twice
func (u unisonPolicy) NoteOn(e *Engine, _, note, vel uint8) {
	e.cached.Remove(note)
	e.cached.Push(note)
	target, _ := u.pick(&e.cached)

	lead := e.pool.Voice(0)
	retrig := e.settings.Retrigger && lead.Sounding() && lead.Note != target
	for i := 0; i < e.pool.Size(); i++ {
		e.pool.Assign(i, target, vel, unisonDrift(e.rng, e.settings.DriftCents), e.pedal)
		if retrig {
			e.retrig[i].Trigger(RetriggerTime)
		}
	}
	e.pool.Rotate = 0
}

func (u unisonPolicy) NoteOff(e *Engine, _, note, vel uint8) {
	e.cached.Remove(note)
	target, ok := u.pick(&e.cached)
	if !ok {
		for i := 0; i < e.pool.Size(); i++ {
			e.pool.Release(i, vel)
		}
		return
	}

	changed := e.pool.Voice(0).Note != target
	retrig := e.settings.Retrigger && changed
	for i := 0; i < e.pool.Size(); i++ {
		v := e.pool.Voice(i)
		v.Note = target
		v.Gate = true
		v.ReleaseVelocity = vel
		if changed {
			v.Drift = unisonDrift(e.rng, e.settings.DriftCents)
		}
		if retrig {
			e.retrig[i].Trigger(RetriggerTime)
		}
	}
}

func (unisonPolicy) PedalDown(e *Engine) {
	snapshotPedal(e, e.pool.Size())
}

// PedalUp only drops the holds: the stack already is the set of held keys,
// so nothing needs to come back
func (unisonPolicy) PedalUp(e *Engine) {
	clearPedal(e)
}
