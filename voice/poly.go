package voice

// Rotate, Reuse and Reset share the free-voice scan and the steal cursor.
// They differ only in where the scan starts and whether an existing voice
// with the same note is reused.

type rotatePolicy struct{}

func (rotatePolicy) Mode() Mode { return ModeRotate }

func (rotatePolicy) NoteOn(e *Engine, _, note, vel uint8) {
	idx := e.nextVoice(e.pool.Rotate, true)
	e.pool.Rotate = idx
	e.assign(idx, note, vel)
}

func (rotatePolicy) NoteOff(e *Engine, _, note, vel uint8) { polyRelease(e, note, vel) }
func (rotatePolicy) PedalDown(e *Engine)                   { snapshotPedal(e, e.pool.Size()) }
func (rotatePolicy) PedalUp(e *Engine)                     { polyPedalUp(e) }

type reusePolicy struct{}

func (reusePolicy) Mode() Mode { return ModeReuse }

func (reusePolicy) NoteOn(e *Engine, _, note, vel uint8) {
	idx := -1
	for i := 0; i < e.pool.Size(); i++ {
		if e.pool.Voice(i).Note == note {
			idx = i
			break
		}
	}
	if idx < 0 {
		idx = e.nextVoice(e.pool.Rotate, true)
	}
	e.pool.Rotate = idx
	e.assign(idx, note, vel)
}

func (reusePolicy) NoteOff(e *Engine, _, note, vel uint8) { polyRelease(e, note, vel) }
func (reusePolicy) PedalDown(e *Engine)                   { snapshotPedal(e, e.pool.Size()) }
func (reusePolicy) PedalUp(e *Engine)                     { polyPedalUp(e) }

type resetPolicy struct{}

func (resetPolicy) Mode() Mode { return ModeReset }

func (resetPolicy) NoteOn(e *Engine, _, note, vel uint8) {
	idx := e.nextVoice(-1, true)
	e.pool.Rotate = idx
	e.assign(idx, note, vel)
}

func (resetPolicy) NoteOff(e *Engine, _, note, vel uint8) { polyRelease(e, note, vel) }
func (resetPolicy) PedalDown(e *Engine)                   { snapshotPedal(e, e.pool.Size()) }
func (resetPolicy) PedalUp(e *Engine)                     { polyPedalUp(e) }

// nextVoice scans forward from the voice after `from` for one that is
// neither gated nor pedal-held. A free hit also moves the steal cursor
// there. With every voice busy the steal cursor advances round-robin and
// its occupant is evicted; when cache is set a gated occupant's note is
// pushed onto the shared stack so it can come back later.
func (e *Engine) nextVoice(from int, cache bool) int {
	p := &e.pool
	n := p.Size()
	if from >= n {
		from = -1
	}

	idx := from
	for i := 0; i < n; i++ {
		idx++
		if idx >= n {
			idx = 0
		}
		if !p.Voice(idx).Sounding() {
			p.Steal = idx
			return idx
		}
	}

	p.Steal++
	if p.Steal >= n || p.Steal < 0 {
		p.Steal = 0
	}
	if v := p.Voice(p.Steal); cache && v.Gate {
		e.cached.Push(v.Note)
	}
	return p.Steal
}

// assign puts a note on one voice, firing a retrigger pulse when the voice
// was still sounding
func (e *Engine) assign(idx int, note, vel uint8) {
	v := e.pool.Voice(idx)
	if e.settings.Retrigger && v.Sounding() {
		e.retrig[idx].Trigger(RetriggerTime)
	}
	e.pool.Assign(idx, note, vel, polyDrift(e.rng, e.settings.DriftCents), e.pedal)
}

// polyRelease drops the note from the shared stack, then closes or refills
// every gated voice playing it. A pedal-held voice only loses its gate;
// otherwise the most recently stolen note still held comes back.
func polyRelease(e *Engine, note, vel uint8) {
	e.cached.Remove(note)
	for i := 0; i < e.pool.Size(); i++ {
		v := e.pool.Voice(i)
		if !v.Gate || v.Note != note {
			continue
		}
		switch {
		case v.PedalHeld:
			v.Gate = false
		case !e.cached.Empty():
			v.Note, _ = e.cached.Pop()
			v.Drift = polyDrift(e.rng, e.settings.DriftCents)
		default:
			v.Gate = false
		}
		v.ReleaseVelocity = vel
	}
}

// polyPedalUp clears the pedal holds and refills voices that went silent
// under the pedal with stolen notes that are still held
func polyPedalUp(e *Engine) {
	for i := 0; i < e.pool.Size(); i++ {
		v := e.pool.Voice(i)
		v.PedalHeld = false
		if v.Gate {
			continue
		}
		if note, ok := e.cached.Pop(); ok {
			v.Note = note
			v.Gate = true
			v.Drift = polyDrift(e.rng, e.settings.DriftCents)
		}
	}
}
