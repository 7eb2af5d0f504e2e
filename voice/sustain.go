package voice

// PedalDown engages the sustain pedal. Voices gated at this moment are
// marked pedal-held; a repeated pedal-down while held changes nothing.
func (e *Engine) PedalDown() {
	if e.pedal {
		return
	}
	e.pedal = true
	e.policy.PedalDown(e)
}

// PedalUp releases the pedal, clears every hold, and lets the policy bring
// back notes that were displaced while it was down.
func (e *Engine) PedalUp() {
	if !e.pedal {
		return
	}
	e.pedal = false
	e.policy.PedalUp(e)
	clearPedal(e)
}

// Pedal reports whether the sustain pedal is down
func (e *Engine) Pedal() bool {
	return e.pedal
}
