package voice

// RetriggerTime is how long a retriggered gate is held low, in seconds
const RetriggerTime = 1e-3

// Pulse is a countdown that stays high for a fixed time after Trigger
type Pulse struct {
	remaining float32
}

// Trigger starts or extends the pulse
func (p *Pulse) Trigger(duration float32) {
	if duration > p.remaining {
		p.remaining = duration
	}
}

// Process advances the pulse by dt seconds and reports whether it was high
func (p *Pulse) Process(dt float32) bool {
	if p.remaining > 0 {
		p.remaining -= dt
		return true
	}
	return false
}

// Active reports whether the pulse is still high
func (p *Pulse) Active() bool {
	return p.remaining > 0
}

func (p *Pulse) Reset() {
	p.remaining = 0
}
