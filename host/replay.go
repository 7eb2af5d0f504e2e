package host

import (
	"time"

	"go-polycv/midi"
	"go-polycv/voice"
)

// Replay feeds timed messages through the engine at a fixed cycle length
// and calls onFrame after every cycle, continuing for tail after the last
// message. It drives the engine itself, so Run must not be active.
func (h *Host) Replay(msgs []midi.TimedMessage, cycle, tail time.Duration, onFrame func(at time.Duration, f voice.Frame)) {
	if cycle <= 0 {
		cycle = h.rate
	}
	var end time.Duration
	if n := len(msgs); n > 0 {
		end = msgs[n-1].At
	}
	end += tail

	dt := float32(cycle.Seconds())
	next := 0
	for at := time.Duration(0); at <= end; at += cycle {
		for next < len(msgs) && msgs[next].At <= at {
			h.engine.Handle(msgs[next].Message)
			next++
		}
		f := h.Step(dt)
		if onFrame != nil {
			onFrame(at, f)
		}
	}
}
