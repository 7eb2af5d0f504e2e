package host

import (
	"context"
	"sync"
	"time"

	"go-polycv/debug"
	"go-polycv/midi"
	"go-polycv/voice"
)

// uiFPS is how often UpdateChan is signalled
const uiFPS = 30

// maxStep caps dt after a stall so smoothers and pulses don't jump
const maxStep = 0.1

// Host owns a voice.Engine and runs it on one goroutine. Messages and
// configuration changes from other goroutines are queued and applied at the
// start of the next cycle, before the frame is projected.
type Host struct {
	engine *voice.Engine
	in     <-chan midi.Message // from the device manager, may be nil
	submit chan midi.Message
	ops    chan func(*voice.Engine)
	rate   time.Duration

	mu       sync.RWMutex
	frame    voice.Frame
	settings voice.Settings
	learning learnState
	cycles   uint64
	dropped  int

	uiEvery int

	// Notify TUI of updates
	UpdateChan chan struct{}
}

type learnState struct {
	target voice.LearnTarget
	aux    int
}

// New wraps e. in is drained every cycle alongside Submit; cycleHz sets the
// control rate used by Run.
func New(e *voice.Engine, in <-chan midi.Message, cycleHz int) *Host {
	if cycleHz <= 0 {
		cycleHz = 1000
	}
	h := &Host{
		engine:     e,
		in:         in,
		submit:     make(chan midi.Message, 1024),
		ops:        make(chan func(*voice.Engine), 64),
		rate:       time.Second / time.Duration(cycleHz),
		uiEvery:    max(1, cycleHz/uiFPS),
		UpdateChan: make(chan struct{}, 1),
	}
	h.settings = e.Settings()
	h.learning.aux = -1
	return h
}

// Submit queues a message for the next cycle. It reports false when the
// queue is full and the message was dropped.
func (h *Host) Submit(msg midi.Message) bool {
	select {
	case h.submit <- msg:
		return true
	default:
		h.mu.Lock()
		h.dropped++
		h.mu.Unlock()
		debug.LogEvery(100, "host", "submit queue full")
		return false
	}
}

// Do queues fn to run against the engine at the start of the next cycle.
// fn runs on the host goroutine and must not retain the engine. It reports
// false when the queue is full and fn was dropped.
func (h *Host) Do(fn func(*voice.Engine)) bool {
	select {
	case h.ops <- fn:
		return true
	default:
		h.mu.Lock()
		h.dropped++
		h.mu.Unlock()
		debug.LogEvery(10, "host", "op queue full")
		return false
	}
}

// Frame returns the last projected frame
func (h *Host) Frame() voice.Frame {
	h.mu.RLock()
	defer h.mu.RUnlock()
	f := h.frame
	f.Voices = append([]voice.VoiceOut(nil), h.frame.Voices...)
	return f
}

// Settings returns the engine configuration as of the last cycle
func (h *Host) Settings() voice.Settings {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.settings
}

// Learning returns the pending learn requests as of the last cycle
func (h *Host) Learning() (voice.LearnTarget, int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.learning.target, h.learning.aux
}

// Stats returns the cycle count and the number of dropped submissions and ops
func (h *Host) Stats() (cycles uint64, dropped int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cycles, h.dropped
}

// Run drives the engine at the control rate until ctx is cancelled
// (blocking - run in goroutine)
func (h *Host) Run(ctx context.Context) {
	ticker := time.NewTicker(h.rate)
	defer ticker.Stop()

	debug.Log("host", "running at %v per cycle", h.rate)
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			debug.Log("host", "stopped")
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if dt > maxStep {
				debug.Log("host", "stall of %.3fs", dt)
				dt = maxStep
			}
			h.Step(float32(dt))
		}
	}
}

// Step runs one control cycle: every pending message, then every queued
// configuration change, then the projection. Only one goroutine may call
// Step; Run does so on its own.
func (h *Host) Step(dt float32) voice.Frame {
	h.drain()
	h.apply()

	f := h.engine.Process(dt)
	target, aux := h.engine.Learning()

	h.mu.Lock()
	h.frame = f
	h.settings = h.engine.Settings()
	h.learning = learnState{target: target, aux: aux}
	h.cycles++
	notify := h.cycles%uint64(h.uiEvery) == 0
	h.mu.Unlock()

	if notify {
		h.notifyUpdate()
	}
	return f
}

func (h *Host) drain() {
	for {
		select {
		case msg := <-h.in:
			h.engine.Handle(msg)
			continue
		case msg := <-h.submit:
			h.engine.Handle(msg)
			continue
		default:
		}
		return
	}
}

func (h *Host) apply() {
	for {
		select {
		case fn := <-h.ops:
			fn(h.engine)
			continue
		default:
		}
		return
	}
}

func (h *Host) notifyUpdate() {
	select {
	case h.UpdateChan <- struct{}{}:
	default:
	}
}
