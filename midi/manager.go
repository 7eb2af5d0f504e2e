package midi

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"go-polycv/debug"
)

// DeviceEvent is emitted when inputs connect/disconnect
type DeviceEvent struct {
	Type       DeviceEventType
	Controller Controller
	ID         string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

func (t DeviceEventType) String() string {
	if t == DeviceConnected {
		return "connected"
	}
	return "disconnected"
}

// ErrPortsTimeout is returned when the driver does not answer a port listing
var ErrPortsTimeout = errors.New("midi port listing timed out")

// DeviceManager handles hot-plug detection of MIDI inputs. Every input whose
// port name matches the filter is opened, and all of them feed one message
// channel.
type DeviceManager struct {
	filter      string
	controllers map[string]Controller
	mu          sync.RWMutex
	events      chan DeviceEvent
	messages    chan Message
	pollRate    time.Duration
}

// NewDeviceManager creates a device manager. An empty filter accepts every
// input port; otherwise the port name must contain it (case-insensitive).
func NewDeviceManager(filter string, buffer int) *DeviceManager {
	if buffer <= 0 {
		buffer = 256
	}
	return &DeviceManager{
		filter:      filter,
		controllers: make(map[string]Controller),
		events:      make(chan DeviceEvent, 16),
		messages:    make(chan Message, buffer),
		pollRate:    time.Second,
	}
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Messages returns the merged message stream of every open input
func (dm *DeviceManager) Messages() <-chan Message {
	return dm.messages
}

// Controllers returns a snapshot of connected inputs
func (dm *DeviceManager) Controllers() map[string]Controller {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	copy := make(map[string]Controller, len(dm.controllers))
	for k, v := range dm.controllers {
		copy[k] = v
	}
	return copy
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

// InPorts lists the input ports, giving up after timeout (CoreMIDI can hang)
func InPorts(timeout time.Duration) ([]drivers.In, error) {
	ch := make(chan []drivers.In, 1)
	go func() {
		ch <- gomidi.GetInPorts()
	}()

	select {
	case ins := <-ch:
		return ins, nil
	case <-time.After(timeout):
		return nil, ErrPortsTimeout
	}
}

func (dm *DeviceManager) scan() {
	inPorts, err := InPorts(3 * time.Second)
	if err != nil {
		// User needs to run: sudo killall coreaudiod midiserver
		debug.Log("midi", "scan: %v", err)
		return
	}

	seenIDs := make(map[string]bool)

	for _, inPort := range inPorts {
		id := inPort.String()
		if !matchPort(id, dm.filter) {
			continue
		}
		seenIDs[id] = true

		dm.mu.RLock()
		_, exists := dm.controllers[id]
		dm.mu.RUnlock()
		if exists {
			continue
		}

		kb, err := NewKeyboardController(id, inPort, dm.messages)
		if err != nil {
			debug.Log("midi", "%v", err)
			continue
		}

		dm.mu.Lock()
		dm.controllers[id] = kb
		dm.mu.Unlock()

		debug.Log("midi", "connected %q (%s)", id, kb.Kind())
		dm.emit(DeviceEvent{Type: DeviceConnected, Controller: kb, ID: id})
	}

	dm.mu.Lock()
	var toRemove []string
	for id := range dm.controllers {
		if !seenIDs[id] {
			toRemove = append(toRemove, id)
		}
	}
	for _, id := range toRemove {
		c := dm.controllers[id]
		c.Close()
		delete(dm.controllers, id)
		debug.Log("midi", "disconnected %q", id)
		dm.emit(DeviceEvent{Type: DeviceDisconnected, ID: id})
	}
	dm.mu.Unlock()
}

func (dm *DeviceManager) emit(ev DeviceEvent) {
	select {
	case dm.events <- ev:
	default:
		debug.Log("midi", "event queue full, dropped %s %q", ev.Type, ev.ID)
	}
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, c := range dm.controllers {
		c.Close()
	}
	dm.controllers = make(map[string]Controller)
}

// matchPort reports whether a port name passes the filter
func matchPort(name, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(filter))
}
