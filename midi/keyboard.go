package midi

import (
	"sync/atomic"

	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"go-polycv/debug"
)

// KeyboardController listens on one input port and forwards every channel
// voice message to a shared sink
type KeyboardController struct {
	id       string
	kind     InputKind
	inPort   drivers.In
	stopFunc func()
	dropped  atomic.Int64
}

// NewKeyboardController opens inPort and starts forwarding into sink.
// The sink is never closed by the controller.
func NewKeyboardController(id string, inPort drivers.In, sink chan<- Message) (*KeyboardController, error) {
	kb := &KeyboardController{
		id:     id,
		kind:   KindForPort(id),
		inPort: inPort,
	}

	if inPort == nil {
		return nil, errors.Errorf("open input %q: no port", id)
	}
	stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
		m, ok := FromGomidi(msg)
		if !ok {
			return
		}
		select {
		case sink <- m:
		default:
			n := kb.dropped.Add(1)
			debug.LogEvery(100, "midi", "%s: sink full, dropped=%d", kb.id, n)
		}
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open input %q", id)
	}
	kb.stopFunc = stop

	return kb, nil
}

func (kb *KeyboardController) ID() string {
	return kb.id
}

func (kb *KeyboardController) Kind() InputKind {
	return kb.kind
}

func (kb *KeyboardController) Dropped() int {
	return int(kb.dropped.Load())
}

func (kb *KeyboardController) Close() error {
	if kb.stopFunc != nil {
		kb.stopFunc()
		kb.stopFunc = nil
	}
	return nil
}
