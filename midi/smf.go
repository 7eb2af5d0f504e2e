package midi

import (
	"cmp"
	"io"
	"os"
	"slices"
	"time"

	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// TimedMessage is a message at an offset from the start of a file
type TimedMessage struct {
	At time.Duration
	Message
}

// ReadSMFFile reads every channel voice message of a Standard MIDI File,
// merged across tracks and ordered by time
func ReadSMFFile(path string) ([]TimedMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open midi file")
	}
	defer f.Close()

	msgs, err := ReadSMF(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return msgs, nil
}

// ReadSMF is ReadSMFFile on an open reader
func ReadSMF(r io.Reader) ([]TimedMessage, error) {
	var out []TimedMessage
	rd := smf.ReadTracksFrom(r).Do(func(te smf.TrackEvent) {
		m, ok := FromGomidi(gomidi.Message(te.Message))
		if !ok {
			return
		}
		out = append(out, TimedMessage{
			At:      time.Duration(te.AbsMicroSeconds) * time.Microsecond,
			Message: m,
		})
	})
	if err := rd.Error(); err != nil {
		return nil, errors.Wrap(err, "parse smf")
	}

	slices.SortStableFunc(out, func(a, b TimedMessage) int {
		return cmp.Compare(a.At, b.At)
	})
	return out, nil
}
