package voice

// NoteStack is a LIFO of note numbers. Order is significant: the most
// recently pushed note resurfaces first, and Reassign reads it front to back.
type NoteStack struct {
	notes []uint8
}

// Push appends a note at the top
func (s *NoteStack) Push(note uint8) {
	s.notes = append(s.notes, note)
}

// Pop removes and returns the top note
func (s *NoteStack) Pop() (uint8, bool) {
	if len(s.notes) == 0 {
		return 0, false
	}
	n := s.notes[len(s.notes)-1]
	s.notes = s.notes[:len(s.notes)-1]
	return n, true
}

// Top returns the top note without removing it
func (s *NoteStack) Top() (uint8, bool) {
	if len(s.notes) == 0 {
		return 0, false
	}
	return s.notes[len(s.notes)-1], true
}

// Remove deletes the first (oldest) occurrence of note, preserving order
func (s *NoteStack) Remove(note uint8) bool {
	for i, n := range s.notes {
		if n == note {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether note is anywhere on the stack
func (s *NoteStack) Contains(note uint8) bool {
	for _, n := range s.notes {
		if n == note {
			return true
		}
	}
	return false
}

// At returns the note at position i counted from the bottom
func (s *NoteStack) At(i int) uint8 {
	return s.notes[i]
}

// Lowest returns the numerically lowest note
func (s *NoteStack) Lowest() (uint8, bool) {
	if len(s.notes) == 0 {
		return 0, false
	}
	low := s.notes[0]
	for _, n := range s.notes[1:] {
		if n < low {
			low = n
		}
	}
	return low, true
}

// Highest returns the numerically highest note
func (s *NoteStack) Highest() (uint8, bool) {
	if len(s.notes) == 0 {
		return 0, false
	}
	high := s.notes[0]
	for _, n := range s.notes[1:] {
		if n > high {
			high = n
		}
	}
	return high, true
}

func (s *NoteStack) Len() int    { return len(s.notes) }
func (s *NoteStack) Empty() bool { return len(s.notes) == 0 }
func (s *NoteStack) Clear()      { s.notes = s.notes[:0] }

// Notes returns a copy, bottom first
func (s *NoteStack) Notes() []uint8 {
	out := make([]uint8, len(s.notes))
	copy(out, s.notes)
	return out
}
