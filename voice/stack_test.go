package voice

import "testing"

func TestNoteStackOrder(t *testing.T) {
	var s NoteStack
	s.Push(60)
	s.Push(64)
	s.Push(67)

	if top, _ := s.Top(); top != 67 {
		t.Errorf("Top: got %d, want 67", top)
	}
	if n, ok := s.Pop(); !ok || n != 67 {
		t.Errorf("Pop: got %d %v, want 67 true", n, ok)
	}
	s.Push(62)
	expectStack(t, "stack", s.Notes(), 60, 64, 62)
}

func TestNoteStackRemoveKeepsOrder(t *testing.T) {
	var s NoteStack
	for _, n := range []uint8{60, 64, 60, 67} {
		s.Push(n)
	}
	if !s.Remove(60) {
		t.Fatal("Remove(60) reported missing")
	}
	expectStack(t, "after remove", s.Notes(), 64, 60, 67)
	if s.Remove(50) {
		t.Error("Remove(50) reported present")
	}
}

func TestNoteStackEmpty(t *testing.T) {
	var s NoteStack
	if _, ok := s.Pop(); ok {
		t.Error("Pop on empty stack succeeded")
	}
	if _, ok := s.Lowest(); ok {
		t.Error("Lowest on empty stack succeeded")
	}
	if _, ok := s.Highest(); ok {
		t.Error("Highest on empty stack succeeded")
	}
}

func TestNoteStackExtremes(t *testing.T) {
	var s NoteStack
	for _, n := range []uint8{64, 55, 71, 60} {
		s.Push(n)
	}
	if low, _ := s.Lowest(); low != 55 {
		t.Errorf("Lowest: got %d, want 55", low)
	}
	if high, _ := s.Highest(); high != 71 {
		t.Errorf("Highest: got %d, want 71", high)
	}
}

func TestNoteTable(t *testing.T) {
	var nt NoteTable
	nt.NoteOn(60, 100)
	nt.Aftertouch(60, 33)
	if e := nt.Entry(60); e.Velocity != 100 || e.Aftertouch != 33 {
		t.Errorf("entry after on: %+v", e)
	}
	nt.NoteOff(60, 20)
	if e := nt.Entry(60); e.Velocity != 0 || e.Aftertouch != 0 || e.Release != 20 {
		t.Errorf("entry after off: %+v", e)
	}
}
