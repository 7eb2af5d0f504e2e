package tui

import (
	"math/rand"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"go-polycv/config"
	"go-polycv/host"
	"go-polycv/midi"
	"go-polycv/voice"
)

func newTestModel(t *testing.T) (Model, *host.Host) {
	t.Helper()
	e := voice.New(voice.DefaultSettings(), rand.New(rand.NewSource(1)))
	h := host.New(e, nil, 1000)
	return NewModel(h, nil, config.DefaultConfig(), nil), h
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func selectParam(t *testing.T, m Model, name string) Model {
	t.Helper()
	for range m.params {
		if m.params[m.cursor].name == name {
			return m
		}
		m = send(m, key("j"))
	}
	t.Fatalf("no param %q", name)
	return m
}

func TestAdjustParam(t *testing.T) {
	m, h := newTestModel(t)
	m = selectParam(t, m, "transpose")
	m = send(m, key("l"), key("l"), key("h"))
	h.Step(0.001)

	if got := h.Settings().Transpose; got != 1 {
		t.Errorf("transpose = %d, want 1", got)
	}
}

func TestModeKeys(t *testing.T) {
	m, h := newTestModel(t)
	send(m, key("m"))
	h.Step(0.001)
	if got := h.Settings().Mode; got != voice.ModeReuse {
		t.Errorf("mode = %s, want reuse", got)
	}

	send(m, key("M"), key("M"))
	h.Step(0.001)
	if got := h.Settings().Mode; got != voice.ModeMPEPlus {
		t.Errorf("mode = %s, want mpe-plus", got)
	}
}

func TestLearnKey(t *testing.T) {
	m, h := newTestModel(t)
	m = selectParam(t, m, "aux 4")
	m = send(m, key("L"))
	h.Step(0.001)
	if _, aux := h.Learning(); aux != 3 {
		t.Fatalf("aux learn = %d, want 3", aux)
	}

	h.Submit(midi.NewCC(0, 33, 10))
	h.Step(0.001)
	if got := h.Settings().AuxCCs[3]; got != 33 {
		t.Errorf("aux 4 bound to %d, want 33", got)
	}

	m = selectParam(t, m, "drift")
	m = send(m, key("L"))
	if !strings.Contains(m.status, "can't be learned") {
		t.Errorf("status = %q", m.status)
	}
}

func TestPresets(t *testing.T) {
	m, h := newTestModel(t)
	m = send(m, key("w"))
	if len(m.Config.Presets) != 1 {
		t.Fatalf("%d presets, want 1", len(m.Config.Presets))
	}

	h.Do(func(e *voice.Engine) { e.SetMode(voice.ModeUnison) })
	h.Step(0.001)

	m = send(m, key("p"))
	h.Step(0.001)
	if got := h.Settings().Mode; got != voice.ModeRotate {
		t.Errorf("mode after preset = %s, want rotate", got)
	}
	if m.Config.UI.LastPreset != m.Config.Presets[0].ID {
		t.Error("last preset not recorded")
	}
}

func TestDeviceEvents(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(m, DeviceEventMsg{Type: midi.DeviceDisconnected, ID: "gone"})
	if len(m.inputs) != 0 {
		t.Errorf("inputs = %v", m.inputs)
	}
	if m.status != "disconnected gone" {
		t.Errorf("status = %q", m.status)
	}
}

func TestView(t *testing.T) {
	m, h := newTestModel(t)
	h.Submit(midi.NewNoteOn(0, 60, 100))
	h.Step(0.001)

	out := m.View()
	for _, want := range []string{"go-polycv", "ROTATE", "C4", "transpose", "aux1"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = send(m, key("q"))
	if m.View() != "" {
		t.Error("view not empty after quit")
	}
}

func TestParamsTable(t *testing.T) {
	s := voice.DefaultSettings()
	seen := make(map[string]bool)
	learnable := 0
	for _, p := range newParams() {
		if seen[p.name] {
			t.Errorf("duplicate param %q", p.name)
		}
		seen[p.name] = true
		if p.value(s) == "" {
			t.Errorf("%s: empty value", p.name)
		}
		if p.learn != nil {
			learnable++
		}
	}
	// four range bounds plus the aux slots
	if learnable != 4+voice.NumAux {
		t.Errorf("%d learnable params, want %d", learnable, 4+voice.NumAux)
	}
}

func TestNoteRangeParamsStayOrdered(t *testing.T) {
	e := voice.New(voice.DefaultSettings(), nil)
	var noteMin param
	for _, p := range newParams() {
		if p.name == "note min" {
			noteMin = p
		}
	}
	s := e.Settings()
	s.NoteMax = 40
	s.NoteMin = 40
	e.Configure(s)

	noteMin.apply(e, 5)
	got := e.Settings()
	if got.NoteMin != 45 || got.NoteMax != 45 {
		t.Errorf("range = %d..%d, want 45..45", got.NoteMin, got.NoteMax)
	}
}

func TestBusyHostDropsKeys(t *testing.T) {
	m, h := newTestModel(t)
	for h.Do(func(*voice.Engine) {}) {
	}

	m = send(m, key("r"))
	if !strings.Contains(m.status, "dropped") {
		t.Errorf("status = %q", m.status)
	}
}
