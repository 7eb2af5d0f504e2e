package widgets

import (
	"strings"
	"testing"

	"go-polycv/theme"
	"go-polycv/voice"
)

func TestNoteName(t *testing.T) {
	tests := []struct {
		n    uint8
		want string
	}{
		{60, "C4"},
		{61, "C#4"},
		{0, "C-1"},
		{69, "A4"},
		{127, "G9"},
	}
	for _, tt := range tests {
		if got := NoteName(tt.n); got != tt.want {
			t.Errorf("NoteName(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestBindingName(t *testing.T) {
	if got := BindingName(voice.BindPressure); got != "AT" {
		t.Errorf("pressure = %q", got)
	}
	if got := BindingName(voice.BindBend); got != "PB" {
		t.Errorf("bend = %q", got)
	}
	if got := BindingName(74); got != "cc74" {
		t.Errorf("cc = %q", got)
	}
}

func TestRenderVoices(t *testing.T) {
	f := voice.Frame{
		Mode:   voice.ModeRotate,
		Rotate: 1,
		Voices: []voice.VoiceOut{
			{Note: 60},
			{Note: 72, Gate: voice.GateHigh, Pitch: 1, Velocity: 10},
		},
	}
	out := RenderVoices(theme.New(nil), f)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("%d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[1], "C5") || !strings.Contains(lines[1], "+1.000V") {
		t.Errorf("voice 2 line: %q", lines[1])
	}
	if !strings.Contains(lines[1], "●") || !strings.Contains(lines[0], "·") {
		t.Error("gate symbols missing")
	}
	if !strings.Contains(lines[1], "▶") {
		t.Error("cursor not on voice 2")
	}
}

func TestRenderKeyHelp(t *testing.T) {
	out := RenderKeyHelp([]KeySection{{Title: "Mode", Keys: []KeyBinding{{"m", "next mode"}}}})
	if out != "Mode\n  m            next mode" {
		t.Errorf("got %q", out)
	}
}
