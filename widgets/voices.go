package widgets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-polycv/theme"
	"go-polycv/voice"
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName returns the scientific pitch name, middle C = C4
func NoteName(n uint8) string {
	return noteNames[n%12] + strconv.Itoa(int(n)/12-1)
}

// meterWidth is the width of the velocity/pressure meters
const meterWidth = 8

// RenderVoices renders one line per voice: cursor, gate, note, pitch and
// the velocity/pressure meters. MPE modes add timbre and bend.
func RenderVoices(th *theme.Theme, f voice.Frame) string {
	on := lipgloss.NewStyle().Foreground(th.Active())
	off := lipgloss.NewStyle().Foreground(th.Muted())
	cursor := lipgloss.NewStyle().Foreground(th.Accent())
	mpe := f.Mode.IsMPE()

	var lines []string
	for i, v := range f.Voices {
		var line strings.Builder

		if i == f.Rotate {
			line.WriteString(cursor.Render(string(th.Symbols.Cursor)))
		} else {
			line.WriteString(" ")
		}

		style := off
		gate := th.Symbols.GateOff
		if v.Gate > 0 {
			style = on
			gate = th.Symbols.GateOn
		}
		line.WriteString(style.Render(fmt.Sprintf(" %2d %c %-4s", i+1, gate, NoteName(v.Note))))
		line.WriteString(fmt.Sprintf(" %+6.3fV ", v.Pitch))
		line.WriteString(th.Bar(v.Velocity, 10, meterWidth))
		line.WriteString(" ")
		line.WriteString(th.Bar(v.Pressure, 10, meterWidth))
		if mpe {
			line.WriteString(" ")
			line.WriteString(th.Bar(v.Timbre, 10, meterWidth))
			line.WriteString(fmt.Sprintf(" %+5.2f", v.Bend))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// RenderAux renders the eight aux outputs with their bindings
func RenderAux(th *theme.Theme, f voice.Frame, bindings [voice.NumAux]int) string {
	label := lipgloss.NewStyle().Foreground(th.Muted())
	var lines []string
	for i, v := range f.Aux {
		lines = append(lines, fmt.Sprintf("%s %s %5.2f",
			label.Render(fmt.Sprintf("aux%d %-5s", i+1, BindingName(bindings[i]))),
			th.Bar(v, 10, meterWidth), v))
	}
	return strings.Join(lines, "\n")
}

// BindingName formats an aux binding: a controller number, "AT" or "PB"
func BindingName(b int) string {
	switch b {
	case voice.BindPressure:
		return "AT"
	case voice.BindBend:
		return "PB"
	}
	return "cc" + strconv.Itoa(b)
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
