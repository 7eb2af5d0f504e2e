package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	GateOn    rune // ● gate open
	GateOff   rune // · idle
	PedalHeld rune // ◐ kept alive by the pedal
	Cursor    rune // ▶ rotation cursor

	BarFull  rune // █
	BarEmpty rune // ░
}

func New(palette *Palette) *Theme {
	if palette == nil || len(palette.Colors) == 0 {
		palette = Default()
	}
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			GateOn:    '●',
			GateOff:   '·',
			PedalHeld: '◐',
			Cursor:    '▶',
			BarFull:   '█',
			BarEmpty:  '░',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0
	RoleMuted   = 0.2
	RoleFG      = 0.4
	RoleAccent  = 0.5
	RoleActive  = 0.6
	RoleWarning = 0.8
	RoleHot     = 0.9
)

func (t *Theme) BG() lipgloss.Color      { return t.Color(RoleBG) }
func (t *Theme) FG() lipgloss.Color      { return t.Color(RoleFG) }
func (t *Theme) Accent() lipgloss.Color  { return t.Color(RoleAccent) }
func (t *Theme) Muted() lipgloss.Color   { return t.Color(RoleMuted) }
func (t *Theme) Active() lipgloss.Color  { return t.Color(RoleActive) }
func (t *Theme) Warning() lipgloss.Color { return t.Color(RoleWarning) }
func (t *Theme) Hot() lipgloss.Color     { return t.Color(RoleHot) }

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

// Bar draws value (0..full) as a fixed-width meter
func (t *Theme) Bar(value, full float32, width int) string {
	if width <= 0 {
		return ""
	}
	n := 0
	if full > 0 {
		n = int(value / full * float32(width))
	}
	n = max(0, min(width, n))
	return strings.Repeat(string(t.Symbols.BarFull), n) + strings.Repeat(string(t.Symbols.BarEmpty), width-n)
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
