package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-polycv/config"
	"go-polycv/host"
	"go-polycv/midi"
	"go-polycv/theme"
	"go-polycv/voice"
	"go-polycv/widgets"
)

type Model struct {
	Host      *host.Host
	DeviceMgr *midi.DeviceManager
	Config    *config.Config
	Theme     *theme.Theme

	params   []param
	cursor   int
	preset   int
	inputs   map[string]midi.InputKind
	status   string
	quitting bool
}

type UpdateMsg struct{}

type DeviceEventMsg midi.DeviceEvent

func NewModel(h *host.Host, deviceMgr *midi.DeviceManager, cfg *config.Config, th *theme.Theme) Model {
	if th == nil {
		th = theme.New(nil)
	}
	return Model{
		Host:      h,
		DeviceMgr: deviceMgr,
		Config:    cfg,
		Theme:     th,
		params:    newParams(),
		preset:    -1,
		inputs:    make(map[string]midi.InputKind),
	}
}

func ListenForUpdates(h *host.Host) tea.Cmd {
	return func() tea.Msg {
		<-h.UpdateChan
		return UpdateMsg{}
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	if deviceMgr == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return nil
		}
		return DeviceEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		ListenForUpdates(m.Host),
		ListenForDevices(m.DeviceMgr),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())

	case UpdateMsg:
		return m, ListenForUpdates(m.Host)

	case DeviceEventMsg:
		event := midi.DeviceEvent(msg)
		if event.Type == midi.DeviceConnected {
			m.inputs[event.ID] = event.Controller.Kind()
			m.status = "connected " + event.ID
		} else if event.Type == midi.DeviceDisconnected {
			delete(m.inputs, event.ID)
			m.status = "disconnected " + event.ID
		}
		return m, ListenForDevices(m.DeviceMgr)
	}

	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		m.cursor = (m.cursor + len(m.params) - 1) % len(m.params)

	case "down", "j":
		m.cursor = (m.cursor + 1) % len(m.params)

	case "left", "h", "-":
		m.adjust(-1)

	case "right", "l", "+", "=":
		m.adjust(1)

	case "m":
		m.do(func(e *voice.Engine) { e.StepMode(1) })

	case "M":
		m.do(func(e *voice.Engine) { e.StepMode(-1) })

	case "L":
		p := m.params[m.cursor]
		if p.learn == nil {
			m.status = p.name + " can't be learned"
			break
		}
		if m.do(p.learn) {
			m.status = "learning " + p.name + ": send a note or controller"
		}

	case "esc":
		if m.do(func(e *voice.Engine) {
			e.Learn(voice.LearnNone)
			e.LearnAux(-1)
		}) {
			m.status = "learn cancelled"
		}

	case "r":
		if m.do(func(e *voice.Engine) { e.Reset() }) {
			m.status = "voices reset"
		}

	case "s":
		m.save()

	case "w":
		if m.Config != nil {
			s := m.Host.Settings()
			name := fmt.Sprintf("%s %d", s.Mode, len(m.Config.Presets)+1)
			m.Config.AddPreset(config.NewPreset(name, s))
			m.status = "stored preset " + name
		}

	case "p":
		m.nextPreset()
	}
	return m, nil
}

func (m *Model) adjust(dir int) {
	p := m.params[m.cursor]
	m.do(func(e *voice.Engine) { p.apply(e, dir) })
}

// do queues an engine change, reporting in the status line when the host
// is not keeping up
func (m *Model) do(fn func(*voice.Engine)) bool {
	if !m.Host.Do(fn) {
		m.status = "engine busy, change dropped"
		return false
	}
	return true
}

func (m *Model) save() {
	if m.Config == nil {
		return
	}
	m.Config.Engine = m.Host.Settings()
	if err := m.Config.Save(); err != nil {
		m.status = "save failed: " + err.Error()
		return
	}
	m.status = "saved"
}

func (m *Model) nextPreset() {
	if m.Config == nil || len(m.Config.Presets) == 0 {
		m.status = "no presets"
		return
	}
	m.preset = (m.preset + 1) % len(m.Config.Presets)
	p := m.Config.Presets[m.preset]
	if !m.do(func(e *voice.Engine) {
		e.Configure(p.Settings)
		e.Reset()
	}) {
		return
	}
	m.Config.UI.LastPreset = p.ID
	m.status = "preset " + p.Name
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	frame := m.Host.Frame()
	settings := m.Host.Settings()
	target, aux := m.Host.Learning()

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	selStyle := lipgloss.NewStyle().Foreground(m.Theme.Hot())
	warnStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	pedal := ""
	if frame.Pedal {
		pedal = "  PEDAL"
	}
	header := headerStyle.Render(fmt.Sprintf("go-polycv  %-12s %2d voices  inputs:%d%s",
		settings.Mode.Label(), len(frame.Voices), len(m.inputs), pedal))
	activity := dimStyle.Render("activity ") + m.Theme.Bar(float32(frame.Activity), 127, 16)

	var params strings.Builder
	for i, p := range m.params {
		line := fmt.Sprintf(" %-10s %s", p.name, p.value(settings))
		if i == m.cursor {
			params.WriteString(selStyle.Render("[" + line[1:] + "]"))
		} else {
			params.WriteString(line)
		}
		params.WriteString("\n")
	}

	voices := widgets.RenderVoices(m.Theme, frame)
	auxView := widgets.RenderAux(m.Theme, frame, settings.AuxCCs)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		voices+"\n\n"+auxView,
		"    ",
		params.String(),
	)

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n")
	out.WriteString(activity)
	out.WriteString("\n\n")
	out.WriteString(body)
	out.WriteString("\n")

	if target != voice.LearnNone {
		out.WriteString(warnStyle.Render("learn " + target.String() + ": play a note"))
		out.WriteString("\n")
	} else if aux >= 0 {
		out.WriteString(warnStyle.Render(fmt.Sprintf("learn aux %d: move a controller", aux+1)))
		out.WriteString("\n")
	}
	if m.status != "" {
		out.WriteString(dimStyle.Render(m.status))
		out.WriteString("\n")
	}
	out.WriteString(dimStyle.Render("j/k:select  h/l:adjust  m/M:mode  L:learn  esc:cancel  r:reset  s:save  w/p:presets  q:quit"))

	return out.String()
}
