// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Thermoquad/riderctl/pkg/rider"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

//////////////////////////////////////////////////////////////
// Constants
//////////////////////////////////////////////////////////////

const (
	stretchStep   = 5  // mm per key press
	leanStep      = 5  // degrees per key press
	maxStretch    = 20 // mm
	maxLean       = 45 // degrees
	maxLogEntries = 100
)

//////////////////////////////////////////////////////////////
// Key Bindings
//////////////////////////////////////////////////////////////

type driveKeyMap struct {
	Forward   key.Binding
	Backward  key.Binding
	TurnLeft  key.Binding
	TurnRight key.Binding
	Stop      key.Binding
	TurnOff   key.Binding
	SpeedUp   key.Binding
	SlowDown  key.Binding
	Stretch   key.Binding
	Shrink    key.Binding
	LeanLeft  key.Binding
	LeanRight key.Binding
	SlowWave  key.Binding
	NormWave  key.Binding
	FastWave  key.Binding
	Pee       key.Binding
	Battery   key.Binding
	Code      key.Binding
	Reset     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func (k driveKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Forward, k.Backward, k.TurnLeft, k.TurnRight, k.Stop, k.SpeedUp, k.SlowDown, k.Help, k.Quit}
}

func (k driveKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Forward, k.Backward, k.TurnLeft, k.TurnRight, k.Stop, k.TurnOff},
		{k.SpeedUp, k.SlowDown, k.Stretch, k.Shrink, k.LeanLeft, k.LeanRight},
		{k.SlowWave, k.NormWave, k.FastWave, k.Pee, k.Battery, k.Code},
		{k.Reset, k.Help, k.Quit},
	}
}

var driveKeys = driveKeyMap{
	Forward:   key.NewBinding(key.WithKeys("up", "w"), key.WithHelp("↑/w", "forward")),
	Backward:  key.NewBinding(key.WithKeys("down", "s"), key.WithHelp("↓/s", "backward")),
	TurnLeft:  key.NewBinding(key.WithKeys("left", "a"), key.WithHelp("←/a", "turn left")),
	TurnRight: key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("→/d", "turn right")),
	Stop:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "stop")),
	TurnOff:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "turn off")),
	SpeedUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "speed up")),
	SlowDown:  key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "slow down")),
	Stretch:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "stretch")),
	Shrink:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "shrink")),
	LeanLeft:  key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "lean left")),
	LeanRight: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "lean right")),
	SlowWave:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "slow wave")),
	NormWave:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "normal wave")),
	FastWave:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "fast wave")),
	Pee:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pee")),
	Battery:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "battery")),
	Code:      key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "message code")),
	Reset:     key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset stats")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

//////////////////////////////////////////////////////////////
// Types
//////////////////////////////////////////////////////////////

type logEntry struct {
	timestamp time.Time
	message   string
	isError   bool
}

// driveModel is the Bubble Tea model for the drive TUI.
//
// The controller is only touched from operation commands, one at a time; the view
// renders the state snapshot returned by the last operation.
type driveModel struct {
	sess *session

	// Rider state as of the last finished operation
	motion  rider.MotionState
	group   rider.GroupState
	battery int // -1 until read

	// Operation in flight
	busy    bool
	current string

	// Code entry
	codeInput textinput.Model
	entering  bool

	help   help.Model
	events []logEntry

	width    int
	height   int
	quitting bool
}

//////////////////////////////////////////////////////////////
// Messages
//////////////////////////////////////////////////////////////

type driveTickMsg time.Time

// opDoneMsg reports a finished operation with the state it left behind
type opDoneMsg struct {
	label   string
	motion  rider.MotionState
	group   rider.GroupState
	battery int
	err     error
}

//////////////////////////////////////////////////////////////
// Model Initialization
//////////////////////////////////////////////////////////////

func initialDriveModel(s *session) driveModel {
	ti := textinput.New()
	ti.Placeholder = "1075"
	ti.CharLimit = 6
	ti.Width = 10

	return driveModel{
		sess:      s,
		motion:    s.ctrl.Motion(),
		group:     s.ctrl.Group(),
		battery:   -1,
		codeInput: ti,
		help:      help.New(),
		events:    make([]logEntry, 0),
		width:     80,
		height:    24,
	}
}

//////////////////////////////////////////////////////////////
// Bubble Tea Interface
//////////////////////////////////////////////////////////////

func (m driveModel) Init() tea.Cmd {
	return driveTickCmd()
}

func driveTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return driveTickMsg(t)
	})
}

func (m driveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.entering {
			return m.handleCodeKey(msg)
		}
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case driveTickMsg:
		// Redraw for the statistics bar
		return m, driveTickCmd()

	case opDoneMsg:
		m.busy = false
		m.current = ""
		m.motion = msg.motion
		m.group = msg.group
		if msg.battery >= 0 {
			m.battery = msg.battery
		}
		if msg.err != nil {
			m.addLogEntry(fmt.Sprintf("%s: %v", msg.label, msg.err), true)
		} else {
			m.addLogEntry(msg.label, false)
		}
	}

	return m, nil
}

func (m driveModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, driveKeys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, driveKeys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	// Counters are mutex guarded, so a reset is fine mid-operation
	case key.Matches(msg, driveKeys.Reset):
		m.sess.link.Statistics().Reset()
		m.addLogEntry("statistics reset", false)
		return m, nil
	}

	// One operation at a time
	if m.busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, driveKeys.Forward):
		return m.run("forward", func(c *rider.Controller) error { return c.Move(rider.MoveForward) })
	case key.Matches(msg, driveKeys.Backward):
		return m.run("backward", func(c *rider.Controller) error { return c.Move(rider.MoveBackward) })
	case key.Matches(msg, driveKeys.TurnLeft):
		return m.run("turn left", func(c *rider.Controller) error { return c.Turn(rider.TurnLeft) })
	case key.Matches(msg, driveKeys.TurnRight):
		return m.run("turn right", func(c *rider.Controller) error { return c.Turn(rider.TurnRight) })
	case key.Matches(msg, driveKeys.Stop):
		return m.run("stop", (*rider.Controller).Stop)
	case key.Matches(msg, driveKeys.TurnOff):
		return m.run("turn off", (*rider.Controller).TurnOff)
	case key.Matches(msg, driveKeys.SpeedUp):
		return m.run("speed up", (*rider.Controller).SpeedUp)
	case key.Matches(msg, driveKeys.SlowDown):
		return m.run("slow down", (*rider.Controller).SlowDown)

	case key.Matches(msg, driveKeys.Stretch):
		return m.stretchBy(stretchStep)
	case key.Matches(msg, driveKeys.Shrink):
		return m.stretchBy(-stretchStep)
	case key.Matches(msg, driveKeys.LeanLeft):
		return m.leanBy(leanStep)
	case key.Matches(msg, driveKeys.LeanRight):
		return m.leanBy(-leanStep)

	case key.Matches(msg, driveKeys.SlowWave):
		return m.run("slow wave", func(c *rider.Controller) error { return c.SetWave(rider.WaveSlow) })
	case key.Matches(msg, driveKeys.NormWave):
		return m.run("normal wave", func(c *rider.Controller) error { return c.SetWave(rider.WaveNormal) })
	case key.Matches(msg, driveKeys.FastWave):
		return m.run("fast wave", func(c *rider.Controller) error { return c.SetWave(rider.WaveFast) })
	case key.Matches(msg, driveKeys.Pee):
		return m.run("pee", func(c *rider.Controller) error { return c.PerformAction(rider.ActionPee) })

	case key.Matches(msg, driveKeys.Battery):
		return m.readBattery()

	case key.Matches(msg, driveKeys.Code):
		m.entering = true
		m.codeInput.SetValue("")
		return m, m.codeInput.Focus()
	}

	return m, nil
}

func (m driveModel) handleCodeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.entering = false
		m.codeInput.Blur()
		return m, nil

	case "enter":
		m.entering = false
		m.codeInput.Blur()
		value := strings.TrimSpace(m.codeInput.Value())
		code, err := strconv.Atoi(value)
		if err != nil {
			m.addLogEntry(fmt.Sprintf("invalid message code %q", value), true)
			return m, nil
		}
		if m.busy {
			m.addLogEntry(fmt.Sprintf("code %d dropped: %s still running", code, m.current), true)
			return m, nil
		}
		label := fmt.Sprintf("code %d (%s)", code, rider.DecodeIntent(code))
		return m.run(label, func(c *rider.Controller) error { return c.Submit(code) })
	}

	var cmd tea.Cmd
	m.codeInput, cmd = m.codeInput.Update(msg)
	return m, cmd
}

//////////////////////////////////////////////////////////////
// Operations
//////////////////////////////////////////////////////////////

// run starts an operation on the controller in a command goroutine
func (m driveModel) run(label string, op func(c *rider.Controller) error) (tea.Model, tea.Cmd) {
	m.busy = true
	m.current = label
	ctrl := m.sess.ctrl

	return m, func() tea.Msg {
		err := op(ctrl)
		return opDoneMsg{
			label:   label,
			motion:  ctrl.Motion(),
			group:   ctrl.Group(),
			battery: -1,
			err:     err,
		}
	}
}

func (m driveModel) stretchBy(delta int) (tea.Model, tea.Cmd) {
	target := clampInt(m.motion.Stretch+delta, -maxStretch, maxStretch)
	if target >= 0 {
		return m.run(fmt.Sprintf("stretch %d mm", target), func(c *rider.Controller) error { return c.Stretch(target) })
	}
	return m.run(fmt.Sprintf("shrink %d mm", -target), func(c *rider.Controller) error { return c.Shrink(-target) })
}

func (m driveModel) leanBy(delta int) (tea.Model, tea.Cmd) {
	// The lean angle is stored doubled
	target := clampInt(m.motion.LeanAngle/2+delta, -maxLean, maxLean)
	if target >= 0 {
		return m.run(fmt.Sprintf("lean left %d", target), func(c *rider.Controller) error { return c.LeanLeft(target) })
	}
	return m.run(fmt.Sprintf("lean right %d", -target), func(c *rider.Controller) error { return c.LeanRight(-target) })
}

func (m driveModel) readBattery() (tea.Model, tea.Cmd) {
	m.busy = true
	m.current = "battery"
	ctrl := m.sess.ctrl

	return m, func() tea.Msg {
		level, err := ctrl.Battery()
		done := opDoneMsg{
			label:   fmt.Sprintf("battery %d%%", level),
			motion:  ctrl.Motion(),
			group:   ctrl.Group(),
			battery: -1,
			err:     err,
		}
		if err == nil {
			done.battery = int(level)
		} else {
			done.label = "battery"
		}
		return done
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (m *driveModel) addLogEntry(message string, isError bool) {
	m.events = append(m.events, logEntry{
		timestamp: time.Now(),
		message:   message,
		isError:   isError,
	})

	if len(m.events) > maxLogEntries {
		m.events = m.events[len(m.events)-maxLogEntries:]
	}
}

//////////////////////////////////////////////////////////////
// View
//////////////////////////////////////////////////////////////

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

func (m driveModel) View() string {
	if m.quitting {
		return "Stopping...\n"
	}

	var s strings.Builder

	// Header
	s.WriteString(titleStyle.Render("RIDERCTL DRIVE"))
	s.WriteString(" ")
	s.WriteString(headerStyle.Render(fmt.Sprintf("| %s | position %d", m.sess.connInfo, m.group.Position)))
	s.WriteString("\n\n")

	left := boxStyle.Width(36).Render(m.renderMotion())
	right := boxStyle.Width(30).Render(m.renderGroup())
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	s.WriteString("\n")

	s.WriteString(m.renderStatisticsBar())
	s.WriteString("\n")

	if m.entering {
		s.WriteString(labelStyle.Render("Message code: "))
		s.WriteString(m.codeInput.View())
		s.WriteString(headerStyle.Render("  enter=send esc=cancel"))
		s.WriteString("\n")
	} else if m.busy {
		s.WriteString(warningStyle.Render(fmt.Sprintf("Running: %s ...", m.current)))
		s.WriteString("\n")
	} else {
		s.WriteString("\n")
	}

	s.WriteString(m.renderEventLog())
	s.WriteString("\n")
	s.WriteString(m.help.View(driveKeys))

	return s.String()
}

func (m driveModel) renderMotion() string {
	battery := "?"
	if m.battery >= 0 {
		battery = fmt.Sprintf("%d%%", m.battery)
	}

	rows := []struct{ label, value string }{
		{"Movement:", m.motion.Movement.String()},
		{"Speed:", fmt.Sprintf("%d%%", m.motion.Speed)},
		{"Stretch:", fmt.Sprintf("%+d mm", m.motion.Stretch)},
		{"Lean:", fmt.Sprintf("%+d", m.motion.LeanAngle/2)},
		{"Battery:", battery},
	}

	var s strings.Builder
	s.WriteString(labelStyle.Render("MOTION"))
	for _, r := range rows {
		s.WriteString(fmt.Sprintf("\n%-10s %s", r.label, valueStyle.Render(r.value)))
	}
	return s.String()
}

func (m driveModel) renderGroup() string {
	delay := "none"
	if m.group.WaveDelay > 0 {
		delay = m.group.WaveDelay.String()
	}

	var s strings.Builder
	s.WriteString(labelStyle.Render("GROUP"))
	s.WriteString(fmt.Sprintf("\n%-10s %s", "Position:", valueStyle.Render(strconv.Itoa(m.group.Position))))
	s.WriteString(fmt.Sprintf("\n%-10s %s", "Wave:", valueStyle.Render(delay)))
	return s.String()
}

func (m driveModel) renderStatisticsBar() string {
	snap := m.sess.link.Statistics().Snapshot()

	anomalies := valueStyle.Render("0")
	if snap.Anomalies+snap.IOErrors > 0 {
		anomalies = errorStyle.Render(fmt.Sprintf("%d", snap.Anomalies+snap.IOErrors))
	}

	content := fmt.Sprintf("%s %s  %s %s  %s %s  %s %s",
		labelStyle.Render("TX:"), valueStyle.Render(fmt.Sprintf("%d", snap.FramesWritten)),
		labelStyle.Render("RX:"), valueStyle.Render(fmt.Sprintf("%d", snap.FramesRead)),
		labelStyle.Render("Errors:"), anomalies,
		labelStyle.Render("Rate:"), valueStyle.Render(fmt.Sprintf("%.1f frames/s", snap.FrameRate)),
	)

	return boxStyle.Width(m.width - 4).Render(content)
}

func (m driveModel) renderEventLog() string {
	var s strings.Builder
	s.WriteString(labelStyle.Render("EVENTS"))
	s.WriteString("\n")

	logHeight := 8
	if len(m.events) < logHeight {
		logHeight = len(m.events)
	}
	startIdx := len(m.events) - logHeight

	if len(m.events) == 0 {
		s.WriteString(headerStyle.Render("  (no operations yet)"))
	} else {
		for i := startIdx; i < len(m.events); i++ {
			entry := m.events[i]
			icon := "✓"
			style := valueStyle
			if entry.isError {
				icon = "x"
				style = errorStyle
			}
			s.WriteString(fmt.Sprintf("%s %s %s\n",
				headerStyle.Render(entry.timestamp.Format("15:04:05.000")),
				style.Render(icon),
				entry.message))
		}
	}

	return boxStyle.Width(m.width - 4).Render(s.String())
}
