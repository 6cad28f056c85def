package main

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	tbruntime "github.com/gosuda/tinybasic/runtime"
)

type model struct {
	cfg      appConfig
	viewport viewport.Model
	input    textinput.Model
	ready    bool
	width    int
	height   int
	status   string
	running  bool
	events   <-chan any
	pending  *pendingInput
	history  []string
	tail     string
}

var (
	tuiErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	inputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func newModel(cfg appConfig) model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 256
	return model{
		cfg:      cfg,
		viewport: viewport.New(80, 20),
		input:    ti,
		status:   "starting",
	}
}

func startVM(cfg appConfig) tea.Cmd {
	return func() tea.Msg {
		events := make(chan any, 256)
		go runVM(cfg, events)
		return vmStartedMsg{events: events}
	}
}

func waitVMEvent(events <-chan any) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case msg, ok := <-events:
			if !ok {
				return nil
			}
			return msg
		case <-time.After(20 * time.Millisecond):
			return vmPollMsg{}
		}
	}
}

func sendInputResp(ch chan vmInputResp, resp vmInputResp) {
	select {
	case ch <- resp:
	default:
	}
}

func (m model) Init() tea.Cmd {
	return startVM(m.cfg)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		m.viewport.Width = msg.Width
		m.resizeViewport()
		m.ready = true
		m.refreshViewport()
		return m, nil

	case vmStartedMsg:
		m.events = msg.events
		m.running = true
		m.status = "running"
		return m, waitVMEvent(m.events)

	case vmOutputMsg:
		m.appendOutput(msg.out)
		m.refreshViewport()
		return m, waitVMEvent(m.events)

	case vmPollMsg:
		if m.running && m.pending == nil {
			return m, waitVMEvent(m.events)
		}
		return m, nil

	case vmPromptMsg:
		m.pending = &pendingInput{prompt: msg.prompt, resp: msg.resp}
		m.input.SetValue("")
		m.input.Focus()
		m.status = "INPUT: enter a number, Ctrl+D suspends"
		m.resizeViewport()
		return m, textinput.Blink

	case vmDoneMsg:
		m.running = false
		m.pending = nil
		m.input.Blur()
		m.flushTail()
		if msg.err != nil {
			m.status = "failed"
			m.history = append(m.history, tuiErrStyle.Render(msg.err.Error()))
		} else {
			m.status = msg.status.String() + ": " + msg.note
		}
		m.resizeViewport()
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			if m.pending != nil {
				sendInputResp(m.pending.resp, vmInputResp{})
			}
			return m, tea.Quit
		}

		if m.pending != nil {
			switch msg.Type {
			case tea.KeyEnter:
				val := strings.TrimSpace(m.input.Value())
				m.tail += val
				m.flushTail()
				sendInputResp(m.pending.resp, vmInputResp{value: val, ok: true})
				m.pending = nil
				m.input.Blur()
				m.input.SetValue("")
				m.status = "running"
				m.resizeViewport()
				m.refreshViewport()
				return m, waitVMEvent(m.events)
			case tea.KeyCtrlD:
				m.flushTail()
				sendInputResp(m.pending.resp, vmInputResp{})
				m.pending = nil
				m.input.Blur()
				m.status = "suspending"
				m.resizeViewport()
				m.refreshViewport()
				return m, waitVMEvent(m.events)
			case tea.KeyPgUp, tea.KeyPgDown:
				var cmd tea.Cmd
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "r":
			if m.running {
				return m, nil
			}
			m.history = nil
			m.tail = ""
			m.viewport.SetContent("")
			m.status = "restarting"
			return m, startVM(m.cfg)
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "initializing..."
	}
	parts := []string{m.viewport.View()}
	parts = append(parts, m.footer()...)
	return strings.Join(parts, "\n")
}

func (m model) footer() []string {
	lines := []string{statusStyle.Render(m.status + "  (r: run again, q: quit, PgUp/PgDn: scroll)")}
	if m.pending != nil {
		lines = append([]string{inputStyle.Render(m.input.View())}, lines...)
	}
	return lines
}

// resizeViewport gives the output pane whatever the footer leaves.
func (m *model) resizeViewport() {
	vh := m.height - len(m.footer())
	if vh < 1 {
		vh = 1
	}
	m.viewport.Height = vh
}

func (m *model) refreshViewport() {
	lines := append([]string(nil), m.history...)
	if m.tail != "" {
		lines = append(lines, m.tail)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.viewport.GotoBottom()
}

func (m *model) appendOutput(out tbruntime.Output) {
	if out.NewLine {
		m.history = append(m.history, m.tail+out.Text)
		m.tail = ""
		return
	}
	m.tail += out.Text
}

func (m *model) flushTail() {
	if m.tail != "" {
		m.history = append(m.history, m.tail)
		m.tail = ""
	}
}
