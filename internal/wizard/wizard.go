// Package wizard implements the interactive connection form shown by
// `connect` when no connection parameters are given.
package wizard

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/flext/flext-db-oracle/internal/config"
	"github.com/flext/flext-db-oracle/internal/logging"
	"github.com/flext/flext-db-oracle/internal/pool"
	"github.com/flext/flext-db-oracle/internal/schema"
)

// Result is returned when the form completes successfully.
type Result struct {
	Config *config.Config
	Status schema.ConnectionStatus
}

// field indexes
const (
	fieldHost = iota
	fieldPort
	fieldDatabase
	fieldUsername
	fieldPassword
	fieldCount
)

// Model is the bubbletea model for the connection form.
type Model struct {
	inputs    []textinput.Model
	focused   int
	useSID    bool // false: service name, true: SID
	err       error
	testing   bool
	spinner   spinner.Model
	result    *Result
	done      bool
	statusMsg string
}

type testDoneMsg struct {
	cfg    *config.Config
	status schema.ConnectionStatus
	err    error
}

// NewModel creates the form pre-filled from cfg where values exist.
func NewModel(cfg *config.Config) Model {
	inputs := make([]textinput.Model, fieldCount)

	inputs[fieldHost] = textinput.New()
	inputs[fieldHost].Placeholder = "localhost"
	inputs[fieldHost].CharLimit = 256
	inputs[fieldHost].Focus()

	inputs[fieldPort] = textinput.New()
	inputs[fieldPort].Placeholder = "1521"
	inputs[fieldPort].CharLimit = 5

	inputs[fieldDatabase] = textinput.New()
	inputs[fieldDatabase].Placeholder = "ORCLPDB1"
	inputs[fieldDatabase].CharLimit = 128

	inputs[fieldUsername] = textinput.New()
	inputs[fieldUsername].Placeholder = "system"
	inputs[fieldUsername].CharLimit = 128

	inputs[fieldPassword] = textinput.New()
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldPassword].EchoCharacter = '*'
	inputs[fieldPassword].CharLimit = 256

	if cfg != nil {
		inputs[fieldHost].SetValue(cfg.Host)
		if cfg.Port != 0 {
			inputs[fieldPort].SetValue(strconv.Itoa(cfg.Port))
		}
		inputs[fieldDatabase].SetValue(cfg.Database())
		inputs[fieldUsername].SetValue(cfg.Username)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{inputs: inputs, spinner: s}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.testing {
			return m, nil // ignore input while probing
		}

		switch msg.String() {
		case "ctrl+c", "esc":
			m.done = true
			m.err = fmt.Errorf("cancelled")
			return m, tea.Quit

		case "tab", "down":
			m.focused = (m.focused + 1) % fieldCount
			return m, m.updateFocus()

		case "shift+tab", "up":
			m.focused--
			if m.focused < 0 {
				m.focused = fieldPassword
			}
			return m, m.updateFocus()

		case "ctrl+t":
			m.useSID = !m.useSID
			return m, nil

		case "enter":
			if m.focused == fieldPassword {
				return m, m.startTest()
			}
			m.focused = (m.focused + 1) % fieldCount
			return m, m.updateFocus()
		}

	case testDoneMsg:
		m.testing = false
		if msg.err != nil {
			m.err = msg.err
			m.statusMsg = fmt.Sprintf("Connection failed: %v", msg.err)
			return m, nil
		}
		m.result = &Result{Config: msg.cfg, Status: msg.status}
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		if m.testing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if !m.testing {
		var cmd tea.Cmd
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Oracle Connection") + "\n\n")

	instance := "● Service name  ○ SID"
	if m.useSID {
		instance = "○ Service name  ● SID"
	}
	b.WriteString(fmt.Sprintf("  Identify by: %s  (ctrl+t to toggle)\n\n", instance))

	labels := []string{"Host", "Port", "Database", "Username", "Password"}
	for i := 0; i < fieldCount; i++ {
		label := fmt.Sprintf("  %-10s ", labels[i])
		cursor := "  "
		if i == m.focused {
			cursor = highlightStyle.Render("> ")
		}
		b.WriteString(cursor + dimStyle.Render(label) + m.inputs[i].View() + "\n")
	}

	b.WriteString("\n")

	if m.testing {
		b.WriteString(fmt.Sprintf("  %s Testing connection...\n", m.spinner.View()))
	} else if m.err != nil {
		b.WriteString(errStyle.Render("  "+m.statusMsg) + "\n")
		b.WriteString(dimStyle.Render("  Fix the issue and press Enter to retry\n"))
	} else {
		b.WriteString(dimStyle.Render("  Press Enter on Password to connect • tab/shift-tab to navigate • esc to cancel\n"))
	}

	return b.String()
}

// Result returns the completed connection result, or nil.
func (m Model) Result() *Result {
	return m.result
}

// Cancelled reports whether the user abandoned the form.
func (m Model) Cancelled() bool {
	return m.done && m.result == nil
}

func (m *Model) updateFocus() tea.Cmd {
	cmds := make([]tea.Cmd, fieldCount)
	for i := 0; i < fieldCount; i++ {
		if i == m.focused {
			cmds[i] = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) startTest() tea.Cmd {
	m.testing = true
	m.err = nil
	m.statusMsg = ""

	cfg := m.buildConfig()

	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			if err := cfg.Validate(); err != nil {
				return testDoneMsg{err: err}
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			p := pool.New(cfg, logging.New(logging.Config{Level: "error", Format: "json"}))
			defer p.Close()

			status := p.TestConnection(ctx)
			if !status.Connected {
				return testDoneMsg{err: fmt.Errorf("%s", status.ErrorMessage)}
			}
			return testDoneMsg{cfg: cfg, status: status}
		},
	)
}

func (m *Model) buildConfig() *config.Config {
	host := m.inputs[fieldHost].Value()
	if host == "" {
		host = "localhost"
	}

	port := config.DefaultPort
	if v := m.inputs[fieldPort].Value(); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			port = p
		}
	}

	cfg := &config.Config{
		Host:     host,
		Port:     port,
		Username: m.inputs[fieldUsername].Value(),
		Password: m.inputs[fieldPassword].Value(),
	}
	if m.useSID {
		cfg.SID = m.inputs[fieldDatabase].Value()
	} else {
		cfg.ServiceName = m.inputs[fieldDatabase].Value()
	}
	cfg.ApplyDefaults()
	return cfg
}

// Run shows the form and blocks until it completes or is cancelled.
func Run(cfg *config.Config) (*Result, error) {
	final, err := tea.NewProgram(NewModel(cfg)).Run()
	if err != nil {
		return nil, fmt.Errorf("running connection form: %w", err)
	}

	m, ok := final.(Model)
	if !ok || m.Cancelled() {
		return nil, fmt.Errorf("cancelled")
	}
	return m.Result(), nil
}

// styles
var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).BorderStyle(lipgloss.DoubleBorder()).BorderBottom(true).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)
