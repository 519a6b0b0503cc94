package display

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/craftbox/internal/engine"
)

const (
	prompt       = "craft> "
	refreshEvery = time.Second
	historySize  = 50
)

type tickMsg time.Time

// model is the Bubble Tea model: a status bar over a single-line prompt.
type model struct {
	source  ViewSource
	input   textinput.Model
	lines   chan<- string
	started chan struct{}
	echo    func(string)

	view  *engine.View
	width int

	history []string
	cursor  int // len(history) means "editing a new line"
}

func newInput() textinput.Model {
	ti := textinput.New()
	// Keep the prompt unstyled: ANSI bytes in it throw off the width math.
	ti.Prompt = prompt
	ti.PromptStyle = promptStyle
	ti.TextStyle = echoStyle
	ti.Cursor.Style = promptStyle
	ti.CharLimit = 200
	ti.Width = 60
	ti.Focus()
	return ti
}

func (m model) Init() tea.Cmd {
	started := m.started
	return tea.Batch(textinput.Blink, tick(), func() tea.Msg {
		close(started)
		return nil
	})
}

func tick() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyUp:
			m.recall(-1)
			return m, nil
		case tea.KeyDown:
			m.recall(1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > len(prompt) {
			m.input.Width = msg.Width - len(prompt)
		}
		return m, nil

	case tickMsg:
		m.refresh()
		return m, tea.Batch(tick(), tea.SetWindowTitle(titleStr(m.view)))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit hands the typed line to the REPL and echoes it into the scrollback.
func (m model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	if strings.TrimSpace(line) == "" {
		return m, nil
	}

	m.remember(line)
	m.lines <- line

	// Printing from inside Update would deadlock the program.
	echo := m.echo
	if echo == nil {
		return m, nil
	}
	return m, func() tea.Msg {
		echo(line)
		return nil
	}
}

func (m *model) remember(line string) {
	if n := len(m.history); n == 0 || m.history[n-1] != line {
		m.history = append(m.history, line)
	}
	if len(m.history) > historySize {
		m.history = m.history[len(m.history)-historySize:]
	}
	m.cursor = len(m.history)
}

// recall moves through earlier input, -1 for older and 1 for newer.
func (m *model) recall(step int) {
	next := m.cursor + step
	if next < 0 || next > len(m.history) {
		return
	}
	m.cursor = next
	if next == len(m.history) {
		m.input.SetValue("")
		return
	}
	m.input.SetValue(m.history[next])
	m.input.CursorEnd()
}

// refresh re-reads the box so readiness follows the clock between commands.
func (m *model) refresh() {
	if m.source == nil {
		return
	}
	if v, err := m.source.View(context.Background()); err == nil {
		m.view = &v
	}
}

func (m model) View() string {
	var b strings.Builder
	if bar := StatusBar(m.view, m.width); bar != "" {
		b.WriteString(bar + "\n")
	}
	b.WriteString("\n" + m.input.View())
	return b.String()
}
