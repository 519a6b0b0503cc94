// Package display is the terminal front end: a Bubble Tea program that pins
// the crafting status above a prompt, with all other output printed into
// the scrollback through the program so concurrent writers never interleave.
package display

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/craftbox/internal/engine"
)

// ViewSource hands out the current crafting box view. *engine.Box
// satisfies it.
type ViewSource interface {
	View(ctx context.Context) (engine.View, error)
}

// UI owns the terminal while Run is active. The print methods are safe to
// call from any goroutine, before, during or after Run.
type UI struct {
	source  ViewSource
	program *tea.Program
	lines   chan string
	started chan struct{}
	stopped chan struct{}
	exited  atomic.Bool
}

// NewUI creates the display. Nothing is drawn until Run.
func NewUI(source ViewSource) *UI {
	return &UI{
		source:  source,
		lines:   make(chan string, 16),
		started: make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Run draws the prompt and blocks until the player quits or Quit is called.
func (u *UI) Run() error {
	u.program = tea.NewProgram(model{
		source:  u.source,
		input:   newInput(),
		lines:   u.lines,
		started: u.started,
		echo:    u.PrintUserInput,
	})
	_, err := u.program.Run()
	u.exited.Store(true)
	close(u.stopped)
	return err
}

// WaitReady blocks until the event loop is running.
func (u *UI) WaitReady() { <-u.started }

// Quit stops the event loop.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// QuitChan is closed once Run has returned.
func (u *UI) QuitChan() <-chan struct{} { return u.stopped }

// InputChan yields each line the player submits.
func (u *UI) InputChan() <-chan string { return u.lines }

// Println prints above the prompt, or to stdout when no program is running.
func (u *UI) Println(a ...interface{}) {
	u.emit(fmt.Sprint(a...))
}

// Printf is Println with a format.
func (u *UI) Printf(format string, a ...interface{}) {
	u.emit(fmt.Sprintf(format, a...))
}

func (u *UI) emit(line string) {
	if u.program == nil || u.exited.Load() {
		fmt.Println(line)
		return
	}
	u.program.Println(line)
}

func (u *UI) styled(style lipgloss.Style, text string) {
	u.emit(style.Render("  " + text))
}

// PrintChat prints a reply to the player.
func (u *UI) PrintChat(text string) { u.styled(chatStyle, text) }

// PrintHeader prints a section title.
func (u *UI) PrintHeader(text string) { u.styled(headerStyle, text) }

// PrintLine prints body text.
func (u *UI) PrintLine(text string) { u.styled(primaryStyle, text) }

// PrintHint prints a dimmed line. Refused actions are reported this way.
func (u *UI) PrintHint(text string) { u.styled(secondaryStyle, text) }

// PrintUrgent prints an alert or error.
func (u *UI) PrintUrgent(text string) { u.styled(urgentStyle, text) }

// PrintBlock prints pre-rendered output unchanged.
func (u *UI) PrintBlock(block string) {
	u.emit(strings.TrimRight(block, "\n"))
}

// PrintUserInput echoes a submitted command into the scrollback.
func (u *UI) PrintUserInput(text string) {
	u.emit(promptStyle.Render("craft") + secondaryStyle.Render("> ") + echoStyle.Render(text))
}
