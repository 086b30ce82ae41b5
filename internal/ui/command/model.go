package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/theme"
)

// Kind identifies a palette command.
type Kind int

const (
	AddList Kind = iota
	RenameList
	DeleteList
	GotoList
	SetFilter
	Sync
	Quit
)

// Command is a parsed palette entry.
type Command struct {
	Kind  Kind
	Name  string
	Color string
	// Filter is set for SetFilter.
	Filter model.TodoFilter
}

// CommandMsg is emitted when the user executes a command.
type CommandMsg struct {
	Command Command
}

var suggestions = []string{
	"list add ",
	"list rename ",
	"list rm",
	"goto ",
	"filter all",
	"filter active",
	"filter completed",
	"sync",
	"quit",
}

// Parse turns palette input into a Command.
//
//	list add <name> [#color]
//	list rename <name>
//	list rm
//	goto <list name>
//	filter all|active|completed
//	sync
//	quit
func Parse(input string) (Command, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return Command{}, errors.New("empty command")
	}

	switch fields[0] {
	case "list":
		if len(fields) < 2 {
			return Command{}, errors.New("usage: list add|rename|rm")
		}
		rest := fields[2:]
		switch fields[1] {
		case "add", "new":
			var color string
			if n := len(rest); n > 1 && strings.HasPrefix(rest[n-1], "#") {
				color = rest[n-1]
				rest = rest[:n-1]
			}
			if len(rest) == 0 {
				return Command{}, errors.New("usage: list add <name> [#color]")
			}
			return Command{Kind: AddList, Name: strings.Join(rest, " "), Color: color}, nil
		case "rename":
			if len(rest) == 0 {
				return Command{}, errors.New("usage: list rename <name>")
			}
			return Command{Kind: RenameList, Name: strings.Join(rest, " ")}, nil
		case "rm", "delete":
			return Command{Kind: DeleteList}, nil
		}
		return Command{}, fmt.Errorf("unknown list command %q", fields[1])

	case "goto", "g":
		if len(fields) < 2 {
			return Command{}, errors.New("usage: goto <list name>")
		}
		return Command{Kind: GotoList, Name: strings.Join(fields[1:], " ")}, nil

	case "filter":
		if len(fields) != 2 || !model.TodoFilter(fields[1]).Valid() {
			return Command{}, errors.New("usage: filter all|active|completed")
		}
		return Command{Kind: SetFilter, Filter: model.TodoFilter(fields[1])}, nil

	case "sync", "refresh":
		return Command{Kind: Sync}, nil

	case "quit", "q":
		return Command{Kind: Quit}, nil
	}
	return Command{}, fmt.Errorf("unknown command %q", fields[0])
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	err    error
	width  int
	height int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "type a command..."
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(suggestions)
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		c, err := Parse(m.input.Value())
		if err != nil {
			m.err = err
			return m, nil
		}
		m.input.Reset()
		m.err = nil
		return m, func() tea.Msg { return CommandMsg{Command: c} }
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	parts := []string{titleStyle.Render("Command Palette"), m.input.View()}
	if m.err != nil {
		parts = append(parts, "", theme.OverdueStyle.Render(m.err.Error()))
	}

	return theme.PanelStyle.
		Width(max(m.width-4, 0)).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus clears the input and gives it keyboard focus.
func (m *Model) Focus() tea.Cmd {
	m.input.Reset()
	m.err = nil
	return m.input.Focus()
}
