package ui

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCanceled is returned when the user leaves a menu with esc or ctrl+c.
var ErrCanceled = errors.New("canceled")

type menuKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

var menuKeys = menuKeyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle:  key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
	Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Cancel:  key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "cancel")),
}

type menuStyles struct {
	title   lipgloss.Style
	cursor  lipgloss.Style
	checked lipgloss.Style
}

func newMenuStyles(color bool) menuStyles {
	if !color {
		return menuStyles{title: lipgloss.NewStyle(), cursor: lipgloss.NewStyle(), checked: lipgloss.NewStyle()}
	}
	return menuStyles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		cursor:  lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		checked: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	}
}

// menu is a bubbletea list with a cursor. With multi set, space toggles
// entries and enter confirms the checked set; otherwise enter picks the
// entry under the cursor.
type menu struct {
	title    string
	options  []string
	multi    bool
	cursor   int
	checked  []bool
	done     bool
	canceled bool
	styles   menuStyles
	help     help.Model
}

func newMenu(title string, options []string, multi bool, style *Styler) menu {
	return menu{
		title:   title,
		options: options,
		multi:   multi,
		checked: make([]bool, len(options)),
		styles:  newMenuStyles(style.Enabled()),
		help:    help.New(),
	}
}

func (m menu) Init() tea.Cmd {
	return nil
}

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(k, menuKeys.Cancel):
		m.canceled = true
		return m, tea.Quit
	case key.Matches(k, menuKeys.Confirm):
		m.done = true
		return m, tea.Quit
	case key.Matches(k, menuKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(k, menuKeys.Down):
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case key.Matches(k, menuKeys.Toggle):
		if m.multi {
			checked := append([]bool(nil), m.checked...)
			checked[m.cursor] = !checked[m.cursor]
			m.checked = checked
		}
	}
	return m, nil
}

func (m menu) View() string {
	if m.done || m.canceled {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.title.Render(m.title) + "\n")
	for i, opt := range m.options {
		cursor := "  "
		if i == m.cursor {
			cursor = m.styles.cursor.Render("> ")
		}
		box := ""
		if m.multi {
			box = "[ ] "
			if m.checked[i] {
				box = m.styles.checked.Render("[x]") + " "
			}
		}
		b.WriteString(cursor + box + opt + "\n")
	}

	bindings := []key.Binding{menuKeys.Up, menuKeys.Down}
	if m.multi {
		bindings = append(bindings, menuKeys.Toggle)
	}
	bindings = append(bindings, menuKeys.Confirm, menuKeys.Cancel)
	b.WriteString(m.help.ShortHelpView(bindings) + "\n")
	return b.String()
}

// selected returns the chosen option indexes in menu order.
func (m menu) selected() []int {
	if !m.multi {
		return []int{m.cursor}
	}
	var out []int
	for i, c := range m.checked {
		if c {
			out = append(out, i)
		}
	}
	return out
}

func runMenu(m menu, in io.Reader, out io.Writer) (menu, error) {
	final, err := tea.NewProgram(m, tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return m, err
	}
	res := final.(menu)
	if res.canceled {
		return res, ErrCanceled
	}
	return res, nil
}
