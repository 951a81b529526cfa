package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/flagring/flagring/pkg/flag"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// flagListModel is the bubbletea model for interactive flag selection.
type flagListModel struct {
	flags    []flag.Flag
	cursor   int
	selected *flag.Flag
	height   int
	offset   int
}

// newFlagListModel creates a new flag list model.
func newFlagListModel(flags []flag.Flag) flagListModel {
	return flagListModel{
		flags:  flags,
		height: 15,
	}
}

func (m flagListModel) Init() tea.Cmd {
	return nil
}

func (m flagListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.flags)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			m.selected = &m.flags[m.cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m flagListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Flag"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.flags) {
		end = len(m.flags)
	}

	for i := m.offset; i < end; i++ {
		f := m.flags[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%s %-24s %-10s %s",
			cursor, stripeSwatch(&f), f.ID,
			listDimStyle.Render(f.Category), listDimStyle.Render(f.DisplayName))

		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.flags))))

	return b.String()
}
