package model

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NorthstarWang/fintech-banking-tui/style"
)

// PickerItem is a single entry in the category picker.
type PickerItem struct {
	Category string
	Count    int // transactions in this category
	Active   bool
}

// PickerChoice is emitted when the user selects a category. An empty
// Category clears the filter.
type PickerChoice struct {
	Category string
}

// PickerCancel is emitted when the user presses Esc.
type PickerCancel struct{}

// PickerModel renders a vertical list of categories with arrow-key
// navigation, used to pick the transactions view's category filter.
type PickerModel struct {
	items    []PickerItem
	cursor   int
	active   bool
	width    int
	offset   int // scroll offset for long lists
	pageSize int // visible items per page
}

// NewPicker returns a zero-value PickerModel.
func NewPicker() PickerModel {
	return PickerModel{pageSize: 12}
}

// SetItems populates the picker and activates it. The cursor starts on the
// currently active category.
func (m *PickerModel) SetItems(items []PickerItem) {
	m.items = items
	m.cursor = 0
	m.offset = 0
	m.active = true
	for i, item := range items {
		if item.Active {
			m.cursor = i
			if m.cursor >= m.pageSize {
				m.offset = m.cursor - m.pageSize/2
				if m.offset+m.pageSize > len(m.items) {
					m.offset = len(m.items) - m.pageSize
				}
				if m.offset < 0 {
					m.offset = 0
				}
			}
			break
		}
	}
}

// Clear deactivates the picker.
func (m *PickerModel) Clear() {
	m.active = false
	m.items = nil
	m.cursor = 0
	m.offset = 0
}

// IsActive reports whether the picker is currently visible.
func (m PickerModel) IsActive() bool {
	return m.active
}

// SetWidth constrains the picker to the terminal width.
func (m *PickerModel) SetWidth(w int) {
	m.width = w
}

// Init satisfies tea.Model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles keyboard input when the picker is active.
func (m PickerModel) Update(msg tea.Msg) (PickerModel, tea.Cmd) {
	if !m.active || len(m.items) == 0 {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		} else {
			// Wrap to bottom
			m.cursor = len(m.items) - 1
			if m.cursor >= m.offset+m.pageSize {
				m.offset = m.cursor - m.pageSize + 1
			}
		}

	case tea.KeyDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
			if m.cursor >= m.offset+m.pageSize {
				m.offset = m.cursor - m.pageSize + 1
			}
		} else {
			// Wrap to top
			m.cursor = 0
			m.offset = 0
		}

	case tea.KeyEnter:
		item := m.items[m.cursor]
		m.Clear()
		return m, func() tea.Msg {
			return PickerChoice{Category: item.Category}
		}

	case tea.KeyEsc:
		m.Clear()
		return m, func() tea.Msg { return PickerCancel{} }
	}

	return m, nil
}

// View renders the picker panel.
func (m PickerModel) View() string {
	if !m.active || len(m.items) == 0 {
		return ""
	}

	var sb strings.Builder

	header := lipgloss.NewStyle().
		Foreground(style.Primary).
		Bold(true).
		Render("◈ Filter by Category")
	hint := lipgloss.NewStyle().
		Foreground(style.Muted).
		Render("  ↑↓ navigate · Enter select · Esc cancel")
	sb.WriteString(header + hint + "\n\n")

	end := m.offset + m.pageSize
	if end > len(m.items) {
		end = len(m.items)
	}

	if m.offset > 0 {
		sb.WriteString(lipgloss.NewStyle().Foreground(style.Muted).Render("  ↑ more above") + "\n")
	}

	for i := m.offset; i < end; i++ {
		sb.WriteString(m.renderItem(m.items[i], i == m.cursor))
		sb.WriteString("\n")
	}

	if end < len(m.items) {
		sb.WriteString(lipgloss.NewStyle().Foreground(style.Muted).Render("  ↓ more below") + "\n")
	}

	countText := lipgloss.NewStyle().
		Foreground(style.Muted).
		Render(fmt.Sprintf("\n  %d categories", len(m.items)))
	sb.WriteString(countText)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.Border).
		Padding(0, 1)
	if m.width > 0 {
		boxStyle = boxStyle.Width(m.width - 2)
	}

	return boxStyle.Render(sb.String())
}

// renderItem renders a single category line.
func (m PickerModel) renderItem(item PickerItem, isCursor bool) string {
	var cursor string
	if isCursor {
		cursor = lipgloss.NewStyle().Foreground(style.Primary).Bold(true).Render("  > ")
	} else {
		cursor = "    "
	}

	var marker string
	if item.Active {
		marker = lipgloss.NewStyle().Foreground(style.Success).Render("●")
	} else {
		marker = lipgloss.NewStyle().Foreground(style.Muted).Render("○")
	}

	nameStyle := lipgloss.NewStyle()
	if isCursor {
		nameStyle = nameStyle.Bold(true)
	}
	name := item.Category
	if name == "" {
		name = "all categories"
	}

	var countBadge string
	if item.Count > 0 {
		countBadge = lipgloss.NewStyle().
			Foreground(style.Muted).
			Render(fmt.Sprintf("  %d txns", item.Count))
	}

	return cursor + marker + " " + nameStyle.Render(name) + countBadge
}
