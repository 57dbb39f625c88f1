package style

import "github.com/charmbracelet/lipgloss"

// Colors — the active palette. Reassigned by SetTheme.
var (
	Primary   = lipgloss.Color("#2563EB") // blue-600
	Secondary = lipgloss.Color("#0D9488") // teal-600
	Success   = lipgloss.Color("#22C55E") // green-500
	Warning   = lipgloss.Color("#F59E0B") // amber-500
	Error     = lipgloss.Color("#EF4444") // red-500
	Muted     = lipgloss.Color("#6B7280") // gray-500
	Dim       = lipgloss.Color("#374151") // gray-700
	Border    = lipgloss.Color("#4B5563") // gray-600
)

// Shared styles. Rebuilt whenever the theme changes.
var (
	Bold      lipgloss.Style
	Faint     lipgloss.Style
	ErrorText lipgloss.Style

	// Header
	HeaderTitle  lipgloss.Style
	HeaderDetail lipgloss.Style

	// Money
	AmountCredit lipgloss.Style
	AmountDebit  lipgloss.Style
	PendingBadge lipgloss.Style

	// Status bar
	StatusBar    lipgloss.Style
	StatusAccent lipgloss.Style
	ProgressBar  lipgloss.Style

	// Cards and panels
	CardBorder lipgloss.Style
	CardTitle  lipgloss.Style

	// Selection and hints
	Selected lipgloss.Style
	Hint     lipgloss.Style

	// Spinner
	SpinnerStyle lipgloss.Style
)

func init() {
	rebuild()
}

// rebuild derives every shared style from the active color variables.
func rebuild() {
	Bold = lipgloss.NewStyle().Bold(true)
	Faint = lipgloss.NewStyle().Foreground(Muted)
	ErrorText = lipgloss.NewStyle().Foreground(Error).Bold(true)

	HeaderTitle = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	HeaderDetail = lipgloss.NewStyle().Foreground(Muted)

	AmountCredit = lipgloss.NewStyle().Foreground(Success)
	AmountDebit = lipgloss.NewStyle().Foreground(Error)
	PendingBadge = lipgloss.NewStyle().Foreground(Warning).Italic(true)

	StatusBar = lipgloss.NewStyle().Foreground(Muted).PaddingLeft(1)
	StatusAccent = lipgloss.NewStyle().Foreground(Secondary)
	ProgressBar = lipgloss.NewStyle().Foreground(Primary)

	CardBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
	CardTitle = lipgloss.NewStyle().Foreground(Secondary).Bold(true)

	Selected = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Hint = lipgloss.NewStyle().Foreground(Dim)

	SpinnerStyle = lipgloss.NewStyle().Foreground(Primary)
}

// ProgressBarRender renders a utilization bar like: ██████░░░░
// The fill color shifts to amber past 75% and red past 90%.
func ProgressBarRender(utilization float64, width int) string {
	if utilization < 0 {
		utilization = 0
	}
	filled := int(utilization * float64(width))
	if filled > width {
		filled = width
	}
	empty := width - filled

	var color lipgloss.TerminalColor
	switch {
	case utilization >= 0.90:
		color = Error
	case utilization >= 0.75:
		color = Warning
	default:
		color = Primary
	}

	return lipgloss.NewStyle().Foreground(color).Render(repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(Dim).Render(repeat("░", empty))
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
