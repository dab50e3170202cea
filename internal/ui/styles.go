package ui

import "github.com/charmbracelet/lipgloss"

// Color palette for the panel
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - selection, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - connected, enabled
	ErrorColor   = lipgloss.Color("#FF5555") // Red - failures
	WarningColor = lipgloss.Color("#FFA500") // Orange - in-progress
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

var (
	// TabActiveStyle renders the selected tab label.
	TabActiveStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(PrimaryColor).
			Bold(true).
			Padding(0, 2)

	// TabInactiveStyle renders unselected tab labels.
	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				Padding(0, 2)

	// TitleStyle is for section titles inside a tab.
	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	// SelectedRowStyle highlights the cursor row in a list.
	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(PrimaryColor)

	// RowStyle renders an unselected list row.
	RowStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	// ConnectedStyle marks the in-use network or device.
	ConnectedStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	// SecondaryStyle is for signal strength, addresses, percentages.
	SecondaryStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// ErrorStyle renders failure messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// StatusStyle renders the transient status line.
	StatusStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// HelpStyle renders the key hint footer.
	HelpStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// PanelStyle frames a tab's content.
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(1, 2)

	// QRPayloadStyle renders the Wi-Fi share payload.
	QRPayloadStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SuccessColor).
			Padding(0, 1)

	// FadedStyle approximates a view mid cross-fade.
	FadedStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Faint(true)
)

// Status markers
const (
	MarkerConnected = "●"
	MarkerSecured   = "🔒"
	MarkerOpen      = " "
)
