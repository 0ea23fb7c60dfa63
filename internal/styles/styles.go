package styles

import "github.com/charmbracelet/lipgloss"

// Color palette - default dark theme
var (
	// Primary colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#3B82F6") // Blue
	Accent    = lipgloss.Color("#F59E0B") // Amber

	// Status colors
	Success = lipgloss.Color("#10B981") // Green
	Warning = lipgloss.Color("#F59E0B") // Amber
	Error   = lipgloss.Color("#EF4444") // Red
	Info    = lipgloss.Color("#3B82F6") // Blue

	// Text colors
	TextPrimary   = lipgloss.Color("#F9FAFB")
	TextSecondary = lipgloss.Color("#9CA3AF")
	TextMuted     = lipgloss.Color("#6B7280")
	TextSubtle    = lipgloss.Color("#4B5563")

	// Background colors
	BgPrimary   = lipgloss.Color("#111827")
	BgSecondary = lipgloss.Color("#1F2937")
	BgTertiary  = lipgloss.Color("#374151")

	// Border colors
	BorderNormal = lipgloss.Color("#374151")
	BorderActive = lipgloss.Color("#7C3AED")
)

// Panel styles
var (
	// Active panel with highlighted border
	PanelActive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderActive).
			Padding(0, 1)

	// Inactive panel with subtle border
	PanelInactive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderNormal).
			Padding(0, 1)

	// Panel header
	PanelHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextPrimary).
			MarginBottom(1)
)

// Text styles
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	Body = lipgloss.NewStyle().
		Foreground(TextPrimary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Subtle = lipgloss.NewStyle().
		Foreground(TextSubtle)

	KeyHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary).
		Padding(0, 1)

	Logo = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)
)

// Toast styles for status messages
var (
	ToastSuccess = lipgloss.NewStyle().
			Background(Success).
			Foreground(lipgloss.Color("#000000")).
			Bold(true).
			Padding(0, 1)

	ToastError = lipgloss.NewStyle().
			Background(Error).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)
)

// Tree and list styles
var (
	// Row under the cursor
	CursorRow = lipgloss.NewStyle().
			Background(BgTertiary).
			Foreground(TextPrimary).
			Bold(true)

	// Row in the multi-selection
	SelectedRow = lipgloss.NewStyle().
			Background(BgSecondary).
			Foreground(Secondary)

	// Row that is both selected and under the cursor
	SelectedCursorRow = lipgloss.NewStyle().
				Background(BgTertiary).
				Foreground(Secondary).
				Bold(true)

	// Drop target highlight while dragging
	DropTargetRow = lipgloss.NewStyle().
			Background(BgSecondary).
			Foreground(Accent).
			Bold(true)

	// Drop target that would be rejected
	DropRejectRow = lipgloss.NewStyle().
			Foreground(Error)

	// Layer staged for cut
	CutRow = lipgloss.NewStyle().
		Foreground(TextMuted).
		Strikethrough(true)

	ExpandGlyph = lipgloss.NewStyle().
			Foreground(TextSecondary)
)

// Menu styles
var (
	MenuBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderActive).
			Padding(0, 1)

	MenuItem = lipgloss.NewStyle().
			Foreground(TextPrimary)

	MenuItemActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(TextPrimary).
			Bold(true)

	MenuItemDisabled = lipgloss.NewStyle().
				Foreground(TextSubtle)

	MenuItemDestructive = lipgloss.NewStyle().
				Foreground(Error)
)

// NodeColor returns a style for a layer's configured color, falling back to
// the default body style for unknown values.
func NodeColor(hex string) lipgloss.Style {
	if len(hex) != 7 || hex[0] != '#' {
		return Body
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}
