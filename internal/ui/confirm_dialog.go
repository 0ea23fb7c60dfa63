package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/canvas-ai/canvas-tui/internal/styles"
)

// ConfirmDialog is a self-rendering confirmation prompt with two buttons.
type ConfirmDialog struct {
	Title        string
	Message      string
	ConfirmLabel string
	CancelLabel  string
	Destructive  bool // red border and confirm button
	Width        int

	confirmFocused bool
}

// NewConfirmDialog creates a dialog with sensible defaults. Cancel has
// focus initially so a stray enter does nothing irreversible.
func NewConfirmDialog(title, message string) *ConfirmDialog {
	return &ConfirmDialog{
		Title:        title,
		Message:      message,
		ConfirmLabel: " Confirm ",
		CancelLabel:  " Cancel ",
		Width:        50,
	}
}

// Toggle moves focus between the two buttons.
func (d *ConfirmDialog) Toggle() {
	d.confirmFocused = !d.confirmFocused
}

// ConfirmFocused reports whether the confirm button has focus.
func (d *ConfirmDialog) ConfirmFocused() bool {
	return d.confirmFocused
}

// View renders the dialog.
func (d *ConfirmDialog) View() string {
	borderColor := styles.BorderActive
	confirmStyle := styles.MenuItemActive
	if d.Destructive {
		borderColor = styles.Error
		confirmStyle = lipgloss.NewStyle().Background(styles.Error).Foreground(styles.TextPrimary).Bold(true)
	}

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(d.Width)

	focused := lipgloss.NewStyle().Background(styles.BgTertiary).Foreground(styles.TextPrimary).Bold(true)
	blurred := lipgloss.NewStyle().Foreground(styles.TextMuted)

	confirm := blurred.Render(d.ConfirmLabel)
	cancel := focused.Render(d.CancelLabel)
	if d.confirmFocused {
		confirm = confirmStyle.Render(d.ConfirmLabel)
		cancel = blurred.Render(d.CancelLabel)
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top, confirm, "  ", cancel)
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render(d.Title),
		"",
		styles.Body.Render(d.Message),
		"",
		lipgloss.PlaceHorizontal(d.Width-4, lipgloss.Center, buttons),
	)
	return frame.Render(body)
}
