// Package ui provides shared UI components and helpers for the TUI.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DimStyle applies a dim gray color to background content behind overlays.
// Existing ANSI codes are stripped first because SGR 2 (faint) doesn't
// reliably combine with color codes in most terminals.
var DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

// maxLineWidth returns the maximum visual width of the given lines.
func maxLineWidth(lines []string) int {
	maxWidth := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

func dimLine(s string) string {
	return DimStyle.Render(ansi.Strip(s))
}

// compositeRow overlays fgLine onto bgLine at startX, dimming the background
// segments on either side.
func compositeRow(bgLine, fgLine string, startX, fgWidth, totalWidth int) string {
	var b strings.Builder

	stripped := ansi.Strip(bgLine)
	bgWidth := ansi.StringWidth(stripped)

	if startX > 0 {
		left := ansi.Truncate(stripped, startX, "")
		leftWidth := ansi.StringWidth(left)
		b.WriteString(DimStyle.Render(left))
		if leftWidth < startX {
			b.WriteString(strings.Repeat(" ", startX-leftWidth))
		}
	}

	b.WriteString(fgLine)

	rightStart := startX + fgWidth
	if rightStart < totalWidth && bgWidth > rightStart {
		b.WriteString(DimStyle.Render(ansi.Cut(stripped, rightStart, bgWidth)))
	}

	return b.String()
}

// OverlayAt composites overlay on top of background anchored at (x, y),
// clamped to the viewport. Lines outside the overlay are dimmed. Used for
// the context menu, which opens at the click position.
func OverlayAt(background, overlay string, x, y, width, height int) string {
	bgLines := strings.Split(background, "\n")
	fgLines := strings.Split(overlay, "\n")

	fgWidth := maxLineWidth(fgLines)
	fgHeight := len(fgLines)

	if x+fgWidth > width {
		x = width - fgWidth
	}
	if y+fgHeight > height {
		y = height - fgHeight
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	result := make([]string, 0, height)
	for row := 0; row < height; row++ {
		bgLine := ""
		if row < len(bgLines) {
			bgLine = bgLines[row]
		}
		fgRow := row - y
		if fgRow >= 0 && fgRow < fgHeight {
			result = append(result, compositeRow(bgLine, fgLines[fgRow], x, fgWidth, width))
		} else {
			result = append(result, dimLine(bgLine))
		}
	}
	return strings.Join(result, "\n")
}

// OverlayCentered composites overlay centered on the background.
func OverlayCentered(background, overlay string, width, height int) string {
	fgLines := strings.Split(overlay, "\n")
	x := (width - maxLineWidth(fgLines)) / 2
	y := (height - len(fgLines)) / 2
	return OverlayAt(background, overlay, x, y, width, height)
}
