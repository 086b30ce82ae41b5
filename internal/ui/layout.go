package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dayboard/internal/theme"
)

// Layout splits the terminal into a header, a list sidebar, the todo
// column and a status bar.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
	SidebarWidth    int
}

// NewLayout creates a Layout for the given terminal dimensions. The sidebar
// takes a quarter of the width, clamped to a readable range.
func NewLayout(width, height int) Layout {
	sidebar := width / 4
	sidebar = max(sidebar, 18)
	sidebar = min(sidebar, 32)
	if sidebar > width/2 {
		sidebar = width / 2
	}
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
		SidebarWidth:    sidebar,
	}
}

// ContentHeight returns the rows between the header and the status bar.
func (l Layout) ContentHeight() int {
	return max(l.Height-l.HeaderHeight-l.StatusBarHeight, 0)
}

// MainWidth returns the width left for the todo column.
func (l Layout) MainWidth() int {
	// The sidebar frame adds one border column.
	return max(l.Width-l.SidebarWidth-1, 0)
}

// RenderHeader renders the title bar with right-aligned info.
func (l Layout) RenderHeader(title, info string) string {
	return l.fill(theme.HeaderStyle, title, info)
}

// RenderStatusBar renders the bottom bar. A non-empty errMsg takes the
// place of the hints.
func (l Layout) RenderStatusBar(hints, errMsg string) string {
	if errMsg != "" {
		return l.fill(theme.ErrorBarStyle, errMsg, "")
	}
	return l.fill(theme.StatusBarStyle, hints, "")
}

// RenderColumns puts the sidebar and the todo column side by side.
func (l Layout) RenderColumns(sidebar, main string) string {
	left := theme.SidebarStyle.
		Width(l.SidebarWidth).
		Height(l.ContentHeight()).
		Render(sidebar)
	right := lipgloss.NewStyle().
		Width(l.MainWidth()).
		Height(l.ContentHeight()).
		Render(main)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// RenderWithFrame stacks the header, content and status bar.
func (l Layout) RenderWithFrame(header, content, statusBar string) string {
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (l Layout) fill(style lipgloss.Style, left, right string) string {
	leftRendered := style.Render(left)
	rightRendered := ""
	if right != "" {
		rightRendered = style.Render(right)
	}

	gap := l.Width - lipgloss.Width(leftRendered) - lipgloss.Width(rightRendered)
	if gap < 0 {
		gap = 0
	}
	filler := lipgloss.NewStyle().
		Width(gap).
		Background(style.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, leftRendered, filler, rightRendered)
}
