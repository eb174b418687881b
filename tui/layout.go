package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

const (
	legendPanelWidth = 34
	minCanvasWidth   = 40
	minCanvasHeight  = 10
	tabBarHeight     = 1
	statusBarHeight  = 1
	borderSize       = 2
)

type viewTab int

const (
	tabPlot viewTab = iota
	tabGroups
	tabStats
)

type layoutDimensions struct {
	totalWidth   int
	totalHeight  int
	canvasWidth  int
	canvasHeight int
}

func (m Model) calculateLayout() layoutDimensions {
	marginX := 2
	marginY := 2

	totalWidth := m.width - marginX
	totalHeight := m.height - marginY

	canvasHeight := totalHeight - tabBarHeight - statusBarHeight
	if canvasHeight < minCanvasHeight {
		canvasHeight = minCanvasHeight
	}

	canvasWidth := totalWidth - borderSize
	if canvasWidth < minCanvasWidth {
		canvasWidth = minCanvasWidth
	}

	return layoutDimensions{
		totalWidth:   totalWidth,
		totalHeight:  totalHeight,
		canvasWidth:  canvasWidth,
		canvasHeight: canvasHeight,
	}
}

type styles struct {
	title       lipgloss.Style
	canvas      lipgloss.Style
	overlay     lipgloss.Style
	selected    lipgloss.Style
	tabActive   lipgloss.Style
	tabInactive lipgloss.Style
	tabBar      lipgloss.Style
	statusBar   lipgloss.Style
	errorText   lipgloss.Style
}

func newStyles() styles {
	accentColor := lipgloss.Color("#FF87D7")
	borderColor := lipgloss.Color("#5F5FAF")
	canvasBorderColor := lipgloss.Color("#FF8700")
	dimColor := lipgloss.Color("#6C6C6C")
	bgColor := lipgloss.Color("#303030")

	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor),

		canvas: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(canvasBorderColor),

		overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Background(bgColor).
			Padding(0, 1),

		selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor),

		tabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			Padding(0, 1),

		tabInactive: lipgloss.NewStyle().
			Foreground(dimColor).
			Padding(0, 1),

		tabBar: lipgloss.NewStyle().
			Foreground(dimColor),

		statusBar: lipgloss.NewStyle().
			Foreground(dimColor),

		errorText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")),
	}
}

func (m Model) renderTabBar(s styles, width int) string {
	tabs := []struct {
		name string
		tab  viewTab
	}{
		{"Plot", tabPlot},
		{"Groups", tabGroups},
		{"Stats", tabStats},
	}

	var parts []string
	for _, t := range tabs {
		style := s.tabInactive
		if t.tab == m.activeTab {
			style = s.tabActive
		}
		parts = append(parts, style.Render(t.name))
	}

	tabRow := strings.Join(parts, s.tabBar.Render(" │ "))
	title := s.title.Render(m.surface.Title())

	tabWidth := lipgloss.Width(tabRow)
	titleWidth := lipgloss.Width(title)
	gap := width - tabWidth - titleWidth
	if gap < 1 {
		gap = 1
	}

	return tabRow + strings.Repeat(" ", gap) + title
}

func overlayAt(base, overlay string, x, y int) string {
	bgLines, bgWidth := getLines(base)
	fgLines, fgWidth := getLines(overlay)
	bgHeight := len(bgLines)
	fgHeight := len(fgLines)

	if fgWidth >= bgWidth && fgHeight >= bgHeight {
		return overlay
	}

	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x > bgWidth-fgWidth {
		x = bgWidth - fgWidth
	}
	if y > bgHeight-fgHeight {
		y = bgHeight - fgHeight
	}

	var b strings.Builder
	for i, bgLine := range bgLines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i < y || i >= y+fgHeight {
			b.WriteString(bgLine)
			continue
		}

		pos := 0
		if x > 0 {
			left := truncate.String(bgLine, uint(x))
			pos = ansi.StringWidth(left)
			b.WriteString(left)
			if pos < x {
				b.WriteString(strings.Repeat(" ", x-pos))
				pos = x
			}
		}

		fgLine := fgLines[i-y]
		b.WriteString(fgLine)
		pos += ansi.StringWidth(fgLine)

		right := ansi.TruncateLeft(bgLine, pos, "")
		lineWidth := ansi.StringWidth(bgLine)
		rightWidth := ansi.StringWidth(right)
		if rightWidth <= lineWidth-pos {
			b.WriteString(strings.Repeat(" ", lineWidth-rightWidth-pos))
		}
		b.WriteString(right)
	}

	return b.String()
}

func getLines(s string) ([]string, int) {
	lines := strings.Split(s, "\n")
	widest := 0
	for _, l := range lines {
		w := ansi.StringWidth(l)
		if widest < w {
			widest = w
		}
	}
	return lines, widest
}

func (m Model) renderStatusBar(s styles, width int) string {
	help := "↑↓: group │ f: focus │ l: legend │ e: export png │ 1-3: tabs │ esc: quit"
	if m.statusMessage != "" {
		help = m.statusMessage + " │ " + help
	}

	version := m.version
	padding := width - lipgloss.Width(help) - lipgloss.Width(version)
	if padding < 1 {
		padding = 1
	}

	return s.statusBar.Render(help + strings.Repeat(" ", padding) + version)
}

func (m Model) renderError(s styles) string {
	if m.err == nil {
		return ""
	}
	return s.errorText.Render("Error: " + m.err.Error())
}
