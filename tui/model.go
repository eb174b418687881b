package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// Model is the bubbletea application state for the projection viewer.
type Model struct {
	width, height int
	surface       *TermSurface
	activeTab     viewTab
	selectedGroup int
	focusMode     bool
	showLegend    bool
	statusMessage string
	err           error
	version       string
}

// exportResult is the message returned after a PNG export attempt.
type exportResult struct {
	path string
	err  error
}

// NewModel wraps a drawn terminal surface in the interactive viewer.
func NewModel(surface *TermSurface, version string) Model {
	return Model{
		surface:       surface,
		width:         80,
		height:        24,
		selectedGroup: -1,
		showLegend:    true,
		version:       version,
	}
}

// Init implements tea.Model; there is no startup work.
func (model Model) Init() tea.Cmd {
	return nil
}

// Update handles all incoming messages and updates the model state accordingly.
func (model Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch message := msg.(type) {
	case tea.KeyMsg:
		return model.handleKeyPress(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height

	case exportResult:
		if message.err != nil {
			model.err = message.err
		} else {
			model.err = nil
			model.statusMessage = "saved " + message.path
		}
	}

	return model, nil
}

func (model Model) handleKeyPress(keyMessage tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMessage.String() {
	case "ctrl+c", "esc", "q":
		return model, tea.Quit

	case "1":
		model.activeTab = tabPlot

	case "2":
		model.activeTab = tabGroups

	case "3":
		model.activeTab = tabStats

	case "tab":
		model.activeTab = (model.activeTab + 1) % 3

	case "up", "shift+tab":
		model.selectPreviousGroup()

	case "down":
		model.selectNextGroup()

	case "l":
		model.showLegend = !model.showLegend

	case "f":
		model.focusMode = !model.focusMode

	case "e":
		return model, model.exportFigure()
	}

	return model, nil
}

func (model *Model) selectNextGroup() {
	if count := len(model.surface.groups); count > 0 {
		model.selectedGroup = (model.selectedGroup + 1) % count
	}
}

func (model *Model) selectPreviousGroup() {
	if count := len(model.surface.groups); count > 0 {
		model.selectedGroup--
		if model.selectedGroup < 0 {
			model.selectedGroup = count - 1
		}
	}
}

// exportFigure writes the current figure to a uniquely named PNG in the
// working directory.
func (model *Model) exportFigure() tea.Cmd {
	surface := model.surface
	return func() tea.Msg {
		fileName := fmt.Sprintf("projection-%s.png", uuid.New().String()[:8])
		if err := surface.ExportPNG(fileName); err != nil {
			return exportResult{err: err}
		}
		return exportResult{path: fileName}
	}
}

// View renders the complete UI as a string.
func (model Model) View() string {
	layout := model.calculateLayout()
	appStyles := newStyles()

	var builder strings.Builder
	builder.WriteString(model.renderTabBar(appStyles, layout.totalWidth))
	builder.WriteString("\n")

	switch model.activeTab {
	case tabGroups:
		builder.WriteString(model.renderGroupList(appStyles, layout))
	case tabStats:
		builder.WriteString(model.renderStats(appStyles, layout))
	default:
		builder.WriteString(model.renderPlot(appStyles, layout))
	}
	builder.WriteString("\n")

	if errorLine := model.renderError(appStyles); errorLine != "" {
		builder.WriteString(errorLine)
		builder.WriteString("\n")
	}
	builder.WriteString(model.renderStatusBar(appStyles, layout.totalWidth))

	return builder.String()
}

func (model Model) renderPlot(appStyles styles, layout layoutDimensions) string {
	canvasInnerWidth := layout.canvasWidth - borderSize
	canvasInnerHeight := layout.canvasHeight - borderSize

	canvasContent := model.surface.Render(canvasInnerWidth, canvasInnerHeight, model.selectedGroup, model.focusMode)
	canvasBox := appStyles.canvas.
		Width(canvasInnerWidth).
		Height(canvasInnerHeight).
		Render(canvasContent)

	if model.showLegend && len(model.surface.groups) > 0 && model.surface.legendVisible {
		canvasBox = model.overlayLegendPanel(canvasBox, appStyles, layout)
	}

	return canvasBox
}

func (model Model) overlayLegendPanel(base string, appStyles styles, layout layoutDimensions) string {
	panelInnerWidth := legendPanelWidth - 4

	var lines []string
	lines = append(lines, appStyles.title.Render("Legend"))
	for groupIndex, group := range model.surface.groups {
		marker := "○"
		if groupIndex == model.selectedGroup {
			marker = "●"
		}
		markerStyled := lipgloss.NewStyle().Foreground(lipglossColor(group.color)).Render(marker)
		label := group.label
		if label == "" {
			label = "(unlabeled)"
		}
		entry := fmt.Sprintf("%s %s (%d)", markerStyled, truncateLabel(label, panelInnerWidth-8), len(group.xs))
		lines = append(lines, entry)
	}

	panel := appStyles.overlay.
		Width(panelInnerWidth).
		Render(strings.Join(lines, "\n"))

	return overlayAt(base, panel, layout.canvasWidth-legendPanelWidth-1, 1)
}

func (model Model) renderGroupList(appStyles styles, layout layoutDimensions) string {
	var lines []string
	lines = append(lines, appStyles.title.Render(model.surface.Title()))
	lines = append(lines, "")

	if len(model.surface.groups) == 0 {
		lines = append(lines, "no groups")
	}
	for groupIndex, group := range model.surface.groups {
		label := group.label
		if label == "" {
			label = "(unlabeled)"
		}
		line := fmt.Sprintf("  %s  %d points", label, len(group.xs))
		if groupIndex == model.selectedGroup {
			line = appStyles.selected.Render("> " + strings.TrimLeft(line, " "))
		}
		lines = append(lines, line)
	}

	return model.padToCanvas(appStyles, layout, lines)
}

func (model Model) renderStats(appStyles styles, layout layoutDimensions) string {
	var lines []string
	lines = append(lines, appStyles.title.Render("Stats"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("  points: %d", model.surface.NumPoints()))
	lines = append(lines, fmt.Sprintf("  groups: %d", len(model.surface.groups)))

	minimumX, maximumX, minimumY, maximumY := model.surface.bounds()
	if model.surface.NumPoints() > 0 {
		lines = append(lines, fmt.Sprintf("  x range: %.3f .. %.3f", minimumX, maximumX))
		lines = append(lines, fmt.Sprintf("  y range: %.3f .. %.3f", minimumY, maximumY))
	}
	lines = append(lines, "")

	// Largest groups first
	type groupSize struct {
		label string
		size  int
	}
	sizes := make([]groupSize, 0, len(model.surface.groups))
	for _, group := range model.surface.groups {
		label := group.label
		if label == "" {
			label = "(unlabeled)"
		}
		sizes = append(sizes, groupSize{label: label, size: len(group.xs)})
	}
	sort.SliceStable(sizes, func(firstIndex, secondIndex int) bool {
		return sizes[firstIndex].size > sizes[secondIndex].size
	})
	for _, entry := range sizes {
		lines = append(lines, fmt.Sprintf("  %-20s %d", truncateLabel(entry.label, 20), entry.size))
	}

	return model.padToCanvas(appStyles, layout, lines)
}

func (model Model) padToCanvas(appStyles styles, layout layoutDimensions, lines []string) string {
	canvasInnerWidth := layout.canvasWidth - borderSize
	canvasInnerHeight := layout.canvasHeight - borderSize

	if len(lines) > canvasInnerHeight {
		lines = lines[:canvasInnerHeight]
	}
	return appStyles.canvas.
		Width(canvasInnerWidth).
		Height(canvasInnerHeight).
		Render(strings.Join(lines, "\n"))
}

func truncateLabel(text string, maxLength int) string {
	if maxLength < 1 || len(text) <= maxLength {
		return text
	}
	if maxLength < 4 {
		return text[:maxLength]
	}
	return text[:maxLength-3] + "..."
}
