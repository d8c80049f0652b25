// Package viewer displays a parsed directory tree as a collapsible terminal
// widget and generates the standalone viewer program.
package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/treemark/treemark/internal/treetext"
)

const (
	collapsedBranchSymbol = "▸ "
	expandedBranchSymbol  = "▾ "
	leafSymbol            = "  "
	rowIndentUnit         = "  "

	footerHelpText = "↑/↓ move  enter toggle  e expand all  c collapse all  q quit"

	headerReservedLines = 2
	footerReservedLines = 1
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	directoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4EC9B0"))
	fileStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#CE9178"))
	sizeStyle      = lipgloss.NewStyle().Faint(true)
	cursorStyle    = lipgloss.NewStyle().Background(lipgloss.Color("57"))
	footerStyle    = lipgloss.NewStyle().Faint(true)
)

// treeRow is one visible line of the widget: an entry at its nesting depth.
type treeRow struct {
	entry *treetext.Entry
	depth int
}

// Model is the collapsible tree widget. Directories toggle between expanded
// and collapsed; files are leaves.
type Model struct {
	title        string
	rootEntry    *treetext.Entry
	expanded     map[*treetext.Entry]bool
	visibleRows  []treeRow
	cursorIndex  int
	treeViewport viewport.Model
	sizeKnown    bool
}

// NewModel builds the widget over a parsed tree. The first level starts
// expanded, matching the document's natural reading order.
func NewModel(displayTitle string, rootEntry *treetext.Entry) Model {
	widgetModel := Model{
		title:     displayTitle,
		rootEntry: rootEntry,
		expanded:  make(map[*treetext.Entry]bool),
	}
	for _, topLevelEntry := range rootEntry.Children {
		if topLevelEntry.IsDir {
			widgetModel.expanded[topLevelEntry] = true
		}
	}
	widgetModel.rebuildVisibleRows()
	return widgetModel
}

// Init implements tea.Model.
func (widgetModel Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (widgetModel Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch typedMessage := message.(type) {
	case tea.WindowSizeMsg:
		viewportHeight := typedMessage.Height - headerReservedLines - footerReservedLines
		if viewportHeight < 1 {
			viewportHeight = 1
		}
		if !widgetModel.sizeKnown {
			widgetModel.treeViewport = viewport.New(typedMessage.Width, viewportHeight)
			widgetModel.sizeKnown = true
		} else {
			widgetModel.treeViewport.Width = typedMessage.Width
			widgetModel.treeViewport.Height = viewportHeight
		}
		widgetModel.refreshViewportContent()
		return widgetModel, nil

	case tea.KeyMsg:
		switch typedMessage.String() {
		case "ctrl+c", "q":
			return widgetModel, tea.Quit
		case "up", "k":
			if widgetModel.cursorIndex > 0 {
				widgetModel.cursorIndex--
			}
		case "down", "j":
			if widgetModel.cursorIndex < len(widgetModel.visibleRows)-1 {
				widgetModel.cursorIndex++
			}
		case "enter", " ":
			widgetModel.toggleCursorEntry()
		case "e":
			widgetModel.setAllExpanded(true)
		case "c":
			widgetModel.setAllExpanded(false)
		}
		widgetModel.refreshViewportContent()
		widgetModel.scrollCursorIntoView()
		return widgetModel, nil
	}
	return widgetModel, nil
}

// View implements tea.Model.
func (widgetModel Model) View() string {
	header := titleStyle.Render(widgetModel.title) + "\n\n"
	footer := "\n" + footerStyle.Render(footerHelpText)
	if !widgetModel.sizeKnown {
		return header + widgetModel.renderRows() + footer
	}
	return header + widgetModel.treeViewport.View() + footer
}

// toggleCursorEntry flips the expanded state of the directory under the cursor.
func (widgetModel *Model) toggleCursorEntry() {
	if widgetModel.cursorIndex >= len(widgetModel.visibleRows) {
		return
	}
	selectedEntry := widgetModel.visibleRows[widgetModel.cursorIndex].entry
	if !selectedEntry.IsDir {
		return
	}
	widgetModel.expanded[selectedEntry] = !widgetModel.expanded[selectedEntry]
	widgetModel.rebuildVisibleRows()
}

// setAllExpanded expands or collapses every directory of the tree.
func (widgetModel *Model) setAllExpanded(expandedState bool) {
	var applyState func(currentEntry *treetext.Entry)
	applyState = func(currentEntry *treetext.Entry) {
		if currentEntry.IsDir {
			widgetModel.expanded[currentEntry] = expandedState
		}
		for _, childEntry := range currentEntry.Children {
			applyState(childEntry)
		}
	}
	for _, topLevelEntry := range widgetModel.rootEntry.Children {
		applyState(topLevelEntry)
	}
	widgetModel.rebuildVisibleRows()
	if widgetModel.cursorIndex >= len(widgetModel.visibleRows) {
		widgetModel.cursorIndex = len(widgetModel.visibleRows) - 1
	}
	if widgetModel.cursorIndex < 0 {
		widgetModel.cursorIndex = 0
	}
}

// rebuildVisibleRows flattens the tree into the row list, descending only
// into expanded directories.
func (widgetModel *Model) rebuildVisibleRows() {
	widgetModel.visibleRows = widgetModel.visibleRows[:0]
	var collectRows func(currentEntry *treetext.Entry, depth int)
	collectRows = func(currentEntry *treetext.Entry, depth int) {
		widgetModel.visibleRows = append(widgetModel.visibleRows, treeRow{entry: currentEntry, depth: depth})
		if currentEntry.IsDir && widgetModel.expanded[currentEntry] {
			for _, childEntry := range currentEntry.Children {
				collectRows(childEntry, depth+1)
			}
		}
	}
	for _, topLevelEntry := range widgetModel.rootEntry.Children {
		collectRows(topLevelEntry, 0)
	}
}

// renderRows formats every visible row, highlighting the cursor line.
func (widgetModel *Model) renderRows() string {
	var rowsBuilder strings.Builder
	for rowIndex, currentRow := range widgetModel.visibleRows {
		branchSymbol := leafSymbol
		nameStyle := fileStyle
		if currentRow.entry.IsDir {
			nameStyle = directoryStyle
			branchSymbol = collapsedBranchSymbol
			if widgetModel.expanded[currentRow.entry] {
				branchSymbol = expandedBranchSymbol
			}
		}
		renderedLine := strings.Repeat(rowIndentUnit, currentRow.depth) + branchSymbol + nameStyle.Render(currentRow.entry.Name)
		if currentRow.entry.Size != "" {
			renderedLine += sizeStyle.Render(fmt.Sprintf(" (%s)", currentRow.entry.Size))
		}
		if rowIndex == widgetModel.cursorIndex {
			renderedLine = cursorStyle.Render(renderedLine)
		}
		rowsBuilder.WriteString(renderedLine)
		if rowIndex < len(widgetModel.visibleRows)-1 {
			rowsBuilder.WriteString("\n")
		}
	}
	return rowsBuilder.String()
}

// refreshViewportContent re-renders the rows into the scrolling viewport.
func (widgetModel *Model) refreshViewportContent() {
	if widgetModel.sizeKnown {
		widgetModel.treeViewport.SetContent(widgetModel.renderRows())
	}
}

// scrollCursorIntoView keeps the cursor line inside the viewport window.
func (widgetModel *Model) scrollCursorIntoView() {
	if !widgetModel.sizeKnown {
		return
	}
	if widgetModel.cursorIndex < widgetModel.treeViewport.YOffset {
		widgetModel.treeViewport.SetYOffset(widgetModel.cursorIndex)
	}
	lastVisibleLine := widgetModel.treeViewport.YOffset + widgetModel.treeViewport.Height - 1
	if widgetModel.cursorIndex > lastVisibleLine {
		widgetModel.treeViewport.SetYOffset(widgetModel.cursorIndex - widgetModel.treeViewport.Height + 1)
	}
}

// Run opens the widget in the alternate screen and blocks until it exits.
func Run(displayTitle string, rootEntry *treetext.Entry) error {
	program := tea.NewProgram(NewModel(displayTitle, rootEntry), tea.WithAltScreen())
	_, runError := program.Run()
	return runError
}
