package viewer

// viewerProgramTemplate is the source of the standalone viewer program. It
// embeds its own copy of the tree-text parsing algorithm so the emitted file
// has no dependency on this module; the parser here and internal/treetext
// implement the same format contract and must change together.
const viewerProgramTemplate = `// Code generated by treemark. DO NOT EDIT.
//
// Standalone viewer for {{.MarkdownFileName}}: reads the document at run
// time, parses the fenced tree block, and displays it as a collapsible
// terminal widget.
package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const markdownFileName = "{{.MarkdownFileName}}"
const viewerTitle = "{{.Title}}"

const indentUnitWidth = 4

var fencedBlockPattern = regexp.MustCompile("(?s)\x60\x60\x60\n(.*?)\x60\x60\x60")
var rootLinePattern = regexp.MustCompile("^📁\\s+(.+?)/?$")
var entryLinePattern = regexp.MustCompile("^(?:[├└]──\\s+)?(📁|📄)\\s+(.+?)(?:\\s+\\(([^)]+)\\))?$")

var titleStyle = lipgloss.NewStyle().Bold(true)
var directoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4EC9B0"))
var fileStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#CE9178"))
var sizeStyle = lipgloss.NewStyle().Faint(true)
var cursorStyle = lipgloss.NewStyle().Background(lipgloss.Color("57"))
var footerStyle = lipgloss.NewStyle().Faint(true)

type entry struct {
	name     string
	isDir    bool
	size     string
	children []*entry
}

type frame struct {
	node  *entry
	depth int
}

func parseDocument(documentContent string) (*entry, error) {
	blockMatch := fencedBlockPattern.FindStringSubmatch(documentContent)
	if blockMatch == nil {
		return nil, fmt.Errorf("no fenced tree block in %s", markdownFileName)
	}
	treeLines := strings.Split(strings.TrimSpace(blockMatch[1]), "\n")
	if len(treeLines) == 0 {
		return nil, fmt.Errorf("tree block contains no lines")
	}
	rootMatch := rootLinePattern.FindStringSubmatch(strings.TrimSpace(treeLines[0]))
	if rootMatch == nil {
		return nil, fmt.Errorf("first line %q does not name a root directory", treeLines[0])
	}
	rootEntry := &entry{name: rootMatch[1], isDir: true}
	frames := make([]frame, 0, 16)
	frames = append(frames, frame{node: rootEntry, depth: -1})
	for _, rawLine := range treeLines[1:] {
		if strings.TrimSpace(rawLine) == "" {
			continue
		}
		prefixWidth, strippedLine := splitAncestryPrefix(rawLine)
		entryMatch := entryLinePattern.FindStringSubmatch(strippedLine)
		if entryMatch == nil {
			continue
		}
		entryDepth := prefixWidth / indentUnitWidth
		parsedEntry := &entry{name: entryMatch[2], isDir: entryMatch[1] == "📁", size: entryMatch[3]}
		for len(frames) > 1 && frames[len(frames)-1].depth >= entryDepth {
			frames = frames[:len(frames)-1]
		}
		parentEntry := frames[len(frames)-1].node
		parentEntry.children = append(parentEntry.children, parsedEntry)
		if parsedEntry.isDir {
			frames = append(frames, frame{node: parsedEntry, depth: entryDepth})
		}
	}
	return rootEntry, nil
}

func splitAncestryPrefix(rawLine string) (int, string) {
	lineRunes := []rune(rawLine)
	for runeIndex, currentRune := range lineRunes {
		if currentRune == '├' || currentRune == '└' {
			return runeIndex, string(lineRunes[runeIndex:])
		}
	}
	return 0, strings.TrimSpace(rawLine)
}

type row struct {
	node  *entry
	depth int
}

type model struct {
	rootEntry *entry
	expanded  map[*entry]bool
	rows      []row
	cursor    int
	offset    int
	height    int
}

func newModel(rootEntry *entry) model {
	viewerModel := model{rootEntry: rootEntry, expanded: make(map[*entry]bool)}
	for _, topLevelEntry := range rootEntry.children {
		if topLevelEntry.isDir {
			viewerModel.expanded[topLevelEntry] = true
		}
	}
	viewerModel.rebuildRows()
	return viewerModel
}

func (viewerModel model) Init() tea.Cmd {
	return nil
}

func (viewerModel model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch typedMessage := message.(type) {
	case tea.WindowSizeMsg:
		viewerModel.height = typedMessage.Height - 4
		if viewerModel.height < 1 {
			viewerModel.height = 1
		}
		return viewerModel, nil
	case tea.KeyMsg:
		switch typedMessage.String() {
		case "ctrl+c", "q":
			return viewerModel, tea.Quit
		case "up", "k":
			if viewerModel.cursor > 0 {
				viewerModel.cursor--
			}
		case "down", "j":
			if viewerModel.cursor < len(viewerModel.rows)-1 {
				viewerModel.cursor++
			}
		case "enter", " ":
			viewerModel.toggleCursorEntry()
		case "e":
			viewerModel.setAllExpanded(true)
		case "c":
			viewerModel.setAllExpanded(false)
		}
		viewerModel.clampScroll()
		return viewerModel, nil
	}
	return viewerModel, nil
}

func (viewerModel *model) toggleCursorEntry() {
	if viewerModel.cursor >= len(viewerModel.rows) {
		return
	}
	selectedEntry := viewerModel.rows[viewerModel.cursor].node
	if !selectedEntry.isDir {
		return
	}
	viewerModel.expanded[selectedEntry] = !viewerModel.expanded[selectedEntry]
	viewerModel.rebuildRows()
}

func (viewerModel *model) setAllExpanded(expandedState bool) {
	var applyState func(currentEntry *entry)
	applyState = func(currentEntry *entry) {
		if currentEntry.isDir {
			viewerModel.expanded[currentEntry] = expandedState
		}
		for _, childEntry := range currentEntry.children {
			applyState(childEntry)
		}
	}
	for _, topLevelEntry := range viewerModel.rootEntry.children {
		applyState(topLevelEntry)
	}
	viewerModel.rebuildRows()
	if viewerModel.cursor >= len(viewerModel.rows) {
		viewerModel.cursor = len(viewerModel.rows) - 1
	}
	if viewerModel.cursor < 0 {
		viewerModel.cursor = 0
	}
}

func (viewerModel *model) rebuildRows() {
	viewerModel.rows = viewerModel.rows[:0]
	var collectRows func(currentEntry *entry, depth int)
	collectRows = func(currentEntry *entry, depth int) {
		viewerModel.rows = append(viewerModel.rows, row{node: currentEntry, depth: depth})
		if currentEntry.isDir && viewerModel.expanded[currentEntry] {
			for _, childEntry := range currentEntry.children {
				collectRows(childEntry, depth+1)
			}
		}
	}
	for _, topLevelEntry := range viewerModel.rootEntry.children {
		collectRows(topLevelEntry, 0)
	}
}

func (viewerModel *model) clampScroll() {
	if viewerModel.height <= 0 {
		return
	}
	if viewerModel.cursor < viewerModel.offset {
		viewerModel.offset = viewerModel.cursor
	}
	if viewerModel.cursor >= viewerModel.offset+viewerModel.height {
		viewerModel.offset = viewerModel.cursor - viewerModel.height + 1
	}
}

func (viewerModel model) View() string {
	var screenBuilder strings.Builder
	screenBuilder.WriteString(titleStyle.Render(viewerTitle))
	screenBuilder.WriteString("\n\n")
	lastRow := len(viewerModel.rows)
	if viewerModel.height > 0 && viewerModel.offset+viewerModel.height < lastRow {
		lastRow = viewerModel.offset + viewerModel.height
	}
	for rowIndex := viewerModel.offset; rowIndex < lastRow; rowIndex++ {
		currentRow := viewerModel.rows[rowIndex]
		branchSymbol := "  "
		nameStyle := fileStyle
		if currentRow.node.isDir {
			nameStyle = directoryStyle
			branchSymbol = "▸ "
			if viewerModel.expanded[currentRow.node] {
				branchSymbol = "▾ "
			}
		}
		renderedLine := strings.Repeat("  ", currentRow.depth) + branchSymbol + nameStyle.Render(currentRow.node.name)
		if currentRow.node.size != "" {
			renderedLine += sizeStyle.Render(" (" + currentRow.node.size + ")")
		}
		if rowIndex == viewerModel.cursor {
			renderedLine = cursorStyle.Render(renderedLine)
		}
		screenBuilder.WriteString(renderedLine)
		screenBuilder.WriteString("\n")
	}
	screenBuilder.WriteString("\n")
	screenBuilder.WriteString(footerStyle.Render("↑/↓ move  enter toggle  e expand all  c collapse all  q quit"))
	return screenBuilder.String()
}

func main() {
	documentBytes, readError := os.ReadFile(markdownFileName)
	if readError != nil {
		fmt.Fprintf(os.Stderr, "error: cannot read %s: %v\n", markdownFileName, readError)
		os.Exit(1)
	}
	rootEntry, parseError := parseDocument(string(documentBytes))
	if parseError != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", parseError)
		os.Exit(1)
	}
	program := tea.NewProgram(newModel(rootEntry), tea.WithAltScreen())
	if _, runError := program.Run(); runError != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", runError)
		os.Exit(1)
	}
}
`
