// Package treetext reconstructs a directory tree from the rendered document.
//
// It is the reading half of the format contract whose writing half lives in
// internal/render: the four-character indent unit and the connector glyphs
// must match the renderer's constants exactly or parsing silently degrades.
package treetext

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// indentUnitWidth is the number of prefix runes that encode one
	// ancestry level in the rendered tree.
	indentUnitWidth = 4

	errorEmptyBlock      = "tree block contains no lines"
	errorNoFencedBlock   = "document contains no fenced tree block"
	errorRootLineFormat  = "first line %q does not name a root directory"
	branchConnectorRune  = '├'
	lastConnectorRune    = '└'
	directoryMarkerGlyph = "📁"
)

// fencedBlockPattern extracts the first fenced code block of the document.
var fencedBlockPattern = regexp.MustCompile("(?s)```\n(.*?)```")

// rootLinePattern matches the unprefixed root line, e.g. "📁 proj/".
var rootLinePattern = regexp.MustCompile(`^📁\s+(.+?)/?$`)

// entryLinePattern matches one stripped entry line: an optional connector,
// the kind marker, the name, and an optional parenthesized size suffix.
var entryLinePattern = regexp.MustCompile(`^(?:[├└]──\s+)?(📁|📄)\s+(.+?)(?:\s+\(([^)]+)\))?$`)

// Entry is one parsed tree node. Size survives only in its rendered string
// form; the parse is lossy by design.
type Entry struct {
	Name     string
	IsDir    bool
	Size     string
	Children []*Entry
}

// stackFrame pairs an open directory with its nesting depth.
type stackFrame struct {
	node  *Entry
	depth int
}

// ParseDocument extracts the fenced tree block from a rendered document and
// parses it into an Entry tree.
func ParseDocument(documentContent string) (*Entry, error) {
	blockMatch := fencedBlockPattern.FindStringSubmatch(documentContent)
	if blockMatch == nil {
		return nil, fmt.Errorf(errorNoFencedBlock)
	}
	blockLines := strings.Split(strings.TrimSpace(blockMatch[1]), "\n")
	return ParseTreeLines(blockLines)
}

// ParseTreeLines reconstructs the tree from the block's text lines. The first
// line names the root; each following line's depth is its leading prefix
// rune count divided by the indent unit width. The parent of an incoming
// line is found by popping the directory stack until the top frame's depth
// is strictly less than the line's depth.
func ParseTreeLines(treeLines []string) (*Entry, error) {
	if len(treeLines) == 0 {
		return nil, fmt.Errorf(errorEmptyBlock)
	}

	rootMatch := rootLinePattern.FindStringSubmatch(strings.TrimSpace(treeLines[0]))
	if rootMatch == nil {
		return nil, fmt.Errorf(errorRootLineFormat, treeLines[0])
	}
	rootEntry := &Entry{Name: rootMatch[1], IsDir: true}

	frames := []stackFrame{{node: rootEntry, depth: -1}}
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
		parsedEntry := &Entry{
			Name:  entryMatch[2],
			IsDir: entryMatch[1] == directoryMarkerGlyph,
			Size:  entryMatch[3],
		}

		for len(frames) > 1 && frames[len(frames)-1].depth >= entryDepth {
			frames = frames[:len(frames)-1]
		}
		parentEntry := frames[len(frames)-1].node
		parentEntry.Children = append(parentEntry.Children, parsedEntry)

		if parsedEntry.IsDir {
			frames = append(frames, stackFrame{node: parsedEntry, depth: entryDepth})
		}
	}
	return rootEntry, nil
}

// splitAncestryPrefix returns the rune count of the ancestry prefix before
// the connector and the remainder of the line starting at the connector.
// Lines without a connector are treated as having no prefix.
func splitAncestryPrefix(rawLine string) (int, string) {
	lineRunes := []rune(rawLine)
	for runeIndex, currentRune := range lineRunes {
		if currentRune == branchConnectorRune || currentRune == lastConnectorRune {
			return runeIndex, string(lineRunes[runeIndex:])
		}
	}
	return 0, strings.TrimSpace(rawLine)
}
