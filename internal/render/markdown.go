// Package render turns a built directory tree into the Markdown document.
package render

import (
	"fmt"
	"strings"

	"github.com/treemark/treemark/internal/types"
	"github.com/treemark/treemark/internal/utils"
)

// Formatting constants shared with the textual tree parser. The parser
// depends on the exact connector glyphs and the four-character prefix unit;
// changes here must be mirrored in internal/treetext.
const (
	TreeBranchConnector = "├── "
	TreeLastConnector   = "└── "
	TreeBranchPadding   = "│   "
	TreeLastPadding     = "    "

	// CodeFence delimits the tree block inside the document.
	CodeFence = "```"
)

const (
	documentTitleFormat   = "# Directory Structure: %s\n\n"
	statisticsHeader      = "\n## Statistics\n\n"
	directoriesLineFormat = "- **Directories**: %d\n"
	filesLineFormat       = "- **Files**: %d\n"
	totalSizeLineFormat   = "- **Total size**: %s\n"
	rootLineFormat        = "%s %s/\n"
	entryLineFormat       = "%s%s%s %s%s\n"
	sizeSuffixFormat      = " (%s)"

	// placeholderDocument replaces the code block for an empty or inaccessible root.
	placeholderDocument = "# Directory Structure\n\nThe directory is empty or inaccessible.\n"
)

// Options carries the display flags for one rendered document.
type Options struct {
	IncludeSize     bool
	OnlyDirectories bool
}

// Document renders the full Markdown document for the built tree. A nil root
// yields the fixed placeholder document.
func Document(rootNode *types.Node, stats types.TreeStats, options Options) string {
	if rootNode == nil {
		return placeholderDocument
	}

	var documentBuilder strings.Builder
	documentBuilder.WriteString(fmt.Sprintf(documentTitleFormat, rootNode.Name))
	documentBuilder.WriteString(CodeFence + "\n")
	documentBuilder.WriteString(fmt.Sprintf(rootLineFormat, types.MarkerDirectory, rootNode.Name))
	for childIndex, childNode := range rootNode.Children {
		writeEntryLines(&documentBuilder, childNode, utils.EmptyString, childIndex == len(rootNode.Children)-1, options)
	}
	documentBuilder.WriteString(CodeFence + "\n")

	documentBuilder.WriteString(statisticsHeader)
	documentBuilder.WriteString(fmt.Sprintf(directoriesLineFormat, stats.DirectoryCount))
	if !options.OnlyDirectories {
		documentBuilder.WriteString(fmt.Sprintf(filesLineFormat, stats.FileCount))
		if options.IncludeSize {
			documentBuilder.WriteString(fmt.Sprintf(totalSizeLineFormat, utils.FormatFileSize(stats.TotalSizeBytes)))
		}
	}
	return documentBuilder.String()
}

// writeEntryLines emits the line for one node and recurses into its children.
// The ancestry prefix accumulates four characters per ancestor: padding when
// that ancestor was a last sibling, a vertical bar otherwise.
func writeEntryLines(documentBuilder *strings.Builder, node *types.Node, prefix string, isLast bool, options Options) {
	if node == nil {
		return
	}

	connector := TreeBranchConnector
	if isLast {
		connector = TreeLastConnector
	}
	marker := types.MarkerFile
	if node.IsDir {
		marker = types.MarkerDirectory
	}
	sizeSuffix := utils.EmptyString
	if options.IncludeSize && !node.IsDir {
		sizeSuffix = fmt.Sprintf(sizeSuffixFormat, utils.FormatFileSize(node.Size))
	}
	documentBuilder.WriteString(fmt.Sprintf(entryLineFormat, prefix, connector, marker, node.Name, sizeSuffix))

	if !node.IsDir || len(node.Children) == 0 {
		return
	}
	childPrefix := prefix + TreeBranchPadding
	if isLast {
		childPrefix = prefix + TreeLastPadding
	}
	for childIndex, childNode := range node.Children {
		writeEntryLines(documentBuilder, childNode, childPrefix, childIndex == len(node.Children)-1, options)
	}
}
