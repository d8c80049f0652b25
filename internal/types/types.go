// Package types defines the cross-package data structures used by the treemark CLI.
package types

const (
	// MarkerDirectory is the glyph prefixed to directory entries in the rendered tree.
	MarkerDirectory = "📁"
	// MarkerFile is the glyph prefixed to file entries in the rendered tree.
	MarkerFile = "📄"

	// DefaultOutputFileName is the document name used when no name flag is provided.
	DefaultOutputFileName = "structure.md"
	// MarkdownExtension is the file extension of the generated document.
	MarkdownExtension = ".md"
	// ViewerExtension is the file extension of the generated viewer program.
	ViewerExtension = ".go"

	// UnlimitedDepth disables depth pruning during traversal.
	UnlimitedDepth = -1
)

// Node is one entry of the in-memory directory tree. Directories own their
// children exclusively; Size is populated for files only.
type Node struct {
	Name     string
	IsDir    bool
	Size     int64
	Children []*Node
}

// TreeStats accumulates counters during a single build pass. The scanned
// root directory itself is not included in DirectoryCount.
type TreeStats struct {
	DirectoryCount int
	FileCount      int
	TotalSizeBytes int64
}
