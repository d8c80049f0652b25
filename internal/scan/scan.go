// Package scan contains the recursive directory tree builder.
package scan

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/treemark/treemark/internal/types"
	"github.com/treemark/treemark/internal/utils"
)

const (
	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"
)

// Options configures a single build pass.
type Options struct {
	// Ignore decides which entry names are excluded from the tree.
	Ignore utils.IgnorePredicate
	// OnlyDirectories drops file entries entirely when set.
	OnlyDirectories bool
	// MaxDepth prunes entries deeper than the given level; the root is at
	// depth zero. Use types.UnlimitedDepth to disable pruning.
	MaxDepth int
	// IncludeSize controls whether file sizes are looked up during the pass.
	// When unset, nodes carry size zero and the total stays zero.
	IncludeSize bool
}

// Result carries the outcome of one build pass. Root is nil when the root
// directory could not be listed or contained no entries at all; callers
// render the placeholder document in that case.
type Result struct {
	Root  *types.Node
	Stats types.TreeStats
}

// Builder walks a directory tree and produces Nodes plus accumulated stats.
type Builder struct {
	options Options
}

// NewBuilder returns a Builder for the provided options.
func NewBuilder(options Options) *Builder {
	return &Builder{options: options}
}

// Build performs one synchronous traversal rooted at rootDirectoryPath.
// Listing failures below the root are swallowed: the affected directory node
// keeps whatever children were collected before the failure. File-size
// lookups that fail yield size zero.
func (builder *Builder) Build(rootDirectoryPath string) (Result, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return Result{}, fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}

	rootEntries, rootReadError := os.ReadDir(absoluteRootPath)
	if rootReadError != nil || len(rootEntries) == 0 {
		return Result{}, nil
	}

	var stats types.TreeStats
	rootNode := &types.Node{
		Name:  filepath.Base(absoluteRootPath),
		IsDir: true,
	}
	rootNode.Children = builder.buildEntryNodes(absoluteRootPath, rootEntries, 1, &stats)
	return Result{Root: rootNode, Stats: stats}, nil
}

// buildEntryNodes converts the listed entries at the given depth into Nodes,
// recursing into subdirectories and incrementing the shared counters for
// every accepted entry.
func (builder *Builder) buildEntryNodes(currentDirectoryPath string, directoryEntries []os.DirEntry, depth int, stats *types.TreeStats) []*types.Node {
	if builder.isPruned(depth) {
		return nil
	}

	var nodes []*types.Node
	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		if builder.options.Ignore.ShouldIgnore(entryName) {
			continue
		}

		if directoryEntry.IsDir() {
			stats.DirectoryCount++
			node := &types.Node{Name: entryName, IsDir: true}
			childDirectoryPath := filepath.Join(currentDirectoryPath, entryName)
			if !builder.isPruned(depth + 1) {
				// Keep the partial listing when ReadDir fails midway.
				childEntries, _ := os.ReadDir(childDirectoryPath)
				node.Children = builder.buildEntryNodes(childDirectoryPath, childEntries, depth+1, stats)
			}
			nodes = append(nodes, node)
			continue
		}

		if builder.options.OnlyDirectories {
			continue
		}
		stats.FileCount++
		node := &types.Node{Name: entryName}
		if builder.options.IncludeSize {
			entryInfo, infoError := directoryEntry.Info()
			if infoError == nil {
				node.Size = entryInfo.Size()
			}
			stats.TotalSizeBytes += node.Size
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// isPruned reports whether entries at the given depth exceed the configured maximum.
func (builder *Builder) isPruned(depth int) bool {
	return builder.options.MaxDepth != types.UnlimitedDepth && depth > builder.options.MaxDepth
}
