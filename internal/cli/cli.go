// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/treemark/treemark/internal/config"
	"github.com/treemark/treemark/internal/render"
	"github.com/treemark/treemark/internal/scan"
	"github.com/treemark/treemark/internal/treetext"
	"github.com/treemark/treemark/internal/types"
	"github.com/treemark/treemark/internal/utils"
	"github.com/treemark/treemark/internal/viewer"
)

const (
	includeAllFlagName = "all"
	outputNameFlagName = "name"
	outputDirFlagName  = "output-dir"
	onlyDirsFlagName   = "only-dirs"
	maxDepthFlagName   = "depth"
	sizeFlagName       = "size"
	viewerFlagName     = "viewer"
	clipboardFlagName  = "clipboard"
	versionFlagName    = "version"
	configFlagName     = "config"

	includeAllFlagDescription = "include all entries (disable ignore filtering)"
	outputNameFlagDescription = "output file name"
	outputDirFlagDescription  = "output directory"
	onlyDirsFlagDescription   = "include only directories, skip files"
	maxDepthFlagDescription   = "maximum directory depth (-1 for unlimited)"
	sizeFlagDescription       = "include human-readable file sizes"
	viewerFlagDescription     = "also generate the companion viewer program"
	clipboardFlagDescription  = "copy the generated document to the clipboard"
	versionFlagDescription    = "display application version"
	configFlagDescription     = "path to a configuration file"

	versionTemplate      = "treemark version: %s\n"
	defaultPath          = "."
	rootUse              = "treemark [directory]"
	rootShortDescription = "render a directory tree as a Markdown document"
	rootLongDescription  = `treemark walks a directory and writes its structure as a glyph tree inside
a Markdown document, with a statistics section of entry counts and sizes.
Use --viewer to also emit a standalone program that displays the document
as a collapsible terminal widget.`
	rootUsageExample = `  # Render the current directory into structure.md
  treemark .

  # Limit depth, include sizes, and emit the viewer program
  treemark ./project -d 3 -s --viewer

  # Only directories, custom output name and destination
  treemark ./project --only-dirs -n project.md -o ./docs`

	viewUse              = "view <document.md>"
	viewShortDescription = "open a generated document in the tree widget"
	viewLongDescription  = `Parse a previously generated Markdown document and display its tree
block as a collapsible terminal widget.`

	errorPathMissingFormat    = "directory does not exist: %s"
	errorNotDirectoryFormat   = "not a directory: %s"
	errorStatFormat           = "stat failed for '%s': %w"
	errorCreateOutputFormat   = "creating output directory %s: %w"
	errorWriteDocumentFormat  = "writing %s: %w"
	errorReadDocumentFormat   = "reading %s: %w"
	errorClipboardFormat      = "copying to clipboard: %w"
	errorLoadConfigFormat     = "loading configuration: %w"
	workingDirectoryErrFormat = "unable to determine working directory: %w"

	generatedMessageFormat       = "Generated: %s\n"
	directoryCountMessageFormat  = "  - directories: %d\n"
	fileCountMessageFormat       = "  - files: %d\n"
	totalSizeMessageFormat       = "  - total size: %s\n"
	generatedViewerMessageFormat = "Generated viewer: %s (run: go run %s)\n"
	clipboardMessage             = "Copied document to clipboard"

	documentFilePermissions = 0o644
	outputDirPermissions    = 0o755
)

// scanFlags stores the traversal and output options bound to the root command.
type scanFlags struct {
	includeAll      bool
	outputName      string
	outputDirectory string
	onlyDirectories bool
	maxDepth        int
	includeSize     bool
	generateViewer  bool
	copyToClipboard bool
	configFilePath  string
}

// Execute runs the treemark application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool
	var flags scanFlags

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			rootDirectoryPath := defaultPath
			if len(arguments) > 0 {
				rootDirectoryPath = arguments[0]
			}
			return runGenerate(command, rootDirectoryPath, flags)
		},
	}

	rootCommand.Flags().BoolVarP(&flags.includeAll, includeAllFlagName, "a", false, includeAllFlagDescription)
	rootCommand.Flags().StringVarP(&flags.outputName, outputNameFlagName, "n", types.DefaultOutputFileName, outputNameFlagDescription)
	rootCommand.Flags().StringVarP(&flags.outputDirectory, outputDirFlagName, "o", defaultPath, outputDirFlagDescription)
	rootCommand.Flags().BoolVar(&flags.onlyDirectories, onlyDirsFlagName, false, onlyDirsFlagDescription)
	rootCommand.Flags().IntVarP(&flags.maxDepth, maxDepthFlagName, "d", types.UnlimitedDepth, maxDepthFlagDescription)
	rootCommand.Flags().BoolVarP(&flags.includeSize, sizeFlagName, "s", false, sizeFlagDescription)
	rootCommand.Flags().BoolVar(&flags.generateViewer, viewerFlagName, false, viewerFlagDescription)
	rootCommand.Flags().BoolVar(&flags.copyToClipboard, clipboardFlagName, false, clipboardFlagDescription)
	rootCommand.Flags().StringVar(&flags.configFilePath, configFlagName, utils.EmptyString, configFlagDescription)
	rootCommand.Flags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)

	rootCommand.AddCommand(createViewCommand())
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createViewCommand returns the view subcommand.
func createViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   viewUse,
		Short: viewShortDescription,
		Long:  viewLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			return runView(arguments[0])
		},
	}
}

// runGenerate validates the input directory, applies configuration defaults,
// builds and renders the tree, and writes the requested artifacts.
func runGenerate(command *cobra.Command, rootDirectoryPath string, flags scanFlags) error {
	rootInfo, statError := os.Stat(rootDirectoryPath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return fmt.Errorf(errorPathMissingFormat, rootDirectoryPath)
		}
		return fmt.Errorf(errorStatFormat, rootDirectoryPath, statError)
	}
	if !rootInfo.IsDir() {
		return fmt.Errorf(errorNotDirectoryFormat, rootDirectoryPath)
	}

	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrFormat, workingDirectoryError)
	}
	configuration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: flags.configFilePath,
	})
	if configurationError != nil {
		return fmt.Errorf(errorLoadConfigFormat, configurationError)
	}
	flags = applyConfigurationDefaults(command, flags, configuration)

	builder := scan.NewBuilder(scan.Options{
		Ignore:          utils.NewIgnorePredicate(configuration.Scan.Ignore, flags.includeAll),
		OnlyDirectories: flags.onlyDirectories,
		MaxDepth:        flags.maxDepth,
		IncludeSize:     flags.includeSize,
	})
	buildResult, buildError := builder.Build(rootDirectoryPath)
	if buildError != nil {
		return buildError
	}

	document := render.Document(buildResult.Root, buildResult.Stats, render.Options{
		IncludeSize:     flags.includeSize,
		OnlyDirectories: flags.onlyDirectories,
	})

	if mkdirError := os.MkdirAll(flags.outputDirectory, outputDirPermissions); mkdirError != nil {
		return fmt.Errorf(errorCreateOutputFormat, flags.outputDirectory, mkdirError)
	}
	documentPath := filepath.Join(flags.outputDirectory, flags.outputName)
	if writeError := os.WriteFile(documentPath, []byte(document), documentFilePermissions); writeError != nil {
		return fmt.Errorf(errorWriteDocumentFormat, documentPath, writeError)
	}

	fmt.Printf(generatedMessageFormat, documentPath)
	fmt.Printf(directoryCountMessageFormat, buildResult.Stats.DirectoryCount)
	if !flags.onlyDirectories {
		fmt.Printf(fileCountMessageFormat, buildResult.Stats.FileCount)
		if flags.includeSize {
			fmt.Printf(totalSizeMessageFormat, utils.FormatFileSize(buildResult.Stats.TotalSizeBytes))
		}
	}

	if flags.copyToClipboard {
		if clipboardError := clipboard.WriteAll(document); clipboardError != nil {
			return fmt.Errorf(errorClipboardFormat, clipboardError)
		}
		fmt.Println(clipboardMessage)
	}

	if flags.generateViewer {
		viewerPath, viewerError := viewer.WriteProgram(flags.outputName, flags.outputDirectory)
		if viewerError != nil {
			return viewerError
		}
		fmt.Printf(generatedViewerMessageFormat, viewerPath, viewerPath)
	}
	return nil
}

// applyConfigurationDefaults overlays configuration file values onto flags
// the user did not set explicitly on the command line.
func applyConfigurationDefaults(command *cobra.Command, flags scanFlags, configuration config.ApplicationConfiguration) scanFlags {
	result := flags
	flagSet := command.Flags()
	if !flagSet.Changed(outputNameFlagName) && configuration.Output.Name != utils.EmptyString {
		result.outputName = configuration.Output.Name
	}
	if !flagSet.Changed(outputDirFlagName) && configuration.Output.Directory != utils.EmptyString {
		result.outputDirectory = configuration.Output.Directory
	}
	if !flagSet.Changed(includeAllFlagName) && configuration.Scan.IncludeAll != nil {
		result.includeAll = *configuration.Scan.IncludeAll
	}
	if !flagSet.Changed(onlyDirsFlagName) && configuration.Scan.OnlyDirs != nil {
		result.onlyDirectories = *configuration.Scan.OnlyDirs
	}
	if !flagSet.Changed(maxDepthFlagName) && configuration.Scan.MaxDepth != nil {
		result.maxDepth = *configuration.Scan.MaxDepth
	}
	if !flagSet.Changed(sizeFlagName) && configuration.Scan.IncludeSize != nil {
		result.includeSize = *configuration.Scan.IncludeSize
	}
	if !flagSet.Changed(viewerFlagName) && configuration.Viewer.Enabled != nil {
		result.generateViewer = *configuration.Viewer.Enabled
	}
	if !flagSet.Changed(clipboardFlagName) && configuration.Clipboard != nil {
		result.copyToClipboard = *configuration.Clipboard
	}
	return result
}

// runView parses a generated document and opens the collapsible tree widget.
func runView(documentPath string) error {
	documentBytes, readError := os.ReadFile(documentPath)
	if readError != nil {
		return fmt.Errorf(errorReadDocumentFormat, documentPath, readError)
	}
	rootEntry, parseError := treetext.ParseDocument(string(documentBytes))
	if parseError != nil {
		return parseError
	}
	return viewer.Run(filepath.Base(documentPath), rootEntry)
}
