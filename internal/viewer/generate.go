package viewer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/treemark/treemark/internal/types"
)

const (
	// viewerFilePermissions is the mode the program file is created with.
	viewerFilePermissions = 0o644
	// viewerExecutablePermissions marks the generated program runnable.
	viewerExecutablePermissions = 0o755

	viewerTitleFormat = "Directory Structure Viewer - %s"

	errorRenderTemplateFormat = "rendering viewer program: %w"
	errorWriteProgramFormat   = "writing viewer program %s: %w"
)

// templateData carries the two textual substitutions of the viewer template.
type templateData struct {
	MarkdownFileName string
	Title            string
}

var programTemplate = template.Must(template.New("viewer").Parse(viewerProgramTemplate))

// WriteProgram renders the standalone viewer program for the named document
// into outputDirectoryPath. The program file takes the document's name with
// the Markdown extension swapped for the Go extension, and is marked
// executable where the platform supports it. Returns the written path.
func WriteProgram(markdownFileName string, outputDirectoryPath string) (string, error) {
	viewerFileName := strings.TrimSuffix(markdownFileName, types.MarkdownExtension) + types.ViewerExtension
	viewerFilePath := filepath.Join(outputDirectoryPath, viewerFileName)

	var programSource strings.Builder
	executeError := programTemplate.Execute(&programSource, templateData{
		MarkdownFileName: markdownFileName,
		Title:            fmt.Sprintf(viewerTitleFormat, viewerFileName),
	})
	if executeError != nil {
		return "", fmt.Errorf(errorRenderTemplateFormat, executeError)
	}

	if writeError := os.WriteFile(viewerFilePath, []byte(programSource.String()), viewerFilePermissions); writeError != nil {
		return "", fmt.Errorf(errorWriteProgramFormat, viewerFilePath, writeError)
	}
	// Best effort: some platforms do not support the executable bit.
	_ = os.Chmod(viewerFilePath, viewerExecutablePermissions)
	return viewerFilePath, nil
}
