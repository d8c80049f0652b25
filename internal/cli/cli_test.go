package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScanFixture(t *testing.T) string {
	t.Helper()
	rootPath := t.TempDir()
	if err := os.WriteFile(filepath.Join(rootPath, "a.txt"), make([]byte, 10), 0o644); err != nil {
		t.Fatalf("write fixture file: %v", err)
	}
	if err := os.Mkdir(filepath.Join(rootPath, "b"), 0o755); err != nil {
		t.Fatalf("create fixture directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(rootPath, "b", "c.txt"), make([]byte, 2048), 0o644); err != nil {
		t.Fatalf("write fixture file: %v", err)
	}
	return rootPath
}

func executeCommand(t *testing.T, arguments ...string) error {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	command := createRootCommand()
	command.SetArgs(arguments)
	return command.Execute()
}

func TestGenerateWritesDocument(t *testing.T) {
	rootPath := writeScanFixture(t)
	outputDirectory := t.TempDir()

	if executeError := executeCommand(t, rootPath, "-o", outputDirectory, "-s"); executeError != nil {
		t.Fatalf("unexpected error: %v", executeError)
	}

	documentBytes, readError := os.ReadFile(filepath.Join(outputDirectory, "structure.md"))
	if readError != nil {
		t.Fatalf("reading document: %v", readError)
	}
	document := string(documentBytes)
	if !strings.Contains(document, "# Directory Structure: ") {
		t.Fatal("expected the document title")
	}
	if !strings.Contains(document, "├── 📄 a.txt (10.00 B)\n") {
		t.Fatalf("expected the file entry with size, got:\n%s", document)
	}
	if !strings.Contains(document, "- **Total size**: 2.01 KB\n") {
		t.Fatalf("expected the total size line, got:\n%s", document)
	}
}

func TestGenerateMissingDirectoryFails(t *testing.T) {
	executeError := executeCommand(t, filepath.Join(t.TempDir(), "missing"))
	if executeError == nil {
		t.Fatal("expected an error for a missing directory")
	}
	if !strings.Contains(executeError.Error(), "does not exist") {
		t.Fatalf("expected a missing-directory error, got %v", executeError)
	}
}

func TestGenerateRegularFileFails(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "plain.txt")
	if err := os.WriteFile(filePath, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	executeError := executeCommand(t, filePath)
	if executeError == nil {
		t.Fatal("expected an error for a regular file argument")
	}
	if !strings.Contains(executeError.Error(), "not a directory") {
		t.Fatalf("expected a not-a-directory error, got %v", executeError)
	}
}

func TestGenerateOnlyDirectoriesOmitsFiles(t *testing.T) {
	rootPath := writeScanFixture(t)
	outputDirectory := t.TempDir()

	if executeError := executeCommand(t, rootPath, "-o", outputDirectory, "--only-dirs"); executeError != nil {
		t.Fatalf("unexpected error: %v", executeError)
	}

	documentBytes, readError := os.ReadFile(filepath.Join(outputDirectory, "structure.md"))
	if readError != nil {
		t.Fatalf("reading document: %v", readError)
	}
	document := string(documentBytes)
	if strings.Contains(document, "a.txt") {
		t.Fatal("expected no file entries in only-dirs mode")
	}
	if strings.Contains(document, "**Files**") {
		t.Fatal("expected no files line in only-dirs mode")
	}
}

func TestGenerateDepthLimit(t *testing.T) {
	rootPath := writeScanFixture(t)
	outputDirectory := t.TempDir()

	if executeError := executeCommand(t, rootPath, "-o", outputDirectory, "-d", "1"); executeError != nil {
		t.Fatalf("unexpected error: %v", executeError)
	}

	documentBytes, readError := os.ReadFile(filepath.Join(outputDirectory, "structure.md"))
	if readError != nil {
		t.Fatalf("reading document: %v", readError)
	}
	document := string(documentBytes)
	if !strings.Contains(document, "📁 b\n") {
		t.Fatalf("expected directory b at depth 1, got:\n%s", document)
	}
	if strings.Contains(document, "c.txt") {
		t.Fatal("expected entries past the depth limit to be pruned")
	}
}

func TestGenerateCustomNameAndViewer(t *testing.T) {
	rootPath := writeScanFixture(t)
	outputDirectory := t.TempDir()

	if executeError := executeCommand(t, rootPath, "-o", outputDirectory, "-n", "project.md", "--viewer"); executeError != nil {
		t.Fatalf("unexpected error: %v", executeError)
	}

	if _, statError := os.Stat(filepath.Join(outputDirectory, "project.md")); statError != nil {
		t.Fatalf("expected project.md to exist: %v", statError)
	}
	viewerBytes, readError := os.ReadFile(filepath.Join(outputDirectory, "project.go"))
	if readError != nil {
		t.Fatalf("expected the viewer program to exist: %v", readError)
	}
	if !strings.Contains(string(viewerBytes), `"project.md"`) {
		t.Fatal("expected the viewer program to reference its document")
	}
}

func TestGenerateConfigurationDefaults(t *testing.T) {
	rootPath := writeScanFixture(t)
	outputDirectory := t.TempDir()

	configPath := filepath.Join(t.TempDir(), "treemark.yaml")
	configContent := "output:\n  name: configured.md\n  directory: " + outputDirectory + "\nscan:\n  only_dirs: true\n"
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("write configuration: %v", err)
	}

	if executeError := executeCommand(t, rootPath, "--config", configPath); executeError != nil {
		t.Fatalf("unexpected error: %v", executeError)
	}

	documentBytes, readError := os.ReadFile(filepath.Join(outputDirectory, "configured.md"))
	if readError != nil {
		t.Fatalf("expected the configured document name: %v", readError)
	}
	if strings.Contains(string(documentBytes), "a.txt") {
		t.Fatal("expected only_dirs from configuration to take effect")
	}
}

func TestGenerateExplicitFlagOverridesConfiguration(t *testing.T) {
	rootPath := writeScanFixture(t)
	outputDirectory := t.TempDir()

	configPath := filepath.Join(t.TempDir(), "treemark.yaml")
	configContent := "output:\n  name: configured.md\n  directory: " + outputDirectory + "\n"
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("write configuration: %v", err)
	}

	if executeError := executeCommand(t, rootPath, "--config", configPath, "-n", "explicit.md"); executeError != nil {
		t.Fatalf("unexpected error: %v", executeError)
	}

	if _, statError := os.Stat(filepath.Join(outputDirectory, "explicit.md")); statError != nil {
		t.Fatalf("expected the explicit flag to win: %v", statError)
	}
	if _, statError := os.Stat(filepath.Join(outputDirectory, "configured.md")); statError == nil {
		t.Fatal("expected no document under the configured name")
	}
}

func TestViewCommandMissingDocumentFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	command := createRootCommand()
	command.SetArgs([]string{"view", filepath.Join(t.TempDir(), "missing.md")})
	if executeError := command.Execute(); executeError == nil {
		t.Fatal("expected an error for a missing document")
	}
}
