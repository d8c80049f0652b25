package viewer

import (
	"testing"

	"github.com/treemark/treemark/internal/treetext"
)

func buildWidgetTree() *treetext.Entry {
	return &treetext.Entry{
		Name:  "proj",
		IsDir: true,
		Children: []*treetext.Entry{
			{Name: "a.txt", Size: "10.00 B"},
			{
				Name:  "b",
				IsDir: true,
				Children: []*treetext.Entry{
					{Name: "c.txt", Size: "2.00 KB"},
					{
						Name:  "nested",
						IsDir: true,
						Children: []*treetext.Entry{
							{Name: "deep.txt"},
						},
					},
				},
			},
		},
	}
}

func visibleNames(widgetModel Model) []string {
	names := make([]string, 0, len(widgetModel.visibleRows))
	for _, currentRow := range widgetModel.visibleRows {
		names = append(names, currentRow.entry.Name)
	}
	return names
}

func assertNames(t *testing.T, actual []string, expected []string) {
	t.Helper()
	if len(actual) != len(expected) {
		t.Fatalf("expected rows %v, got %v", expected, actual)
	}
	for position, expectedName := range expected {
		if actual[position] != expectedName {
			t.Fatalf("expected %s at row %d, got %s", expectedName, position, actual[position])
		}
	}
}

func TestNewModelExpandsFirstLevel(t *testing.T) {
	widgetModel := NewModel("title", buildWidgetTree())
	assertNames(t, visibleNames(widgetModel), []string{"a.txt", "b", "c.txt", "nested"})
}

func TestToggleCursorEntryCollapsesDirectory(t *testing.T) {
	widgetModel := NewModel("title", buildWidgetTree())
	widgetModel.cursorIndex = 1
	widgetModel.toggleCursorEntry()
	assertNames(t, visibleNames(widgetModel), []string{"a.txt", "b"})
	widgetModel.toggleCursorEntry()
	assertNames(t, visibleNames(widgetModel), []string{"a.txt", "b", "c.txt", "nested"})
}

func TestToggleCursorEntryIgnoresFiles(t *testing.T) {
	widgetModel := NewModel("title", buildWidgetTree())
	widgetModel.cursorIndex = 0
	widgetModel.toggleCursorEntry()
	assertNames(t, visibleNames(widgetModel), []string{"a.txt", "b", "c.txt", "nested"})
}

func TestSetAllExpanded(t *testing.T) {
	widgetModel := NewModel("title", buildWidgetTree())
	widgetModel.setAllExpanded(true)
	assertNames(t, visibleNames(widgetModel), []string{"a.txt", "b", "c.txt", "nested", "deep.txt"})

	widgetModel.setAllExpanded(false)
	assertNames(t, visibleNames(widgetModel), []string{"a.txt", "b"})
}

func TestSetAllExpandedClampsCursor(t *testing.T) {
	widgetModel := NewModel("title", buildWidgetTree())
	widgetModel.setAllExpanded(true)
	widgetModel.cursorIndex = len(widgetModel.visibleRows) - 1
	widgetModel.setAllExpanded(false)
	if widgetModel.cursorIndex != len(widgetModel.visibleRows)-1 {
		t.Fatalf("expected cursor clamped to %d, got %d", len(widgetModel.visibleRows)-1, widgetModel.cursorIndex)
	}
}

func TestRowDepths(t *testing.T) {
	widgetModel := NewModel("title", buildWidgetTree())
	widgetModel.setAllExpanded(true)
	expectedDepths := []int{0, 0, 1, 1, 2}
	if len(widgetModel.visibleRows) != len(expectedDepths) {
		t.Fatalf("expected %d rows, got %d", len(expectedDepths), len(widgetModel.visibleRows))
	}
	for position, expectedDepth := range expectedDepths {
		if widgetModel.visibleRows[position].depth != expectedDepth {
			t.Fatalf("expected depth %d at row %d, got %d", expectedDepth, position, widgetModel.visibleRows[position].depth)
		}
	}
}
