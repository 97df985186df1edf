package classify

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.txt")
	content := "cat\ndog\n\nbird\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write labels: %v", err)
	}

	labels, err := LoadLabels(path)
	if err != nil {
		t.Fatalf("LoadLabels failed: %v", err)
	}

	want := []string{"cat", "dog", "bird"}
	if len(labels) != len(want) {
		t.Fatalf("Expected %d labels, got %d", len(want), len(labels))
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("Label %d: expected %s, got %s", i, want[i], labels[i])
		}
	}
}

func TestLoadLabels_MissingFile(t *testing.T) {
	_, err := LoadLabels("/nonexistent/labels.txt")
	if err == nil {
		t.Error("Expected error for missing labels file")
	}
}

func TestLoadLabels_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.txt")
	if err := os.WriteFile(path, []byte("\n\n"), 0o644); err != nil {
		t.Fatalf("write labels: %v", err)
	}

	_, err := LoadLabels(path)
	if err == nil {
		t.Error("Expected error for empty labels file")
	}
}

func TestNewDNN_InvalidModelPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ModelPath = "/nonexistent/model.onnx"

	_, err := NewDNN(cfg)
	if err == nil {
		t.Error("Expected error for invalid model path")
	}
}
