package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileOperations(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("WriteFile", func(t *testing.T) {
		path := filepath.Join(tmpDir, "exports", "run.md")
		if err := WriteFile(path, []byte("# run")); err != nil {
			t.Errorf("WriteFile() error = %v", err)
		}
		if !FileExists(path) {
			t.Error("File was not created")
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Errorf("ReadFile() error = %v", err)
		}
		if string(content) != "# run" {
			t.Errorf("ReadFile() = %s, want '# run'", string(content))
		}
	})

	t.Run("FileExists", func(t *testing.T) {
		if FileExists(filepath.Join(tmpDir, "nonexistent.json")) {
			t.Error("FileExists() returned true for non-existent file")
		}
		if FileExists(tmpDir) {
			t.Error("FileExists() returned true for a directory")
		}
	})
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "ensure", "test")
	if err := EnsureDir(path); err != nil {
		t.Errorf("EnsureDir() error = %v", err)
	}
	if !DirExists(path) {
		t.Error("Directory was not created by EnsureDir()")
	}

	// Existing directory is not an error
	if err := EnsureDir(path); err != nil {
		t.Errorf("EnsureDir() on existing dir error = %v", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandPath("~/runs/a.json")
	if err != nil {
		t.Fatalf("ExpandPath() error = %v", err)
	}
	if want := filepath.Join(home, "runs", "a.json"); got != want {
		t.Errorf("ExpandPath() = %s, want %s", got, want)
	}

	got, err = ExpandPath("runs/../a.json")
	if err != nil {
		t.Fatalf("ExpandPath() error = %v", err)
	}
	if !filepath.IsAbs(got) || filepath.Base(got) != "a.json" {
		t.Errorf("ExpandPath() = %s, want absolute path to a.json", got)
	}

	if _, err := ExpandPath("  "); err == nil {
		t.Error("ExpandPath() accepted an empty path")
	}
}
