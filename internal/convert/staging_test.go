package convert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStageWritesUniqueFiles(t *testing.T) {
	s, err := NewStager(t.TempDir())
	if err != nil {
		t.Fatalf("new stager: %v", err)
	}

	first, err := s.Stage(strings.NewReader("deck-a"), "lecture.pdf")
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	second, err := s.Stage(strings.NewReader("deck-b"), "lecture.pdf")
	if err != nil {
		t.Fatalf("stage: %v", err)
	}

	if first == second {
		t.Fatalf("two stagings of the same name collided: %s", first)
	}

	got, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("read staged file: %v", err)
	}
	if string(got) != "deck-a" {
		t.Fatalf("staged content = %q, want %q", got, "deck-a")
	}
}

func TestStageStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStager(dir)
	if err != nil {
		t.Fatalf("new stager: %v", err)
	}

	path, err := s.Stage(strings.NewReader("x"), "../../etc/passwd")
	if err != nil {
		t.Fatalf("stage: %v", err)
	}

	if filepath.Dir(path) != dir {
		t.Fatalf("staged outside dir: %s", path)
	}
	if !strings.HasSuffix(path, "_passwd") {
		t.Fatalf("expected base name only, got %s", path)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	s, err := NewStager(t.TempDir())
	if err != nil {
		t.Fatalf("new stager: %v", err)
	}

	path, err := s.Stage(strings.NewReader("x"), "deck.pdf")
	if err != nil {
		t.Fatalf("stage: %v", err)
	}

	s.Remove(path)
	s.Remove(path) // second call must not blow up
	s.Remove("")

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("staged file still exists after Remove")
	}
}
