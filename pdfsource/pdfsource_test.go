package pdfsource

import (
	"context"
	"path/filepath"
	"testing"
)

func TestNew_MissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.pdf"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLocator(t *testing.T) {
	s := &Source{path: "deck.pdf", pages: 3}
	if got := s.Locator(0); got != "deck.pdf#1" {
		t.Errorf("Locator(0) = %q, want %q", got, "deck.pdf#1")
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestLoad_OutOfRange(t *testing.T) {
	s := &Source{path: "deck.pdf", pages: 2}
	if _, err := s.Load(context.Background(), 2); err == nil {
		t.Error("expected error for page past the end")
	}
}

func TestLoad_Cancelled(t *testing.T) {
	s := &Source{path: "deck.pdf", pages: 2}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Load(ctx, 0); err == nil {
		t.Error("expected error for cancelled context")
	}
}
