package knowledge

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Memoized(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reglement.pdf")
	if err := os.WriteFile(path, []byte("%PDF-fake"), 0o644); err != nil {
		t.Fatal(err)
	}

	reads := 0
	l := NewLoader(path)
	l.extract = func(string) (string, error) {
		reads++
		return "Lessen beginnen om 9 uur.", nil
	}

	first, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if first != second {
		t.Fatalf("cached value changed: %q vs %q", first, second)
	}
	if reads != 1 {
		t.Fatalf("document read %d times, want 1", reads)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	l := NewLoader(filepath.Join(t.TempDir(), "nope.pdf"))

	_, err := l.Load(context.Background())
	if !errors.Is(err, ErrNoDocument) {
		t.Fatalf("got %v, want ErrNoDocument", err)
	}
	// the miss is memoized too
	_, err = l.Load(context.Background())
	if !errors.Is(err, ErrNoDocument) {
		t.Fatalf("second call got %v, want ErrNoDocument", err)
	}
}

func TestLoad_EmptyExtraction(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reglement.pdf")
	if err := os.WriteFile(path, []byte("%PDF-fake"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(path)
	l.extract = func(string) (string, error) { return "  \n ", nil }

	if _, err := l.Load(context.Background()); !errors.Is(err, ErrNoDocument) {
		t.Fatalf("got %v, want ErrNoDocument for empty text", err)
	}
}

func TestNewStaticLoader(t *testing.T) {
	l := NewStaticLoader("vast reglement")
	text, err := l.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if text != "vast reglement" {
		t.Fatalf("got %q", text)
	}
}
