package misslog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "gemiste_vragen.csv"))
	s.now = func() time.Time { return time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC) }
	return s
}

func TestAppendThenRead_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	s.Append("Where is the canteen?", "Waar is de kantine?", "en")
	s.Append("Où est la cantine?", "Waar is de kantine?", "fr")
	s.Append("أين المقصف؟", "Waar is de kantine?", "ar")

	records, err := s.ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	wantLangs := []string{"en", "fr", "ar"}
	for i, r := range records {
		if r.LanguageCode != wantLangs[i] {
			t.Errorf("record %d language = %q, want %q", i, r.LanguageCode, wantLangs[i])
		}
		if r.QuestionNL != "Waar is de kantine?" {
			t.Errorf("record %d translation = %q", i, r.QuestionNL)
		}
		if r.Timestamp != "2026-08-30 10:00:00" {
			t.Errorf("record %d timestamp = %q", i, r.Timestamp)
		}
	}
	if records[1].OriginalQuestion != "Où est la cantine?" {
		t.Errorf("original question not preserved verbatim: %q", records[1].OriginalQuestion)
	}
}

func TestAppend_KeepsSingleHeader(t *testing.T) {
	s := newTestStore(t)

	s.Append("q1", "v1", "en")
	s.Append("q2", "v2", "fr")

	data, err := s.Export()
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows:\n%s", len(lines), data)
	}
	if lines[0] != "Datum,Taal,Originele Vraag,Vraag in NL" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
}

func TestAppend_QuotesEmbeddedSeparators(t *testing.T) {
	s := newTestStore(t)

	s.Append(`What time, exactly, is "lunch"?`, "Hoe laat is het middageten?", "en")

	records, err := s.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if records[0].OriginalQuestion != `What time, exactly, is "lunch"?` {
		t.Fatalf("question mangled: %q", records[0].OriginalQuestion)
	}
}

func TestAppend_SelfHealsIncompatibleStore(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.path, []byte("Oude,Kolommen\na,b\nc,d\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s.Append("new question", "nieuwe vraag", "en")

	records, err := s.ReadAll()
	if err != nil {
		t.Fatalf("read after self-heal: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want exactly the current miss", len(records))
	}
	if records[0].OriginalQuestion != "new question" {
		t.Fatalf("got %q", records[0].OriginalQuestion)
	}
}

func TestReadAll_MissingStoreIsEmpty(t *testing.T) {
	s := newTestStore(t)

	records, err := s.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Fatalf("got %d records, want 0", len(records))
	}
	if s.Exists() {
		t.Fatal("store should not exist yet")
	}
}

func TestReadAll_IncompatibleStore(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.path, []byte("Wrong,Header\nx,y\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := s.ReadAll()
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("got %v, want ErrSchemaMismatch", err)
	}
}

func TestClear(t *testing.T) {
	s := newTestStore(t)
	s.Append("q", "v", "en")

	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	if s.Exists() {
		t.Fatal("store still exists after clear")
	}
	// clearing an absent store is fine
	if err := s.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestAppend_ConcurrentWriters(t *testing.T) {
	s := newTestStore(t)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 5; j++ {
				s.Append("q", "v", "en")
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	records, err := s.ReadAll()
	if err != nil {
		t.Fatalf("read after concurrent appends: %v", err)
	}
	if len(records) != 40 {
		t.Fatalf("got %d records, want 40 (lost or duplicated writes)", len(records))
	}
}
