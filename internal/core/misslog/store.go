package misslog

import (
	"encoding/csv"
	"errors"
	"os"
	"sync"
	"time"

	"ligo-assistent/config"
	"ligo-assistent/pkg/logger"
)

// header is the fixed column layout of the miss log, in order.
var header = []string{"Datum", "Taal", "Originele Vraag", "Vraag in NL"}

const timestampLayout = "2006-01-02 15:04:05"

// ErrSchemaMismatch signals the store on disk has an incompatible column
// layout. Readers surface it as a "corrupted, reset available" state.
var ErrSchemaMismatch = errors.New("miss log has an incompatible column layout")

// Record is one unanswered question. Never mutated after creation.
type Record struct {
	Timestamp        string `json:"timestamp"`
	LanguageCode     string `json:"language_code"`
	OriginalQuestion string `json:"original_question"`
	QuestionNL       string `json:"question_nl"`
}

// Store is a CSV-backed append-only miss log. All access goes through one
// mutex so concurrent sessions cannot interleave appends or race the
// self-heal rewrite.
type Store struct {
	path string
	mu   sync.Mutex

	now func() time.Time
}

func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Append records one miss. It never returns an error to the asking user's
// request path: an incompatible or unwritable store is replaced by a fresh
// one holding only the current record.
func (s *Store) Append(originalQuestion, questionNL, languageCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := []string{
		s.now().Format(timestampLayout),
		languageCode,
		originalQuestion,
		questionNL,
	}

	if err := s.appendRow(row); err != nil {
		logger.Warn("%v: append failed (%v), recreating store", config.ModuleMissLog, err)
		if err := s.writeFresh(row); err != nil {
			logger.Error(err, "%v: recreate store failed", config.ModuleMissLog)
		}
	}
}

func (s *Store) appendRow(row []string) error {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return s.writeFresh(row)
	}
	if err != nil {
		return err
	}
	existing, err := csv.NewReader(f).Read()
	f.Close()
	if err != nil {
		return err
	}
	if !sameColumns(existing, header) {
		return ErrSchemaMismatch
	}

	out, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()
	w := csv.NewWriter(out)
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (s *Store) writeFresh(row []string) error {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// ReadAll returns every record in insertion order. A missing store reads as
// empty; an incompatible or unparseable store yields ErrSchemaMismatch.
func (s *Store) ReadAll() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, ErrSchemaMismatch
	}
	if len(rows) == 0 || !sameColumns(rows[0], header) {
		return nil, ErrSchemaMismatch
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, Record{
			Timestamp:        row[0],
			LanguageCode:     row[1],
			OriginalQuestion: row[2],
			QuestionNL:       row[3],
		})
	}
	return records, nil
}

// Export returns the raw CSV bytes for download.
func (s *Store) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.ReadFile(s.path)
}

// Clear removes the store entirely. Removing an absent store is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Exists reports whether the store file is present.
func (s *Store) Exists() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := os.Stat(s.path)
	return err == nil
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
