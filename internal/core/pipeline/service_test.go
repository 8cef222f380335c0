package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"ligo-assistent/internal/core/knowledge"
	"ligo-assistent/internal/core/misslog"
	"ligo-assistent/internal/core/model"
)

type fakeModel struct {
	reply      string
	err        error
	lastPrompt string
}

func (f *fakeModel) Generate(_ context.Context, prompt string, _ model.Audio) (string, error) {
	f.lastPrompt = prompt
	return f.reply, f.err
}

type fakeSynth struct {
	lastText string
	lastLang string
	err      error
}

func (f *fakeSynth) Synthesize(text, lang string) ([]byte, error) {
	f.lastText = text
	f.lastLang = lang
	if f.err != nil {
		return nil, f.err
	}
	return []byte("mp3"), nil
}

func newTestService(t *testing.T, m *fakeModel, s *fakeSynth, schema Schema) *Service {
	t.Helper()
	return NewService(
		knowledge.NewStaticLoader("Lessen beginnen om 9 uur."),
		m, s,
		misslog.NewStore(filepath.Join(t.TempDir(), "gemiste_vragen.csv")),
		schema,
	)
}

func TestResolve_FoundAnswer(t *testing.T) {
	m := &fakeModel{reply: `{"taal_code":"en","antwoord_gevonden":true,"antwoord_tekst":"Classes start at 9."}`}
	s := &fakeSynth{}
	svc := newTestService(t, m, s, SchemaRich)

	res, err := svc.Resolve(context.Background(), model.Audio{Data: []byte("riff"), Format: "wav"})
	if err != nil {
		t.Fatal(err)
	}
	if res.DisplayText != "Classes start at 9." {
		t.Errorf("display = %q", res.DisplayText)
	}
	if s.lastLang != "en" {
		t.Errorf("synthesized language = %q, want en", s.lastLang)
	}
	if len(res.Audio) == 0 {
		t.Error("no audio returned")
	}
	if !strings.Contains(m.lastPrompt, "Lessen beginnen om 9 uur.") {
		t.Error("reference document not embedded in prompt")
	}
	if records, _ := svc.Misses().ReadAll(); len(records) != 0 {
		t.Errorf("found answer must not log a miss, got %d records", len(records))
	}
}

func TestResolve_MissIsLogged(t *testing.T) {
	m := &fakeModel{reply: `{"taal_code":"fr","vraag_orig":"Où est la cantine?","vraag_nl":"Waar is de kantine?","antwoord_gevonden":false,"antwoord_tekst":"..."}`}
	svc := newTestService(t, m, &fakeSynth{}, SchemaRich)

	if _, err := svc.Resolve(context.Background(), model.Audio{Data: []byte("riff"), Format: "wav"}); err != nil {
		t.Fatal(err)
	}

	records, err := svc.Misses().ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	r := records[0]
	if r.LanguageCode != "fr" {
		t.Errorf("language = %q, want fr", r.LanguageCode)
	}
	if r.OriginalQuestion != "Où est la cantine?" || r.QuestionNL != "Waar is de kantine?" {
		t.Errorf("question texts not preserved verbatim: %+v", r)
	}
}

func TestResolve_NoMissDetection_NeverLogs(t *testing.T) {
	// minimal schema carries no found/not-found signal
	m := &fakeModel{reply: `{"taal_code":"en","antwoord_tekst":"No idea."}`}
	svc := newTestService(t, m, &fakeSynth{}, SchemaMinimal)

	if _, err := svc.Resolve(context.Background(), model.Audio{Data: []byte("riff"), Format: "wav"}); err != nil {
		t.Fatal(err)
	}
	if svc.Misses().Exists() {
		t.Error("minimal schema must never create the miss store")
	}
}

func TestResolve_PronunciationApplied(t *testing.T) {
	m := &fakeModel{reply: `{"taal_code":"nl","antwoord_gevonden":true,"antwoord_tekst":"De les begint om 9 uur."}`}
	s := &fakeSynth{}
	svc := newTestService(t, m, s, SchemaRich)

	res, err := svc.Resolve(context.Background(), model.Audio{Data: []byte("riff"), Format: "wav"})
	if err != nil {
		t.Fatal(err)
	}
	if s.lastText != "De less begint om 9 uur." {
		t.Errorf("synthesized text = %q, want pronunciation fix applied", s.lastText)
	}
	// screen text keeps the real spelling
	if res.DisplayText != "De les begint om 9 uur." {
		t.Errorf("display text = %q", res.DisplayText)
	}
}

func TestResolve_MalformedOutput_NoMissLogged(t *testing.T) {
	m := &fakeModel{reply: "Dat weet ik zo niet."}
	svc := newTestService(t, m, &fakeSynth{}, SchemaRich)

	_, err := svc.Resolve(context.Background(), model.Audio{Data: []byte("riff"), Format: "wav"})
	if !errors.Is(err, ErrMalformedOutput) {
		t.Fatalf("got %v, want ErrMalformedOutput", err)
	}
	if svc.Misses().Exists() {
		t.Error("technical failure must not log a miss")
	}
}

func TestResolve_ModelFailure(t *testing.T) {
	m := &fakeModel{err: errors.New("quota exceeded")}
	svc := newTestService(t, m, &fakeSynth{}, SchemaRich)

	_, err := svc.Resolve(context.Background(), model.Audio{Data: []byte("riff"), Format: "wav"})
	if !errors.Is(err, ErrModelInvocation) {
		t.Fatalf("got %v, want ErrModelInvocation", err)
	}
	if svc.Misses().Exists() {
		t.Error("model failure must not log a miss")
	}
}

func TestResolve_SynthesisFailure(t *testing.T) {
	m := &fakeModel{reply: `{"taal_code":"xx","antwoord_gevonden":true,"antwoord_tekst":"ok"}`}
	s := &fakeSynth{err: errors.New("unsupported voice")}
	svc := newTestService(t, m, s, SchemaRich)

	_, err := svc.Resolve(context.Background(), model.Audio{Data: []byte("riff"), Format: "wav"})
	if !errors.Is(err, ErrSynthesis) {
		t.Fatalf("got %v, want ErrSynthesis", err)
	}
}

func TestResolve_MissingDocument(t *testing.T) {
	svc := NewService(
		knowledge.NewLoader(filepath.Join(t.TempDir(), "nope.pdf")),
		&fakeModel{}, &fakeSynth{},
		misslog.NewStore(filepath.Join(t.TempDir(), "gemiste_vragen.csv")),
		SchemaRich,
	)

	_, err := svc.Resolve(context.Background(), model.Audio{Data: []byte("riff"), Format: "wav"})
	if !errors.Is(err, knowledge.ErrNoDocument) {
		t.Fatalf("got %v, want ErrNoDocument", err)
	}
}
