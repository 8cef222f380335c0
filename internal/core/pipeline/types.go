package pipeline

import "errors"

// Schema is one versioned response contract with the model. Capability
// flags drive pipeline behavior instead of per-shape code paths.
type Schema struct {
	Name string
	// DetectsMiss: the contract carries an explicit found/not-found flag,
	// enabling the miss log branch.
	DetectsMiss bool
	// DualText: the contract separates screen spelling from phonetic
	// speech spelling.
	DualText bool
}

var (
	SchemaMinimal = Schema{Name: "minimal"}
	SchemaRich    = Schema{Name: "rich", DetectsMiss: true}
	SchemaDual    = Schema{Name: "dual", DualText: true}
)

// SchemaByName resolves a configured schema name; unknown names fall back
// to the rich contract.
func SchemaByName(name string) Schema {
	switch name {
	case SchemaMinimal.Name:
		return SchemaMinimal
	case SchemaDual.Name:
		return SchemaDual
	default:
		return SchemaRich
	}
}

const (
	// FallbackLanguage is used when the model omits a language code.
	FallbackLanguage = "nl"
	// FallbackAnswer is spoken when the model omits the answer text.
	FallbackAnswer = "Sorry, ik begreep het niet."
)

// Pipeline failure classes. Every fault inside Resolve maps onto exactly
// one of these; handlers translate them into user-facing responses.
var (
	ErrModelInvocation = errors.New("model invocation failed")
	ErrMalformedOutput = errors.New("model output is not a valid answer object")
	ErrSynthesis       = errors.New("speech synthesis failed")
)

// Result is the resolved answer for one recorded question.
type Result struct {
	LanguageCode     string
	DisplayText      string
	SpeechText       string
	Found            bool
	OriginalQuestion string
	QuestionNL       string
	Audio            []byte
}
