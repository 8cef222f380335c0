package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"
)

// modelReply is the union of all schema field sets; the active schema
// decides which fields matter.
type modelReply struct {
	TaalCode         string `json:"taal_code"`
	VraagOrig        string `json:"vraag_orig"`
	VraagNL          string `json:"vraag_nl"`
	AntwoordGevonden *bool  `json:"antwoord_gevonden"`
	AntwoordTekst    string `json:"antwoord_tekst"`
	SchermTekst      string `json:"scherm_tekst"`
	SpraakTekst      string `json:"spraak_tekst"`
}

// stripFences removes Markdown code-fence delimiters the model is not
// contractually guaranteed to omit.
func stripFences(raw string) string {
	out := strings.ReplaceAll(raw, "```json", "")
	out = strings.ReplaceAll(out, "```", "")
	return strings.TrimSpace(out)
}

// parseReply turns the untrusted model text into a Result, applying the
// documented fallbacks. Malformed JSON is a terminal error for the request.
func parseReply(raw string, schema Schema) (Result, error) {
	var reply modelReply
	if err := json.Unmarshal([]byte(stripFences(raw)), &reply); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	res := Result{
		LanguageCode:     reply.TaalCode,
		OriginalQuestion: reply.VraagOrig,
		QuestionNL:       reply.VraagNL,
		Found:            true,
	}
	if res.LanguageCode == "" {
		res.LanguageCode = FallbackLanguage
	}

	if schema.DualText {
		res.DisplayText = reply.SchermTekst
		res.SpeechText = reply.SpraakTekst
	} else {
		res.DisplayText = reply.AntwoordTekst
	}
	if res.DisplayText == "" {
		res.DisplayText = FallbackAnswer
	}
	if res.SpeechText == "" {
		res.SpeechText = res.DisplayText
	}

	if schema.DetectsMiss && reply.AntwoordGevonden != nil {
		res.Found = *reply.AntwoordGevonden
	}
	return res, nil
}
