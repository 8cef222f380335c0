package pipeline

import (
	"strings"
	"testing"
)

func TestBuildPrompt_SchemaDirectives(t *testing.T) {
	doc := "Lessen beginnen om 9 uur."

	rich := buildPrompt(doc, SchemaRich)
	if !strings.Contains(rich, "antwoord_gevonden") {
		t.Error("rich prompt misses the found/not-found field")
	}
	if !strings.Contains(rich, "vraag_nl") {
		t.Error("rich prompt misses the logbook translation field")
	}

	dual := buildPrompt(doc, SchemaDual)
	if !strings.Contains(dual, "spraak_tekst") || !strings.Contains(dual, "scherm_tekst") {
		t.Error("dual prompt misses the display/speech fields")
	}
	if strings.Contains(dual, "antwoord_gevonden") {
		t.Error("dual prompt must not ask for a found flag")
	}

	minimal := buildPrompt(doc, SchemaMinimal)
	if strings.Contains(minimal, "vraag_nl") || strings.Contains(minimal, "antwoord_gevonden") {
		t.Error("minimal prompt asks for fields outside its contract")
	}

	for _, p := range []string{rich, dual, minimal} {
		if !strings.Contains(p, doc) {
			t.Error("reference document not embedded")
		}
		if !strings.Contains(p, "JSON") {
			t.Error("output directive missing")
		}
	}
}
