package pipeline

import (
	"fmt"
	"strings"
)

// buildPrompt composes the single instruction payload: full reference text
// as context, explicit task steps, answer-register rules, and a strict
// output directive matching the active schema. The audio travels as a
// separate attachment, never inlined here.
func buildPrompt(document string, schema Schema) string {
	var b strings.Builder

	b.WriteString("CONTEXT (BRONTEKST):\n")
	b.WriteString(document)
	b.WriteString("\n\nJOUW TAAK:\n")
	b.WriteString("1. Luister naar de audio en schrijf de vraag uit (transcriptie).\n")
	if schema.DetectsMiss {
		b.WriteString("2. Vertaal deze vraag ook naar het NEDERLANDS (voor het logboek).\n")
		b.WriteString("3. Zoek het antwoord in de brontekst.\n")
		b.WriteString("4. Bepaal: staat het antwoord in de tekst? (Ja/Nee).\n")
		b.WriteString("5. Vertaal het antwoord naar de taal van de spreker.\n")
	} else {
		b.WriteString("2. Zoek het antwoord in de brontekst.\n")
		b.WriteString("3. Vertaal het antwoord naar de taal van de spreker.\n")
	}

	b.WriteString("\nREGELS:\n")
	b.WriteString("- GEVONDEN? -> Geef een vriendelijke uitleg (2-3 zinnen, A2 niveau).\n")
	b.WriteString("- NIET GEVONDEN? -> Zeg \"Dat staat niet in het reglement.\" EN voeg toe: ")
	b.WriteString("\"Vraag het aan je klasleerkracht of ga naar het onthaal.\" (Vertaal dit!).\n")
	b.WriteString("- Antwoord altijd in de taal van de spreker.\n")
	if schema.DualText {
		b.WriteString("- Geef naast de schermtekst een fonetische spelling voor spraak.\n")
	}

	b.WriteString("\nOUTPUT FORMAAT: exact EEN JSON object, zonder extra tekst:\n")
	b.WriteString(outputDirective(schema))
	return b.String()
}

func outputDirective(schema Schema) string {
	switch {
	case schema.DetectsMiss:
		return fmt.Sprintf(`{
    "taal_code": "code (bv: en, ar, fr)",
    "vraag_orig": "De vraag in de originele taal",
    "vraag_nl": "De vraag vertaald naar het Nederlands",
    "antwoord_gevonden": %s,
    "antwoord_tekst": "Het antwoord voor de cursist"
}`, "true of false")
	case schema.DualText:
		return `{
    "taal_code": "code (bv: en, ar, fr)",
    "scherm_tekst": "Het antwoord zoals het op het scherm komt",
    "spraak_tekst": "Hetzelfde antwoord, fonetisch gespeld voor spraak"
}`
	default:
		return `{
    "taal_code": "code (bv: en, ar, fr)",
    "antwoord_tekst": "Het antwoord voor de cursist"
}`
	}
}
