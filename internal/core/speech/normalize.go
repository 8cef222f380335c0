package speech

import "strings"

// rule is one literal pattern -> replacement pair. Patterns include their
// word boundaries (space before, space or sentence punctuation after), so a
// match never fires inside a longer word.
type rule struct {
	pattern     string
	replacement string
}

// pronunciationRules maps a language code to its fix list. The generic
// synthesizer voice reads the Dutch word "les" as the English "less"-sounding
// "lace"; respelling it restores the intended sound. New fixes are added
// here, not in code.
var pronunciationRules = map[string][]rule{
	"nl": {
		{" les ", " less "},
		{" les.", " less."},
		{" les,", " less,"},
		{" Les ", " Less "},
		{" Les.", " Less."},
		{" Les,", " Less,"},
	},
}

// Normalize rewrites known mispronounced words in text before synthesis.
// Pure and deterministic; a no-op for languages without rules.
func Normalize(text, languageCode string) string {
	rules, ok := pronunciationRules[languageCode]
	if !ok {
		return text
	}
	// pad so start and end of string count as word boundaries
	padded := " " + text + " "
	for _, r := range rules {
		padded = strings.ReplaceAll(padded, r.pattern, r.replacement)
	}
	return strings.TrimPrefix(strings.TrimSuffix(padded, " "), " ")
}
