package ngram

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	lineBreaks  = regexp.MustCompile(`[\r\n]+`)
	punctuation = regexp.MustCompile(`[.,!?]`)
)

// Tokenize lowercases text and splits it on whitespace. Punctuation is kept.
func Tokenize(text string) []string {
	// cases.Caser keeps state, so one is created per call.
	return strings.Fields(cases.Lower(language.Und).String(text))
}

func collapseLineBreaks(text string) string {
	return lineBreaks.ReplaceAllString(strings.TrimSpace(text), " ")
}

func stripPunctuation(text string) string {
	return punctuation.ReplaceAllString(text, "")
}
