package normalize

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/trknhr/ghostchat/internal/corpus"
)

var questionWords = map[string]struct{}{
	"how": {}, "why": {}, "when": {}, "where": {}, "what": {}, "who": {},
	"which": {}, "whose": {}, "whom": {}, "is": {}, "are": {}, "do": {},
	"does": {}, "did": {}, "can": {}, "could": {}, "will": {}, "would": {},
	"should": {}, "may": {}, "might": {}, "what's": {},
}

var speakerTags = []string{corpus.UserSpeaker + ": ", corpus.AISpeaker + ": "}

// StripPrompt removes the first occurrence of prompt from raw and trims the
// result. raw is returned unchanged when it does not contain prompt.
func StripPrompt(raw, prompt string) string {
	if !strings.Contains(raw, prompt) {
		return raw
	}
	return strings.TrimSpace(strings.Replace(raw, prompt, "", 1))
}

// StripSpeakers removes every "user: " and "ai: " tag.
func StripSpeakers(text string) string {
	for _, tag := range speakerTags {
		text = strings.ReplaceAll(text, tag, "")
	}
	return text
}

// Dedupe keeps the first occurrence of every word, in order.
func Dedupe(text string) string {
	words := strings.Fields(text)
	seen := make(map[string]struct{}, len(words))
	unique := words[:0]
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		unique = append(unique, w)
	}
	return strings.Join(unique, " ")
}

// IsQuestionWord reports whether word (any case) opens a question.
func IsQuestionWord(word string) bool {
	_, ok := questionWords[strings.ToLower(word)]
	return ok
}

// Correct tidies a generated sentence: single spaces, a capital first letter,
// and one terminal mark. Sentences containing a question word get a comma
// after their first word and a question mark.
func Correct(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return text
	}

	first, size := utf8.DecodeRuneInString(text)
	text = cases.Upper(language.Und).String(string(first)) + text[size:]

	if strings.ContainsAny(text[len(text)-1:], ".!?") {
		text = text[:len(text)-1]
	}

	hasQuestion := false
	for _, w := range strings.Fields(text) {
		if IsQuestionWord(w) {
			hasQuestion = true
			break
		}
	}

	if hasQuestion && strings.Contains(text, " ") {
		text = strings.Replace(text, " ", ", ", 1)
		if !strings.HasSuffix(text, "?") {
			text += "?"
		}
		return text
	}
	if !strings.HasSuffix(text, ".") {
		text += "."
	}
	return text
}
