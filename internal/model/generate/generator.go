package generate

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/trknhr/ghostchat/internal/corpus"
	"github.com/trknhr/ghostchat/internal/logger"
	"github.com/trknhr/ghostchat/internal/model/entity"
	"github.com/trknhr/ghostchat/internal/model/ngram"
	"github.com/trknhr/ghostchat/internal/model/normalize"
)

// Generator grows prompts into replies one predicted word at a time.
type Generator struct {
	predictor entity.Predictor
	transform entity.Transform
	maxLength int
}

// New returns a generator taking at most maxLength steps per reply. transform
// may be nil, in which case steps only run the predictor.
func New(predictor entity.Predictor, transform entity.Transform, maxLength int) *Generator {
	return &Generator{
		predictor: predictor,
		transform: transform,
		maxLength: maxLength,
	}
}

// Step predicts the word following text. The transform runs first and its
// output is dropped.
func (g *Generator) Step(text string) string {
	if g.transform != nil {
		_ = g.transform.Forward(ngram.Tokenize(text))
	}
	return g.predictor.Predict(text)
}

// Extend appends predicted words to prompt until the end-of-turn sentinel is
// predicted or maxLength steps have run. The returned text starts with prompt.
func (g *Generator) Extend(prompt string) string {
	var sentence strings.Builder
	sentence.WriteString(prompt)

	for i := 0; i < g.maxLength; i++ {
		word := g.Step(sentence.String())
		if word == corpus.EndOfTurn {
			logger.Debug("generation stopped at end of turn after %d steps", i)
			return sentence.String()
		}
		sentence.WriteString(" ")
		sentence.WriteString(word)
	}
	logger.Debug("generation stopped at the %d step limit", g.maxLength)
	return sentence.String()
}

// Answer replies to a user message.
func (g *Generator) Answer(input string) string {
	input = cases.Lower(language.Und).String(input)
	prompt := corpus.Prompt(input)

	raw := g.Extend(prompt)
	response := normalize.StripPrompt(raw, prompt)
	response = normalize.StripSpeakers(response)
	response = normalize.Dedupe(response)
	return normalize.Correct(response)
}
