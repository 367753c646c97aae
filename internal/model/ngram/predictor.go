package ngram

import (
	"math/rand/v2"
	"strings"
)

// Predictor picks the next word by backing off from the longest context the
// collection was built with down to the shortest.
type Predictor struct {
	models *Collection
	rng    *rand.Rand
}

// NewPredictor returns a predictor drawing from rng. The predictor is not safe
// for concurrent use because rng is not.
func NewPredictor(models *Collection, rng *rand.Rand) *Predictor {
	return &Predictor{models: models, rng: rng}
}

// Predict returns the next word for text, or "" when no order matches.
func (p *Predictor) Predict(text string) string {
	word, _ := p.PredictOrder(text)
	return word
}

// PredictOrder is Predict that also reports the order that matched, 0 if none.
func (p *Predictor) PredictOrder(text string) (string, int) {
	words := Tokenize(text)
	for n := p.models.maxOrder; n >= p.models.minOrder; n-- {
		if len(words) < n-1 {
			continue
		}
		context := strings.Join(words[len(words)-(n-1):], " ")
		choices, ok := p.models.tables[n-1].next[context]
		if !ok {
			continue
		}
		return choices[p.rng.IntN(len(choices))], n
	}
	return "", 0
}
