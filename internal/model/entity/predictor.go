package entity

import "gonum.org/v1/gonum/mat"

//go:generate mockgen -source=predictor.go -destination=mock_predictor.go -package=entity

// Predictor returns the word that follows text, or "" when it has none.
type Predictor interface {
	Predict(text string) string
}

// Transform is run over the tokens of every generation step. Its output is
// not used to pick words.
type Transform interface {
	Forward(tokens []string) *mat.Dense
}
