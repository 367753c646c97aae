// Package attention implements a small fixed-weight transformer block:
// random token embeddings, sinusoidal positions, multi-head self-attention
// and a feed-forward layer. Nothing here is trained and the result does not
// steer word choice; generation runs it on every step.
package attention

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

type Config struct {
	// Width is the embedding and attention feature width.
	Width int
	// Hidden and Output size the feed-forward layer.
	Hidden int
	Output int
	// MaxHeadTokens is the longest sequence that still gets one head per token.
	MaxHeadTokens int
}

func DefaultConfig() Config {
	return Config{Width: 3, Hidden: 10, Output: 10, MaxHeadTokens: 25}
}

type Stack struct {
	cfg     Config
	uniform distuv.Uniform
}

// NewStack returns a stack drawing embeddings from src. Like src, the stack
// must not be shared between goroutines.
func NewStack(cfg Config, src rand.Source) *Stack {
	return &Stack{
		cfg:     cfg,
		uniform: distuv.Uniform{Min: 0, Max: 1, Src: src},
	}
}

// Forward runs the whole block over tokens and returns the feed-forward
// output, (heads × len(tokens)) rows by Output columns. It returns nil for an
// empty token list.
func (s *Stack) Forward(tokens []string) *mat.Dense {
	if len(tokens) == 0 {
		return nil
	}
	x := s.Embed(tokens)
	x.Add(x, PositionalEncoding(len(tokens), s.cfg.Width))
	heads := HeadCount(len(tokens), s.cfg.MaxHeadTokens)
	attended := MultiHeadAttention(x, x, x, heads)
	return FeedForward(attended, s.cfg.Hidden, s.cfg.Output)
}

// Embed assigns every token a fresh vector of uniform [0,1) values.
func (s *Stack) Embed(tokens []string) *mat.Dense {
	data := make([]float64, len(tokens)*s.cfg.Width)
	for i := range data {
		data[i] = s.uniform.Rand()
	}
	return mat.NewDense(len(tokens), s.cfg.Width, data)
}

// PositionalEncoding returns the sinusoidal encoding for seqLen positions:
// sine on even feature indices, cosine on odd ones.
func PositionalEncoding(seqLen, width int) *mat.Dense {
	pe := mat.NewDense(seqLen, width, nil)
	for pos := 0; pos < seqLen; pos++ {
		for i := 0; i < width; i++ {
			angle := float64(pos) / math.Pow(10000, float64(i)/float64(width))
			if i%2 == 0 {
				pe.Set(pos, i, math.Sin(angle))
			} else {
				pe.Set(pos, i, math.Cos(angle))
			}
		}
	}
	return pe
}

// HeadCount is one head per token for short sequences and a single head
// beyond limit tokens.
func HeadCount(seqLen, limit int) int {
	if seqLen > limit {
		return 1
	}
	return max(1, seqLen)
}

// Softmax normalises row in place after subtracting its maximum.
func Softmax(row []float64) {
	if len(row) == 0 {
		return
	}
	m := floats.Max(row)
	for i, v := range row {
		row[i] = math.Exp(v - m)
	}
	floats.Scale(1/floats.Sum(row), row)
}

// SelfAttention computes softmax(q·kᵀ)·v row by row. Scores are not scaled
// by the square root of the feature width.
func SelfAttention(q, k, v mat.Matrix) *mat.Dense {
	var scores mat.Dense
	scores.Mul(q, k.T())
	rows, _ := scores.Dims()
	for i := 0; i < rows; i++ {
		Softmax(scores.RawRowView(i))
	}
	var out mat.Dense
	out.Mul(&scores, v)
	return &out
}

// MultiHeadAttention splits the feature width evenly across heads and stacks
// the per-head outputs vertically, giving heads × rows(q) rows. When the width
// cannot give each head a feature, every head contributes a zero column.
func MultiHeadAttention(q, k, v *mat.Dense, heads int) *mat.Dense {
	seqLen, width := q.Dims()
	headSize := width / heads
	out := mat.NewDense(heads*seqLen, max(headSize, 1), nil)
	if headSize == 0 {
		return out
	}
	for h := 0; h < heads; h++ {
		lo, hi := h*headSize, (h+1)*headSize
		attended := SelfAttention(
			q.Slice(0, seqLen, lo, hi),
			k.Slice(0, seqLen, lo, hi),
			v.Slice(0, seqLen, lo, hi),
		)
		out.Slice(h*seqLen, (h+1)*seqLen, 0, headSize).(*mat.Dense).Copy(attended)
	}
	return out
}

// FeedForward applies the fixed two-layer network: an identity-like expansion
// to hidden features through ReLU, then an all-ones projection to output
// features. Biases are zero.
func FeedForward(x mat.Matrix, hidden, output int) *mat.Dense {
	_, in := x.Dims()
	w1 := mat.NewDense(in, hidden, nil)
	for i := 0; i < min(in, hidden); i++ {
		w1.Set(i, i, 1)
	}
	w2 := mat.NewDense(hidden, output, nil)
	for i := 0; i < hidden; i++ {
		for j := 0; j < output; j++ {
			w2.Set(i, j, 1)
		}
	}

	var h mat.Dense
	h.Mul(x, w1)
	h.Apply(func(_, _ int, v float64) float64 { return math.Max(0, v) }, &h)

	var out mat.Dense
	out.Mul(&h, w2)
	return &out
}
