package attention

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func newTestStack(seed uint64) *Stack {
	return NewStack(DefaultConfig(), rand.New(rand.NewPCG(seed, seed)))
}

func TestEmbed_RangeAndFreshness(t *testing.T) {
	s := newTestStack(1)
	tokens := []string{"a", "b", "c", "d"}

	first := s.Embed(tokens)
	r, c := first.Dims()
	if r != 4 || c != 3 {
		t.Fatalf("expected 4x3 embeddings, got %dx%d", r, c)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := first.At(i, j); v < 0 || v >= 1 {
				t.Errorf("embedding[%d][%d] = %v out of [0,1)", i, j, v)
			}
		}
	}

	second := s.Embed(tokens)
	if mat.Equal(first, second) {
		t.Error("expected embeddings to be resampled on every call")
	}
}

func TestPositionalEncoding(t *testing.T) {
	pe := PositionalEncoding(3, 4)

	// position 0: sin(0)=0 on even indices, cos(0)=1 on odd ones.
	want0 := []float64{0, 1, 0, 1}
	if !floats.EqualApprox(pe.RawRowView(0), want0, 1e-12) {
		t.Errorf("row 0 = %v, want %v", pe.RawRowView(0), want0)
	}

	want := []float64{
		math.Sin(2),
		math.Cos(2 / math.Pow(10000, 0.25)),
		math.Sin(2 / math.Pow(10000, 0.5)),
		math.Cos(2 / math.Pow(10000, 0.75)),
	}
	if !floats.EqualApprox(pe.RawRowView(2), want, 1e-12) {
		t.Errorf("row 2 = %v, want %v", pe.RawRowView(2), want)
	}
}

func TestHeadCount(t *testing.T) {
	tests := []struct{ seqLen, want int }{
		{0, 1}, {1, 1}, {3, 3}, {25, 25}, {26, 1}, {100, 1},
	}
	for _, tt := range tests {
		if got := HeadCount(tt.seqLen, 25); got != tt.want {
			t.Errorf("HeadCount(%d) = %d, want %d", tt.seqLen, got, tt.want)
		}
	}
}

func TestSoftmax(t *testing.T) {
	row := []float64{1000, 1001, 1002}
	Softmax(row)
	if math.Abs(floats.Sum(row)-1) > 1e-12 {
		t.Errorf("softmax does not sum to 1: %v", row)
	}
	if !(row[0] < row[1] && row[1] < row[2]) {
		t.Errorf("softmax should preserve ordering: %v", row)
	}
	for _, v := range row {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("softmax overflowed: %v", row)
		}
	}
	Softmax(nil)
}

func TestSelfAttention_UniformScoresAverageValues(t *testing.T) {
	q := mat.NewDense(2, 1, []float64{0, 0})
	v := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	out := SelfAttention(q, q, v)
	want := mat.NewDense(2, 2, []float64{2, 3, 2, 3})
	if !mat.EqualApprox(out, want, 1e-12) {
		t.Errorf("attention output = %v, want %v", mat.Formatted(out), mat.Formatted(want))
	}
}

func TestSelfAttention_RowsAreConvexCombinations(t *testing.T) {
	x := mat.NewDense(3, 2, []float64{1, 0, 0, 1, 1, 1})
	out := SelfAttention(x, x, x)
	r, c := out.Dims()
	if r != 3 || c != 2 {
		t.Fatalf("expected 3x2 output, got %dx%d", r, c)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := out.At(i, j); v < 0 || v > 1 {
				t.Errorf("out[%d][%d] = %v is not a convex combination of values", i, j, v)
			}
		}
	}
}

func TestMultiHeadAttention_Shapes(t *testing.T) {
	x := mat.NewDense(2, 4, []float64{1, 2, 3, 4, 5, 6, 7, 8})

	out := MultiHeadAttention(x, x, x, 2)
	r, c := out.Dims()
	if r != 4 || c != 2 {
		t.Fatalf("expected heads*seq=4 rows of width 2, got %dx%d", r, c)
	}

	// Each block of rows must equal attention over its own feature slice.
	head1 := SelfAttention(x.Slice(0, 2, 2, 4), x.Slice(0, 2, 2, 4), x.Slice(0, 2, 2, 4))
	if !mat.EqualApprox(out.Slice(2, 4, 0, 2), head1, 1e-12) {
		t.Errorf("second head mismatch: %v vs %v", mat.Formatted(out.Slice(2, 4, 0, 2)), mat.Formatted(head1))
	}
}

func TestMultiHeadAttention_NarrowHeads(t *testing.T) {
	x := mat.NewDense(5, 3, nil)
	out := MultiHeadAttention(x, x, x, 5)
	r, c := out.Dims()
	if r != 25 || c != 1 {
		t.Fatalf("expected 25x1 zero output, got %dx%d", r, c)
	}
	if mat.Sum(out) != 0 {
		t.Errorf("expected zeros, got %v", mat.Formatted(out))
	}
}

func TestFeedForward(t *testing.T) {
	x := mat.NewDense(2, 3, []float64{1, -2, 3, -1, -1, 0.5})
	out := FeedForward(x, 10, 10)

	r, c := out.Dims()
	if r != 2 || c != 10 {
		t.Fatalf("expected 2x10 output, got %dx%d", r, c)
	}
	// Negative features are cut by ReLU, the rest are summed into every column.
	for j := 0; j < c; j++ {
		if out.At(0, j) != 4 {
			t.Errorf("out[0][%d] = %v, want 4", j, out.At(0, j))
		}
		if out.At(1, j) != 0.5 {
			t.Errorf("out[1][%d] = %v, want 0.5", j, out.At(1, j))
		}
	}
}

func TestFeedForward_WideInputIsTruncated(t *testing.T) {
	data := make([]float64, 12)
	for i := range data {
		data[i] = 1
	}
	out := FeedForward(mat.NewDense(1, 12, data), 10, 4)
	for j := 0; j < 4; j++ {
		if out.At(0, j) != 10 {
			t.Errorf("out[0][%d] = %v, want 10", j, out.At(0, j))
		}
	}
}

func TestForward_Shapes(t *testing.T) {
	s := newTestStack(2)

	if out := s.Forward(nil); out != nil {
		t.Errorf("expected nil for empty input, got %v", out)
	}

	out := s.Forward([]string{"user:", "hi"})
	r, c := out.Dims()
	if r != 4 || c != 10 {
		t.Errorf("2 tokens -> 2 heads: expected 4x10, got %dx%d", r, c)
	}

	long := make([]string, 30)
	for i := range long {
		long[i] = "w"
	}
	out = s.Forward(long)
	r, c = out.Dims()
	if r != 30 || c != 10 {
		t.Errorf("30 tokens -> 1 head: expected 30x10, got %dx%d", r, c)
	}
}
