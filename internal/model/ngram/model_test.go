package ngram

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Tables(t *testing.T) {
	c, err := Build("user: hi\nai: hello there\n<|endoftext|>")
	require.NoError(t, err)

	min, max := c.Orders()
	assert.Equal(t, MinOrder, min)
	assert.Equal(t, MaxOrder, max)

	unigrams, ok := c.Table(1).Lookup("")
	require.True(t, ok)
	assert.Equal(t, []string{"user:", "hi", "ai:", "hello", "there", "<|endoftext|>"}, unigrams)

	next, ok := c.Table(2).Lookup("ai:")
	require.True(t, ok)
	assert.Equal(t, []string{"hello"}, next)

	next, ok = c.Table(5).Lookup("hi ai: hello there")
	require.True(t, ok)
	assert.Equal(t, []string{"<|endoftext|>"}, next)

	_, ok = c.Table(3).Lookup("hello")
	assert.False(t, ok, "a 3-gram context must hold exactly two words")
}

func TestBuild_ContextsHaveOrderMinusOneWords(t *testing.T) {
	c, err := Build("a b c a b d. A, b! c?")
	require.NoError(t, err)

	for n := MinOrder; n <= MaxOrder; n++ {
		for _, ctx := range c.Table(n).Contexts() {
			words := Tokenize(ctx)
			assert.Len(t, words, n-1, "order %d context %q", n, ctx)
			next, ok := c.Table(n).Lookup(ctx)
			assert.True(t, ok)
			assert.NotEmpty(t, next)
		}
	}
}

func TestBuild_DuplicatesRetainedInOrder(t *testing.T) {
	c, err := Build("a b a c a b")
	require.NoError(t, err)

	next, ok := c.Table(2).Lookup("a")
	require.True(t, ok)
	assert.Equal(t, []string{"b", "c", "b"}, next)
}

func TestBuild_Deterministic(t *testing.T) {
	text := "user: how are you?\nai: I am fine, thanks! How are you?\n<|endoftext|>\nuser: fine\nai: great.\n<|endoftext|>"
	first, err := Build(text)
	require.NoError(t, err)
	second, err := Build(text)
	require.NoError(t, err)

	for n := MinOrder; n <= MaxOrder; n++ {
		if !reflect.DeepEqual(first.Table(n).Contexts(), second.Table(n).Contexts()) {
			t.Fatalf("order %d: context keys differ", n)
		}
		for _, ctx := range first.Table(n).Contexts() {
			a, _ := first.Table(n).Lookup(ctx)
			b, _ := second.Table(n).Lookup(ctx)
			if !reflect.DeepEqual(a, b) {
				t.Errorf("order %d context %q: %v != %v", n, ctx, a, b)
			}
		}
	}
}

func TestBuild_EmptyCorpus(t *testing.T) {
	c, err := Build("")
	require.NoError(t, err)
	for n := MinOrder; n <= MaxOrder; n++ {
		assert.Equal(t, 0, c.Table(n).Len(), "order %d", n)
	}
}

func TestBuild_Orders(t *testing.T) {
	c, err := Build("a b c d", WithOrders(2, 3))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Table(1).Len())
	assert.Equal(t, 0, c.Table(4).Len())
	assert.Equal(t, 3, c.Table(2).Len())

	stats := c.Stats()
	require.Len(t, stats, 2)
	assert.Equal(t, OrderStats{Order: 2, Contexts: 3, Continuations: 3}, stats[0])
	assert.Equal(t, OrderStats{Order: 3, Contexts: 2, Continuations: 2}, stats[1])

	for _, bounds := range [][2]int{{0, 5}, {1, 6}, {4, 2}} {
		_, err := Build("a b", WithOrders(bounds[0], bounds[1]))
		assert.Error(t, err, "orders %v", bounds)
	}
}

func TestBuild_Progress(t *testing.T) {
	var steps []int
	_, err := Build("a b c", WithProgress(func(step, total int) {
		assert.Equal(t, 7, total)
		steps = append(steps, step)
	}))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, steps)
}

func TestLookup_ReturnsCopy(t *testing.T) {
	c, err := Build("a b")
	require.NoError(t, err)

	next, _ := c.Table(2).Lookup("a")
	next[0] = "mutated"
	again, _ := c.Table(2).Lookup("a")
	assert.Equal(t, []string{"b"}, again)
}
