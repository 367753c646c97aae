package ngram

import (
	"fmt"
	"slices"
	"strings"

	"github.com/trknhr/ghostchat/internal/logger"
)

const (
	MinOrder = 1
	MaxOrder = 5
)

// Table maps a context (the space-joined preceding words) to every word seen
// after it, in corpus order. Repeated continuations are kept, so drawing one
// uniformly reproduces their observed frequency.
type Table struct {
	next map[string][]string
}

func newTable() Table {
	return Table{next: make(map[string][]string)}
}

// Lookup returns a copy of the continuations recorded for context.
func (t Table) Lookup(context string) ([]string, bool) {
	words, ok := t.next[context]
	if !ok {
		return nil, false
	}
	return slices.Clone(words), true
}

func (t Table) Len() int {
	return len(t.next)
}

// Contexts returns every context key in sorted order.
func (t Table) Contexts() []string {
	keys := make([]string, 0, len(t.next))
	for k := range t.next {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Collection holds one table per order. It is never modified after Build
// returns and may be shared between goroutines.
type Collection struct {
	minOrder int
	maxOrder int
	tables   [MaxOrder]Table
}

// Orders returns the inclusive order bounds the collection was built with.
func (c *Collection) Orders() (int, int) {
	return c.minOrder, c.maxOrder
}

// Table returns the table for order n. Orders outside the built range yield
// an empty table.
func (c *Collection) Table(n int) Table {
	if n < c.minOrder || n > c.maxOrder {
		return newTable()
	}
	return c.tables[n-1]
}

// OrderStats describes one table of a collection.
type OrderStats struct {
	Order         int
	Contexts      int
	Continuations int
}

func (c *Collection) Stats() []OrderStats {
	stats := make([]OrderStats, 0, c.maxOrder-c.minOrder+1)
	for n := c.minOrder; n <= c.maxOrder; n++ {
		s := OrderStats{Order: n, Contexts: c.tables[n-1].Len()}
		for _, words := range c.tables[n-1].next {
			s.Continuations += len(words)
		}
		stats = append(stats, s)
	}
	return stats
}

// ProgressFunc receives the completed and total number of build steps.
type ProgressFunc func(step, total int)

type buildOptions struct {
	minOrder int
	maxOrder int
	progress ProgressFunc
}

type Option func(*buildOptions)

// WithOrders limits the orders that are built.
func WithOrders(minOrder, maxOrder int) Option {
	return func(o *buildOptions) {
		o.minOrder = minOrder
		o.maxOrder = maxOrder
	}
}

// WithProgress reports build progress: two cleaning steps, then one per order.
func WithProgress(fn ProgressFunc) Option {
	return func(o *buildOptions) {
		o.progress = fn
	}
}

// Build compiles corpus text into a Collection. The result depends only on the
// text and the order bounds. An empty corpus yields empty tables.
func Build(text string, opts ...Option) (*Collection, error) {
	o := buildOptions{minOrder: MinOrder, maxOrder: MaxOrder}
	for _, opt := range opts {
		opt(&o)
	}
	if o.minOrder < MinOrder || o.maxOrder > MaxOrder || o.minOrder > o.maxOrder {
		return nil, fmt.Errorf("invalid n-gram orders %d..%d: must satisfy %d <= min <= max <= %d",
			o.minOrder, o.maxOrder, MinOrder, MaxOrder)
	}

	total := 2 + o.maxOrder - o.minOrder + 1
	step := 0
	report := func() {
		step++
		if o.progress != nil {
			o.progress(step, total)
		}
	}
	if o.progress != nil {
		o.progress(0, total)
	}

	cleaned := collapseLineBreaks(text)
	report()
	cleaned = stripPunctuation(cleaned)
	report()

	words := Tokenize(cleaned)
	c := &Collection{minOrder: o.minOrder, maxOrder: o.maxOrder}
	for n := o.minOrder; n <= o.maxOrder; n++ {
		c.tables[n-1] = buildTable(words, n)
		logger.Debug("built %d-gram table with %d contexts", n, c.tables[n-1].Len())
		report()
	}
	logger.Info("model built from %d tokens (orders %d..%d)", len(words), o.minOrder, o.maxOrder)
	return c, nil
}

func buildTable(words []string, n int) Table {
	t := newTable()
	for i := 0; i+n <= len(words); i++ {
		context := strings.Join(words[i:i+n-1], " ")
		t.next[context] = append(t.next[context], words[i+n-1])
	}
	return t
}
