package model

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/trknhr/ghostchat/internal/config"
	"github.com/trknhr/ghostchat/internal/corpus"
	"github.com/trknhr/ghostchat/internal/logger"
	"github.com/trknhr/ghostchat/internal/model/attention"
	"github.com/trknhr/ghostchat/internal/model/generate"
	"github.com/trknhr/ghostchat/internal/model/ngram"
	"github.com/trknhr/ghostchat/internal/store"
	"github.com/trknhr/ghostchat/internal/worker"
)

var errClosed = errors.New("model build ended without a result")

// LoadCorpus resolves the corpus text. Configured files are imported into the
// store first when one is given; the stored sources are used if there are
// any. Without a store the files are read directly. With neither, the
// bundled corpus is returned. A single source comes back byte for byte;
// several sources are separated by a newline.
func LoadCorpus(ctx context.Context, paths []string, corpusStore store.CorpusStore, meta worker.MetaTracker) (string, error) {
	if corpusStore == nil {
		if len(paths) == 0 {
			return corpus.Default(), nil
		}
		return readCorpusFiles(paths)
	}

	syncers := make([]worker.SyncWorker, 0, len(paths))
	for _, p := range paths {
		syncers = append(syncers, worker.NewCorpusSyncWorker(corpusStore, meta, p, false))
	}
	if err := worker.RunSyncWorkers(ctx, syncers...); err != nil {
		return "", fmt.Errorf("failed to import corpus: %w", err)
	}

	records, err := corpusStore.LoadDialogues(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load corpus: %w", err)
	}
	if len(records) == 0 {
		logger.Debug("store holds no dialogues, using the bundled corpus")
		return corpus.Default(), nil
	}
	logger.Debug("loaded %d blocks from the store", len(records))
	return joinSources(records), nil
}

// joinSources rebuilds each source's text from its blocks. records must be
// ordered by source, then position.
func joinSources(records []store.DialogueRecord) string {
	var sources []string
	var blocks []string
	for i, r := range records {
		if i > 0 && r.Source != records[i-1].Source {
			sources = append(sources, corpus.Join(blocks))
			blocks = nil
		}
		blocks = append(blocks, r.Body)
	}
	sources = append(sources, corpus.Join(blocks))
	return strings.Join(sources, "\n")
}

func readCorpusFiles(paths []string) (string, error) {
	texts := make([]string, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return "", fmt.Errorf("failed to read corpus: %w", err)
		}
		texts = append(texts, string(data))
	}
	return strings.Join(texts, "\n"), nil
}

// GenerateModel builds the n-gram collection in the background. The returned
// channel carries progress events and is closed after the final one.
func GenerateModel(text string, cfg config.ModelConfig) <-chan ModelInitEvent {
	// Build reports total+1 progress events plus one result.
	ch := make(chan ModelInitEvent, 2+ngram.MaxOrder+2)
	go func() {
		defer close(ch)
		models, err := ngram.Build(text,
			ngram.WithOrders(cfg.MinOrder, cfg.MaxOrder),
			ngram.WithProgress(func(step, total int) {
				ch <- ModelInitEvent{Name: cfg.Name, Status: ModelBuilding, Step: step, Total: total}
			}),
		)
		if err != nil {
			ch <- ModelInitEvent{Name: cfg.Name, Status: ModelError, Err: err}
			return
		}
		ch <- ModelInitEvent{Name: cfg.Name, Status: ModelReady, Models: models}
	}()
	return ch
}

// NewGenerator returns a generator over models with its own random source.
// A zero seed seeds from the clock.
func NewGenerator(models *ngram.Collection, cfg config.ModelConfig) *generate.Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	predictor := ngram.NewPredictor(models, rng)
	if !cfg.Attention.Enabled {
		return generate.New(predictor, nil, cfg.MaxLength)
	}
	return generate.New(predictor, attention.NewStack(cfg.Attention.Stack(), rng), cfg.MaxLength)
}
