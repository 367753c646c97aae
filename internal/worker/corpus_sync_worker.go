package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/trknhr/ghostchat/internal/corpus"
	"github.com/trknhr/ghostchat/internal/logger"
	"github.com/trknhr/ghostchat/internal/store"
)

// MetaTracker records when a file was last imported.
type MetaTracker interface {
	TouchMeta(ctx context.Context, key string, filePath string) error
	NeedsReload(ctx context.Context, key string, filePath string) bool
}

// CorpusSyncWorker imports one corpus file into the store.
type CorpusSyncWorker struct {
	store store.CorpusStore
	meta  MetaTracker
	path  string
	force bool
}

func NewCorpusSyncWorker(corpusStore store.CorpusStore, meta MetaTracker, path string, force bool) *CorpusSyncWorker {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return &CorpusSyncWorker{
		store: corpusStore,
		meta:  meta,
		path:  path,
		force: force,
	}
}

func (c *CorpusSyncWorker) Key() string  { return "corpus:" + c.path }
func (c *CorpusSyncWorker) Path() string { return c.path }

func (c *CorpusSyncWorker) NeedsReload(ctx context.Context) bool {
	return c.force || c.meta.NeedsReload(ctx, c.Key(), c.path)
}

func (c *CorpusSyncWorker) Sync(ctx context.Context) error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("failed to read corpus: %w", err)
	}

	blocks := corpus.Split(string(data))
	if err := c.store.ReplaceSource(ctx, c.path, blocks); err != nil {
		return err
	}
	logger.Debug("imported %d blocks from %s", len(blocks), c.path)
	return c.meta.TouchMeta(ctx, c.Key(), c.path)
}
