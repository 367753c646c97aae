package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/trknhr/ghostchat/internal/logger"
)

type SyncWorker interface {
	Key() string
	Path() string
	NeedsReload(ctx context.Context) bool
	Sync(ctx context.Context) error
}

// RunSyncWorkers runs every worker whose source changed and waits for them.
// Failures are collected rather than stopping the remaining workers.
func RunSyncWorkers(ctx context.Context, syncers ...SyncWorker) error {
	var errs []error
	for _, s := range syncers {
		if err := runOne(ctx, s); err != nil {
			errs = append(errs, fmt.Errorf("[%s] %w", s.Key(), err))
		}
	}
	return errors.Join(errs...)
}

func runOne(ctx context.Context, s SyncWorker) error {
	if !s.NeedsReload(ctx) {
		logger.Debug("[%s] sync skipped (up-to-date)", s.Key())
		return nil
	}
	if err := s.Sync(ctx); err != nil {
		return err
	}
	logger.Info("[%s] sync done", s.Key())
	return nil
}
