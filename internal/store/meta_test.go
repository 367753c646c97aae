package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/trknhr/ghostchat/internal/store"
)

func TestMetaStore_TouchMetaAndNeedsReload(t *testing.T) {
	ctx := context.Background()
	meta := store.NewMetaStore(setupTestDB(t))

	tmpfile := filepath.Join(t.TempDir(), "corpus.txt")
	if err := os.WriteFile(tmpfile, []byte("user: hi"), 0644); err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}

	key := "corpus:" + tmpfile
	if !meta.NeedsReload(ctx, key, tmpfile) {
		t.Fatalf("expected reload before the first touch")
	}

	if err := meta.TouchMeta(ctx, key, tmpfile); err != nil {
		t.Fatalf("TouchMeta failed: %v", err)
	}
	if meta.NeedsReload(ctx, key, tmpfile) {
		t.Fatalf("expected no reload right after touching")
	}

	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(tmpfile, later, later); err != nil {
		t.Fatalf("failed to bump mtime: %v", err)
	}
	if !meta.NeedsReload(ctx, key, tmpfile) {
		t.Fatalf("expected reload after the file changed")
	}

	if err := meta.TouchMeta(ctx, key, filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Errorf("expected an error touching a missing file")
	}
}
