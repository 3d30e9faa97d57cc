package prefs

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
)

func openMemorySQLite(t *testing.T) *SQLStore {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", filepath.Base(t.Name()))
	store, err := OpenSQLite(dsn)
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, ThemeKey); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := store.Set(ctx, ThemeKey, "misty-forest"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, ThemeKey, "warm-ember"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, ok, err := store.Get(ctx, ThemeKey)
	if err != nil || !ok {
		t.Fatalf("expected stored key, got ok=%v err=%v", ok, err)
	}
	if value != "warm-ember" {
		t.Fatalf("expected last write to win, got %q", value)
	}
	if err := store.Set(ctx, " ", "x"); !errors.Is(err, ErrEmptyKey) {
		t.Fatalf("expected ErrEmptyKey, got %v", err)
	}
	if _, _, err := store.Get(ctx, ""); !errors.Is(err, ErrEmptyKey) {
		t.Fatalf("expected ErrEmptyKey, got %v", err)
	}
}

func TestSQLStoreRoundTrip(t *testing.T) {
	t.Parallel()
	exerciseStore(t, openMemorySQLite(t))
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()
	exerciseStore(t, NewMemoryStore())
}

func TestSQLStoreSurvivesReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "prefs.db")
	first, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Set(context.Background(), ThemeKey, "misty-forest"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = second.Close() })

	value, ok, err := second.Get(context.Background(), ThemeKey)
	if err != nil || !ok || value != "misty-forest" {
		t.Fatalf("expected persisted value, got %q ok=%v err=%v", value, ok, err)
	}
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := OpenSQLite("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestNewSQLStoreRejectsNil(t *testing.T) {
	t.Parallel()

	if _, err := NewSQLStore(nil); err == nil {
		t.Fatal("expected error for nil handle")
	}
}
