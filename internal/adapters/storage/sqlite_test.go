package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xvierd/focusday/internal/ports"
)

func newTestStore(t *testing.T) ports.KeyValueStore {
	t.Helper()
	store, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewMemory(t *testing.T) {
	store := newTestStore(t)
	if store == nil {
		t.Error("NewMemory() returned nil storage")
	}
}

func TestKeyValue_GetMissing(t *testing.T) {
	store := newTestStore(t)

	value, ok, err := store.Get(context.Background(), ports.KeySettings)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Errorf("Get() ok = true, want false (value %q)", value)
	}
}

func TestKeyValue_SetGetRemove(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		if err := store.Set(ctx, ports.KeySettings, `{"pomodoro":25}`); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		value, ok, err := store.Get(ctx, ports.KeySettings)
		if err != nil || !ok {
			t.Fatalf("Get() = %q, %v, %v", value, ok, err)
		}
		if value != `{"pomodoro":25}` {
			t.Errorf("Get() = %q, want %q", value, `{"pomodoro":25}`)
		}
	})

	t.Run("last write wins", func(t *testing.T) {
		if err := store.Set(ctx, ports.KeySettings, `{"pomodoro":50}`); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		value, _, _ := store.Get(ctx, ports.KeySettings)
		if value != `{"pomodoro":50}` {
			t.Errorf("Get() = %q, want %q", value, `{"pomodoro":50}`)
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		if err := store.Set(ctx, ports.KeySessions, "[]"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		value, _, _ := store.Get(ctx, ports.KeySettings)
		if value != `{"pomodoro":50}` {
			t.Errorf("Get(settings) = %q after writing sessions", value)
		}
	})

	t.Run("remove", func(t *testing.T) {
		if err := store.Remove(ctx, ports.KeySettings); err != nil {
			t.Fatalf("Remove() error = %v", err)
		}
		if _, ok, _ := store.Get(ctx, ports.KeySettings); ok {
			t.Error("Get() ok = true after Remove()")
		}
		if _, ok, _ := store.Get(ctx, ports.KeySessions); !ok {
			t.Error("Remove() deleted an unrelated key")
		}
	})

	t.Run("remove missing key", func(t *testing.T) {
		if err := store.Remove(ctx, "nothing-here"); err != nil {
			t.Errorf("Remove() error = %v, want nil", err)
		}
	})
}

func TestKeyValue_EmptyValue(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "empty", ""); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	value, ok, err := store.Get(ctx, "empty")
	if err != nil || !ok || value != "" {
		t.Errorf("Get() = %q, %v, %v; want \"\", true, nil", value, ok, err)
	}
}

func TestKeyValue_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focusday.db")
	ctx := context.Background()

	store, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := store.Set(ctx, ports.KeySessions, `[{"duration":25}]`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := New(path)
	if err != nil {
		t.Fatalf("New() reopen error = %v", err)
	}
	defer func() { _ = reopened.Close() }()

	value, ok, err := reopened.Get(ctx, ports.KeySessions)
	if err != nil || !ok {
		t.Fatalf("Get() = %q, %v, %v", value, ok, err)
	}
	if value != `[{"duration":25}]` {
		t.Errorf("Get() = %q, want %q", value, `[{"duration":25}]`)
	}
}

func TestKeyValue_ClosedStore(t *testing.T) {
	store, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	_ = store.Close()

	if _, _, err := store.Get(context.Background(), "k"); err == nil {
		t.Error("Get() on closed store error = nil")
	}
	if err := store.Set(context.Background(), "k", "v"); err == nil {
		t.Error("Set() on closed store error = nil")
	}
}
