// Package slottest holds the conformance suite every slot backend must pass.
package slottest

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	docsysRepo "kbportal/internal/domain/repositories/docsystem"
)

// StoreFactory creates a fresh KeyValueStore for each test. It receives
// *testing.T so backends can use t.TempDir() and t.Cleanup().
type StoreFactory func(t *testing.T) docsysRepo.KeyValueStore

// RunConformanceSuite runs the full slot suite against factory
func RunConformanceSuite(t *testing.T, factory StoreFactory) {
	t.Helper()

	t.Run("MissingKey", func(t *testing.T) { testMissingKey(t, factory) })
	t.Run("SetThenGet", func(t *testing.T) { testSetThenGet(t, factory) })
	t.Run("Overwrite", func(t *testing.T) { testOverwrite(t, factory) })
	t.Run("KeysAreIndependent", func(t *testing.T) { testKeysIndependent(t, factory) })
	t.Run("ConcurrentWriters", func(t *testing.T) { testConcurrentWriters(t, factory) })
}

func testMissingKey(t *testing.T, factory StoreFactory) {
	store := factory(t)

	value, found, err := store.Get(t.Context(), "never-written")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if found {
		t.Errorf("found = true for a key that was never written (value %q)", value)
	}
}

func testSetThenGet(t *testing.T, factory StoreFactory) {
	store := factory(t)
	ctx := t.Context()
	want := []byte(`{"root":{"id":"root","name":"Documents","kind":"folder","parentId":null}}`)

	if err := store.Set(ctx, "kb.documents", want); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	got, found, err := store.Get(ctx, "kb.documents")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !found {
		t.Fatal("found = false after Set")
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get() = %q, want %q", got, want)
	}
}

func testOverwrite(t *testing.T, factory StoreFactory) {
	store := factory(t)
	ctx := t.Context()

	if err := store.Set(ctx, "slot", []byte("first")); err != nil {
		t.Fatalf("Set(first) failed: %v", err)
	}
	if err := store.Set(ctx, "slot", []byte("second")); err != nil {
		t.Fatalf("Set(second) failed: %v", err)
	}

	got, _, err := store.Get(ctx, "slot")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("Get() = %q, want %q", got, "second")
	}
}

func testKeysIndependent(t *testing.T, factory StoreFactory) {
	store := factory(t)
	ctx := t.Context()

	if err := store.Set(ctx, "a", []byte("alpha")); err != nil {
		t.Fatalf("Set(a) failed: %v", err)
	}
	if err := store.Set(ctx, "b", []byte("beta")); err != nil {
		t.Fatalf("Set(b) failed: %v", err)
	}

	for key, want := range map[string]string{"a": "alpha", "b": "beta"} {
		got, found, err := store.Get(ctx, key)
		if err != nil || !found {
			t.Fatalf("Get(%q) = found %v, err %v", key, found, err)
		}
		if string(got) != want {
			t.Errorf("Get(%q) = %q, want %q", key, got, want)
		}
	}
}

func testConcurrentWriters(t *testing.T, factory StoreFactory) {
	store := factory(t)
	ctx := t.Context()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.Set(ctx, "shared", fmt.Appendf(nil, "writer-%d", i)); err != nil {
				t.Errorf("Set() from writer %d failed: %v", i, err)
			}
		}()
	}
	wg.Wait()

	got, found, err := store.Get(ctx, "shared")
	if err != nil || !found {
		t.Fatalf("Get() = found %v, err %v", found, err)
	}
	if !bytes.HasPrefix(got, []byte("writer-")) {
		t.Errorf("Get() = %q, want one complete writer value", got)
	}
}
