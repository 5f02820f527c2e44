package testutil

import (
	"fmt"
	"testing"
	"time"

	"todo/internal/kv"
	"todo/internal/storage"
	"todo/internal/store"
)

// Epoch is the fixed time SequentialClock starts from.
var Epoch = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

// SequentialIDs returns an id generator yielding "a0000001", "a0000002", ...
// The ids are hex so they parse as task references.
func SequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("a%07d", n)
	}
}

// SequentialClock returns a clock that advances one minute per call.
func SequentialClock() func() time.Time {
	n := 0
	return func() time.Time {
		n++
		return Epoch.Add(time.Duration(n) * time.Minute)
	}
}

// NewMemorySession opens a store over a fresh in-memory backend with
// deterministic ids and timestamps.
func NewMemorySession(t *testing.T) (*storage.Session, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	sess := storage.NewSession(mem, "", nil,
		store.WithIDGenerator(SequentialIDs()),
		store.WithClock(SequentialClock()))
	t.Cleanup(func() { sess.Close() })
	return sess, mem
}

// AddTasks adds each text to st in order, failing the test on error.
// The last text ends up first in the collection.
func AddTasks(t *testing.T, st *store.Store, texts ...string) {
	t.Helper()
	for _, text := range texts {
		if _, err := st.Add(text); err != nil {
			t.Fatalf("add %q: %v", text, err)
		}
	}
}
