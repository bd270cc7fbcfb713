package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
)

// MemoryStore is a single-process Store used by tests and local development.
// Snapshots preserve insertion order per subtree; change callbacks are
// delivered synchronously on the writer's goroutine.
type MemoryStore struct {
	mu      sync.Mutex
	trees   map[string]*memTree
	nextSub int
	pushSeq map[string]uint64
}

type memTree struct {
	order  []string
	values map[string]json.RawMessage
	subs   map[int]*memSub
}

type memSub struct {
	onChange  func(Snapshot)
	cancelled atomic.Bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		trees:   make(map[string]*memTree),
		pushSeq: make(map[string]uint64),
	}
}

func (s *MemoryStore) tree(path string) *memTree {
	t, ok := s.trees[path]
	if !ok {
		t = &memTree{
			values: make(map[string]json.RawMessage),
			subs:   make(map[int]*memSub),
		}
		s.trees[path] = t
	}
	return t
}

func (t *memTree) snapshot() Snapshot {
	snap := make(Snapshot, 0, len(t.order))
	for _, key := range t.order {
		snap = append(snap, Entry{Key: key, Value: t.values[key]})
	}
	return snap
}

func (s *MemoryStore) Write(ctx context.Context, path, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for %s/%s: %w", path, key, err)
	}

	s.mu.Lock()
	t := s.tree(path)
	if _, exists := t.values[key]; !exists {
		t.order = append(t.order, key)
	}
	t.values[key] = data
	snap := t.snapshot()
	subs := make([]*memSub, 0, len(t.subs))
	for _, sub := range t.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		if !sub.cancelled.Load() {
			sub.onChange(snap)
		}
	}
	return nil
}

func (s *MemoryStore) Read(ctx context.Context, path string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree(path).snapshot(), nil
}

func (s *MemoryStore) Subscribe(path string, onChange func(Snapshot), onError func(error)) (Handle, error) {
	s.mu.Lock()
	t := s.tree(path)
	id := s.nextSub
	s.nextSub++
	sub := &memSub{onChange: onChange}
	t.subs[id] = sub
	snap := t.snapshot()
	s.mu.Unlock()

	// Initial delivery mirrors the value-event semantics of the remote store.
	onChange(snap)

	return NewHandle(func() {
		sub.cancelled.Store(true)
		s.mu.Lock()
		delete(t.subs, id)
		s.mu.Unlock()
	}), nil
}

func (s *MemoryStore) PushKey(ctx context.Context, path string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushSeq[path]++
	return fmt.Sprintf("k%012d", s.pushSeq[path]), nil
}
