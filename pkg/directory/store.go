package directory

import (
	"context"
	"encoding/json"
	"sync"
)

// Entry is one immediate child of a subtree, keyed by its node name.
type Entry struct {
	Key   string
	Value json.RawMessage
}

// Snapshot is the full set of children under a path, in store key order.
type Snapshot []Entry

// Get returns the value for key, if present.
func (s Snapshot) Get(key string) (json.RawMessage, bool) {
	for _, e := range s {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Handle represents an active push subscription. Cancel is idempotent;
// after it returns, the subscription delivers no further callbacks.
type Handle interface {
	Cancel()
}

// Store is an observable replicated key-value tree shared by multiple
// writers. A path addresses a subtree ("users", "userChats/<uid>"); writes
// target a single key under a path and subscriptions observe the whole
// subtree.
type Store interface {
	// Write upserts value under path/key. Last writer wins.
	Write(ctx context.Context, path, key string, value interface{}) error

	// Read returns the current snapshot of the subtree at path.
	Read(ctx context.Context, path string) (Snapshot, error)

	// Subscribe registers a push subscription on the subtree at path. The
	// callback fires once with the current snapshot and again after every
	// upstream change. onError fires if the backend rejects or cancels the
	// subscription; the subscription is not retried.
	Subscribe(path string, onChange func(Snapshot), onError func(error)) (Handle, error)

	// PushKey reserves a new store-assigned key under path. Keys are unique
	// and allocated in append order.
	PushKey(ctx context.Context, path string) (string, error)
}

type handle struct {
	once sync.Once
	fn   func()
}

func (h *handle) Cancel() {
	h.once.Do(h.fn)
}

// NewHandle wraps a cancel func into an idempotent Handle.
func NewHandle(cancel func()) Handle {
	return &handle{fn: cancel}
}
