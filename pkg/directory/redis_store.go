package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
)

const changeChannel = "directory_events"

// RedisStore implements Store over a shared Redis instance. Each subtree is
// a hash ("dir:<path>"); writers publish the changed path on a pub/sub
// channel and every subscriber re-reads its subtree on notification, so all
// replicas converge on the same snapshot.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) hashKey(path string) string {
	return "dir:" + path
}

func (s *RedisStore) Write(ctx context.Context, path, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for %s/%s: %w", path, key, err)
	}
	if err := s.rdb.HSet(ctx, s.hashKey(path), key, data).Err(); err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", path, key, err)
	}
	// Notify subscribers on every instance. Best-effort: a lost notification
	// only delays the next snapshot, it does not lose data.
	s.rdb.Publish(ctx, changeChannel, path)
	return nil
}

func (s *RedisStore) Read(ctx context.Context, path string) (Snapshot, error) {
	raw, err := s.rdb.HGetAll(ctx, s.hashKey(path)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	snap := make(Snapshot, 0, len(keys))
	for _, k := range keys {
		snap = append(snap, Entry{Key: k, Value: json.RawMessage(raw[k])})
	}
	return snap, nil
}

func (s *RedisStore) Subscribe(path string, onChange func(Snapshot), onError func(error)) (Handle, error) {
	ctx, cancel := context.WithCancel(context.Background())
	pubsub := s.rdb.Subscribe(ctx, changeChannel)

	// Confirm the subscription before the initial snapshot so no change
	// notification can slip between the two.
	if _, err := pubsub.Receive(ctx); err != nil {
		cancel()
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", path, err)
	}

	var cancelled atomic.Bool

	go func() {
		snap, err := s.Read(ctx, path)
		if err != nil {
			if !cancelled.Load() {
				onError(err)
			}
			return
		}
		if cancelled.Load() {
			return
		}
		onChange(snap)

		for msg := range pubsub.Channel() {
			if msg.Payload != path {
				continue
			}
			snap, err := s.Read(ctx, path)
			if cancelled.Load() {
				return
			}
			if err != nil {
				onError(err)
				return
			}
			onChange(snap)
		}
		// Channel closed by the backend without Cancel being called.
		if !cancelled.Load() {
			onError(fmt.Errorf("subscription to %s closed by backend", path))
		}
	}()

	return NewHandle(func() {
		cancelled.Store(true)
		cancel()
		pubsub.Close()
	}), nil
}

func (s *RedisStore) PushKey(ctx context.Context, path string) (string, error) {
	seq, err := s.rdb.Incr(ctx, "dir:pushseq:"+path).Result()
	if err != nil {
		return "", fmt.Errorf("failed to allocate push key for %s: %w", path, err)
	}
	return fmt.Sprintf("k%012d", seq), nil
}
