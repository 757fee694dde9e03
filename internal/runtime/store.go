package runtime

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"devstation/internal/shell"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/nats-io/nats.go/jetstream"
)

// SessionsBucket is the KV bucket holding environment snapshots keyed by
// session id.
const SessionsBucket = "sessions"

// SessionStore persists environment snapshots between interpreter lifetimes.
type SessionStore interface {
	// Load returns the stored snapshot and whether one existed.
	Load(ctx context.Context, sid string) (shell.Snapshot, bool, error)
	// Save stores snap and returns the RFC 7386 merge patch from the previous
	// snapshot. An unchanged snapshot returns a nil patch and is not written.
	Save(ctx context.Context, sid string, snap shell.Snapshot) ([]byte, error)
}

// baseline is what a session without a stored snapshot looks like.
func baseline() []byte {
	raw, _ := json.Marshal(shell.NewEnvironment().Snapshot())
	return raw
}

// diffSnapshot marshals next and returns it with its merge patch from prev.
// The patch is nil when nothing changed.
func diffSnapshot(prev []byte, next shell.Snapshot) (raw, patch []byte, err error) {
	raw, err = json.Marshal(next)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	if prev == nil {
		prev = baseline()
	}
	patch, err = jsonpatch.CreateMergePatch(prev, raw)
	if err != nil {
		return nil, nil, fmt.Errorf("merge patch: %w", err)
	}
	if bytes.Equal(bytes.TrimSpace(patch), []byte("{}")) {
		return raw, nil, nil
	}
	return raw, patch, nil
}

// ─────────────────── MEMORY ───────────────────

// MemoryStore keeps snapshots in process. It is the store for headless use
// and tests.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, sid string) (shell.Snapshot, bool, error) {
	s.mu.Lock()
	raw, ok := s.data[sid]
	s.mu.Unlock()
	if !ok {
		return shell.Snapshot{}, false, nil
	}
	var snap shell.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return shell.Snapshot{}, false, fmt.Errorf("decode snapshot %s: %w", sid, err)
	}
	return snap, true, nil
}

func (s *MemoryStore) Save(_ context.Context, sid string, snap shell.Snapshot) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, patch, err := diffSnapshot(s.data[sid], snap)
	if err != nil || patch == nil {
		return nil, err
	}
	s.data[sid] = raw
	return patch, nil
}

// ─────────────────── JETSTREAM KV ───────────────────

// kvBucket is the part of jetstream.KeyValue the store uses.
type kvBucket interface {
	Get(ctx context.Context, key string) (jetstream.KeyValueEntry, error)
	Put(ctx context.Context, key string, value []byte) (uint64, error)
}

// KVStore keeps snapshots in a JetStream key-value bucket so sessions
// survive restarts of the process.
type KVStore struct {
	kv kvBucket
}

func NewKVStore(kv jetstream.KeyValue) *KVStore {
	return &KVStore{kv: kv}
}

func (s *KVStore) get(ctx context.Context, sid string) ([]byte, error) {
	entry, err := s.kv.Get(ctx, sid)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("kv get %s: %w", sid, err)
	}
	return entry.Value(), nil
}

func (s *KVStore) Load(ctx context.Context, sid string) (shell.Snapshot, bool, error) {
	raw, err := s.get(ctx, sid)
	if err != nil || raw == nil {
		return shell.Snapshot{}, false, err
	}
	var snap shell.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return shell.Snapshot{}, false, fmt.Errorf("decode snapshot %s: %w", sid, err)
	}
	return snap, true, nil
}

// Save is not atomic across processes; the session manager serialises
// commands per session within one process.
func (s *KVStore) Save(ctx context.Context, sid string, snap shell.Snapshot) ([]byte, error) {
	prev, err := s.get(ctx, sid)
	if err != nil {
		return nil, err
	}
	raw, patch, err := diffSnapshot(prev, snap)
	if err != nil || patch == nil {
		return nil, err
	}
	if _, err := s.kv.Put(ctx, sid, raw); err != nil {
		return nil, fmt.Errorf("kv put %s: %w", sid, err)
	}
	return patch, nil
}
