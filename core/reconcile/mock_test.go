package reconcile

import (
	"context"
	"strings"
	"sync"
)

// mockItem is a remote or mirror record in tests.
type mockItem struct {
	key   string
	value string
}

// mockAdapter is a simple test adapter
type mockAdapter struct {
	remote        []RemoteItem
	mirror        map[string]MirrorItem
	remoteErr     error
	mirrorErr     error
	remoteLoadFun func(context.Context) ([]RemoteItem, error)
}

func (m *mockAdapter) Name() string {
	return "mock"
}

func (m *mockAdapter) LoadRemote(ctx context.Context) ([]RemoteItem, error) {
	if m.remoteLoadFun != nil {
		return m.remoteLoadFun(ctx)
	}
	return m.remote, m.remoteErr
}

func (m *mockAdapter) LoadMirror(ctx context.Context) (map[string]MirrorItem, error) {
	return m.mirror, m.mirrorErr
}

func (m *mockAdapter) ExtractRemoteKey(item RemoteItem) string {
	return item.(mockItem).key
}

func (m *mockAdapter) Normalize(item RemoteItem) MirrorItem {
	it := item.(mockItem)
	return mockItem{key: it.key, value: strings.ToLower(it.value)}
}

func (m *mockAdapter) HasChanged(existing MirrorItem, incoming RemoteItem) bool {
	return existing.(mockItem).value != strings.ToLower(incoming.(mockItem).value)
}

// mockMutator records single-record mutations.
type mockMutator struct {
	mockAdapter
	mu        sync.Mutex
	calls     []string
	deleted   []string
	inserted  []string
	updated   []string
	failOn    string
	failError error
}

func (m *mockMutator) record(call string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
	if m.failOn != "" && call == m.failOn {
		return m.failError
	}
	return nil
}

func (m *mockMutator) Delete(ctx context.Context, key string) error {
	if err := m.record("delete:" + key); err != nil {
		return err
	}
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *mockMutator) Insert(ctx context.Context, item MirrorItem) error {
	key := item.(mockItem).key
	if err := m.record("insert:" + key); err != nil {
		return err
	}
	m.inserted = append(m.inserted, key)
	return nil
}

func (m *mockMutator) Update(ctx context.Context, key string, item MirrorItem) error {
	if err := m.record("update:" + key); err != nil {
		return err
	}
	m.updated = append(m.updated, key)
	return nil
}

// mockBatchMutator implements batch methods for testing.
type mockBatchMutator struct {
	mockMutator
	deleteBatches [][]string
	insertBatches [][]string
	failBatch     int
}

func (m *mockBatchMutator) DeleteBatch(ctx context.Context, keys []string) error {
	if err := m.record("delete_batch"); err != nil {
		return err
	}
	m.deleteBatches = append(m.deleteBatches, keys)
	return nil
}

func (m *mockBatchMutator) InsertBatch(ctx context.Context, items []MirrorItem) error {
	if m.failError != nil && m.failBatch == len(m.insertBatches) && m.failOn == "insert_batch" {
		return m.failError
	}
	_ = m.record("insert_batch")
	keys := make([]string, len(items))
	for i, item := range items {
		keys[i] = item.(mockItem).key
	}
	m.insertBatches = append(m.insertBatches, keys)
	return nil
}

func items(pairs ...string) []RemoteItem {
	out := make([]RemoteItem, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, mockItem{key: pairs[i], value: pairs[i+1]})
	}
	return out
}

func index(pairs ...string) map[string]MirrorItem {
	out := make(map[string]MirrorItem, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out[pairs[i]] = mockItem{key: pairs[i], value: pairs[i+1]}
	}
	return out
}
