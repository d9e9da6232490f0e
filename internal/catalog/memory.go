package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore keeps templates in process memory. Entries are held
// serialized, so nothing the store hands out shares structure with what
// it keeps.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string][]byte
}

// NewMemoryStore returns an empty in-memory catalog.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

func (m *MemoryStore) List(ctx context.Context) ([]Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Template, 0, len(m.entries))
	for name, data := range m.entries {
		var tpl Template
		if err := json.Unmarshal(data, &tpl); err != nil {
			return nil, fmt.Errorf("decoding template %q: %w", name, err)
		}
		out = append(out, tpl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryStore) Get(ctx context.Context, name string) (Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.entries[name]
	if !ok {
		return Template{}, ErrNotFound
	}
	var tpl Template
	if err := json.Unmarshal(data, &tpl); err != nil {
		return Template{}, fmt.Errorf("decoding template %q: %w", name, err)
	}
	return tpl, nil
}

func (m *MemoryStore) Put(ctx context.Context, tpl Template) error {
	tpl, err := tpl.normalized()
	if err != nil {
		return err
	}
	data, err := json.Marshal(tpl)
	if err != nil {
		return fmt.Errorf("encoding template %q: %w", tpl.Name, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[tpl.Name] = data
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[name]; !ok {
		return ErrNotFound
	}
	delete(m.entries, name)
	return nil
}
