package realtime

import (
	"context"
	"sync"

	"github.com/appzeto/food-admin/internal/core/domain"
)

// MemoryStore is an in-process realtime store. Values are normalized on
// write and copied on read, so callers never share maps with the store.
type MemoryStore struct {
	mu   sync.RWMutex
	root map[string]any
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{root: make(map[string]any)}
}

func (m *MemoryStore) Get(_ context.Context, path string) (domain.Record, error) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	node, ok := m.lookup(segs).(map[string]any)
	if !ok {
		return nil, nil
	}
	return domain.Record(deepCopy(node).(map[string]any)), nil
}

func (m *MemoryStore) Exists(_ context.Context, path string) (bool, error) {
	segs, err := splitPath(path)
	if err != nil {
		return false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lookup(segs) != nil, nil
}

func (m *MemoryStore) Set(_ context.Context, path string, value domain.Record) error {
	segs, err := splitPath(path)
	if err != nil {
		return err
	}
	doc, err := normalizeRecord(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if doc == nil {
		m.remove(segs)
		return nil
	}
	m.parent(segs)[segs[len(segs)-1]] = doc
	return nil
}

// Update merges fields one level deep. A nil field removes that child.
func (m *MemoryStore) Update(_ context.Context, path string, fields domain.Record) error {
	segs, err := splitPath(path)
	if err != nil {
		return err
	}
	normalized := make(map[string]any, len(fields))
	for k, v := range fields {
		nv, err := normalize(v)
		if err != nil {
			return err
		}
		normalized[k] = nv
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	parent := m.parent(segs)
	key := segs[len(segs)-1]
	doc, ok := parent[key].(map[string]any)
	if !ok {
		doc = make(map[string]any, len(normalized))
	}
	for k, v := range normalized {
		if v == nil {
			delete(doc, k)
			continue
		}
		doc[k] = v
	}

	if len(doc) == 0 {
		m.remove(segs)
		return nil
	}
	parent[key] = doc
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, path string) error {
	segs, err := splitPath(path)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.remove(segs)
	return nil
}

func (m *MemoryStore) QueryEqual(_ context.Context, path, child string, value any) (map[string]domain.Record, error) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]domain.Record)
	node, ok := m.lookup(segs).(map[string]any)
	if !ok {
		return out, nil
	}
	for id, rec := range childRecords(node) {
		if equalValues(rec[child], value) {
			out[id] = domain.Record(deepCopy(map[string]any(rec)).(map[string]any))
		}
	}
	return out, nil
}

func (m *MemoryStore) lookup(segs []string) any {
	var node any = m.root
	for _, s := range segs {
		obj, ok := node.(map[string]any)
		if !ok {
			return nil
		}
		node, ok = obj[s]
		if !ok {
			return nil
		}
	}
	return node
}

// parent returns the object holding the last segment, creating intermediate
// objects (and replacing scalars) on the way.
func (m *MemoryStore) parent(segs []string) map[string]any {
	node := m.root
	for _, s := range segs[:len(segs)-1] {
		next, ok := node[s].(map[string]any)
		if !ok {
			next = make(map[string]any)
			node[s] = next
		}
		node = next
	}
	return node
}

// remove deletes the node at segs and any ancestors left empty.
func (m *MemoryStore) remove(segs []string) {
	chain := []map[string]any{m.root}
	node := m.root
	for _, s := range segs[:len(segs)-1] {
		next, ok := node[s].(map[string]any)
		if !ok {
			return
		}
		chain = append(chain, next)
		node = next
	}
	delete(node, segs[len(segs)-1])

	for i := len(chain) - 1; i > 0; i-- {
		if len(chain[i]) > 0 {
			return
		}
		delete(chain[i-1], segs[i-1])
	}
}
