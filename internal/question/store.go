package question

import (
	"context"
	"sync"
)

type ListOpts struct {
	Q      string
	Limit  int
	Offset int
}

type Store interface {
	PutBatch(ctx context.Context, recs []Record) error
	List(ctx context.Context, opts ListOpts) ([]Record, error)
	Count(ctx context.Context) (int, error)
}

type memoryStore struct {
	mu   sync.RWMutex
	recs []Record
}

func NewInMemoryStore() Store {
	return &memoryStore{}
}

func (m *memoryStore) PutBatch(ctx context.Context, recs []Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, recs...)
	return nil
}

func (m *memoryStore) List(ctx context.Context, opts ListOpts) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return filterPage(m.recs, opts), nil
}

func (m *memoryStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.recs), nil
}

// filterPage applies the keyword matcher then limit/offset. Shared by
// both stores so search semantics cannot drift between drivers.
func filterPage(recs []Record, opts ListOpts) []Record {
	kws := ParseQuery(opts.Q)
	out := []Record{}
	for _, r := range recs {
		if Match(r, kws) {
			out = append(out, r)
		}
	}
	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return []Record{}
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(out) {
		out = out[:opts.Limit]
	}
	return out
}
