package cart

import (
	"context"
	"sync"
)

// Persisterはnamespaceキーで明細列を丸ごと保存・復元する約束。
// 部分更新はしない（毎回全件書き）。
type Persister interface {
	Save(ctx context.Context, namespace string, items []Item) error
	Load(ctx context.Context, namespace string) ([]Item, error)
}

// MemoryPersisterはプロセス内だけの保存。テストと使い捨て実行用。
type MemoryPersister struct {
	mu      sync.Mutex
	records map[string][]Item
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{records: map[string][]Item{}}
}

func (p *MemoryPersister) Save(ctx context.Context, namespace string, items []Item) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	saved := make([]Item, len(items))
	copy(saved, items)
	p.records[namespace] = saved
	return nil
}

func (p *MemoryPersister) Load(ctx context.Context, namespace string) ([]Item, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	items, ok := p.records[namespace]
	if !ok {
		return nil, nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out, nil
}
