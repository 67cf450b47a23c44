package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
)

// updateQuantityは0以下を店側で弾く（呼び出し側のクランプに頼らない）
var ErrInvalidQuantity = errors.New("quantity must be >= 1")

// カタログ側から渡す追加対象。数量はStoreが管理する
type Product struct {
	ID    string
	Name  string
	Image string
	Price decimal.Decimal
}

// カート明細。priceは追加時点のスナップショット
type Item struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Image    string          `json:"image"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

// Storeは買い物中の明細列を持つ明示的な状態コンテナ。
// 同一IDは1エントリのみ（追加は数量加算）。
// 変更のたびに全明細をPersisterへ書く。
type Store struct {
	mu        sync.Mutex
	namespace string
	items     []Item
	persister Persister
}

func New(namespace string, p Persister) *Store {
	return &Store{
		namespace: namespace,
		items:     []Item{},
		persister: p,
	}
}

// Rehydrateは起動時に一度だけ呼び、永続化済みの明細を全件読み込む。
// 保存が無ければ空のまま。
func (s *Store) Rehydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.persister.Load(ctx, s.namespace)
	if err != nil {
		return err
	}
	if items == nil {
		items = []Item{}
	}
	s.items = items
	return nil
}

// AddItemは同一IDがあれば数量+1（表示項目は最初の追加のまま）、
// 無ければ数量1で末尾に追加する。
func (s *Store) AddItem(ctx context.Context, p Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == p.ID {
			s.items[i].Quantity++
			return s.persist(ctx)
		}
	}

	s.items = append(s.items, Item{
		ID:       p.ID,
		Name:     p.Name,
		Image:    p.Image,
		Price:    p.Price,
		Quantity: 1,
	})
	return s.persist(ctx)
}

// RemoveItemは該当IDを削除。無ければ何もしない（エラーではない）。
func (s *Store) RemoveItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	removed := false
	for _, it := range s.items {
		if it.ID == id {
			removed = true
			continue
		}
		kept = append(kept, it)
	}
	s.items = kept

	if !removed {
		return nil
	}
	return s.persist(ctx)
}

// UpdateQuantityは数量をそのまま上書きする。1未満は拒否。
// 該当IDが無ければ何もしない。
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int64) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			return s.persist(ctx)
		}
	}
	return nil
}

// Clearは明細を空にする。注文確定後に呼ぶ。
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []Item{}
	return s.persist(ctx)
}

// Itemsは現在の明細のコピーを返す。
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// TotalはΣ(price×quantity)。読み出しのみで副作用なし。
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return total
}

// 呼び出し側でmu取得済みであること
func (s *Store) persist(ctx context.Context) error {
	snapshot := make([]Item, len(s.items))
	copy(snapshot, s.items)
	return s.persister.Save(ctx, s.namespace, snapshot)
}
