package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func newTestStore() *Store {
	return New("cart-storage", NewMemoryPersister())
}

func TestStore_AddItem_MergesSameID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	require.NoError(t, s.AddItem(ctx, Product{ID: "bike-1", Name: "Trail Master Pro", Image: "a.jpg", Price: price(100)}))
	require.NoError(t, s.AddItem(ctx, Product{ID: "bike-1", Name: "別名で再追加", Image: "b.jpg", Price: price(999)}))
	require.NoError(t, s.AddItem(ctx, Product{ID: "bike-1", Name: "x", Image: "c.jpg", Price: price(1)}))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(3), items[0].Quantity)
	// 表示項目と価格は最初の追加のまま
	assert.Equal(t, "Trail Master Pro", items[0].Name)
	assert.Equal(t, "a.jpg", items[0].Image)
	assert.True(t, items[0].Price.Equal(price(100)))
}

func TestStore_Total_Scenario(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	require.NoError(t, s.AddItem(ctx, Product{ID: "A", Name: "A", Price: price(100)}))
	require.NoError(t, s.AddItem(ctx, Product{ID: "B", Name: "B", Price: price(50)}))
	require.NoError(t, s.AddItem(ctx, Product{ID: "A", Name: "A", Price: price(100)}))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].ID)
	assert.Equal(t, int64(2), items[0].Quantity)
	assert.Equal(t, "B", items[1].ID)
	assert.Equal(t, int64(1), items[1].Quantity)
	assert.True(t, s.Total().Equal(price(250)))
}

func TestStore_RemoveItem_IsAbsorbing(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	require.NoError(t, s.AddItem(ctx, Product{ID: "A", Price: price(10)}))
	require.NoError(t, s.RemoveItem(ctx, "A"))
	// 2回目もエラーにならない
	require.NoError(t, s.RemoveItem(ctx, "A"))
	// 存在しないIDもno-op
	require.NoError(t, s.RemoveItem(ctx, "zzz"))

	assert.Empty(t, s.Items())
	assert.True(t, s.Total().IsZero())
}

func TestStore_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	require.NoError(t, s.AddItem(ctx, Product{ID: "A", Price: price(20)}))

	require.NoError(t, s.UpdateQuantity(ctx, "A", 5))
	assert.Equal(t, int64(5), s.Items()[0].Quantity)
	assert.True(t, s.Total().Equal(price(100)))

	// 0以下は店側で拒否
	err := s.UpdateQuantity(ctx, "A", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	err = s.UpdateQuantity(ctx, "A", -3)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, int64(5), s.Items()[0].Quantity)

	// 無いIDはno-op
	require.NoError(t, s.UpdateQuantity(ctx, "nope", 2))
	require.Len(t, s.Items(), 1)
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	require.NoError(t, s.AddItem(ctx, Product{ID: "A", Price: price(10)}))
	require.NoError(t, s.AddItem(ctx, Product{ID: "B", Price: price(20)}))

	require.NoError(t, s.Clear(ctx))
	assert.Empty(t, s.Items())
	assert.True(t, s.Total().IsZero())
}

func TestStore_Rehydrate_RestoresPersistedItems(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryPersister()

	first := New("cart-storage", p)
	require.NoError(t, first.AddItem(ctx, Product{ID: "A", Name: "A", Price: price(100)}))
	require.NoError(t, first.AddItem(ctx, Product{ID: "A", Name: "A", Price: price(100)}))
	require.NoError(t, first.AddItem(ctx, Product{ID: "B", Name: "B", Price: price(50)}))

	// 同じnamespaceで作り直す＝リロード相当
	second := New("cart-storage", p)
	require.NoError(t, second.Rehydrate(ctx))

	items := second.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), items[0].Quantity)
	assert.True(t, second.Total().Equal(price(250)))
}

func TestStore_Rehydrate_EmptyWhenNothingPersisted(t *testing.T) {
	ctx := context.Background()
	s := New("fresh", NewMemoryPersister())

	require.NoError(t, s.Rehydrate(ctx))
	assert.Empty(t, s.Items())
}

func TestStore_ItemsReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	require.NoError(t, s.AddItem(ctx, Product{ID: "A", Price: price(10)}))

	items := s.Items()
	items[0].Quantity = 99

	assert.Equal(t, int64(1), s.Items()[0].Quantity)
}
