package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// 保存形式はlocalStorage互換の {"items":[...]} をJSONで1キーに丸ごと。
type persistedCart struct {
	Items []Item `json:"items"`
}

// RedisPersisterはRedisの1キーにカートを永続化する。
// TTLは付けない（リロードをまたいで生き残るのが目的）。
type RedisPersister struct {
	client *redis.Client
}

func NewRedisPersister(client *redis.Client) *RedisPersister {
	return &RedisPersister{client: client}
}

func (p *RedisPersister) Save(ctx context.Context, namespace string, items []Item) error {
	data, err := json.Marshal(persistedCart{Items: items})
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	if err := p.client.Set(ctx, cartKey(namespace), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (p *RedisPersister) Load(ctx context.Context, namespace string) ([]Item, error) {
	data, err := p.client.Get(ctx, cartKey(namespace)).Bytes()
	if errors.Is(err, redis.Nil) {
		// 保存なしは空カート扱い
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var rec persistedCart
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return rec.Items, nil
}

func cartKey(namespace string) string {
	return fmt.Sprintf("cart:%s", namespace)
}
