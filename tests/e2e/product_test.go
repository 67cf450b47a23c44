package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"
)

type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Category string `json:"category"`
}

func Test_Products_PublicList_And_CategoryFilter(t *testing.T) {
	c := NewTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	//全件（認証不要）
	resp, body := c.doJSON(ctx, t, http.MethodGet, "/products", "", nil)
	requireStatus(t, resp, http.StatusOK, body)

	var all []Product
	if err := json.Unmarshal(body, &all); err != nil {
		t.Fatalf("json.Unmarshal([]Product) failed: %v body=%s", err, string(body))
	}
	if len(all) == 0 {
		t.Fatalf("catalog is empty")
	}

	//カテゴリ絞り込み
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/products?category=Suspension", "", nil)
	requireStatus(t, resp, http.StatusOK, body)

	var filtered []Product
	if err := json.Unmarshal(body, &filtered); err != nil {
		t.Fatalf("json.Unmarshal([]Product) failed: %v body=%s", err, string(body))
	}
	if len(filtered) == 0 {
		t.Fatalf("filtered list is empty")
	}
	for _, p := range filtered {
		if p.Category != "Suspension" {
			t.Fatalf("unexpected category %q in filtered list", p.Category)
		}
	}

	//詳細
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/products/"+all[0].ID, "", nil)
	requireStatus(t, resp, http.StatusOK, body)

	//存在しないID => 404
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/products/nope", "", nil)
	requireStatus(t, resp, http.StatusNotFound, body)

	e := mustDecodeError(t, body)
	if e.Error != "Product not found" {
		t.Fatalf("unexpected error message: %q", e.Error)
	}
}
