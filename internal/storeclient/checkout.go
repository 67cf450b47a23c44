package storeclient

import (
	"context"
	"errors"
	"sync"

	"app/internal/cart"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
	ErrMissingShipping    = errors.New("shipping details are incomplete")
)

// Checkoutはカートとクライアントを束ねて注文確定を行う。
// 送信中フラグで二重送信を防ぎ、成功が確認できたときだけカートを空にする。
type Checkout struct {
	mu       sync.Mutex
	inFlight bool

	store  *cart.Store
	client *Client
}

func NewCheckout(store *cart.Store, client *Client) *Checkout {
	return &Checkout{store: store, client: client}
}

// InFlightは送信中かどうかを返す。
func (c *Checkout) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Submitはカートの内容をスナップショットして注文を送信する。
//   - カートが空なら送信しない
//   - 配送先の必須項目が欠けていれば送信しない
//   - サーバーが成功を返したときだけカートをクリアする
func (c *Checkout) Submit(ctx context.Context, token string, shipping ShippingDetails) (OrderResponse, error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return OrderResponse{}, ErrCheckoutInProgress
	}
	c.inFlight = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	if err := validateShipping(shipping); err != nil {
		return OrderResponse{}, err
	}

	items := c.store.Items()
	if len(items) == 0 {
		return OrderResponse{}, ErrEmptyCart
	}

	req := OrderRequest{
		ShippingDetails: shipping,
		Total:           c.store.Total(),
	}
	for _, it := range items {
		req.Items = append(req.Items, OrderItemRequest{
			ProductID: it.ID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Name:      it.Name,
			Image:     it.Image,
		})
	}

	resp, err := c.client.SubmitOrder(ctx, token, req)
	if err != nil {
		return OrderResponse{}, err
	}

	// 注文は確定済み。クリアの失敗は結果に影響させない
	_ = c.store.Clear(ctx)
	return resp, nil
}

func validateShipping(s ShippingDetails) error {
	required := []string{s.FirstName, s.LastName, s.Email, s.Address, s.City, s.State, s.ZipCode, s.Country}
	for _, v := range required {
		if v == "" {
			return ErrMissingShipping
		}
	}
	return nil
}
