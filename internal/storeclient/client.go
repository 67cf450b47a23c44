// Package storeclientはストアAPIを呼ぶクライアント側実装。
// カートのスナップショットを注文として送信し、結果を型付きエラーで返す。
package storeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"app/internal/usecase"

	"github.com/shopspring/decimal"
)

// APIの失敗応答をそのまま持つエラー
type APIError struct {
	Status  int
	Message string
	Code    string
	Details string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

// httpClientがnilならデフォルト（タイムアウトなし）を使う
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

type LoginResponse struct {
	User  usecase.UserDTO `json:"user"`
	Token string          `json:"token"`
}

// Loginは資格情報でサインインして {user, token} を受け取る。
func (c *Client) Login(ctx context.Context, email string, password string) (LoginResponse, error) {
	var out LoginResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/users/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	return out, err
}

type OrderItemRequest struct {
	ProductID string          `json:"productId"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
}

type ShippingDetails struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
}

type OrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	ShippingDetails ShippingDetails    `json:"shippingDetails"`
	Total           decimal.Decimal    `json:"total"`
}

type OrderResponse struct {
	ID        string          `json:"id"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
	Message   string          `json:"message"`
}

// SubmitOrderは注文を送信する。失敗は*APIErrorで返る。
func (c *Client) SubmitOrder(ctx context.Context, token string, req OrderRequest) (OrderResponse, error) {
	var out OrderResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/orders", token, req, &out)
	return out, err
}

// FetchProfileはプロフィール＋注文履歴を取得する。
func (c *Client) FetchProfile(ctx context.Context, token string) (usecase.MeOutput, error) {
	var out usecase.MeOutput
	err := c.doJSON(ctx, http.MethodGet, "/api/users/me", token, nil, &out)
	return out, err
}

// Logoutは現在のセッションを失効させる。
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/users/logout", token, nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method string, path string, bearer string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var er struct {
			Error   string `json:"error"`
			Code    string `json:"code"`
			Details string `json:"details"`
		}
		// bodyが壊れていてもstatusは返す
		_ = json.Unmarshal(data, &er)
		return &APIError{
			Status:  resp.StatusCode,
			Message: er.Error,
			Code:    er.Code,
			Details: er.Details,
		}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
