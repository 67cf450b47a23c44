package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// 注文確定イベントの通知先。失敗しても注文は成立させる（best effort）。
type OrderEventPublisher interface {
	OrderPlaced(ctx context.Context, order model.Order, items []model.OrderItem) error
}

// 注文作成は意図的にトランザクションで包まない二段階書き込み。
// ヘッダはINCOMPLETEで入れ、明細が入ったらPENDINGへ昇格する。
// 明細で失敗するとINCOMPLETEのヘッダが残り、掃除対象として特定できる。
type OrderUsecase struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	tx         repo.TransactionManager
	publisher  OrderEventPublisher
	logger     zerolog.Logger
}

func NewOrderUsecase(
	orders repo.OrderRepository,
	orderItems repo.OrderItemRepository,
	tx repo.TransactionManager,
	publisher OrderEventPublisher,
	logger zerolog.Logger,
) *OrderUsecase {
	return &OrderUsecase{
		orders:     orders,
		orderItems: orderItems,
		tx:         tx,
		publisher:  publisher,
		logger:     logger,
	}
}

// リクエストボディのキーはcamelCase
type OrderItemInput struct {
	ProductID string          `json:"productId"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
}

type ShippingDetailsInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
}

type PlaceOrderInput struct {
	Items    []OrderItemInput
	Shipping ShippingDetailsInput
	// 合計は呼び出し側のカート合計をそのまま信用する（明細から再計算しない）
	Total decimal.Decimal
}

type OrderCreatedOutput struct {
	ID        string          `json:"id"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
	Message   string          `json:"message"`
}

type OrderItemOutput struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductImage string          `json:"product_image"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int64           `json:"quantity"`
}

type OrderOutput struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	Status          string            `json:"status"`
	Total           decimal.Decimal   `json:"total"`
	ShippingName    string            `json:"shipping_name"`
	ShippingEmail   string            `json:"shipping_email"`
	ShippingAddress string            `json:"shipping_address"`
	CreatedAt       time.Time         `json:"created_at"`
	Items           []OrderItemOutput `json:"items"`
}

// PlaceOrderはカートのスナップショット＋配送フォームを注文として永続化する。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID string, in PlaceOrderInput) (OrderCreatedOutput, error) {
	if userID == "" {
		return OrderCreatedOutput{}, NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	if len(in.Items) == 0 {
		return OrderCreatedOutput{}, NewHTTPError(http.StatusBadRequest, "No items in order")
	}
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity < 1 || it.Price.IsNegative() {
			return OrderCreatedOutput{}, NewHTTPError(http.StatusBadRequest, "Invalid items")
		}
	}
	if err := validateShipping(in.Shipping); err != nil {
		return OrderCreatedOutput{}, err
	}
	if in.Total.IsNegative() {
		return OrderCreatedOutput{}, NewHTTPError(http.StatusBadRequest, "Invalid total")
	}

	now := time.Now()
	order := model.Order{
		ID:     uuid.NewString(),
		UserID: userID,
		Status: model.OrderStatusIncomplete,
		Total:  in.Total,
		ShippingName: fmt.Sprintf("%s %s",
			in.Shipping.FirstName, in.Shipping.LastName),
		ShippingEmail: in.Shipping.Email,
		ShippingAddress: fmt.Sprintf("%s, %s, %s %s, %s",
			in.Shipping.Address, in.Shipping.City, in.Shipping.State, in.Shipping.ZipCode, in.Shipping.Country),
		CreatedAt: now,
		UpdatedAt: now,
	}

	//第1段階: ヘッダ書き込み。失敗なら何も残らない
	if err := u.orders.Create(ctx, order); err != nil {
		u.logger.Error().Err(err).Str("user_id", userID).Msg("failed to create order")
		return OrderCreatedOutput{}, NewHTTPErrorWithCode(
			http.StatusInternalServerError, "Failed to create order", "CREATE_ORDER_FAILED", err.Error())
	}

	orderItems := make([]model.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		orderItems = append(orderItems, model.OrderItem{
			OrderID:      order.ID,
			ProductID:    it.ProductID,
			ProductName:  it.Name,
			ProductImage: it.Image,
			Price:        it.Price,
			Quantity:     it.Quantity,
			CreatedAt:    now,
		})
	}

	//第2段階: 明細書き込み。失敗するとヘッダだけ残る（INCOMPLETEのまま）
	if err := u.orderItems.CreateBulk(ctx, order.ID, orderItems); err != nil {
		u.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to create order items, header left INCOMPLETE")
		return OrderCreatedOutput{}, NewHTTPErrorWithCode(
			http.StatusInternalServerError, "Failed to create order items", "ORDER_ITEMS_FAILED", err.Error())
	}

	//明細が揃ったのでPENDINGへ昇格
	if err := u.orders.UpdateStatus(ctx, order.ID, model.OrderStatusPending); err != nil {
		u.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to finalize order status")
		return OrderCreatedOutput{}, NewHTTPErrorWithCode(
			http.StatusInternalServerError, "Failed to finalize order", "FINALIZE_ORDER_FAILED", err.Error())
	}
	order.Status = model.OrderStatusPending

	//通知は注文成立に影響させない
	if u.publisher != nil {
		if err := u.publisher.OrderPlaced(ctx, order, orderItems); err != nil {
			u.logger.Warn().Err(err).Str("order_id", order.ID).Msg("order event publish failed")
		}
	}

	u.logger.Info().Str("order_id", order.ID).Str("user_id", userID).
		Str("total", order.Total.String()).Int("items", len(orderItems)).Msg("order created")

	return OrderCreatedOutput{
		ID:        order.ID,
		Status:    string(order.Status),
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
		Message:   "Order created successfully",
	}, nil
}

// 必須項目の存在チェックのみ（住所検証サービスとの突き合わせはしない）
func validateShipping(s ShippingDetailsInput) error {
	fields := map[string]string{
		"firstName": s.FirstName,
		"lastName":  s.LastName,
		"email":     s.Email,
		"address":   s.Address,
		"city":      s.City,
		"state":     s.State,
		"zipCode":   s.ZipCode,
		"country":   s.Country,
	}
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			return NewHTTPError(http.StatusBadRequest, "Missing shipping field: "+name)
		}
	}
	if !strings.Contains(s.Email, "@") {
		return NewHTTPError(http.StatusBadRequest, "Invalid shipping email")
	}
	return nil
}

// ListMyOrdersは本人の注文を新しい順に返す。
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID string) ([]OrderOutput, error) {
	if userID == "" {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	var outs []OrderOutput

	//一覧と明細を同じスナップショットで読む
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID string, orderID string) (OrderOutput, error) {
	if userID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	if orderID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			ProductImage: it.ProductImage,
			Price:        it.Price,
			Quantity:     it.Quantity,
		})
	}

	return OrderOutput{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          string(o.Status),
		Total:           o.Total,
		ShippingName:    o.ShippingName,
		ShippingEmail:   o.ShippingEmail,
		ShippingAddress: o.ShippingAddress,
		CreatedAt:       o.CreatedAt,
		Items:           outItems,
	}
}
