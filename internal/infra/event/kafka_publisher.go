package event

import (
	"context"
	"encoding/json"
	"time"

	"app/internal/domain/model"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

const orderPlacedTopic = "orders.placed"

// Kafkaへ注文確定イベントを流す。注文フローからはbest effortで呼ばれる。
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    orderPlacedTopic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

type orderPlacedEvent struct {
	OrderID   string           `json:"order_id"`
	UserID    string           `json:"user_id"`
	Status    string           `json:"status"`
	Total     decimal.Decimal  `json:"total"`
	Items     []orderItemEvent `json:"items"`
	CreatedAt time.Time        `json:"created_at"`
}

type orderItemEvent struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

func (p *KafkaPublisher) OrderPlaced(ctx context.Context, order model.Order, items []model.OrderItem) error {
	ev := orderPlacedEvent{
		OrderID:   order.ID,
		UserID:    order.UserID,
		Status:    string(order.Status),
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
	}
	for _, it := range items {
		ev.Items = append(ev.Items, orderItemEvent{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.ID),
		Value: value,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// ブローカー未設定のとき用。
type NoopPublisher struct{}

func (NoopPublisher) OrderPlaced(ctx context.Context, order model.Order, items []model.OrderItem) error {
	return nil
}
