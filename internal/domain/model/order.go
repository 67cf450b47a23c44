package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	// ヘッダだけ書けて明細がまだ無い状態。明細INSERT成功でPENDINGに昇格する
	OrderStatusIncomplete OrderStatus = "INCOMPLETE"
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusPaid       OrderStatus = "PAID"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusCanceled   OrderStatus = "CANCELED"
)

type Order struct {
	ID     string      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string      `gorm:"type:uuid;not null;index" json:"user_id"`
	Status OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	// 合計は送信時点のカート合計をそのまま保存（明細から再計算しない）
	Total           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	ShippingName    string          `gorm:"type:varchar(255);not null" json:"shipping_name"`
	ShippingEmail   string          `gorm:"type:varchar(255);not null" json:"shipping_email"`
	ShippingAddress string          `gorm:"type:text;not null" json:"shipping_address"`
	CreatedAt       time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
