package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文時点のカート明細スナップショット。後からカタログ価格と突き合わせない
type OrderItem struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID      string          `gorm:"type:uuid;not null;index;constraint:OnDelete:CASCADE" json:"order_id"`
	ProductID    string          `gorm:"type:varchar(64);not null;index" json:"product_id"`
	ProductName  string          `gorm:"type:varchar(255);not null" json:"product_name"`
	ProductImage string          `gorm:"type:text;not null" json:"product_image"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Quantity     int64           `gorm:"not null" json:"quantity"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
