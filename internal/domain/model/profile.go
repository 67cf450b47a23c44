package model

import "time"

// 初回ログイン時にEnsureProfileで作られる（読み出し中の暗黙upsertはしない）
type Profile struct {
	UserID    string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	Name      string    `gorm:"type:varchar(255);not null;default:''" json:"name"`
	Role      Role      `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
