package repository

import (
	"context"

	"app/internal/domain/model"
)

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (model.Profile, error)
	// 既にあれば何もしない（冪等）
	CreateIfNotExists(ctx context.Context, p model.Profile) error
}
