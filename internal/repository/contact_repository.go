package repository

import (
	"context"

	"app/internal/domain/model"
)

type ContactMessageRepository interface {
	Create(ctx context.Context, msg model.ContactMessage) error
}
