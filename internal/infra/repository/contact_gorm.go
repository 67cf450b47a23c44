package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type ContactMessageGormRepository struct {
	db *gorm.DB
}

func NewContactMessageGormRepository(db *gorm.DB) *ContactMessageGormRepository {
	return &ContactMessageGormRepository{db: db}
}

func (r *ContactMessageGormRepository) Create(ctx context.Context, msg model.ContactMessage) error {
	return r.db.WithContext(ctx).Create(&msg).Error
}
