package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-de-belleza/internal/models"
)

type ContactGormRepository struct {
	db *gorm.DB
}

func NewContactGormRepository(db *gorm.DB) *ContactGormRepository {
	return &ContactGormRepository{db: db}
}

func (r *ContactGormRepository) CreateContactMessage(
	ctx context.Context,
	msg *models.ContactMessage,
) error {
	return r.db.WithContext(ctx).Create(msg).Error
}
