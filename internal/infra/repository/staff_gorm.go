package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-de-belleza/internal/models"
)

type StaffGormRepository struct {
	db *gorm.DB
}

func NewStaffGormRepository(db *gorm.DB) *StaffGormRepository {
	return &StaffGormRepository{db: db}
}

func (r *StaffGormRepository) FindByEmail(
	ctx context.Context,
	email string,
) (*models.StaffUser, error) {

	var user models.StaffUser
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EnsureStaffUser cria o usuário se o e-mail ainda não existir.
// Devolve true quando criou.
func (r *StaffGormRepository) EnsureStaffUser(
	ctx context.Context,
	user *models.StaffUser,
) (bool, error) {

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	_, err := r.FindByEmail(ctx, user.Email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return false, err
	}
	return true, nil
}
