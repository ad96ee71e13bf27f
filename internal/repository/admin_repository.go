package repository

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/errs"
	"storefront/internal/models"
)

type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (models.Admin, error)
	// CreateIfAbsent inserts the admin unless the email is already taken.
	CreateIfAbsent(ctx context.Context, admin *models.Admin) (created bool, err error)
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (models.Admin, error) {
	var a models.Admin
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return a, errs.ErrAccountNotFound
	}
	if err != nil {
		log.Error().Err(err).Str("component", "AdminRepository.GetByEmail").Msg("")
		return a, err
	}
	return a, nil
}

func (r *adminRepository) CreateIfAbsent(ctx context.Context, admin *models.Admin) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(admin)
	if res.Error != nil {
		log.Error().Err(res.Error).Str("component", "AdminRepository.CreateIfAbsent").Msg("")
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
