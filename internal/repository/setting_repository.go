package repository

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/models"
)

type SettingRepository interface {
	List(ctx context.Context) ([]models.Setting, error)
	// Get returns ok=false when the key has never been set.
	Get(ctx context.Context, key string) (models.Setting, bool, error)
	Upsert(ctx context.Context, key, value string) (models.Setting, error)
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) List(ctx context.Context) ([]models.Setting, error) {
	var items []models.Setting
	if err := r.db.WithContext(ctx).Order("created_at asc, id asc").Find(&items).Error; err != nil {
		log.Error().Err(err).Str("component", "SettingRepository.List").Msg("")
		return nil, err
	}
	return items, nil
}

func (r *settingRepository) Get(ctx context.Context, key string) (models.Setting, bool, error) {
	var s models.Setting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s, false, nil
	}
	if err != nil {
		log.Error().Err(err).Str("component", "SettingRepository.Get").Str("key", key).Msg("")
		return s, false, err
	}
	return s, true, nil
}

func (r *settingRepository) Upsert(ctx context.Context, key, value string) (models.Setting, error) {
	s := models.Setting{Key: key, Value: value}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&s).Error
	if err != nil {
		log.Error().Err(err).Str("component", "SettingRepository.Upsert").Str("key", key).Msg("")
		return s, err
	}

	// при конфликте Create не возвращает id/created_at существующей строки
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&s).Error; err != nil {
		log.Error().Err(err).Str("component", "SettingRepository.Upsert").Str("key", key).Msg("")
		return s, err
	}
	return s, nil
}
