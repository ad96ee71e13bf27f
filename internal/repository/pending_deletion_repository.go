package repository

import (
	"context"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"storefront/internal/models"
)

// PendingDeletionRepository хранит неудавшиеся удаления картинок для повторных попыток.
type PendingDeletionRepository interface {
	Add(ctx context.Context, publicID, reason string) error
	ListDue(ctx context.Context, limit, maxAttempts int) ([]models.PendingImageDeletion, error)
	Remove(ctx context.Context, id uint) error
	MarkFailed(ctx context.Context, id uint, reason string) error
}

type pendingDeletionRepository struct {
	db *gorm.DB
}

func NewPendingDeletionRepository(db *gorm.DB) PendingDeletionRepository {
	return &pendingDeletionRepository{db: db}
}

func (r *pendingDeletionRepository) Add(ctx context.Context, publicID, reason string) error {
	row := models.PendingImageDeletion{PublicID: publicID, LastError: reason}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		log.Error().Err(err).Str("component", "PendingDeletionRepository.Add").Str("public_id", publicID).Msg("")
		return err
	}
	return nil
}

func (r *pendingDeletionRepository) ListDue(ctx context.Context, limit, maxAttempts int) ([]models.PendingImageDeletion, error) {
	var rows []models.PendingImageDeletion
	err := r.db.WithContext(ctx).
		Where("attempts < ?", maxAttempts).
		Order("updated_at asc, id asc").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		log.Error().Err(err).Str("component", "PendingDeletionRepository.ListDue").Msg("")
		return nil, err
	}
	return rows, nil
}

func (r *pendingDeletionRepository) Remove(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.PendingImageDeletion{}, id).Error; err != nil {
		log.Error().Err(err).Str("component", "PendingDeletionRepository.Remove").Uint("id", id).Msg("")
		return err
	}
	return nil
}

func (r *pendingDeletionRepository) MarkFailed(ctx context.Context, id uint, reason string) error {
	err := r.db.WithContext(ctx).Model(&models.PendingImageDeletion{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": reason,
		}).Error
	if err != nil {
		log.Error().Err(err).Str("component", "PendingDeletionRepository.MarkFailed").Uint("id", id).Msg("")
		return err
	}
	return nil
}
