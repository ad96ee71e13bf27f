package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"storefront/internal/errs"
	"storefront/internal/events"
	"storefront/internal/models"
	"storefront/internal/repository"
)

type SettingService struct {
	settings repository.SettingRepository
	events   events.Publisher
}

func NewSettingService(settings repository.SettingRepository, pub events.Publisher) *SettingService {
	if pub == nil {
		pub = events.Noop{}
	}
	return &SettingService{settings: settings, events: pub}
}

func (s *SettingService) ListSettings(ctx context.Context) ([]models.Setting, error) {
	items, err := s.settings.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Setting{}
	}
	return items, nil
}

// UpsertSetting: value nil означает, что в запросе не было строки.
func (s *SettingService) UpsertSetting(ctx context.Context, key string, value *string) (models.Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" || value == nil {
		return models.Setting{}, errs.ErrInvalidSetting
	}

	setting, err := s.settings.Upsert(ctx, key, *value)
	if err != nil {
		return models.Setting{}, err
	}

	log.Ctx(ctx).Info().Str("component", "SettingService.UpsertSetting").Str("key", key).Msg("setting saved")
	s.events.Publish(ctx, events.SettingUpdated, setting)
	return setting, nil
}

// WhatsAppNumber returns the configured contact number or "" when unset.
func (s *SettingService) WhatsAppNumber(ctx context.Context) (string, error) {
	setting, ok, err := s.settings.Get(ctx, models.SettingWhatsAppNumber)
	if err != nil || !ok {
		return "", err
	}
	return strings.TrimSpace(setting.Value), nil
}
