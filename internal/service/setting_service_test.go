package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/errs"
	"storefront/internal/events"
	"storefront/internal/models"
)

func strPtr(s string) *string { return &s }

func TestSettingService_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := &memSettings{}
	pub := &fakePublisher{}
	svc := NewSettingService(repo, pub)

	s, err := svc.UpsertSetting(ctx, models.SettingWhatsAppNumber, strPtr("+1 555 0100"))
	require.NoError(t, err)
	assert.Equal(t, "+1 555 0100", s.Value)

	s, err = svc.UpsertSetting(ctx, models.SettingWhatsAppNumber, strPtr("15550199"))
	require.NoError(t, err)
	assert.Equal(t, "15550199", s.Value)

	all, err := svc.ListSettings(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, []string{events.SettingUpdated, events.SettingUpdated}, pub.types())
}

func TestSettingService_UpsertValidation(t *testing.T) {
	svc := NewSettingService(&memSettings{}, nil)

	_, err := svc.UpsertSetting(context.Background(), "  ", strPtr("x"))
	assert.ErrorIs(t, err, errs.ErrInvalidSetting)

	_, err = svc.UpsertSetting(context.Background(), "k", nil)
	assert.ErrorIs(t, err, errs.ErrInvalidSetting)

	s, err := svc.UpsertSetting(context.Background(), "k", strPtr(""))
	require.NoError(t, err)
	assert.Equal(t, "", s.Value)
}

func TestSettingService_ListEmpty(t *testing.T) {
	items, err := NewSettingService(&memSettings{}, nil).ListSettings(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestSettingService_WhatsAppNumber(t *testing.T) {
	repo := &memSettings{}
	svc := NewSettingService(repo, nil)

	n, err := svc.WhatsAppNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", n)

	_, _ = repo.Upsert(context.Background(), models.SettingWhatsAppNumber, " 15550100 ")
	n, err = svc.WhatsAppNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "15550100", n)
}
