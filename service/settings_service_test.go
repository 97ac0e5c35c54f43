package service

import (
	"context"
	"testing"

	"guildbank/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSettingsService_GetSettings_Defaults(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks(42)
	service := NewSettingsService(m.factory)

	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Commit").Return(nil)
	m.uow.On("Rollback").Return(nil)

	// A guild with no overrides resolves to the hard-coded defaults
	m.settings.On("GetOrCreate", ctx, int64(42)).Return(&models.EconomySettings{GuildID: 42}, nil)

	settings, err := service.GetSettings(ctx, 42)

	assert.NoError(t, err)
	assert.Equal(t, models.DefaultAttendanceCash, settings.AttendanceCash)
	assert.Equal(t, models.DefaultGiftFeePercent, settings.GiftFeePercent)
	assert.Equal(t, models.DefaultEnhanceCost, settings.EnhanceCost)
	m.uow.AssertExpectations(t)
}

func TestSettingsService_GetSettings_AppliesOverrides(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks(42)
	service := NewSettingsService(m.factory)

	fee := int64(12)
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Commit").Return(nil)
	m.uow.On("Rollback").Return(nil)

	m.settings.On("GetOrCreate", ctx, int64(42)).Return(&models.EconomySettings{
		GuildID:        42,
		GiftFeePercent: &fee,
	}, nil)

	settings, err := service.GetSettings(ctx, 42)

	assert.NoError(t, err)
	assert.Equal(t, int64(12), settings.GiftFeePercent)
	// Untouched fields keep their defaults
	assert.Equal(t, models.DefaultAttendanceCash, settings.AttendanceCash)
}

func TestSettingsService_UpdateSettings_MergesNonNilFields(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks(42)
	service := NewSettingsService(m.factory)

	existingFee := int64(12)
	stored := &models.EconomySettings{
		GuildID:        42,
		GiftFeePercent: &existingFee,
	}

	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Commit").Return(nil)
	m.uow.On("Rollback").Return(nil)

	m.settings.On("GetOrCreate", ctx, int64(42)).Return(stored, nil)
	m.settings.On("Update", ctx, mock.MatchedBy(func(s *models.EconomySettings) bool {
		// The new override lands, the old one survives
		return s.GuildID == 42 &&
			s.AttendanceCash != nil && *s.AttendanceCash == 250 &&
			s.GiftFeePercent != nil && *s.GiftFeePercent == 12
	})).Return(nil)

	newCash := int64(250)
	err := service.UpdateSettings(ctx, 42, &models.EconomySettings{
		AttendanceCash: &newCash,
	})

	assert.NoError(t, err)
	m.settings.AssertExpectations(t)
}
