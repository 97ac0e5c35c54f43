package service

import (
	"context"
	"fmt"

	"guildbank/models"
)

type settingsService struct {
	uowFactory UnitOfWorkFactory
}

// NewSettingsService creates a new settings service
func NewSettingsService(uowFactory UnitOfWorkFactory) SettingsService {
	return &settingsService{
		uowFactory: uowFactory,
	}
}

// GetSettings returns the fully-resolved settings for a guild, creating
// the backing row lazily
func (s *settingsService) GetSettings(ctx context.Context, guildID int64) (models.EffectiveSettings, error) {
	uow, err := s.uowFactory.CreateForGuild(guildID)
	if err != nil {
		return models.EffectiveSettings{}, err
	}
	if err := uow.Begin(ctx); err != nil {
		return models.EffectiveSettings{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	settings, err := uow.SettingsRepository().GetOrCreate(ctx, guildID)
	if err != nil {
		return models.EffectiveSettings{}, newStorageError("GetSettings", err)
	}

	// Commit in case the row was created lazily
	if err := uow.Commit(); err != nil {
		return models.EffectiveSettings{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return settings.Effective(), nil
}

// UpdateSettings applies the non-nil fields of the override onto the
// guild's stored settings. Nil fields keep their current value.
func (s *settingsService) UpdateSettings(ctx context.Context, guildID int64, override *models.EconomySettings) error {
	uow, err := s.uowFactory.CreateForGuild(guildID)
	if err != nil {
		return err
	}
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	settings, err := uow.SettingsRepository().GetOrCreate(ctx, guildID)
	if err != nil {
		return newStorageError("UpdateSettings", err)
	}

	mergeSettings(settings, override)

	if err := uow.SettingsRepository().Update(ctx, settings); err != nil {
		return newStorageError("UpdateSettings", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// mergeSettings copies every non-nil override field onto dst
func mergeSettings(dst, src *models.EconomySettings) {
	fields := []struct {
		dst **int64
		src *int64
	}{
		{&dst.AttendanceCash, src.AttendanceCash},
		{&dst.AttendanceXP, src.AttendanceXP},
		{&dst.StreakCashPerDay, src.StreakCashPerDay},
		{&dst.StreakXPPerDay, src.StreakXPPerDay},
		{&dst.MaxStreakBonusDays, src.MaxStreakBonusDays},
		{&dst.WeeklyBonusCash, src.WeeklyBonusCash},
		{&dst.WeeklyBonusXP, src.WeeklyBonusXP},
		{&dst.MonthlyBonusCash, src.MonthlyBonusCash},
		{&dst.MonthlyBonusXP, src.MonthlyBonusXP},
		{&dst.GiftFeePercent, src.GiftFeePercent},
		{&dst.GiftMinAmount, src.GiftMinAmount},
		{&dst.GiftMaxAmount, src.GiftMaxAmount},
		{&dst.GiftDailyLimit, src.GiftDailyLimit},
		{&dst.CashToXPFeePercent, src.CashToXPFeePercent},
		{&dst.XPToCashFeePercent, src.XPToCashFeePercent},
		{&dst.CashToXPDailyLimit, src.CashToXPDailyLimit},
		{&dst.XPToCashDailyLimit, src.XPToCashDailyLimit},
		{&dst.EnhanceCost, src.EnhanceCost},
	}

	for _, f := range fields {
		if f.src != nil {
			value := *f.src
			*f.dst = &value
		}
	}
}
