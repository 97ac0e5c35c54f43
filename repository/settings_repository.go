package repository

import (
	"context"
	"database/sql"
	"fmt"

	"guildbank/database"
	"guildbank/models"
)

// SettingsRepository implements the service.SettingsRepository interface
type SettingsRepository struct {
	q queryable
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{q: db.DB}
}

// newSettingsRepositoryWithTx creates a new settings repository with a transaction
func newSettingsRepositoryWithTx(tx queryable) *SettingsRepository {
	return &SettingsRepository{q: tx}
}

const settingsColumns = `
	guild_id, attendance_cash, attendance_xp, streak_cash_per_day, streak_xp_per_day,
	max_streak_bonus_days, weekly_bonus_cash, weekly_bonus_xp, monthly_bonus_cash,
	monthly_bonus_xp, gift_fee_percent, gift_min_amount, gift_max_amount,
	gift_daily_limit, cash_to_xp_fee_percent, xp_to_cash_fee_percent,
	cash_to_xp_daily_limit, xp_to_cash_daily_limit, enhance_cost`

func scanSettings(row *sql.Row) (*models.EconomySettings, error) {
	var s models.EconomySettings
	err := row.Scan(
		&s.GuildID,
		&s.AttendanceCash,
		&s.AttendanceXP,
		&s.StreakCashPerDay,
		&s.StreakXPPerDay,
		&s.MaxStreakBonusDays,
		&s.WeeklyBonusCash,
		&s.WeeklyBonusXP,
		&s.MonthlyBonusCash,
		&s.MonthlyBonusXP,
		&s.GiftFeePercent,
		&s.GiftMinAmount,
		&s.GiftMaxAmount,
		&s.GiftDailyLimit,
		&s.CashToXPFeePercent,
		&s.XPToCashFeePercent,
		&s.CashToXPDailyLimit,
		&s.XPToCashDailyLimit,
		&s.EnhanceCost,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetOrCreate retrieves the guild's settings row, lazily creating an empty
// all-defaults row if absent
func (r *SettingsRepository) GetOrCreate(ctx context.Context, guildID int64) (*models.EconomySettings, error) {
	query := `SELECT ` + settingsColumns + ` FROM economy_settings WHERE guild_id = ?`

	settings, err := scanSettings(r.q.QueryRowContext(ctx, query, guildID))
	if err == nil {
		return settings, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get settings for guild %d: %w", guildID, err)
	}

	insert := `INSERT INTO economy_settings (guild_id) VALUES (?)`
	if _, err := r.q.ExecContext(ctx, insert, guildID); err != nil {
		return nil, fmt.Errorf("failed to create settings for guild %d: %w", guildID, err)
	}

	return &models.EconomySettings{GuildID: guildID}, nil
}

// Update writes the full settings row
func (r *SettingsRepository) Update(ctx context.Context, settings *models.EconomySettings) error {
	query := `
		UPDATE economy_settings
		SET attendance_cash = ?, attendance_xp = ?, streak_cash_per_day = ?,
		    streak_xp_per_day = ?, max_streak_bonus_days = ?, weekly_bonus_cash = ?,
		    weekly_bonus_xp = ?, monthly_bonus_cash = ?, monthly_bonus_xp = ?,
		    gift_fee_percent = ?, gift_min_amount = ?, gift_max_amount = ?,
		    gift_daily_limit = ?, cash_to_xp_fee_percent = ?, xp_to_cash_fee_percent = ?,
		    cash_to_xp_daily_limit = ?, xp_to_cash_daily_limit = ?, enhance_cost = ?
		WHERE guild_id = ?
	`

	result, err := r.q.ExecContext(ctx, query,
		settings.AttendanceCash,
		settings.AttendanceXP,
		settings.StreakCashPerDay,
		settings.StreakXPPerDay,
		settings.MaxStreakBonusDays,
		settings.WeeklyBonusCash,
		settings.WeeklyBonusXP,
		settings.MonthlyBonusCash,
		settings.MonthlyBonusXP,
		settings.GiftFeePercent,
		settings.GiftMinAmount,
		settings.GiftMaxAmount,
		settings.GiftDailyLimit,
		settings.CashToXPFeePercent,
		settings.XPToCashFeePercent,
		settings.CashToXPDailyLimit,
		settings.XPToCashDailyLimit,
		settings.EnhanceCost,
		settings.GuildID,
	)
	if err != nil {
		return fmt.Errorf("failed to update settings for guild %d: %w", settings.GuildID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check settings update for guild %d: %w", settings.GuildID, err)
	}
	if rows == 0 {
		return fmt.Errorf("settings for guild %d not found", settings.GuildID)
	}

	return nil
}
