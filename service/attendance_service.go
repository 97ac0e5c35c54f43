package service

import (
	"context"
	"fmt"
	"time"

	"guildbank/events"
	"guildbank/models"
)

type attendanceService struct {
	uowFactory UnitOfWorkFactory
	now        func() time.Time
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(uowFactory UnitOfWorkFactory) AttendanceService {
	return &attendanceService{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// CheckIn performs the daily check-in. "Today" is the calendar date in the
// fixed organizational timezone, not the caller's local time.
func (s *attendanceService) CheckIn(ctx context.Context, guildID, userID int64) (*models.CheckInResult, error) {
	uow, err := s.uowFactory.CreateForGuild(guildID)
	if err != nil {
		return nil, err
	}
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	account, err := uow.AccountRepository().GetByUserID(ctx, userID)
	if err != nil {
		return nil, newStorageError("CheckIn", err)
	}
	if account == nil {
		return nil, &NotRegisteredError{UserID: userID}
	}

	now := s.now()
	today := currentDate(now)

	existing, err := uow.AttendanceRepository().GetByDate(ctx, userID, today)
	if err != nil {
		return nil, newStorageError("CheckIn", err)
	}
	if existing != nil {
		// Rejected without mutation; report the standing streak
		return &models.CheckInResult{Streak: existing.Streak}, ErrAlreadyCheckedIn
	}

	// A gap of even one day restarts the streak at 1. No grace period.
	newStreak := int64(1)
	yesterday, err := uow.AttendanceRepository().GetByDate(ctx, userID, previousDate(today))
	if err != nil {
		return nil, newStorageError("CheckIn", err)
	}
	if yesterday != nil {
		newStreak = yesterday.Streak + 1
	}

	if err := uow.AttendanceRepository().Insert(ctx, &models.AttendanceRecord{
		UserID:    userID,
		Date:      today,
		Streak:    newStreak,
		CreatedAt: now.UTC(),
	}); err != nil {
		return nil, newStorageError("CheckIn", err)
	}

	settingsRow, err := uow.SettingsRepository().GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, newStorageError("CheckIn", err)
	}
	settings := settingsRow.Effective()

	cash, xp, weekly, monthly := computeReward(newStreak, settings)

	newBalance, err := applyCashChange(ctx, uow, userID, cash, models.TransactionTypeAttendance,
		fmt.Sprintf("check-in day %d", newStreak))
	if err != nil {
		return nil, newStorageError("CheckIn", err)
	}

	change, err := applyXPChange(ctx, uow, userID, xp)
	if err != nil {
		return nil, newStorageError("CheckIn", err)
	}
	publishLevelUp(uow, userID, change)

	uow.EventBus().Publish(events.CheckInEvent{
		GuildID:      guildID,
		UserID:       userID,
		Streak:       newStreak,
		CashAwarded:  cash,
		XPAwarded:    xp,
		WeeklyBonus:  weekly,
		MonthlyBonus: monthly,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.CheckInResult{
		Streak:       newStreak,
		CashAwarded:  cash,
		XPAwarded:    xp,
		WeeklyBonus:  weekly,
		MonthlyBonus: monthly,
		NewBalance:   newBalance,
		XPChange:     change,
	}, nil
}

// computeReward is a pure function of the new streak and the guild's
// settings. Every monthly milestone also pays the weekly bonus, so day 30
// stacks both. This double payout is intentional and must stay.
func computeReward(streak int64, settings models.EffectiveSettings) (cash, xp int64, weekly, monthly bool) {
	cash = settings.AttendanceCash
	xp = settings.AttendanceXP

	bonusDays := streak - 1
	if bonusDays > settings.MaxStreakBonusDays {
		bonusDays = settings.MaxStreakBonusDays
	}
	cash += bonusDays * settings.StreakCashPerDay
	xp += bonusDays * settings.StreakXPPerDay

	monthly = streak > 0 && streak%30 == 0
	weekly = (streak > 0 && streak%7 == 0) || monthly

	if weekly {
		cash += settings.WeeklyBonusCash
		xp += settings.WeeklyBonusXP
	}
	if monthly {
		cash += settings.MonthlyBonusCash
		xp += settings.MonthlyBonusXP
	}

	return cash, xp, weekly, monthly
}
