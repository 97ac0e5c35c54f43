package service

import (
	"context"
	"fmt"
	"time"

	"guildbank/models"
)

type exchangeService struct {
	uowFactory UnitOfWorkFactory
	now        func() time.Time
}

// NewExchangeService creates a new exchange service
func NewExchangeService(uowFactory UnitOfWorkFactory) ExchangeService {
	return &exchangeService{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Convert exchanges amount between cash and XP. The fee is expressed by
// shrinking the rate: received = floor(amount * (1 - feePercent/100)).
// Each direction keeps its own fee and daily limit.
func (s *exchangeService) Convert(ctx context.Context, guildID, userID int64, amount int64, direction models.ExchangeDirection) (*models.ExchangeResult, error) {
	if amount <= 0 {
		return nil, newValidationError("exchange amount must be positive, got %d", amount)
	}

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
		return nil, newStorageError("Convert", err)
	}
	if account == nil {
		return nil, &NotRegisteredError{UserID: userID}
	}

	settingsRow, err := uow.SettingsRepository().GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, newStorageError("Convert", err)
	}
	settings := settingsRow.Effective()

	var feePercent, dailyLimit int64
	var transactionType models.TransactionType
	switch direction {
	case models.ExchangeCashToXP:
		feePercent = settings.CashToXPFeePercent
		dailyLimit = settings.CashToXPDailyLimit
		transactionType = models.TransactionTypeCashToXP
	case models.ExchangeXPToCash:
		feePercent = settings.XPToCashFeePercent
		dailyLimit = settings.XPToCashDailyLimit
		transactionType = models.TransactionTypeXPToCash
	default:
		return nil, newValidationError("unknown exchange direction %q", direction)
	}

	// Daily limit shares the gift counting mechanism: audit rows for the
	// direction's type since the fixed-timezone day start
	used, err := uow.TransactionRepository().CountByTypeSince(ctx, userID, transactionType, dayStart(s.now()))
	if err != nil {
		return nil, newStorageError("Convert", err)
	}
	if used >= dailyLimit {
		return nil, newValidationError("daily %s limit of %d reached", direction, dailyLimit)
	}

	received := amount * (100 - feePercent) / 100

	var newBalance int64
	var change models.XPChange

	switch direction {
	case models.ExchangeCashToXP:
		if account.Cash < amount {
			return nil, &InsufficientFundsError{Currency: "cash", Have: account.Cash, Need: amount}
		}

		newBalance, err = applyCashChange(ctx, uow, userID, -amount, transactionType,
			fmt.Sprintf("converted %d cash to %d xp", amount, received))
		if err != nil {
			return nil, newStorageError("Convert", err)
		}

		change, err = applyXPChange(ctx, uow, userID, received)
		if err != nil {
			return nil, newStorageError("Convert", err)
		}
		publishLevelUp(uow, userID, change)

	case models.ExchangeXPToCash:
		record, err := uow.XPRepository().Get(ctx, userID)
		if err != nil {
			return nil, newStorageError("Convert", err)
		}
		var haveXP int64
		if record != nil {
			haveXP = record.XP
		}
		if haveXP < amount {
			return nil, &InsufficientFundsError{Currency: "xp", Have: haveXP, Need: amount}
		}

		change, err = applyXPChange(ctx, uow, userID, -amount)
		if err != nil {
			return nil, newStorageError("Convert", err)
		}

		newBalance, err = applyCashChange(ctx, uow, userID, received, transactionType,
			fmt.Sprintf("converted %d xp to %d cash", amount, received))
		if err != nil {
			return nil, newStorageError("Convert", err)
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.ExchangeResult{
		Direction:  direction,
		Spent:      amount,
		Received:   received,
		NewBalance: newBalance,
		XPChange:   change,
	}, nil
}
