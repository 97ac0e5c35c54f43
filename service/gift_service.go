package service

import (
	"context"
	"fmt"
	"time"

	"guildbank/models"
)

type giftService struct {
	uowFactory UnitOfWorkFactory
	cooldowns  *cooldownTracker
	now        func() time.Time
}

// NewGiftService creates a new gift service. The cooldown window is
// tracked in-process only; restarting the process resets it.
func NewGiftService(uowFactory UnitOfWorkFactory, cooldown time.Duration) GiftService {
	return &giftService{
		uowFactory: uowFactory,
		cooldowns:  newCooldownTracker(cooldown),
		now:        time.Now,
	}
}

// Gift transfers amount from sender to receiver. The sender pays
// amount + fee; the receiver gets exactly amount, and is auto-registered
// with zero balance if unknown, so gifts never fail on an unknown
// receiver.
func (s *giftService) Gift(ctx context.Context, guildID, senderID, receiverID int64, amount int64) (*models.GiftResult, error) {
	if senderID == receiverID {
		return nil, newValidationError("cannot gift to yourself")
	}
	if amount <= 0 {
		return nil, newValidationError("gift amount must be positive, got %d", amount)
	}

	uow, err := s.uowFactory.CreateForGuild(guildID)
	if err != nil {
		return nil, err
	}
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	sender, err := uow.AccountRepository().GetByUserID(ctx, senderID)
	if err != nil {
		return nil, newStorageError("Gift", err)
	}
	if sender == nil {
		return nil, &NotRegisteredError{UserID: senderID}
	}

	settingsRow, err := uow.SettingsRepository().GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, newStorageError("Gift", err)
	}
	settings := settingsRow.Effective()

	if amount < settings.GiftMinAmount || amount > settings.GiftMaxAmount {
		return nil, newValidationError("gift amount must be between %d and %d, got %d",
			settings.GiftMinAmount, settings.GiftMaxAmount, amount)
	}

	// Daily limit: count today's outgoing gifts in the audit log, on the
	// same fixed day boundary the attendance engine uses
	sent, err := uow.TransactionRepository().CountByTypeSince(ctx, senderID, models.TransactionTypeGiftSent, dayStart(s.now()))
	if err != nil {
		return nil, newStorageError("Gift", err)
	}
	if sent >= settings.GiftDailyLimit {
		return nil, newValidationError("daily gift limit of %d reached", settings.GiftDailyLimit)
	}

	if remaining := s.cooldowns.Remaining(senderID); remaining > 0 {
		return nil, &CooldownError{Remaining: remaining}
	}

	fee := amount * settings.GiftFeePercent / 100
	need := amount + fee
	if sender.Cash < need {
		return nil, &InsufficientFundsError{Currency: "cash", Have: sender.Cash, Need: need}
	}

	receiver, err := uow.AccountRepository().GetByUserID(ctx, receiverID)
	if err != nil {
		return nil, newStorageError("Gift", err)
	}
	if receiver == nil {
		receiver, err = uow.AccountRepository().Create(ctx, receiverID, "", 0)
		if err != nil {
			return nil, newStorageError("Gift", err)
		}
	}

	senderBalance, err := applyCashChange(ctx, uow, senderID, -need, models.TransactionTypeGiftSent,
		fmt.Sprintf("gift of %d to %d (fee %d)", amount, receiverID, fee))
	if err != nil {
		return nil, newStorageError("Gift", err)
	}

	receiverBalance, err := applyCashChange(ctx, uow, receiverID, amount, models.TransactionTypeGiftReceived,
		fmt.Sprintf("gift of %d from %d", amount, senderID))
	if err != nil {
		return nil, newStorageError("Gift", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.cooldowns.Touch(senderID)

	return &models.GiftResult{
		Amount:           amount,
		Fee:              fee,
		RecipientID:      receiverID,
		RecipientName:    receiver.DisplayName,
		SenderBalance:    senderBalance,
		RecipientBalance: receiverBalance,
	}, nil
}
