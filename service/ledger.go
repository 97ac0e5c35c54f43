package service

import (
	"context"
	"fmt"

	"guildbank/events"
	"guildbank/models"

	log "github.com/sirupsen/logrus"
)

// recordAudit appends a row to the audit log. A failure here is logged
// with full context and swallowed: the audit trail must never roll back
// the balance change that preceded it.
func recordAudit(ctx context.Context, uow UnitOfWork, transaction *models.Transaction) {
	if err := uow.TransactionRepository().Record(ctx, transaction); err != nil {
		log.WithFields(log.Fields{
			"operation": "recordAudit",
			"guildID":   uow.GuildID(),
			"userID":    transaction.UserID,
			"type":      transaction.Type,
			"error":     err,
		}).Error("Failed to record audit transaction")
	}
}

// applyCashChange is the single entry point for cash mutations inside a
// unit of work: it applies the delta (no floor at zero), appends the audit
// row, and queues a balance change event for after commit.
func applyCashChange(ctx context.Context, uow UnitOfWork, userID, delta int64, transactionType models.TransactionType, description string) (int64, error) {
	newBalance, err := uow.AccountRepository().AddCash(ctx, userID, delta)
	if err != nil {
		return 0, fmt.Errorf("failed to apply cash change: %w", err)
	}

	recordAudit(ctx, uow, &models.Transaction{
		UserID:       userID,
		Type:         transactionType,
		Amount:       delta,
		BalanceAfter: newBalance,
		Description:  description,
	})

	uow.EventBus().Publish(events.BalanceChangeEvent{
		GuildID:         uow.GuildID(),
		UserID:          userID,
		OldBalance:      newBalance - delta,
		NewBalance:      newBalance,
		TransactionType: transactionType,
		ChangeAmount:    delta,
	})

	return newBalance, nil
}

// applyXPChange applies a signed XP delta, clamping the total at zero, and
// recomputes the cached level from the new total. It publishes nothing;
// callers decide whether a level-up notification is due.
func applyXPChange(ctx context.Context, uow UnitOfWork, userID, delta int64) (models.XPChange, error) {
	record, err := uow.XPRepository().Get(ctx, userID)
	if err != nil {
		return models.XPChange{}, fmt.Errorf("failed to get xp record: %w", err)
	}

	var oldXP int64
	if record != nil {
		oldXP = record.XP
	}

	newXP := oldXP + delta
	if newXP < 0 {
		newXP = 0
	}

	change := models.XPChange{
		OldXP:    oldXP,
		NewXP:    newXP,
		OldLevel: Level(oldXP),
		NewLevel: Level(newXP),
	}

	err = uow.XPRepository().Upsert(ctx, &models.XPRecord{
		UserID: userID,
		XP:     newXP,
		Level:  change.NewLevel,
	})
	if err != nil {
		return models.XPChange{}, fmt.Errorf("failed to upsert xp record: %w", err)
	}

	return change, nil
}

// publishLevelUp queues a level-up event if the change crossed a boundary
func publishLevelUp(uow UnitOfWork, userID int64, change models.XPChange) {
	if !change.LeveledUp() {
		return
	}
	uow.EventBus().Publish(events.LevelUpEvent{
		GuildID:  uow.GuildID(),
		UserID:   userID,
		OldLevel: change.OldLevel,
		NewLevel: change.NewLevel,
		XP:       change.NewXP,
	})
}
