package service

import (
	"context"
	"fmt"

	"guildbank/config"
	"guildbank/events"
	"guildbank/models"
)

type accountService struct {
	uowFactory UnitOfWorkFactory
}

// NewAccountService creates a new account service
func NewAccountService(uowFactory UnitOfWorkFactory) AccountService {
	return &accountService{
		uowFactory: uowFactory,
	}
}

// Register creates an account with the configured starting balance, or
// refreshes the display name of an existing one. Calling it twice never
// alters the existing balance or creates a duplicate row.
func (s *accountService) Register(ctx context.Context, guildID, userID int64, displayName string) (*models.Account, error) {
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
		return nil, newStorageError("Register", err)
	}

	if account != nil {
		// Already registered: opportunistically refresh the cached name
		if displayName != "" && displayName != account.DisplayName {
			if err := uow.AccountRepository().UpdateDisplayName(ctx, userID, displayName); err != nil {
				return nil, newStorageError("Register", err)
			}
			account.DisplayName = displayName
			if err := uow.Commit(); err != nil {
				return nil, fmt.Errorf("failed to commit transaction: %w", err)
			}
		}
		return account, nil
	}

	startingCash := config.Get().StartingBalance
	account, err = uow.AccountRepository().Create(ctx, userID, displayName, startingCash)
	if err != nil {
		return nil, newStorageError("Register", err)
	}

	if startingCash != 0 {
		recordAudit(ctx, uow, &models.Transaction{
			UserID:       userID,
			Type:         models.TransactionTypeInitial,
			Amount:       startingCash,
			BalanceAfter: startingCash,
			Description:  "account registration",
		})
	}

	uow.EventBus().Publish(events.AccountCreatedEvent{
		GuildID:        guildID,
		UserID:         userID,
		DisplayName:    displayName,
		InitialBalance: startingCash,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return account, nil
}

// Unregister deletes the account and cascades to every dependent row for
// that user within the guild
func (s *accountService) Unregister(ctx context.Context, guildID, userID int64) error {
	uow, err := s.uowFactory.CreateForGuild(guildID)
	if err != nil {
		return err
	}
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetByUserID(ctx, userID)
	if err != nil {
		return newStorageError("Unregister", err)
	}
	if account == nil {
		return &NotRegisteredError{UserID: userID}
	}

	if err := uow.TransactionRepository().DeleteByUser(ctx, userID); err != nil {
		return newStorageError("Unregister", err)
	}
	if err := uow.AttendanceRepository().DeleteByUser(ctx, userID); err != nil {
		return newStorageError("Unregister", err)
	}
	if err := uow.EnhancementRepository().DeleteByUser(ctx, userID); err != nil {
		return newStorageError("Unregister", err)
	}
	if err := uow.XPRepository().Delete(ctx, userID); err != nil {
		return newStorageError("Unregister", err)
	}
	if err := uow.AccountRepository().Delete(ctx, userID); err != nil {
		return newStorageError("Unregister", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetAccount returns a value snapshot of the account
func (s *accountService) GetAccount(ctx context.Context, guildID, userID int64) (*models.Account, error) {
	uow, err := s.uowFactory.CreateForGuild(guildID)
	if err != nil {
		return nil, err
	}
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetByUserID(ctx, userID)
	if err != nil {
		return nil, newStorageError("GetAccount", err)
	}
	if account == nil {
		return nil, &NotRegisteredError{UserID: userID}
	}

	return account, nil
}
