package service

import (
	"context"
	"fmt"

	"guildbank/models"
)

type ledgerService struct {
	uowFactory UnitOfWorkFactory
}

// NewLedgerService creates a new ledger service
func NewLedgerService(uowFactory UnitOfWorkFactory) LedgerService {
	return &ledgerService{
		uowFactory: uowFactory,
	}
}

// GetBalance returns the cash balance, 0 if unregistered
func (s *ledgerService) GetBalance(ctx context.Context, guildID, userID int64) (int64, error) {
	uow, err := s.uowFactory.CreateForGuild(guildID)
	if err != nil {
		return 0, err
	}
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	account, err := uow.AccountRepository().GetByUserID(ctx, userID)
	if err != nil {
		return 0, newStorageError("GetBalance", err)
	}
	if account == nil {
		return 0, nil
	}

	return account.Cash, nil
}

// AddCash applies a signed delta with no floor at zero. Overdraft is
// allowed by design; preventing it is the calling feature's concern.
func (s *ledgerService) AddCash(ctx context.Context, guildID, userID, delta int64, transactionType models.TransactionType, description string) (int64, error) {
	uow, err := s.uowFactory.CreateForGuild(guildID)
	if err != nil {
		return 0, err
	}
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	newBalance, err := applyCashChange(ctx, uow, userID, delta, transactionType, description)
	if err != nil {
		return 0, newStorageError("AddCash", err)
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return newBalance, nil
}

// AddXP applies a signed XP delta and recomputes the level. No level-up
// event is published here; the calling feature observes the returned
// change and decides.
func (s *ledgerService) AddXP(ctx context.Context, guildID, userID, delta int64) (models.XPChange, error) {
	uow, err := s.uowFactory.CreateForGuild(guildID)
	if err != nil {
		return models.XPChange{}, err
	}
	if err := uow.Begin(ctx); err != nil {
		return models.XPChange{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	change, err := applyXPChange(ctx, uow, userID, delta)
	if err != nil {
		return models.XPChange{}, newStorageError("AddXP", err)
	}

	if err := uow.Commit(); err != nil {
		return models.XPChange{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return change, nil
}

// History returns recent audit rows for a user, newest first
func (s *ledgerService) History(ctx context.Context, guildID, userID int64, limit int) ([]*models.Transaction, error) {
	uow, err := s.uowFactory.CreateForGuild(guildID)
	if err != nil {
		return nil, err
	}
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	transactions, err := uow.TransactionRepository().GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, newStorageError("History", err)
	}

	return transactions, nil
}
