package service

import (
	"context"
	"fmt"
	"math/rand"

	"guildbank/models"
)

// enhanceOdds holds per-level attempt odds in percent. Success raises the
// level by one; a failed attempt at a level with a drop chance may lower
// it by one.
type enhanceOdds struct {
	Success int
	Drop    int
}

// maxEnhanceLevel caps upgrades; attempts beyond it are rejected
const maxEnhanceLevel = 10

// enhanceTable is keyed by current level. Climbing gets harder and, from
// the middle tiers on, failure risks losing a level.
var enhanceTable = [maxEnhanceLevel]enhanceOdds{
	{Success: 100, Drop: 0},
	{Success: 90, Drop: 0},
	{Success: 80, Drop: 0},
	{Success: 70, Drop: 0},
	{Success: 60, Drop: 20},
	{Success: 50, Drop: 25},
	{Success: 40, Drop: 30},
	{Success: 30, Drop: 40},
	{Success: 20, Drop: 50},
	{Success: 10, Drop: 60},
}

type enhancementService struct {
	uowFactory UnitOfWorkFactory
	roll       func(n int) int
}

// NewEnhancementService creates a new enhancement service
func NewEnhancementService(uowFactory UnitOfWorkFactory) EnhancementService {
	return &enhancementService{
		uowFactory: uowFactory,
		roll:       rand.Intn,
	}
}

// Enhance spends cash on one upgrade attempt for the named item. The item
// row is created on the first attempt and only removed by a bulk reset.
func (s *enhancementService) Enhance(ctx context.Context, guildID, userID int64, name string) (*models.EnhanceResult, error) {
	if name == "" {
		return nil, newValidationError("item name is required")
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
		return nil, newStorageError("Enhance", err)
	}
	if account == nil {
		return nil, &NotRegisteredError{UserID: userID}
	}

	item, err := uow.EnhancementRepository().Get(ctx, userID, name)
	if err != nil {
		return nil, newStorageError("Enhance", err)
	}
	if item == nil {
		item = &models.EnhancementItem{UserID: userID, Name: name}
	}

	if item.Level >= maxEnhanceLevel {
		return nil, newValidationError("%s is already at the maximum level %d", name, maxEnhanceLevel)
	}

	settingsRow, err := uow.SettingsRepository().GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, newStorageError("Enhance", err)
	}
	cost := settingsRow.Effective().EnhanceCost

	if account.Cash < cost {
		return nil, &InsufficientFundsError{Currency: "cash", Have: account.Cash, Need: cost}
	}

	newBalance, err := applyCashChange(ctx, uow, userID, -cost, models.TransactionTypeEnhanceCost,
		fmt.Sprintf("enhance attempt on %s (level %d)", name, item.Level))
	if err != nil {
		return nil, newStorageError("Enhance", err)
	}

	odds := enhanceTable[item.Level]
	success := s.roll(100) < odds.Success
	dropped := false

	if success {
		item.Level++
		item.SuccessCount++
		item.ConsecutiveFails = 0
	} else {
		item.FailCount++
		item.ConsecutiveFails++
		if odds.Drop > 0 && s.roll(100) < odds.Drop {
			item.Level--
			dropped = true
		}
	}

	if err := uow.EnhancementRepository().Upsert(ctx, item); err != nil {
		return nil, newStorageError("Enhance", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.EnhanceResult{
		Item:       *item,
		Success:    success,
		Dropped:    dropped,
		Cost:       cost,
		NewBalance: newBalance,
	}, nil
}

// ResetAll wipes all enhancement progress in the guild
func (s *enhancementService) ResetAll(ctx context.Context, guildID int64) error {
	uow, err := s.uowFactory.CreateForGuild(guildID)
	if err != nil {
		return err
	}
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.EnhancementRepository().ResetAll(ctx); err != nil {
		return newStorageError("ResetAll", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
