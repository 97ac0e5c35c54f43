package service

import (
	"context"
	"fmt"

	"guildbank/models"
)

type statsService struct {
	uowFactory UnitOfWorkFactory
}

// NewStatsService creates a new stats service
func NewStatsService(uowFactory UnitOfWorkFactory) StatsService {
	return &statsService{
		uowFactory: uowFactory,
	}
}

// Leaderboard returns the top entries for a metric
func (s *statsService) Leaderboard(ctx context.Context, guildID int64, kind models.LeaderboardKind, limit int) ([]*models.LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, newValidationError("leaderboard limit must be positive, got %d", limit)
	}

	uow, err := s.uowFactory.CreateForGuild(guildID)
	if err != nil {
		return nil, err
	}
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	var entries []*models.LeaderboardEntry
	switch kind {
	case models.LeaderboardKindCash:
		entries, err = uow.AccountRepository().TopByCash(ctx, limit)
	case models.LeaderboardKindXP:
		entries, err = uow.XPRepository().TopByXP(ctx, limit)
	case models.LeaderboardKindStreak:
		entries, err = uow.AttendanceRepository().TopStreaks(ctx, limit)
	default:
		return nil, newValidationError("unknown leaderboard kind %q", kind)
	}
	if err != nil {
		return nil, newStorageError("Leaderboard", err)
	}

	return entries, nil
}

// Rank returns a user's 1-based position by cash, descending. Ties go to
// the earlier-created account.
func (s *statsService) Rank(ctx context.Context, guildID, userID int64) (int64, error) {
	uow, err := s.uowFactory.CreateForGuild(guildID)
	if err != nil {
		return 0, err
	}
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	rank, ok, err := uow.AccountRepository().Rank(ctx, userID)
	if err != nil {
		return 0, newStorageError("Rank", err)
	}
	if !ok {
		return 0, &NotRegisteredError{UserID: userID}
	}

	return rank, nil
}
