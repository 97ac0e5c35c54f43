package service

import (
	"context"
	"testing"

	"guildbank/models"

	"github.com/stretchr/testify/assert"
)

func TestStatsService_Leaderboard_ByKind(t *testing.T) {
	ctx := context.Background()

	entries := []*models.LeaderboardEntry{
		{Rank: 1, UserID: 111, DisplayName: "first", Value: 9000},
		{Rank: 2, UserID: 222, DisplayName: "second", Value: 4500},
	}

	tests := []struct {
		kind   models.LeaderboardKind
		expect func(m *serviceMocks)
	}{
		{models.LeaderboardKindCash, func(m *serviceMocks) {
			m.accounts.On("TopByCash", ctx, 10).Return(entries, nil)
		}},
		{models.LeaderboardKindXP, func(m *serviceMocks) {
			m.xp.On("TopByXP", ctx, 10).Return(entries, nil)
		}},
		{models.LeaderboardKindStreak, func(m *serviceMocks) {
			m.attendance.On("TopStreaks", ctx, 10).Return(entries, nil)
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			m := newServiceMocks(42)
			service := NewStatsService(m.factory)

			m.uow.On("Begin", ctx).Return(nil)
			m.uow.On("Rollback").Return(nil)
			tt.expect(m)

			result, err := service.Leaderboard(ctx, 42, tt.kind, 10)

			assert.NoError(t, err)
			assert.Equal(t, entries, result)
		})
	}
}

func TestStatsService_Leaderboard_RejectsBadArguments(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks(42)
	service := NewStatsService(m.factory)

	var validationErr *ValidationError

	_, err := service.Leaderboard(ctx, 42, models.LeaderboardKindCash, 0)
	assert.ErrorAs(t, err, &validationErr)
	m.factory.AssertNotCalled(t, "CreateForGuild")
}

func TestStatsService_Leaderboard_UnknownKind(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks(42)
	service := NewStatsService(m.factory)

	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback").Return(nil)

	_, err := service.Leaderboard(ctx, 42, models.LeaderboardKind("wealth"), 10)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestStatsService_Rank(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks(42)
	service := NewStatsService(m.factory)

	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback").Return(nil)

	m.accounts.On("Rank", ctx, int64(111)).Return(int64(3), true, nil)

	rank, err := service.Rank(ctx, 42, 111)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), rank)
}

func TestStatsService_Rank_NotRegistered(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks(42)
	service := NewStatsService(m.factory)

	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback").Return(nil)

	m.accounts.On("Rank", ctx, int64(999)).Return(int64(0), false, nil)

	rank, err := service.Rank(ctx, 42, 999)

	assert.Equal(t, int64(0), rank)
	var notRegistered *NotRegisteredError
	assert.ErrorAs(t, err, &notRegistered)
}
