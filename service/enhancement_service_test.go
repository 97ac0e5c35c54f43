package service

import (
	"context"
	"testing"

	"guildbank/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// newTestEnhancementService injects a scripted roll sequence. Each call
// pops the next value; the zero-value fallback of 0 always succeeds.
func newTestEnhancementService(m *serviceMocks, rolls ...int) *enhancementService {
	service := NewEnhancementService(m.factory).(*enhancementService)
	service.roll = func(n int) int {
		if len(rolls) == 0 {
			return 0
		}
		next := rolls[0]
		rolls = rolls[1:]
		return next
	}
	return service
}

func expectEnhanceSpend(ctx context.Context, m *serviceMocks, cash int64) {
	m.accounts.On("GetByUserID", ctx, int64(111)).Return(&models.Account{UserID: 111, Cash: cash}, nil)
	m.settings.On("GetOrCreate", ctx, int64(42)).Return(&models.EconomySettings{GuildID: 42}, nil)
	m.accounts.On("AddCash", ctx, int64(111), int64(-500)).Return(cash-500, nil)
	m.transactions.On("Record", ctx, mock.Anything).Return(nil)
}

func TestEnhancementService_Enhance_FirstAttemptSucceeds(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks(42)
	service := newTestEnhancementService(m, 0)

	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Commit").Return(nil)
	m.uow.On("Rollback").Return(nil)

	m.enhancements.On("Get", ctx, int64(111), "sword").Return(nil, nil)
	expectEnhanceSpend(ctx, m, 10000)
	m.enhancements.On("Upsert", ctx, mock.MatchedBy(func(item *models.EnhancementItem) bool {
		return item.UserID == 111 && item.Name == "sword" &&
			item.Level == 1 && item.SuccessCount == 1 && item.FailCount == 0
	})).Return(nil)

	result, err := service.Enhance(ctx, 42, 111, "sword")

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.False(t, result.Dropped)
	assert.Equal(t, int64(500), result.Cost)
	assert.Equal(t, int64(9500), result.NewBalance)
	assert.Equal(t, int64(1), result.Item.Level)
	m.enhancements.AssertExpectations(t)
}

func TestEnhancementService_Enhance_FailureWithoutDrop(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks(42)
	// Level 1 succeeds at 90%; a roll of 95 fails, and level 1 has no drop
	service := newTestEnhancementService(m, 95)

	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Commit").Return(nil)
	m.uow.On("Rollback").Return(nil)

	m.enhancements.On("Get", ctx, int64(111), "sword").Return(
		&models.EnhancementItem{UserID: 111, Name: "sword", Level: 1, SuccessCount: 1}, nil)
	expectEnhanceSpend(ctx, m, 10000)
	m.enhancements.On("Upsert", ctx, mock.MatchedBy(func(item *models.EnhancementItem) bool {
		return item.Level == 1 && item.FailCount == 1 && item.ConsecutiveFails == 1
	})).Return(nil)

	result, err := service.Enhance(ctx, 42, 111, "sword")

	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.False(t, result.Dropped)
	assert.Equal(t, int64(1), result.Item.Level)
}

func TestEnhancementService_Enhance_FailureWithDrop(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks(42)
	// Level 5 succeeds at 50% with a 25% drop: first roll 80 fails,
	// second roll 10 drops
	service := newTestEnhancementService(m, 80, 10)

	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Commit").Return(nil)
	m.uow.On("Rollback").Return(nil)

	m.enhancements.On("Get", ctx, int64(111), "sword").Return(
		&models.EnhancementItem{UserID: 111, Name: "sword", Level: 5, SuccessCount: 5}, nil)
	expectEnhanceSpend(ctx, m, 10000)
	m.enhancements.On("Upsert", ctx, mock.MatchedBy(func(item *models.EnhancementItem) bool {
		return item.Level == 4 && item.FailCount == 1
	})).Return(nil)

	result, err := service.Enhance(ctx, 42, 111, "sword")

	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.True(t, result.Dropped)
	assert.Equal(t, int64(4), result.Item.Level)
}

func TestEnhancementService_Enhance_SuccessResetsConsecutiveFails(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks(42)
	service := newTestEnhancementService(m, 0)

	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Commit").Return(nil)
	m.uow.On("Rollback").Return(nil)

	m.enhancements.On("Get", ctx, int64(111), "sword").Return(
		&models.EnhancementItem{UserID: 111, Name: "sword", Level: 2, FailCount: 3, ConsecutiveFails: 3}, nil)
	expectEnhanceSpend(ctx, m, 10000)
	m.enhancements.On("Upsert", ctx, mock.MatchedBy(func(item *models.EnhancementItem) bool {
		return item.Level == 3 && item.ConsecutiveFails == 0 && item.FailCount == 3
	})).Return(nil)

	result, err := service.Enhance(ctx, 42, 111, "sword")

	assert.NoError(t, err)
	assert.True(t, result.Success)
}

func TestEnhancementService_Enhance_MaxLevelRejected(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks(42)
	service := newTestEnhancementService(m)

	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback").Return(nil)

	m.accounts.On("GetByUserID", ctx, int64(111)).Return(&models.Account{UserID: 111, Cash: 10000}, nil)
	m.enhancements.On("Get", ctx, int64(111), "sword").Return(
		&models.EnhancementItem{UserID: 111, Name: "sword", Level: 10}, nil)

	result, err := service.Enhance(ctx, 42, 111, "sword")

	assert.Nil(t, result)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	// No charge for a rejected attempt
	m.accounts.AssertNotCalled(t, "AddCash")
}

func TestEnhancementService_Enhance_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks(42)
	service := newTestEnhancementService(m)

	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback").Return(nil)

	m.accounts.On("GetByUserID", ctx, int64(111)).Return(&models.Account{UserID: 111, Cash: 200}, nil)
	m.enhancements.On("Get", ctx, int64(111), "sword").Return(nil, nil)
	m.settings.On("GetOrCreate", ctx, int64(42)).Return(&models.EconomySettings{GuildID: 42}, nil)

	result, err := service.Enhance(ctx, 42, 111, "sword")

	assert.Nil(t, result)
	var insufficientErr *InsufficientFundsError
	assert.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, int64(200), insufficientErr.Have)
	assert.Equal(t, int64(500), insufficientErr.Need)
}

func TestEnhancementService_Enhance_EmptyNameRejected(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks(42)
	service := newTestEnhancementService(m)

	result, err := service.Enhance(ctx, 42, 111, "")

	assert.Nil(t, result)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	m.factory.AssertNotCalled(t, "CreateForGuild")
}

func TestEnhancementService_ResetAll(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks(42)
	service := newTestEnhancementService(m)

	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Commit").Return(nil)
	m.uow.On("Rollback").Return(nil)

	m.enhancements.On("ResetAll", ctx).Return(nil)

	err := service.ResetAll(ctx, 42)

	assert.NoError(t, err)
	m.enhancements.AssertExpectations(t)
	m.uow.AssertExpectations(t)
}
