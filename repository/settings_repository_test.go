package repository

import (
	"context"
	"testing"

	"guildbank/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepository_GetOrCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(newTestDB(t))

	// First read creates an empty row: every override nil
	settings, err := repo.GetOrCreate(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), settings.GuildID)
	assert.Nil(t, settings.AttendanceCash)
	assert.Nil(t, settings.GiftFeePercent)

	// Resolved values are the defaults
	effective := settings.Effective()
	assert.Equal(t, models.DefaultAttendanceCash, effective.AttendanceCash)
	assert.Equal(t, models.DefaultEnhanceCost, effective.EnhanceCost)

	// Second read finds the existing row
	again, err := repo.GetOrCreate(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), again.GuildID)
}

func TestSettingsRepository_UpdateRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(newTestDB(t))

	settings, err := repo.GetOrCreate(ctx, 42)
	require.NoError(t, err)

	cash := int64(250)
	fee := int64(12)
	settings.AttendanceCash = &cash
	settings.GiftFeePercent = &fee

	require.NoError(t, repo.Update(ctx, settings))

	fetched, err := repo.GetOrCreate(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, fetched.AttendanceCash)
	assert.Equal(t, int64(250), *fetched.AttendanceCash)
	require.NotNil(t, fetched.GiftFeePercent)
	assert.Equal(t, int64(12), *fetched.GiftFeePercent)
	// Fields never set stay nil and keep resolving to defaults
	assert.Nil(t, fetched.AttendanceXP)
	assert.Equal(t, models.DefaultAttendanceXP, fetched.Effective().AttendanceXP)
}

func TestSettingsRepository_UpdateMissingRow(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(newTestDB(t))

	err := repo.Update(ctx, &models.EconomySettings{GuildID: 99})
	assert.Error(t, err)
}
