package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"guildbank/database"
	"guildbank/events"
	"guildbank/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFactory(t *testing.T) (service.UnitOfWorkFactory, *events.Bus) {
	t.Helper()

	registry := database.NewRegistry(t.TempDir())
	t.Cleanup(registry.Close)

	bus := events.NewBus()
	return NewUnitOfWorkFactory(registry, bus), bus
}

func TestUnitOfWorkFactory_RejectsZeroGuildID(t *testing.T) {
	factory, _ := newTestFactory(t)

	uow, err := factory.CreateForGuild(0)

	assert.Nil(t, uow)
	assert.ErrorIs(t, err, service.ErrMissingGuildID)
}

func TestUnitOfWork_CommitPersists(t *testing.T) {
	ctx := context.Background()
	factory, _ := newTestFactory(t)

	uow, err := factory.CreateForGuild(42)
	require.NoError(t, err)
	require.NoError(t, uow.Begin(ctx))

	_, err = uow.AccountRepository().Create(ctx, 111, "alice", 1000)
	require.NoError(t, err)
	require.NoError(t, uow.Commit())
	require.NoError(t, uow.Rollback()) // no-op after commit

	// A fresh unit of work sees the committed row
	check, err := factory.CreateForGuild(42)
	require.NoError(t, err)
	require.NoError(t, check.Begin(ctx))
	defer check.Rollback()

	account, err := check.AccountRepository().GetByUserID(ctx, 111)
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, int64(1000), account.Cash)
}

func TestUnitOfWork_RollbackDiscards(t *testing.T) {
	ctx := context.Background()
	factory, _ := newTestFactory(t)

	uow, err := factory.CreateForGuild(42)
	require.NoError(t, err)
	require.NoError(t, uow.Begin(ctx))

	_, err = uow.AccountRepository().Create(ctx, 111, "alice", 1000)
	require.NoError(t, err)
	require.NoError(t, uow.Rollback())

	check, err := factory.CreateForGuild(42)
	require.NoError(t, err)
	require.NoError(t, check.Begin(ctx))
	defer check.Rollback()

	account, err := check.AccountRepository().GetByUserID(ctx, 111)
	require.NoError(t, err)
	assert.Nil(t, account)
}

func TestUnitOfWork_EventsFlushOnlyAfterCommit(t *testing.T) {
	ctx := context.Background()
	factory, bus := newTestFactory(t)

	var mu sync.Mutex
	var received []events.Event
	done := make(chan struct{}, 2)
	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) {
		mu.Lock()
		received = append(received, event)
		mu.Unlock()
		done <- struct{}{}
	})

	// Rolled-back work publishes nothing
	uow, err := factory.CreateForGuild(42)
	require.NoError(t, err)
	require.NoError(t, uow.Begin(ctx))
	uow.EventBus().Publish(events.BalanceChangeEvent{GuildID: 42, UserID: 111, ChangeAmount: 100})
	require.NoError(t, uow.Rollback())

	// Committed work publishes after commit
	uow, err = factory.CreateForGuild(42)
	require.NoError(t, err)
	require.NoError(t, uow.Begin(ctx))
	uow.EventBus().Publish(events.BalanceChangeEvent{GuildID: 42, UserID: 111, ChangeAmount: 200})
	require.NoError(t, uow.Commit())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event delivery")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	assert.Equal(t, int64(200), received[0].(events.BalanceChangeEvent).ChangeAmount)
}

func TestUnitOfWork_GuildIsolation(t *testing.T) {
	ctx := context.Background()
	factory, _ := newTestFactory(t)

	uow, err := factory.CreateForGuild(42)
	require.NoError(t, err)
	require.NoError(t, uow.Begin(ctx))
	_, err = uow.AccountRepository().Create(ctx, 111, "alice", 1000)
	require.NoError(t, err)
	require.NoError(t, uow.Commit())

	// The same user id in another guild is a different store entirely
	other, err := factory.CreateForGuild(43)
	require.NoError(t, err)
	require.NoError(t, other.Begin(ctx))
	defer other.Rollback()

	account, err := other.AccountRepository().GetByUserID(ctx, 111)
	require.NoError(t, err)
	assert.Nil(t, account)
}

func TestUnitOfWork_RepositoryAccessBeforeBeginPanics(t *testing.T) {
	factory, _ := newTestFactory(t)

	uow, err := factory.CreateForGuild(42)
	require.NoError(t, err)

	assert.Panics(t, func() { uow.AccountRepository() })
}
