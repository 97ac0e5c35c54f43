package repository

import (
	"context"
	"database/sql"
	"fmt"

	"guildbank/database"
	"guildbank/events"
	"guildbank/service"
)

// unitOfWork implements the service.UnitOfWork interface over a single
// guild's database
type unitOfWork struct {
	registry         *database.Registry
	guildID          int64
	tx               *sql.Tx
	transactionalBus *events.TransactionalBus
	accountRepo      service.AccountRepository
	xpRepo           service.XPRepository
	attendanceRepo   service.AttendanceRepository
	transactionRepo  service.TransactionRepository
	enhancementRepo  service.EnhancementRepository
	settingsRepo     service.SettingsRepository
}

type unitOfWorkFactory struct {
	registry *database.Registry
	eventBus *events.Bus
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory backed by the
// guild database registry
func NewUnitOfWorkFactory(registry *database.Registry, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		registry: registry,
		eventBus: eventBus,
	}
}

// CreateForGuild creates a new UnitOfWork scoped to a specific guild
func (f *unitOfWorkFactory) CreateForGuild(guildID int64) (service.UnitOfWork, error) {
	if guildID == 0 {
		return nil, service.ErrMissingGuildID
	}
	return &unitOfWork{
		registry:         f.registry,
		guildID:          guildID,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}, nil
}

// Begin resolves the guild's database and starts a transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	db, err := u.registry.Get(ctx, u.guildID)
	if err != nil {
		return fmt.Errorf("failed to open store for guild %d: %w", u.guildID, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx

	// Create repositories bound to the transaction
	u.accountRepo = newAccountRepositoryWithTx(tx)
	u.xpRepo = newXPRepositoryWithTx(tx)
	u.attendanceRepo = newAttendanceRepositoryWithTx(tx)
	u.transactionRepo = newTransactionRepositoryWithTx(tx)
	u.enhancementRepo = newEnhancementRepositoryWithTx(tx)
	u.settingsRepo = newSettingsRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction and flushes pending events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Flush(context.Background())
	}

	return nil
}

// Rollback rolls back the transaction; a no-op after Commit
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback()
	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	if err != nil && err != sql.ErrTxDone {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	return nil
}

// GuildID returns the guild this unit of work is scoped to
func (u *unitOfWork) GuildID() int64 {
	return u.guildID
}

func (u *unitOfWork) AccountRepository() service.AccountRepository {
	if u.accountRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.accountRepo
}

func (u *unitOfWork) XPRepository() service.XPRepository {
	if u.xpRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.xpRepo
}

func (u *unitOfWork) AttendanceRepository() service.AttendanceRepository {
	if u.attendanceRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.attendanceRepo
}

func (u *unitOfWork) TransactionRepository() service.TransactionRepository {
	if u.transactionRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionRepo
}

func (u *unitOfWork) EnhancementRepository() service.EnhancementRepository {
	if u.enhancementRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.enhancementRepo
}

func (u *unitOfWork) SettingsRepository() service.SettingsRepository {
	if u.settingsRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.settingsRepo
}

func (u *unitOfWork) EventBus() service.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
