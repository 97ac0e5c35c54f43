package service

import (
	"context"
	"time"

	"guildbank/events"
	"guildbank/models"
)

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	// GetByUserID retrieves an account, or nil if the user is unregistered
	GetByUserID(ctx context.Context, userID int64) (*models.Account, error)

	// Create creates a new account with the given starting cash
	Create(ctx context.Context, userID int64, displayName string, startingCash int64) (*models.Account, error)

	// UpdateDisplayName refreshes the cached display name
	UpdateDisplayName(ctx context.Context, userID int64, displayName string) error

	// AddCash applies a signed delta to the cash balance, creating the row
	// with the delta as balance if absent, and returns the new balance.
	// There is deliberately no floor at zero.
	AddCash(ctx context.Context, userID int64, delta int64) (int64, error)

	// Delete removes the account row
	Delete(ctx context.Context, userID int64) error

	// TopByCash returns the leaderboard by cash, ties broken by earliest
	// account creation, then lowest user id
	TopByCash(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)

	// Rank returns the 1-based rank of a user by cash, or false if the
	// user is unregistered
	Rank(ctx context.Context, userID int64) (int64, bool, error)
}

// XPRepository defines the interface for XP record data access
type XPRepository interface {
	// Get retrieves an XP record, or nil if none exists
	Get(ctx context.Context, userID int64) (*models.XPRecord, error)

	// Upsert writes the full XP record, inserting or replacing
	Upsert(ctx context.Context, record *models.XPRecord) error

	// Delete removes the XP record
	Delete(ctx context.Context, userID int64) error

	// TopByXP returns the leaderboard by accumulated XP
	TopByXP(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)
}

// AttendanceRepository defines the interface for check-in data access
type AttendanceRepository interface {
	// GetByDate retrieves the record for a (user, date) pair, or nil
	GetByDate(ctx context.Context, userID int64, date string) (*models.AttendanceRecord, error)

	// Insert adds a new attendance record; a duplicate (user, date) fails
	Insert(ctx context.Context, record *models.AttendanceRecord) error

	// DeleteByUser removes all attendance rows for a user
	DeleteByUser(ctx context.Context, userID int64) error

	// TopStreaks returns each user's most recent streak, highest first
	TopStreaks(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)
}

// TransactionRepository defines the interface for the append-only audit log
type TransactionRepository interface {
	// Record appends an audit row
	Record(ctx context.Context, transaction *models.Transaction) error

	// GetByUser returns recent transactions for a user, newest first
	GetByUser(ctx context.Context, userID int64, limit int) ([]*models.Transaction, error)

	// CountByTypeSince counts a user's transactions of one type recorded
	// at or after the given instant
	CountByTypeSince(ctx context.Context, userID int64, transactionType models.TransactionType, since time.Time) (int64, error)

	// DeleteByUser removes all audit rows for a user (unregister cascade)
	DeleteByUser(ctx context.Context, userID int64) error
}

// EnhancementRepository defines the interface for enhancement item data access
type EnhancementRepository interface {
	// Get retrieves a user's item by name, or nil if never attempted
	Get(ctx context.Context, userID int64, name string) (*models.EnhancementItem, error)

	// Upsert writes the full item state, inserting or replacing
	Upsert(ctx context.Context, item *models.EnhancementItem) error

	// DeleteByUser removes all items for a user
	DeleteByUser(ctx context.Context, userID int64) error

	// ResetAll wipes every item in the guild (bulk admin reset)
	ResetAll(ctx context.Context) error
}

// SettingsRepository defines the interface for economy settings data access
type SettingsRepository interface {
	// GetOrCreate retrieves the guild's settings row, creating an empty
	// (all-defaults) row if absent
	GetOrCreate(ctx context.Context, guildID int64) (*models.EconomySettings, error)

	// Update writes the settings row
	Update(ctx context.Context, settings *models.EconomySettings) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
// scoped to a single guild's database
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes pending events
	Commit() error

	// Rollback rolls back the transaction and discards pending events
	Rollback() error

	// GuildID returns the guild this unit of work is scoped to
	GuildID() int64

	// Repository getters
	AccountRepository() AccountRepository
	XPRepository() XPRepository
	AttendanceRepository() AttendanceRepository
	TransactionRepository() TransactionRepository
	EnhancementRepository() EnhancementRepository
	SettingsRepository() SettingsRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates UnitOfWork instances bound to one guild's store
type UnitOfWorkFactory interface {
	// CreateForGuild creates a new UnitOfWork scoped to a specific guild.
	// A zero guild id is a ConfigurationError.
	CreateForGuild(guildID int64) (UnitOfWork, error)
}

// AccountService defines the interface for account lifecycle operations
type AccountService interface {
	// Register creates an account, or refreshes the display name of an
	// existing one. Registration is idempotent: an existing balance is
	// never altered.
	Register(ctx context.Context, guildID, userID int64, displayName string) (*models.Account, error)

	// Unregister deletes the account and every dependent row for that
	// user within the guild
	Unregister(ctx context.Context, guildID, userID int64) error

	// GetAccount returns a value snapshot of the account
	GetAccount(ctx context.Context, guildID, userID int64) (*models.Account, error)
}

// LedgerService is the only sanctioned path for mutating cash and XP
type LedgerService interface {
	// GetBalance returns the cash balance, 0 if unregistered
	GetBalance(ctx context.Context, guildID, userID int64) (int64, error)

	// AddCash applies a signed delta with no floor at zero and returns
	// the new balance. Overdraft prevention is the caller's concern.
	AddCash(ctx context.Context, guildID, userID, delta int64, transactionType models.TransactionType, description string) (int64, error)

	// AddXP applies a signed delta (clamped at zero) and recomputes the
	// level. It does not publish a level-up; callers do after observing
	// the returned change.
	AddXP(ctx context.Context, guildID, userID, delta int64) (models.XPChange, error)

	// History returns recent audit rows for a user
	History(ctx context.Context, guildID, userID int64, limit int) ([]*models.Transaction, error)
}

// AttendanceService defines the interface for daily check-ins
type AttendanceService interface {
	// CheckIn performs the daily check-in, computing the streak and
	// crediting the reward. A second check-in on the same day returns
	// ErrAlreadyCheckedIn with the existing streak on the result.
	CheckIn(ctx context.Context, guildID, userID int64) (*models.CheckInResult, error)
}

// GiftService defines the interface for fee-bearing user-to-user transfers
type GiftService interface {
	// Gift transfers amount from sender to receiver, charging the sender
	// the configured fee on top
	Gift(ctx context.Context, guildID, senderID, receiverID int64, amount int64) (*models.GiftResult, error)
}

// ExchangeService defines the interface for cash/XP conversion
type ExchangeService interface {
	// Convert exchanges amount in the given direction at a rate of
	// 1 - feePercent/100
	Convert(ctx context.Context, guildID, userID int64, amount int64, direction models.ExchangeDirection) (*models.ExchangeResult, error)
}

// EnhancementService defines the interface for the gacha upgrade feature
type EnhancementService interface {
	// Enhance spends cash on one upgrade attempt for the named item
	Enhance(ctx context.Context, guildID, userID int64, name string) (*models.EnhanceResult, error)

	// ResetAll wipes all enhancement progress in the guild
	ResetAll(ctx context.Context, guildID int64) error
}

// SettingsService defines the interface for guild economy configuration
type SettingsService interface {
	// GetSettings returns the fully-resolved settings for a guild
	GetSettings(ctx context.Context, guildID int64) (models.EffectiveSettings, error)

	// UpdateSettings applies the non-nil fields of the override to the
	// guild's stored settings (admin only; enforced by the caller)
	UpdateSettings(ctx context.Context, guildID int64, override *models.EconomySettings) error
}

// StatsService defines the interface for rankings and leaderboards
type StatsService interface {
	// Leaderboard returns the top entries for a metric
	Leaderboard(ctx context.Context, guildID int64, kind models.LeaderboardKind, limit int) ([]*models.LeaderboardEntry, error)

	// Rank returns a user's 1-based position by cash, descending
	Rank(ctx context.Context, guildID, userID int64) (int64, error)
}
