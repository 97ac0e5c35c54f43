package service

import (
	"context"
	"time"

	"guildbank/events"
	"guildbank/models"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByUserID(ctx context.Context, userID int64) (*models.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, userID int64, displayName string, startingCash int64) (*models.Account, error) {
	args := m.Called(ctx, userID, displayName, startingCash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateDisplayName(ctx context.Context, userID int64, displayName string) error {
	args := m.Called(ctx, userID, displayName)
	return args.Error(0)
}

func (m *MockAccountRepository) AddCash(ctx context.Context, userID int64, delta int64) (int64, error) {
	args := m.Called(ctx, userID, delta)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) Delete(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockAccountRepository) TopByCash(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LeaderboardEntry), args.Error(1)
}

func (m *MockAccountRepository) Rank(ctx context.Context, userID int64) (int64, bool, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

// MockXPRepository is a mock implementation of XPRepository
type MockXPRepository struct {
	mock.Mock
}

func (m *MockXPRepository) Get(ctx context.Context, userID int64) (*models.XPRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.XPRecord), args.Error(1)
}

func (m *MockXPRepository) Upsert(ctx context.Context, record *models.XPRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockXPRepository) Delete(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockXPRepository) TopByXP(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LeaderboardEntry), args.Error(1)
}

// MockAttendanceRepository is a mock implementation of AttendanceRepository
type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) GetByDate(ctx context.Context, userID int64, date string) (*models.AttendanceRecord, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AttendanceRecord), args.Error(1)
}

func (m *MockAttendanceRepository) Insert(ctx context.Context, record *models.AttendanceRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAttendanceRepository) DeleteByUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockAttendanceRepository) TopStreaks(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LeaderboardEntry), args.Error(1)
}

// MockTransactionRepository is a mock implementation of TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Record(ctx context.Context, transaction *models.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.Transaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) CountByTypeSince(ctx context.Context, userID int64, transactionType models.TransactionType, since time.Time) (int64, error) {
	args := m.Called(ctx, userID, transactionType, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) DeleteByUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockEnhancementRepository is a mock implementation of EnhancementRepository
type MockEnhancementRepository struct {
	mock.Mock
}

func (m *MockEnhancementRepository) Get(ctx context.Context, userID int64, name string) (*models.EnhancementItem, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EnhancementItem), args.Error(1)
}

func (m *MockEnhancementRepository) Upsert(ctx context.Context, item *models.EnhancementItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockEnhancementRepository) DeleteByUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockEnhancementRepository) ResetAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockSettingsRepository is a mock implementation of SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetOrCreate(ctx context.Context, guildID int64) (*models.EconomySettings, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EconomySettings), args.Error(1)
}

func (m *MockSettingsRepository) Update(ctx context.Context, settings *models.EconomySettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// recordingPublisher collects published events for assertion without
// mock plumbing
type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(event events.Event) {
	p.published = append(p.published, event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repository
// getters return the instances given to SetRepositories rather than
// going through mock expectations, so tests only assert on Begin,
// Commit and Rollback.
type MockUnitOfWork struct {
	mock.Mock

	guildID         int64
	accountRepo     AccountRepository
	xpRepo          XPRepository
	attendanceRepo  AttendanceRepository
	transactionRepo TransactionRepository
	enhancementRepo EnhancementRepository
	settingsRepo    SettingsRepository
	publisher       EventPublisher
}

// SetRepositories wires the repository mocks this unit of work hands out.
// Nil publisher gets a recording no-op.
func (m *MockUnitOfWork) SetRepositories(
	accountRepo AccountRepository,
	xpRepo XPRepository,
	attendanceRepo AttendanceRepository,
	transactionRepo TransactionRepository,
	enhancementRepo EnhancementRepository,
	settingsRepo SettingsRepository,
	publisher EventPublisher,
) {
	m.accountRepo = accountRepo
	m.xpRepo = xpRepo
	m.attendanceRepo = attendanceRepo
	m.transactionRepo = transactionRepo
	m.enhancementRepo = enhancementRepo
	m.settingsRepo = settingsRepo
	if publisher == nil {
		publisher = &recordingPublisher{}
	}
	m.publisher = publisher
}

func (m *MockUnitOfWork) SetGuildID(guildID int64) {
	m.guildID = guildID
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) GuildID() int64 {
	return m.guildID
}

func (m *MockUnitOfWork) AccountRepository() AccountRepository {
	return m.accountRepo
}

func (m *MockUnitOfWork) XPRepository() XPRepository {
	return m.xpRepo
}

func (m *MockUnitOfWork) AttendanceRepository() AttendanceRepository {
	return m.attendanceRepo
}

func (m *MockUnitOfWork) TransactionRepository() TransactionRepository {
	return m.transactionRepo
}

func (m *MockUnitOfWork) EnhancementRepository() EnhancementRepository {
	return m.enhancementRepo
}

func (m *MockUnitOfWork) SettingsRepository() SettingsRepository {
	return m.settingsRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.publisher
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) CreateForGuild(guildID int64) (UnitOfWork, error) {
	args := m.Called(guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(UnitOfWork), args.Error(1)
}
