package service

import (
	"guildbank/events"
)

// serviceMocks bundles the full set of mocks one service test needs.
// The publisher records events synchronously so tests can assert on them
// without racing the async bus.
type serviceMocks struct {
	factory      *MockUnitOfWorkFactory
	uow          *MockUnitOfWork
	accounts     *MockAccountRepository
	xp           *MockXPRepository
	attendance   *MockAttendanceRepository
	transactions *MockTransactionRepository
	enhancements *MockEnhancementRepository
	settings     *MockSettingsRepository
	publisher    *recordingPublisher
}

func newServiceMocks(guildID int64) *serviceMocks {
	m := &serviceMocks{
		factory:      new(MockUnitOfWorkFactory),
		uow:          new(MockUnitOfWork),
		accounts:     new(MockAccountRepository),
		xp:           new(MockXPRepository),
		attendance:   new(MockAttendanceRepository),
		transactions: new(MockTransactionRepository),
		enhancements: new(MockEnhancementRepository),
		settings:     new(MockSettingsRepository),
		publisher:    &recordingPublisher{},
	}

	m.uow.SetGuildID(guildID)
	m.uow.SetRepositories(m.accounts, m.xp, m.attendance, m.transactions, m.enhancements, m.settings, m.publisher)
	m.factory.On("CreateForGuild", guildID).Return(m.uow, nil)

	return m
}

// eventsOfType filters the recorded events by type
func (m *serviceMocks) eventsOfType(eventType events.EventType) []events.Event {
	var matched []events.Event
	for _, e := range m.publisher.published {
		if e.Type() == eventType {
			matched = append(matched, e)
		}
	}
	return matched
}
