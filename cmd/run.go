package cmd

import (
	"context"
	"time"

	"guildbank/config"
	"guildbank/database"
	"guildbank/events"
	"guildbank/repository"
	"guildbank/service"

	log "github.com/sirupsen/logrus"
)

// Core bundles every service the presentation layer may call. A command
// dispatcher (Discord, CLI, tests) embeds this and subscribes to the bus
// for notifications.
type Core struct {
	Accounts    service.AccountService
	Ledger      service.LedgerService
	Attendance  service.AttendanceService
	Gifts       service.GiftService
	Exchange    service.ExchangeService
	Enhancement service.EnhancementService
	Settings    service.SettingsService
	Stats       service.StatsService
	Bus         *events.Bus
}

// NewCore wires all services over a shared guild registry and event bus
func NewCore(cfg *config.Config, registry *database.Registry, bus *events.Bus) *Core {
	uowFactory := repository.NewUnitOfWorkFactory(registry, bus)

	return &Core{
		Accounts:    service.NewAccountService(uowFactory),
		Ledger:      service.NewLedgerService(uowFactory),
		Attendance:  service.NewAttendanceService(uowFactory),
		Gifts:       service.NewGiftService(uowFactory, cfg.GiftCooldown),
		Exchange:    service.NewExchangeService(uowFactory),
		Enhancement: service.NewEnhancementService(uowFactory),
		Settings:    service.NewSettingsService(uowFactory),
		Stats:       service.NewStatsService(uowFactory),
		Bus:         bus,
	}
}

// Run initializes the economy core and blocks until the context is
// cancelled
func Run(ctx context.Context) error {
	cfg := config.Get()

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	log.WithField("dataDir", cfg.DataDir).Info("Starting guild bank core")

	registry := database.NewRegistry(cfg.DataDir)
	bus := events.NewBus()
	core := NewCore(cfg, registry, bus)

	// Default notification subscribers; a real presentation layer replaces
	// these with its own handlers.
	core.Bus.Subscribe(events.EventTypeLevelUp, func(ctx context.Context, event events.Event) {
		e := event.(events.LevelUpEvent)
		log.WithFields(log.Fields{
			"guildID":  e.GuildID,
			"userID":   e.UserID,
			"oldLevel": e.OldLevel,
			"newLevel": e.NewLevel,
		}).Info("Level up")
	})
	core.Bus.Subscribe(events.EventTypeCheckIn, func(ctx context.Context, event events.Event) {
		e := event.(events.CheckInEvent)
		log.WithFields(log.Fields{
			"guildID": e.GuildID,
			"userID":  e.UserID,
			"streak":  e.Streak,
			"cash":    e.CashAwarded,
			"xp":      e.XPAwarded,
		}).Info("Check-in")
	})

	log.WithField("environment", cfg.Environment).Info("Core is running")
	<-ctx.Done()

	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	registry.Close()

	select {
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Info("Shutdown completed")
	}

	return nil
}
