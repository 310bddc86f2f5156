package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"casino/config"
	"casino/database"
	"casino/events"
	"casino/games"
	"casino/repository"
	"casino/service"
)

// Engine bundles the wired services for an embedding front end.
type Engine struct {
	Accounts     service.AccountService
	Play         service.PlayService
	CoinRequests service.CoinRequestService
	Events       *events.Bus

	db *database.DB
}

// NewEngine connects to the database and wires up all services.
// Callers must Close the engine when done.
func NewEngine(ctx context.Context, cfg *config.Config) (*Engine, error) {
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	eventBus := events.NewBus()
	events.SubscribeLogging(eventBus)

	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)
	locks := service.NewAccountLocks(cfg.LockWaitTimeout)

	return &Engine{
		Accounts: service.NewAccountService(uowFactory, cfg.StartingBalance),
		Play: service.NewPlayService(uowFactory, games.NewCryptoSource(), locks, service.PlayConfig{
			MinBet: cfg.MinBet,
			MaxBet: cfg.MaxBet,
		}),
		CoinRequests: service.NewCoinRequestService(uowFactory, locks),
		Events:       eventBus,
		db:           db,
	}, nil
}

// Close releases the engine's database resources
func (e *Engine) Close() {
	e.db.Close()
}

// Run initializes the engine and blocks until the context is cancelled
func Run(ctx context.Context) error {
	log.Println("Starting casino engine...")

	cfg := config.Get()

	log.Println("Connecting to database...")
	engine, err := NewEngine(ctx, cfg)
	if err != nil {
		return err
	}
	log.Println("Engine initialized successfully")

	log.Printf("Engine is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Println("Closing database connection...")
	engine.Close()

	select {
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Println("Shutdown completed")
	}

	return nil
}
