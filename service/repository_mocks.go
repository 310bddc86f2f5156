package service

import (
	"context"

	"casino/events"
	"casino/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByID(ctx context.Context, accountID int64) (*models.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, username string, initialBalance int64) (*models.Account, error) {
	args := m.Called(ctx, username, initialBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyWager(ctx context.Context, accountID, betAmount, payout int64) (*models.Account, error) {
	args := m.Called(ctx, accountID, betAmount, payout)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) Credit(ctx context.Context, accountID, amount int64) (*models.Account, error) {
	args := m.Called(ctx, accountID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

// MockHistoryRepository is a mock implementation of HistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Append(ctx context.Context, record *models.HistoryRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListByAccount(ctx context.Context, accountID int64, limit int) ([]*models.HistoryRecord, error) {
	args := m.Called(ctx, accountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.HistoryRecord), args.Error(1)
}

func (m *MockHistoryRepository) SumsByAccount(ctx context.Context, accountID int64) (int64, int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

// MockCoinRequestRepository is a mock implementation of CoinRequestRepository
type MockCoinRequestRepository struct {
	mock.Mock
}

func (m *MockCoinRequestRepository) Create(ctx context.Context, request *models.CoinRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockCoinRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CoinRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CoinRequest), args.Error(1)
}

func (m *MockCoinRequestRepository) HasPending(ctx context.Context, accountID int64) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCoinRequestRepository) MarkReviewed(ctx context.Context, id uuid.UUID, status models.CoinRequestStatus, reviewedBy string) (*models.CoinRequest, error) {
	args := m.Called(ctx, id, status, reviewedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CoinRequest), args.Error(1)
}

func (m *MockCoinRequestRepository) ListByAccount(ctx context.Context, accountID int64) ([]*models.CoinRequest, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CoinRequest), args.Error(1)
}

func (m *MockCoinRequestRepository) ListPending(ctx context.Context) ([]*models.CoinRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CoinRequest), args.Error(1)
}

// capturingEventBus records published events without dispatching them
type capturingEventBus struct {
	published []events.Event
}

func (b *capturingEventBus) Publish(e events.Event) {
	b.published = append(b.published, e)
}

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock

	accountRepo     AccountRepository
	historyRepo     HistoryRepository
	coinRequestRepo CoinRequestRepository
	eventBus        *capturingEventBus
}

// SetRepositories wires the mock repositories this unit of work hands out
func (m *MockUnitOfWork) SetRepositories(accounts AccountRepository, history HistoryRepository, coinRequests CoinRequestRepository) {
	m.accountRepo = accounts
	m.historyRepo = history
	m.coinRequestRepo = coinRequests
	m.eventBus = &capturingEventBus{}
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

func (m *MockUnitOfWork) AccountRepository() AccountRepository {
	return m.accountRepo
}

func (m *MockUnitOfWork) HistoryRepository() HistoryRepository {
	return m.historyRepo
}

func (m *MockUnitOfWork) CoinRequestRepository() CoinRequestRepository {
	return m.coinRequestRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventBus
}

// PublishedEvents returns the events captured during the unit of work
func (m *MockUnitOfWork) PublishedEvents() []events.Event {
	return m.eventBus.published
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
