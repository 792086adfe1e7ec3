package service

import (
	"context"
	"encoding/json"

	"helix/events"
	"helix/models"

	"github.com/stretchr/testify/mock"
)

// MockDocumentStore is a mock implementation of DocumentStore
type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Get(ctx context.Context, guildID string) (json.RawMessage, bool, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(json.RawMessage), args.Bool(1), args.Error(2)
}

func (m *MockDocumentStore) Put(ctx context.Context, guildID string, value json.RawMessage) error {
	args := m.Called(ctx, guildID, value)
	return args.Error(0)
}

func (m *MockDocumentStore) Load(ctx context.Context) (models.Document, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.Document), args.Error(1)
}

func (m *MockDocumentStore) Save(ctx context.Context, doc models.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork.
// Store accessors return the embedded mocks so tests set expectations on those directly.
type MockUnitOfWork struct {
	mock.Mock
	GuildConfigs *MockDocumentStore
	Teams        *MockDocumentStore
	RingRoles    *MockDocumentStore
	Events       *MockEventPublisher
}

// NewMockUnitOfWork creates a mock unit of work with fresh store mocks
func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		GuildConfigs: new(MockDocumentStore),
		Teams:        new(MockDocumentStore),
		RingRoles:    new(MockDocumentStore),
		Events:       new(MockEventPublisher),
	}
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

func (m *MockUnitOfWork) GuildConfigStore() DocumentStore {
	return m.GuildConfigs
}

func (m *MockUnitOfWork) TeamStore() DocumentStore {
	return m.Teams
}

func (m *MockUnitOfWork) RingRoleStore() DocumentStore {
	return m.RingRoles
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.Events
}

// AssertAllExpectations checks the unit of work and every store mock
func (m *MockUnitOfWork) AssertAllExpectations(t mock.TestingT) {
	m.AssertExpectations(t)
	m.GuildConfigs.AssertExpectations(t)
	m.Teams.AssertExpectations(t)
	m.RingRoles.AssertExpectations(t)
	m.Events.AssertExpectations(t)
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) CreateForGuild(guildID string) UnitOfWork {
	args := m.Called(guildID)
	return args.Get(0).(UnitOfWork)
}

func (m *MockUnitOfWorkFactory) CreateExclusive() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
