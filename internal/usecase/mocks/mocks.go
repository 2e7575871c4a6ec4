package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/iho/gotill/internal/domain"
	"github.com/iho/gotill/internal/usecase"
)

// MockSessionRepository is a mock implementation of SessionRepository.
type MockSessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*domain.TillSession

	CreateFunc               func(ctx context.Context, tx usecase.Transaction, session *domain.TillSession) error
	GetByIDFunc              func(ctx context.Context, id string) (*domain.TillSession, error)
	GetOpenByPointOfSaleFunc func(ctx context.Context, pointOfSaleID string) (*domain.TillSession, error)
	UpdateFunc               func(ctx context.Context, tx usecase.Transaction, session *domain.TillSession, expectedVersion int64) error
	ListFunc                 func(ctx context.Context, filter domain.SessionFilter) ([]*domain.TillSession, error)
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{
		sessions: make(map[string]*domain.TillSession),
	}
}

// Put seeds a session directly.
func (m *MockSessionRepository) Put(session *domain.TillSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session.Clone()
}

func (m *MockSessionRepository) Create(ctx context.Context, tx usecase.Transaction, session *domain.TillSession) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, session)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.PointOfSaleID == session.PointOfSaleID && s.IsOpen() {
			return domain.ErrAlreadyOpen
		}
	}
	m.sessions[session.ID] = session.Clone()
	return nil
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id string) (*domain.TillSession, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s.Clone(), nil
	}
	return nil, domain.ErrSessionNotFound
}

func (m *MockSessionRepository) GetOpenByPointOfSale(ctx context.Context, pointOfSaleID string) (*domain.TillSession, error) {
	if m.GetOpenByPointOfSaleFunc != nil {
		return m.GetOpenByPointOfSaleFunc(ctx, pointOfSaleID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.sessions {
		if s.PointOfSaleID == pointOfSaleID && s.IsOpen() {
			return s.Clone(), nil
		}
	}
	return nil, domain.ErrSessionNotFound
}

func (m *MockSessionRepository) Update(ctx context.Context, tx usecase.Transaction, session *domain.TillSession, expectedVersion int64) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, session, expectedVersion)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.sessions[session.ID]
	if !ok || current.Version != expectedVersion {
		return domain.ErrStaleSnapshot
	}
	m.sessions[session.ID] = session.Clone()
	return nil
}

func (m *MockSessionRepository) List(ctx context.Context, filter domain.SessionFilter) ([]*domain.TillSession, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sessions []*domain.TillSession
	for _, s := range m.sessions {
		if filter.PointOfSaleID != "" && s.PointOfSaleID != filter.PointOfSaleID {
			continue
		}
		if filter.State != "" && s.State != filter.State {
			continue
		}
		sessions = append(sessions, s.Clone())
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].OpenedAt.After(sessions[j].OpenedAt) })
	return sessions, nil
}

// MockOperationRepository is a mock implementation of OperationRepository.
type MockOperationRepository struct {
	mu  sync.RWMutex
	ops []*domain.Operation

	CreateFunc              func(ctx context.Context, tx usecase.Transaction, op *domain.Operation) error
	GetByIdempotencyKeyFunc func(ctx context.Context, sessionID, key string) (*domain.Operation, error)
	ListBySessionFunc       func(ctx context.Context, sessionID string) ([]*domain.Operation, error)
	ListByPointOfSaleFunc   func(ctx context.Context, filter domain.OperationFilter) ([]*domain.Operation, error)
}

func NewMockOperationRepository() *MockOperationRepository {
	return &MockOperationRepository{}
}

func (m *MockOperationRepository) Create(ctx context.Context, tx usecase.Transaction, op *domain.Operation) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, op)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.ops {
		if existing.SessionID != op.SessionID {
			continue
		}
		if existing.Sequence == op.Sequence {
			return domain.ErrStaleSnapshot
		}
		if op.IdempotencyKey != "" && existing.IdempotencyKey == op.IdempotencyKey {
			return domain.ErrDuplicateOperation
		}
	}
	c := *op
	m.ops = append(m.ops, &c)
	return nil
}

func (m *MockOperationRepository) GetByIdempotencyKey(ctx context.Context, sessionID, key string) (*domain.Operation, error) {
	if m.GetByIdempotencyKeyFunc != nil {
		return m.GetByIdempotencyKeyFunc(ctx, sessionID, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, op := range m.ops {
		if op.SessionID == sessionID && op.IdempotencyKey == key {
			c := *op
			return &c, nil
		}
	}
	return nil, domain.ErrOperationNotFound
}

func (m *MockOperationRepository) ListBySession(ctx context.Context, sessionID string) ([]*domain.Operation, error) {
	if m.ListBySessionFunc != nil {
		return m.ListBySessionFunc(ctx, sessionID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ops []*domain.Operation
	for _, op := range m.ops {
		if op.SessionID == sessionID {
			c := *op
			ops = append(ops, &c)
		}
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].Sequence < ops[j].Sequence })
	return ops, nil
}

func (m *MockOperationRepository) ListByPointOfSale(ctx context.Context, filter domain.OperationFilter) ([]*domain.Operation, error) {
	if m.ListByPointOfSaleFunc != nil {
		return m.ListByPointOfSaleFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ops []*domain.Operation
	for i := len(m.ops) - 1; i >= 0; i-- {
		if m.ops[i].PointOfSaleID == filter.PointOfSaleID {
			c := *m.ops[i]
			ops = append(ops, &c)
		}
	}
	return ops, nil
}

// All returns every stored operation in insertion order.
func (m *MockOperationRepository) All() []*domain.Operation {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Operation, len(m.ops))
	copy(out, m.ops)
	return out
}

// MockLedgerRepository is a mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	FindInconsistentSessionsFunc func(ctx context.Context) ([]string, error)
}

func (m *MockLedgerRepository) FindInconsistentSessions(ctx context.Context) ([]string, error) {
	if m.FindInconsistentSessionsFunc != nil {
		return m.FindInconsistentSessionsFunc(ctx)
	}
	return nil, nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.Mutex
	Events []*domain.OutboxEvent

	CreateFunc         func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
	GetUnpublishedFunc func(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublishedFunc  func(ctx context.Context, id string, publishedAt time.Time) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if m.GetUnpublishedFunc != nil {
		return m.GetUnpublishedFunc(ctx, limit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.OutboxEvent
	for _, e := range m.Events {
		if !e.Published && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	if m.MarkPublishedFunc != nil {
		return m.MarkPublishedFunc(ctx, id, publishedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Events {
		if e.ID == id {
			e.Published = true
			at := publishedAt
			e.PublishedAt = &at
			return nil
		}
	}
	return fmt.Errorf("event %s not found", id)
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.Mutex
	Logs []*domain.AuditLog

	CreateTxFunc func(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error
}

func (m *MockAuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, log)
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu       sync.RWMutex
	data     map[string][]byte
	versions map[string]int64

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{data: make(map[string][]byte), versions: make(map[string]int64)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("cache miss: %s", key)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCache) SetVersioned(ctx context.Context, key string, value []byte, version int64, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if current, ok := m.versions[key]; ok && current > version {
		return false, nil
	}
	m.data[key] = value
	m.versions[key] = version
	return true, nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Has reports whether key is cached.
func (m *MockCache) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[key]
	return ok
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
	ReleaseFunc     func(ctx context.Context, key string) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response == nil {
		response = []byte("processing")
	}
	m.data[key] = response
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Get returns the stored value for key.
func (m *MockIdempotencyStore) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}
