package services

import (
	"context"
	"sync"
	"time"

	"github.com/kendall-kelly/coffee-shop-api/models"
)

// OrderStore defines the interface for keeping each session's order log
type OrderStore interface {
	// Append inserts order at the front of the session's log and marks the
	// session active at the order's CreatedAt
	Append(ctx context.Context, sessionID string, order models.Order) error

	// Latest returns the most recent order of the session, if any
	Latest(ctx context.Context, sessionID string) (models.Order, bool, error)

	// Count returns how many orders the session has placed
	Count(ctx context.Context, sessionID string) (int, error)

	// List returns the session's orders, most recent first
	List(ctx context.Context, sessionID string) ([]models.Order, error)

	// Touch marks a session with a log as active at the given time. Sessions
	// without orders are not recorded.
	Touch(ctx context.Context, sessionID string, at time.Time) error

	// Expire discards every session last active before cutoff and returns
	// how many were removed
	Expire(ctx context.Context, cutoff time.Time) (int, error)

	// Discard drops the session's log when the session ends
	Discard(ctx context.Context, sessionID string) error
}

type memorySession struct {
	log      *models.OrderLog
	lastSeen time.Time
}

// MemoryOrderStore keeps one models.OrderLog per session in process memory
type MemoryOrderStore struct {
	sessions map[string]*memorySession
	mu       sync.RWMutex
}

// NewMemoryOrderStore creates an empty in-memory store
func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{
		sessions: make(map[string]*memorySession),
	}
}

// Append inserts order at the front of the session's log, starting a log
// for sessions that have not ordered yet
func (m *MemoryOrderStore) Append(ctx context.Context, sessionID string, order models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		session = &memorySession{log: models.NewOrderLog()}
		m.sessions[sessionID] = session
	}
	order.SessionID = sessionID
	order.Seq = uint(session.log.Len() + 1)
	session.log.Prepend(order)
	if order.CreatedAt.After(session.lastSeen) {
		session.lastSeen = order.CreatedAt
	}
	return nil
}

// Latest returns the most recent order of the session
func (m *MemoryOrderStore) Latest(ctx context.Context, sessionID string) (models.Order, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return models.Order{}, false, nil
	}
	order, found := session.log.Latest()
	return order, found, nil
}

// Count returns the number of orders in the session's log
func (m *MemoryOrderStore) Count(ctx context.Context, sessionID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if session, ok := m.sessions[sessionID]; ok {
		return session.log.Len(), nil
	}
	return 0, nil
}

// List returns a copy of the session's log
func (m *MemoryOrderStore) List(ctx context.Context, sessionID string) ([]models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if session, ok := m.sessions[sessionID]; ok {
		return session.log.Orders(), nil
	}
	return []models.Order{}, nil
}

// Touch moves the session's last activity forward
func (m *MemoryOrderStore) Touch(ctx context.Context, sessionID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[sessionID]; ok && at.After(session.lastSeen) {
		session.lastSeen = at
	}
	return nil
}

// Expire removes the logs of sessions idle since before cutoff
func (m *MemoryOrderStore) Expire(ctx context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	expired := 0
	for id, session := range m.sessions {
		if session.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			expired++
		}
	}
	return expired, nil
}

// Discard removes the session's log
func (m *MemoryOrderStore) Discard(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
	return nil
}

// Sessions returns the number of sessions with a log (for testing assertions)
func (m *MemoryOrderStore) Sessions() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
