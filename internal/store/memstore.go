package store

import (
	"strings"
	"sync"
	"time"

	"mancala_arena/internal/domain"
)

// memstore is the in-memory RoomStore used by the single-process server.
type memstore struct {
	mu     sync.RWMutex
	byID   map[string]*domain.Room
	byCode map[string]*domain.Room
}

func NewMemoryStore() RoomStore {
	return &memstore{
		byID:   make(map[string]*domain.Room),
		byCode: make(map[string]*domain.Room),
	}
}

func (m *memstore) Insert(room *domain.Room) error {
	code := normalizeCode(room.Code)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byCode[code]; exists {
		return ErrCodeTaken
	}
	cp := room.Clone()
	m.byID[room.ID] = cp
	m.byCode[code] = cp
	return nil
}

func (m *memstore) GetByID(id string) (*domain.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.byID[id]
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

func (m *memstore) GetByCode(code string) (*domain.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.byCode[normalizeCode(code)]
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

func (m *memstore) Update(room *domain.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.byID[room.ID]
	if !ok {
		return ErrRoomNotFound
	}
	cp := room.Clone()
	cp.LastActivity = time.Now()
	delete(m.byCode, normalizeCode(old.Code))
	m.byID[room.ID] = cp
	m.byCode[normalizeCode(cp.Code)] = cp
	return nil
}

func (m *memstore) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.byID[id]; ok {
		delete(m.byCode, normalizeCode(r.Code))
		delete(m.byID, id)
	}
}

func (m *memstore) DeleteExpired(cutoff time.Time) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expired []string
	for id, r := range m.byID {
		if r.LastActivity.Before(cutoff) {
			delete(m.byCode, normalizeCode(r.Code))
			delete(m.byID, id)
			expired = append(expired, id)
		}
	}
	return expired
}

func (m *memstore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID)
}

// Codes are shared by humans; lookups tolerate case and padding.
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
