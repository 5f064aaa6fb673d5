package watchlist

import (
	"context"
	"sync"
	"time"

	"anilistbot/pkg/models"
)

// MemoryStore keeps lists in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]map[int]models.WatchlistEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]map[int]models.WatchlistEntry)}
}

func (m *MemoryStore) Add(_ context.Context, e models.WatchlistEntry) (bool, error) {
	if err := validate(e); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.users[e.UserID]
	if list == nil {
		list = make(map[int]models.WatchlistEntry)
		m.users[e.UserID] = list
	}
	if old, ok := list[e.AnimeID]; ok {
		e.AddedAt = old.AddedAt
		list[e.AnimeID] = e
		return false, nil
	}
	if e.AddedAt.IsZero() {
		e.AddedAt = time.Now().UTC()
	}
	list[e.AnimeID] = e
	return true, nil
}

func (m *MemoryStore) List(_ context.Context, userID string) ([]models.WatchlistEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.WatchlistEntry, 0, len(m.users[userID]))
	for _, e := range m.users[userID] {
		out = append(out, e)
	}
	sortEntries(out)
	return out, nil
}

func (m *MemoryStore) Get(_ context.Context, userID string, animeID int) (*models.WatchlistEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.users[userID][animeID]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *MemoryStore) Remove(_ context.Context, userID string, animeID int) (*models.WatchlistEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.users[userID][animeID]
	if !ok {
		return nil, nil
	}
	delete(m.users[userID], animeID)
	return &e, nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }
