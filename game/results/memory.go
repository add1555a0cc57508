package results

import (
	"context"
	"sync"
)

// MemoryStore keeps results in process memory
type MemoryStore struct {
	mu      sync.RWMutex
	wins    map[string]int
	games   map[string]int
	recent  []Record
	maxKeep int
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		wins:    make(map[string]int),
		games:   make(map[string]int),
		maxKeep: DefaultRecentLimit,
	}
}

// Record stores a finished game
func (m *MemoryStore) Record(ctx context.Context, record Record) (Record, error) {
	record, err := prepare(record)
	if err != nil {
		return record, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range seats(record) {
		m.games[c]++
	}
	m.wins[record.WinnerName()]++

	m.recent = append([]Record{record}, m.recent...)
	if len(m.recent) > m.maxKeep {
		m.recent = m.recent[:m.maxKeep]
	}
	return record, nil
}

// Standings returns the leaderboard
func (m *MemoryStore) Standings(ctx context.Context, limit int) ([]Standing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	standings := make([]Standing, 0, len(m.games))
	for controller, games := range m.games {
		standings = append(standings, Standing{
			Controller: controller,
			Wins:       m.wins[controller],
			Games:      games,
		})
	}
	return rank(standings, limit), nil
}

// Recent returns the latest results, newest first
func (m *MemoryStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 || limit > len(m.recent) {
		limit = len(m.recent)
	}
	out := make([]Record, limit)
	copy(out, m.recent[:limit])
	return out, nil
}
