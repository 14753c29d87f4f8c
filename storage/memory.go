package storage

import (
	"sync"
)

const defaultMemoryEntries = 500

type MemoryJournal struct {
	entries []Entry
	max     int
	mutex   sync.RWMutex
}

func NewMemoryJournal(max int) *MemoryJournal {
	if max <= 0 {
		max = defaultMemoryEntries
	}
	return &MemoryJournal{
		entries: make([]Entry, 0, max),
		max:     max,
	}
}

func (m *MemoryJournal) Record(entry Entry) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	// drop the oldest entries once over the limit
	for len(m.entries) >= m.max && len(m.entries) > 0 {
		m.entries = m.entries[1:]
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MemoryJournal) Recent(limit int) ([]Entry, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if limit <= 0 || limit > len(m.entries) {
		limit = len(m.entries)
	}
	out := make([]Entry, 0, limit)
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.entries[i])
	}
	return out, nil
}

func (m *MemoryJournal) Close() error {
	return nil
}
