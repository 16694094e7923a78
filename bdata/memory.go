package bdata

import (
	"context"
	"sync"

	"git.thinkinpower.net/bincheck/mod"
)

type memoryDatabase struct {
	mu      sync.RWMutex
	dataMap map[string]mod.BinRecord
}

// NewMemoryDatabase keeps the history in process memory only.
func NewMemoryDatabase() BinDatabase {
	return &memoryDatabase{dataMap: make(map[string]mod.BinRecord)}
}

func (m *memoryDatabase) Get(ctx context.Context, bin string) (*mod.BinRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if result, ok := m.dataMap[bin]; ok {
		return &result, nil
	}
	return nil, nil
}

func (m *memoryDatabase) Save(ctx context.Context, record mod.BinRecord) error {
	if record.Bin == "" {
		return ErrEmptyBin
	}
	m.mu.Lock()
	m.dataMap[record.Bin] = record
	m.mu.Unlock()
	return nil
}

func (m *memoryDatabase) List(ctx context.Context) ([]mod.BinRecord, error) {
	m.mu.RLock()
	result := make([]mod.BinRecord, 0, len(m.dataMap))
	for _, v := range m.dataMap {
		result = append(result, v)
	}
	m.mu.RUnlock()
	sortRecords(result)
	return result, nil
}

func (m *memoryDatabase) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.dataMap = make(map[string]mod.BinRecord)
	m.mu.Unlock()
	return nil
}

func (m *memoryDatabase) Close() error { return nil }
