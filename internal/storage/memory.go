package storage

import (
	"context"
	"errors"
	"sort"
	"sync"

	"biodesigner/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	tables      map[string]model.CodonUsageRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	s.initialized = true
	s.tables = make(map[string]model.CodonUsageRecord)
	return nil
}

func (s *MemoryStore) SaveCodonTable(_ context.Context, record model.CodonUsageRecord) error {
	if err := checkRecord(record); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	s.tables[record.Organism] = cloneRecord(record)
	return nil
}

func (s *MemoryStore) GetCodonTable(_ context.Context, organism string) (model.CodonUsageRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return model.CodonUsageRecord{}, false, errNotInitialized
	}
	record, ok := s.tables[organism]
	if !ok {
		return model.CodonUsageRecord{}, false, nil
	}
	return cloneRecord(record), true, nil
}

func (s *MemoryStore) ListCodonTables(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, errNotInitialized
	}
	organisms := make([]string, 0, len(s.tables))
	for organism := range s.tables {
		organisms = append(organisms, organism)
	}
	sort.Strings(organisms)
	return organisms, nil
}

func (s *MemoryStore) DeleteCodonTable(_ context.Context, organism string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	delete(s.tables, organism)
	return nil
}

var errNotInitialized = errors.New("store is not initialized")
