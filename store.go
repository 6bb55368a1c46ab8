package main

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ResultRecord is one persisted processing result.
type ResultRecord struct {
	ID       int64            `json:"id"`
	Filename string           `json:"filename"`
	Output   *ProcessedOutput `json:"output"`
}

// ResultStore keeps recent processing results in memory, keyed by
// auto-incrementing identifiers. Bounded by an LRU so a long-running server
// does not grow without limit; evicted results are simply gone.
type ResultStore struct {
	mu    sync.Mutex
	next  int64
	cache *lru.Cache[int64, *ResultRecord]
}

func NewResultStore(capacity int) (*ResultStore, error) {
	cache, err := lru.New[int64, *ResultRecord](capacity)
	if err != nil {
		return nil, fmt.Errorf("cannot create result store: %w", err)
	}
	return &ResultStore{cache: cache}, nil
}

// Put stores a result and returns its assigned identifier.
func (s *ResultStore) Put(filename string, output *ProcessedOutput) int64 {
	s.mu.Lock()
	s.next++
	id := s.next
	s.mu.Unlock()

	s.cache.Add(id, &ResultRecord{ID: id, Filename: filename, Output: output})
	return id
}

// Get returns the record for an identifier, if it is still retained.
func (s *ResultStore) Get(id int64) (*ResultRecord, bool) {
	return s.cache.Get(id)
}
