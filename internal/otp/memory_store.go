package otp

import (
	"context"
	"sync"
)

// MemoryStore is a process-local OTP store. Entries do not survive a
// restart; use the Redis store when running more than one instance.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

func (s *MemoryStore) Put(_ context.Context, email string, e Entry) error {
	s.mu.Lock()
	s.entries[email] = e
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, email string) (Entry, bool, error) {
	s.mu.Lock()
	e, ok := s.entries[email]
	s.mu.Unlock()
	return e, ok, nil
}

func (s *MemoryStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	delete(s.entries, email)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) ClaimIfMatch(_ context.Context, email string, code int) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[email]
	if !ok {
		return ResultNotFound, nil
	}
	if e.Code != code {
		return ResultMismatch, nil
	}
	delete(s.entries, email)
	return ResultMatched, nil
}
