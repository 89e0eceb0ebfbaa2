package draft

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryStore holds drafts in process memory.  It backs tests and
// the degraded mode used when neither Redis nor MySQL is reachable
// at startup; drafts then survive reloads but not restarts.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string][]byte
	held  map[string]bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: map[string][]byte{}, held: map[string]bool{}}
}

func (s *MemoryStore) Load(_ context.Context, sessionID, flightID string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bs, ok := s.items[draftKey(sessionID, flightID)]
	if !ok {
		return nil, nil
	}
	var d Draft
	if err := json.Unmarshal(bs, &d); err != nil {
		return nil, nil
	}
	if d.SchemaVersion != SchemaVersion {
		return nil, nil
	}
	return &d, nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, d *Draft) error {
	d.SchemaVersion = SchemaVersion
	d.SavedAt = time.Now().UTC()
	bs, err := json.Marshal(d)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[draftKey(sessionID, d.FlightID)] = bs
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID, flightID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, draftKey(sessionID, flightID))
	return nil
}

// Acquire takes the in-flight marker for the key; false when another
// request already holds it.
func (s *MemoryStore) Acquire(_ context.Context, sessionID, flightID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := draftKey(sessionID, flightID)
	if s.held[key] {
		return false, nil
	}
	s.held[key] = true
	return true, nil
}

// Release drops the in-flight marker; releasing an unheld marker is
// not an error.
func (s *MemoryStore) Release(_ context.Context, sessionID, flightID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.held, draftKey(sessionID, flightID))
	return nil
}
