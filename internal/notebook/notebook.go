// Package notebook holds the user's persisted collection of saved
// dictionary entries.
package notebook

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"popdict/internal/models"
	"popdict/internal/store"
)

// Key is the fixed blob key the whole notebook is persisted under.
const Key = "popdict-notebook"

// Store is an ordered, term-deduplicated collection of dictionary entries,
// newest-first. Every mutation re-serializes and persists the full sequence
// before the next mutation is accepted.
type Store struct {
	blob store.Blob
	log  *slog.Logger

	mu      sync.Mutex
	entries []models.DictionaryEntry
}

// New loads the notebook from blob. Missing or unparsable data degrades to
// an empty notebook; New never fails on corrupt state.
func New(blob store.Blob, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}
	s := &Store{blob: blob, log: log}

	data, ok, err := blob.Get(Key)
	if err != nil {
		return nil, fmt.Errorf("load notebook: %w", err)
	}
	if !ok {
		return s, nil
	}
	if err := json.Unmarshal([]byte(data), &s.entries); err != nil {
		log.Warn("notebook state unparsable, starting empty", slog.Any("err", err))
		s.entries = nil
	}
	return s, nil
}

// Add prepends entry to the notebook. It is a no-op when an entry with the
// same term (exact string match) already exists. Returns true if the entry
// was added.
func (s *Store) Add(entry models.DictionaryEntry) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.Term == entry.Term {
			return false, nil
		}
	}

	s.entries = append([]models.DictionaryEntry{entry}, s.entries...)
	if err := s.persistLocked(); err != nil {
		// Roll back so memory matches durable state.
		s.entries = s.entries[1:]
		return false, err
	}
	return true, nil
}

// Remove filters out the entry with the given id and persists the result,
// even when nothing matched.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0:0]
	for _, e := range s.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	prev := s.entries
	s.entries = kept
	if err := s.persistLocked(); err != nil {
		s.entries = prev
		return err
	}
	return nil
}

// Entries returns a snapshot copy of the notebook in store order.
func (s *Store) Entries() []models.DictionaryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.DictionaryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Contains reports whether an entry with the given term is saved.
func (s *Store) Contains(term string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.Term == term {
			return true
		}
	}
	return false
}

// Len returns the number of saved entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) persistLocked() error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("serialize notebook: %w", err)
	}
	if err := s.blob.Put(Key, string(data)); err != nil {
		return fmt.Errorf("persist notebook: %w", err)
	}
	return nil
}
